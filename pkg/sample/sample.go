package sample

import (
	"math"

	"github.com/chewxy/math32"
)

const (
	// DefaultWindow is the number of raw samples averaged per published reading.
	DefaultWindow = 50
	// MaxWindow bounds the window so the counter fits a byte.
	MaxWindow = math.MaxUint8
)

// Convert turns an averaged raw code into tenths of a volt.
// The quotient is truncated toward zero and saturated into the uint16 range.
func Convert(avg uint32, scale float32) uint16 {
	v := math32.Trunc(float32(avg) / scale)
	switch {
	case math32.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(v)
}

// Tenths renders a reading in volts.
func Tenths(v uint16) float32 {
	return float32(v) / 10
}
