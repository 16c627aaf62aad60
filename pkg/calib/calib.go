package calib

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// DefaultRealMaxMV is the highest voltage the meter is expected to measure (mV).
	DefaultRealMaxMV = 24000
	// DefaultMeasuredMaxMV is what the converter sees at DefaultRealMaxMV after the divider (mV).
	DefaultMeasuredMaxMV = 4898
	// DefaultFullScale is the full-scale code of a 10-bit converter.
	DefaultFullScale = 1023
)

// Formula selects how the scale factor is derived from the calibration inputs.
type Formula string

const (
	// FormulaLegacy squares RealMax in the denominator:
	// 100 * (FullScale / (RealMax * (RealMax / MeasuredMax))).
	FormulaLegacy Formula = "legacy"
	// FormulaLinear maps the full-scale code straight to RealMax:
	// 100 * FullScale / RealMax.
	FormulaLinear Formula = "linear"
)

var (
	ErrRealMax     = errors.New("real max must be positive")
	ErrMeasuredMax = errors.New("measured max must be positive")
	ErrFullScale   = errors.New("full scale count must be positive")
	ErrFormula     = errors.New("unknown scale formula")
)

// Calibration holds the inputs the scale factor is computed from.
// Voltages are in millivolts.
type Calibration struct {
	RealMaxMV     float32 `yaml:"real_max_mv"`     // 'real' maximum voltage that will be measured
	MeasuredMaxMV float32 `yaml:"measured_max_mv"` // maximum voltage the converter will see
	FullScale     uint16  `yaml:"full_scale"`      // converter full-scale code
	Formula       Formula `yaml:"formula"`         // empty means FormulaLegacy
}

// Default returns the stock calibration: 24V measured through a divider down to 4.898V.
func Default() Calibration {
	return Calibration{
		RealMaxMV:     DefaultRealMaxMV,
		MeasuredMaxMV: DefaultMeasuredMaxMV,
		FullScale:     DefaultFullScale,
		Formula:       FormulaLegacy,
	}
}

// Validate checks that the scale factor can be computed.
func (c Calibration) Validate() error {
	if !(c.RealMaxMV > 0) || math32.IsInf(c.RealMaxMV, 1) {
		return fmt.Errorf("%w: %v", ErrRealMax, c.RealMaxMV)
	}
	if !(c.MeasuredMaxMV > 0) || math32.IsInf(c.MeasuredMaxMV, 1) {
		return fmt.Errorf("%w: %v", ErrMeasuredMax, c.MeasuredMaxMV)
	}
	if c.FullScale == 0 {
		return ErrFullScale
	}
	switch c.Formula {
	case "", FormulaLegacy, FormulaLinear:
	default:
		return fmt.Errorf("%w: %q", ErrFormula, c.Formula)
	}
	return nil
}

// ScaleFactor returns the divisor that maps an averaged raw code to tenths of a volt.
// The '100' gets the value to tenths of volts for the display.
func (c Calibration) ScaleFactor() float32 {
	full := float32(c.FullScale)
	if c.Formula == FormulaLinear {
		return 100 * (full / c.RealMaxMV)
	}
	return 100 * (full / (c.RealMaxMV * (c.RealMaxMV / c.MeasuredMaxMV)))
}

// FullScaleTenths is the reading a full-scale code produces.
func (c Calibration) FullScaleTenths() float32 {
	return math32.Trunc(float32(c.FullScale) / c.ScaleFactor())
}
