package sample

import (
	"github.com/itohio/dvm/pkg/platform"
)

// Sampler averages fixed windows of raw conversions and publishes each
// window's reading into a shared register.
type Sampler struct {
	irq   platform.Interrupts
	out   *platform.Register
	scale float32

	window uint8
	acc    uint32 // running sum of the current window
	count  uint8  // position inside the current window
}

// New creates a Sampler publishing into out. Window sizes outside
// 1..MaxWindow fall back to DefaultWindow.
func New(irq platform.Interrupts, out *platform.Register, scale float32, window int) *Sampler {
	if window <= 0 || window > MaxWindow {
		window = DefaultWindow
	}
	return &Sampler{
		irq:    irq,
		out:    out,
		scale:  scale,
		window: uint8(window),
	}
}

// OnConversion consumes one raw sample. It is the conversion-complete handler
// and runs entirely with triggers disabled.
func (s *Sampler) OnConversion(raw uint16) {
	st := s.irq.Disable()
	defer s.irq.Restore(st)

	s.acc += uint32(raw)

	if s.count == s.window-1 {
		s.out.StoreLocked(Convert(s.acc/uint32(s.window), s.scale))
		s.acc = 0
		s.count = 0
		return
	}
	s.count++
}

// Window returns the number of samples per published reading.
func (s *Sampler) Window() int {
	return int(s.window)
}

// Scale returns the scale factor the sampler divides by.
func (s *Sampler) Scale() float32 {
	return s.scale
}
