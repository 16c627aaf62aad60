// Package voltmeter wires the sampler and the display multiplexer onto a
// platform and arms its triggers.
package voltmeter

import (
	"context"
	"fmt"

	"github.com/itohio/dvm/pkg/calib"
	"github.com/itohio/dvm/pkg/display"
	"github.com/itohio/dvm/pkg/platform"
	"github.com/itohio/dvm/pkg/sample"
)

// Voltmeter is a bootstrapped meter: one shared reading, one sampler
// writing it and one multiplexer showing it.
type Voltmeter struct {
	p       platform.Platform
	reading *platform.Register
	sampler *sample.Sampler
	mux     *display.Multiplexer
}

// New computes the scale factor from cal and registers both handlers on p.
// Triggers stay disarmed until Start.
func New(p platform.Platform, cal calib.Calibration, window int) (*Voltmeter, error) {
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration: %w", err)
	}

	reading := platform.NewRegister(p)
	v := &Voltmeter{
		p:       p,
		reading: reading,
		sampler: sample.New(p, reading, cal.ScaleFactor(), window),
		mux:     display.New(p, reading, p),
	}

	p.OnConversion(v.sampler.OnConversion)
	p.OnTick(v.mux.Tick)

	return v, nil
}

// Start arms the platform triggers. It must be the last bootstrap step.
func (v *Voltmeter) Start(ctx context.Context) error {
	if err := v.p.Arm(ctx); err != nil {
		return fmt.Errorf("failed to arm triggers: %w", err)
	}
	return nil
}

// Reading returns the displayed value in tenths of a volt.
func (v *Voltmeter) Reading() uint16 {
	return v.reading.Load()
}

// Volts returns the displayed value in volts.
func (v *Voltmeter) Volts() float32 {
	return sample.Tenths(v.Reading())
}

// Scale returns the scale factor computed at bootstrap.
func (v *Voltmeter) Scale() float32 {
	return v.sampler.Scale()
}
