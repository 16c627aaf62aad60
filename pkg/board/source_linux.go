//go:build linux

package board

import (
	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/config"
	"github.com/itohio/dvm/pkg/platform"
)

// gpioSource holds the gpio package open while the wrapped source is connected.
type gpioSource struct {
	*adc.MCP3008
}

func newMCP3008(cfg *config.Config) (adc.Source, error) {
	return &gpioSource{adc.NewMCP3008(cfg.GPIO, cfg.Source.SamplePeriod)}, nil
}

func (s *gpioSource) Connect() error {
	if err := OpenGPIO(); err != nil {
		return err
	}
	if err := s.MCP3008.Connect(); err != nil {
		CloseGPIO()
		return err
	}
	return nil
}

func (s *gpioSource) Close() error {
	if !s.IsConnected() {
		return nil
	}
	err := s.MCP3008.Close()
	if cerr := CloseGPIO(); err == nil {
		err = cerr
	}
	return err
}

// NewGPIOOutputs opens the gpio package and drives the display from the pins
// in cfg. The returned function releases the pins.
func NewGPIOOutputs(cfg config.GPIOConfig) (platform.Outputs, func() error, error) {
	if err := OpenGPIO(); err != nil {
		return nil, nil, err
	}
	l, err := NewGPIOLines(cfg)
	if err != nil {
		CloseGPIO()
		return nil, nil, err
	}
	return l, func() error {
		l.Blank()
		return CloseGPIO()
	}, nil
}
