package board

import (
	"errors"
	"fmt"

	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/config"
)

// ErrUnsupported is returned for hardware this build cannot drive.
var ErrUnsupported = errors.New("not supported on this platform")

// NewSource creates the conversion source selected by cfg.Source.Kind.
func NewSource(cfg *config.Config) (adc.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceMock:
		return adc.NewMock(&cfg.Mock, cfg.Calibration), nil
	case config.SourceSerial:
		return adc.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate, adc.DefaultBufferSize), nil
	case config.SourceMCP3008:
		return newMCP3008(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrSource, cfg.Source.Kind)
	}
}
