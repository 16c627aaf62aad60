//go:build !linux

package board

import (
	"fmt"

	"github.com/itohio/dvm/pkg/adc"
	"github.com/itohio/dvm/pkg/config"
	"github.com/itohio/dvm/pkg/platform"
)

func newMCP3008(*config.Config) (adc.Source, error) {
	return nil, fmt.Errorf("mcp3008: %w", ErrUnsupported)
}

// NewGPIOOutputs is only available on linux.
func NewGPIOOutputs(config.GPIOConfig) (platform.Outputs, func() error, error) {
	return nil, nil, fmt.Errorf("gpio outputs: %w", ErrUnsupported)
}
