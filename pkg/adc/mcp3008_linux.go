//go:build linux

package adc

import (
	"context"
	"sync"
	"time"

	"github.com/itohio/dvm/pkg/config"
	"github.com/warthog618/gpio/spi/mcp3w0c"
)

var _ Source = (*MCP3008)(nil)

// MCP3008 polls one channel of a bit-banged MCP3008 at a fixed rate,
// emulating a free-running converter. The gpio package must be open.
type MCP3008 struct {
	pins   config.GPIOConfig
	period time.Duration

	adc       *mcp3w0c.MCP3w0c
	samples   chan uint16
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// NewMCP3008 creates a source reading pins.ADCChannel every period.
func NewMCP3008(pins config.GPIOConfig, period time.Duration) *MCP3008 {
	if period <= 0 {
		period = time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &MCP3008{
		pins:    pins,
		period:  period,
		samples: make(chan uint16, DefaultBufferSize),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Connect claims the SPI pins and starts converting.
func (d *MCP3008) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return ErrConnected
	}

	d.adc = mcp3w0c.NewMCP3008(
		d.pins.ADCTClk,
		d.pins.ADCClock,
		d.pins.ADCSelect,
		d.pins.ADCMosi,
		d.pins.ADCMiso)
	d.connected = true

	go d.convert(d.adc)

	return nil
}

// Close stops converting and releases the SPI pins.
func (d *MCP3008) Close() error {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return nil
	}
	d.cancel()
	d.connected = false
	d.mu.Unlock()

	<-d.done
	d.adc.Close()
	return nil
}

// Samples returns the channel for reading conversions.
func (d *MCP3008) Samples() <-chan uint16 {
	return d.samples
}

// IsConnected returns whether the converter is running.
func (d *MCP3008) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

func (d *MCP3008) convert(adc *mcp3w0c.MCP3w0c) {
	defer close(d.done)
	defer close(d.samples)

	ticker := time.NewTicker(d.period)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			select {
			case d.samples <- adc.Read(d.pins.ADCChannel):
			case <-d.ctx.Done():
				return
			default:
			}
		}
	}
}
