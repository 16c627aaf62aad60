// Package adc provides the conversion sources feeding the sampler: a
// simulated input, a serial ADC bridge and an MCP3008 on a Raspberry Pi.
package adc

// DefaultBufferSize is the default size for the samples channel buffer.
const DefaultBufferSize = 100

// Source defines the interface for conversion sources (real or mocked).
// Samples delivers one raw code per completed conversion and is closed
// after Close.
type Source interface {
	Connect() error
	Close() error
	Samples() <-chan uint16
	IsConnected() bool
}

// Ensure Serial implements Source.
var _ Source = (*Serial)(nil)

// Ensure Mock implements Source.
var _ Source = (*Mock)(nil)
