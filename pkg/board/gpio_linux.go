//go:build linux

package board

import (
	"fmt"
	"sync"

	"github.com/itohio/dvm/pkg/config"
	"github.com/itohio/dvm/pkg/platform"
	"github.com/warthog618/gpio"
)

var _ platform.Outputs = (*GPIOLines)(nil)

var (
	gpioMu   sync.Mutex
	gpioRefs int
)

// OpenGPIO maps the gpio registers on first use. The converter and the
// display lines share one mapping, so every OpenGPIO needs a CloseGPIO.
func OpenGPIO() error {
	gpioMu.Lock()
	defer gpioMu.Unlock()

	if gpioRefs == 0 {
		if err := gpio.Open(); err != nil {
			return fmt.Errorf("failed to open gpio: %w", err)
		}
	}
	gpioRefs++
	return nil
}

// CloseGPIO unmaps the gpio registers once the last user is done.
func CloseGPIO() error {
	gpioMu.Lock()
	defer gpioMu.Unlock()

	if gpioRefs == 0 {
		return nil
	}
	gpioRefs--
	if gpioRefs == 0 {
		return gpio.Close()
	}
	return nil
}

// GPIOLines drives a 7447 decoder and three digit transistors from
// Raspberry Pi pins. The gpio package must be open.
type GPIOLines struct {
	bcd    [4]*gpio.Pin
	digits [platform.Positions]*gpio.Pin
}

// NewGPIOLines configures the pins in cfg as outputs, all low.
func NewGPIOLines(cfg config.GPIOConfig) (*GPIOLines, error) {
	if len(cfg.BCD) != 4 || len(cfg.Digits) != platform.Positions {
		return nil, fmt.Errorf("%w: %d bcd and %d digit lines", config.ErrPins, len(cfg.BCD), len(cfg.Digits))
	}

	l := &GPIOLines{}
	for i, n := range cfg.BCD {
		l.bcd[i] = output(n)
	}
	for i, n := range cfg.Digits {
		l.digits[i] = output(n)
	}
	return l, nil
}

func output(n int) *gpio.Pin {
	p := gpio.NewPin(n)
	p.Low()
	p.Output()
	return p
}

// WriteBCD puts the low nibble of digit on the decoder inputs.
func (l *GPIOLines) WriteBCD(digit uint8) {
	for i, p := range l.bcd {
		p.Write(gpio.Level(digit&(1<<i) != 0))
	}
}

// Blank switches every digit off.
func (l *GPIOLines) Blank() {
	for _, p := range l.digits {
		p.Low()
	}
}

// Select switches digit pos on.
func (l *GPIOLines) Select(pos int) {
	if pos < 0 || pos >= len(l.digits) {
		return
	}
	l.digits[pos].High()
}
