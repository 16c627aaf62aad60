// Package display multiplexes a reading across three 7-segment digits.
package display

import (
	"github.com/itohio/dvm/pkg/platform"
)

// Digit positions, least significant first. The decimal point sits between
// Ones and Tenths.
const (
	Tenths = iota
	Ones
	Tens
)

// Digit returns decimal digit pos of v, counted from the least significant.
func Digit(v uint16, pos int) uint8 {
	for ; pos > 0; pos-- {
		v /= 10
	}
	return uint8(v % 10)
}

// Multiplexer lights one digit position per tick, cycling Tenths, Ones, Tens.
type Multiplexer struct {
	irq    platform.Interrupts
	in     *platform.Register
	out    platform.Outputs
	cursor uint8
}

// New creates a Multiplexer that reads in and drives out.
func New(irq platform.Interrupts, in *platform.Register, out platform.Outputs) *Multiplexer {
	return &Multiplexer{irq: irq, in: in, out: out}
}

// Tick is the periodic tick handler. It runs entirely with triggers disabled.
func (m *Multiplexer) Tick() {
	st := m.irq.Disable()
	defer m.irq.Restore(st)

	// switch all digits off before changing the segments
	m.out.Blank()

	v := m.in.LoadLocked()
	switch m.cursor {
	case Tenths:
		m.out.WriteBCD(Digit(v, Tenths))
		m.out.Select(Tenths)
		m.cursor = Ones
	case Ones:
		m.out.WriteBCD(Digit(v, Ones))
		m.out.Select(Ones)
		m.cursor = Tens
	default:
		m.out.WriteBCD(Digit(v, Tens))
		m.out.Select(Tens)
		m.cursor = Tenths
	}
}

// Cursor returns the position the next tick will light.
func (m *Multiplexer) Cursor() int {
	st := m.irq.Disable()
	defer m.irq.Restore(st)
	return int(m.cursor)
}
