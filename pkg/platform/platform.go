// Package platform describes the hardware boundary the voltmeter core runs on:
// two recurring triggers, a global critical section and the display output lines.
package platform

import "context"

const (
	// Positions is the number of multiplexed digit positions.
	Positions = 3
	// NoDigit is reported by Lines when every digit-select line is low.
	NoDigit = -1
)

// State is the trigger-enable state saved by Disable.
type State uintptr

// Interrupts is the critical-section primitive. Disable masks every recurring
// trigger and returns the previous state, Restore puts it back.
// Critical sections do not nest.
type Interrupts interface {
	Disable() State
	Restore(State)
}

// Outputs are the display lines: four BCD lines feeding a 7447-style decoder
// and three mutually exclusive, active-high digit-select lines.
type Outputs interface {
	WriteBCD(digit uint8)
	// Blank deselects all digit positions.
	Blank()
	// Select drives the line of digit position pos (0..Positions-1).
	Select(pos int)
}

// ConversionHandler is invoked once per completed conversion.
type ConversionHandler func(raw uint16)

// TickHandler is invoked once per periodic tick.
type TickHandler func()

// Platform delivers the triggers. An implementation must never re-enter a
// handler and must exclude both handlers while Interrupts are disabled.
type Platform interface {
	Interrupts
	Outputs

	OnConversion(ConversionHandler)
	OnTick(TickHandler)

	// Arm starts both triggers. Handlers must be registered beforehand.
	Arm(ctx context.Context) error
}
