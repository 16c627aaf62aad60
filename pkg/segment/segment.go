// Package segment draws the multiplexed 7-segment digits of the voltmeter.
package segment

import (
	"sync"

	"fyne.io/fyne/v2/widget"
	"github.com/itohio/dvm/pkg/platform"
)

// Segment bits in the common g-f-e-d-c-b-a order.
//
//	 a
//	---
//	f|g|b
//	---
//	e| |c
//	---
//	 d
const (
	SegA uint8 = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
)

// font maps BCD values to lit segments. Codes above 9 are left dark.
var font = [16]uint8{
	SegA | SegB | SegC | SegD | SegE | SegF,        // 0
	SegB | SegC,                                    // 1
	SegA | SegB | SegD | SegE | SegG,               // 2
	SegA | SegB | SegC | SegD | SegG,               // 3
	SegB | SegC | SegF | SegG,                      // 4
	SegA | SegC | SegD | SegF | SegG,               // 5
	SegA | SegC | SegD | SegE | SegF | SegG,        // 6
	SegA | SegB | SegC,                             // 7
	SegA | SegB | SegC | SegD | SegE | SegF | SegG, // 8
	SegA | SegB | SegC | SegD | SegF | SegG,        // 9
}

// Segments returns the lit segments for a BCD digit.
func Segments(bcd uint8) uint8 {
	return font[bcd&0x0F]
}

// Display is a Fyne widget showing three digits with a decimal point before
// the last one. Like the eye, it keeps each position lit with the last digit
// driven into it.
type Display struct {
	widget.BaseWidget

	mu     sync.RWMutex
	digits [platform.Positions]uint8
	lit    [platform.Positions]bool
}

// New creates a dark display.
func New() *Display {
	d := &Display{}
	d.ExtendBaseWidget(d)
	return d
}

// Latch records the state of the display lines. It is cheap and safe to call
// from a trigger handler; call Refresh on the UI thread to redraw.
func (d *Display) Latch(s platform.Snapshot) {
	if s.Selected < 0 || s.Selected >= platform.Positions {
		return
	}
	d.mu.Lock()
	d.digits[s.Selected] = s.BCD
	d.lit[s.Selected] = true
	d.mu.Unlock()
}

// Clear turns every position dark.
func (d *Display) Clear() {
	d.mu.Lock()
	d.lit = [platform.Positions]bool{}
	d.mu.Unlock()
}

// Digits returns the latched digits, tenths first, and which ones have been lit.
func (d *Display) Digits() (digits [platform.Positions]uint8, lit [platform.Positions]bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.digits, d.lit
}
