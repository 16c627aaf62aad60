package platform

import "sync"

var _ Outputs = (*Lines)(nil)

// Snapshot is the state of the display lines at one instant.
type Snapshot struct {
	BCD      uint8 // value on the four BCD lines
	Selected int   // lit digit position, NoDigit when blanked
}

// Lines is an in-memory set of display lines. It is used by simulators and
// the desktop front panel, which observe every change.
type Lines struct {
	mu       sync.RWMutex
	state    Snapshot
	observer func(Snapshot)
}

// NewLines returns blanked lines.
func NewLines() *Lines {
	return &Lines{state: Snapshot{Selected: NoDigit}}
}

// OnChange registers the observer called after every line change.
// The observer runs on the caller's goroutine, usually a trigger handler,
// and must return quickly.
func (l *Lines) OnChange(fn func(Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observer = fn
}

// WriteBCD sets the BCD lines. Only the low nibble is wired.
func (l *Lines) WriteBCD(digit uint8) {
	l.update(func(s *Snapshot) { s.BCD = digit & 0x0F })
}

// Blank deselects every digit position.
func (l *Lines) Blank() {
	l.update(func(s *Snapshot) { s.Selected = NoDigit })
}

// Select lights digit position pos. Out of range positions blank the display.
func (l *Lines) Select(pos int) {
	if pos < 0 || pos >= Positions {
		pos = NoDigit
	}
	l.update(func(s *Snapshot) { s.Selected = pos })
}

// Snapshot returns the current line state.
func (l *Lines) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Lines) update(fn func(*Snapshot)) {
	l.mu.Lock()
	fn(&l.state)
	s := l.state
	observer := l.observer
	l.mu.Unlock()

	if observer != nil {
		observer(s)
	}
}
