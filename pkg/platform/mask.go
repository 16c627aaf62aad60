package platform

import "sync"

var _ Interrupts = (*Mask)(nil)

// Mask emulates a global interrupt-enable flag for hosted platforms.
// While disabled, any other Disable blocks until the matching Restore.
type Mask struct {
	mu sync.Mutex
}

// Disable masks the triggers. The returned state must be passed to Restore.
func (m *Mask) Disable() State {
	m.mu.Lock()
	return 1
}

// Restore re-enables the triggers if s came from Disable.
func (m *Mask) Restore(s State) {
	if s == 0 {
		return
	}
	m.mu.Unlock()
}
