package platform

// Register is a 16-bit cell shared across trigger boundaries.
// Load and Store run inside a critical section of irq; the Locked variants are
// for handlers that already hold it.
type Register struct {
	irq Interrupts
	v   uint16
}

// NewRegister returns a register holding zero.
func NewRegister(irq Interrupts) *Register {
	return &Register{irq: irq}
}

// Load returns the current value.
func (r *Register) Load() uint16 {
	st := r.irq.Disable()
	defer r.irq.Restore(st)
	return r.v
}

// Store replaces the current value.
func (r *Register) Store(v uint16) {
	st := r.irq.Disable()
	defer r.irq.Restore(st)
	r.v = v
}

// LoadLocked returns the value. The caller must have Interrupts disabled.
func (r *Register) LoadLocked() uint16 {
	return r.v
}

// StoreLocked replaces the value. The caller must have Interrupts disabled.
func (r *Register) StoreLocked(v uint16) {
	r.v = v
}
