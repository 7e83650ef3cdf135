//go:build !linux

package filter

// Program mirrors the Linux Program on platforms without classic BPF socket
// filters. Construction accepts and discards the supplied instructions; the
// control surface below never contacts the operating system.
type Program struct{}

// NewProgram returns an inert Program; ops are discarded.
func NewProgram(ops []Op) *Program {
	return &Program{}
}

// MakeProgram returns an inert Program; the hint and ops are discarded.
func MakeProgram(sizeHint int, ops ...Op) *Program {
	return &Program{}
}

// Len reports 0; an inert Program carries no instructions.
func (p *Program) Len() int {
	return 0
}

// Attach is a no-op that always succeeds.
func Attach(fd int, p *Program) error {
	return nil
}

// Detach is a no-op that always succeeds.
func Detach(fd int) error {
	return nil
}

// Lock is a no-op that always succeeds.
func Lock(fd int) error {
	return nil
}
