//go:build linux

package filter

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Program is an immutable classic BPF filter program. It is the sole owner
// of its instruction array; the length/pointer view the kernel expects is
// derived from that array only for the duration of an attach call, so the
// backing memory cannot outlive or escape the Program.
type Program struct {
	ops []Op
}

// NewProgram builds a Program from ops. The instructions are copied into a
// fresh exact-size allocation, so later mutation of the caller's slice does
// not reach the Program.
func NewProgram(ops []Op) *Program {
	p := &Program{ops: make([]Op, len(ops))}
	copy(p.ops, ops)

	return p
}

// MakeProgram builds a Program from a flat sequence of instructions.
// sizeHint only sizes the initial allocation; the recorded length is always
// the number of instructions actually supplied, so a mismatched hint is
// harmless.
func MakeProgram(sizeHint int, ops ...Op) *Program {
	if sizeHint < 0 {
		sizeHint = 0
	}

	buf := make([]Op, 0, sizeHint)
	buf = append(buf, ops...)

	return &Program{ops: buf}
}

// Len reports the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.ops)
}

// sockFprog derives the kernel's view of the program. The returned value
// borrows p's backing array; callers must keep p alive until any syscall
// reading the view has returned.
func (p *Program) sockFprog() unix.SockFprog {
	fprog := unix.SockFprog{Len: uint16(len(p.ops))}
	if len(p.ops) > 0 {
		fprog.Filter = (*unix.SockFilter)(unsafe.Pointer(&p.ops[0]))
	}

	return fprog
}
