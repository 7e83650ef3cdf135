package filter

import (
	"fmt"

	"golang.org/x/net/bpf"
)

// FromRaw converts already-assembled instructions, e.g. the output of
// tcpdump -dd, into a Program.
func FromRaw(raw []bpf.RawInstruction) *Program {
	ops := make([]Op, len(raw))
	for i, ins := range raw {
		ops[i] = Op{Code: ins.Op, Jt: ins.Jt, Jf: ins.Jf, K: ins.K}
	}

	return NewProgram(ops)
}

// FromInstructions assembles ins with the x/net/bpf assembler and converts
// the result into a Program.
func FromInstructions(ins []bpf.Instruction) (*Program, error) {
	raw, err := bpf.Assemble(ins)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble filter: %w", err)
	}

	return FromRaw(raw), nil
}
