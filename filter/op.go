package filter

// Op is a single classic BPF instruction in the kernel's binary layout: a
// 16-bit opcode, two 8-bit jump offsets for the true/false branches of a
// conditional, and a 32-bit immediate. A contiguous []Op is byte-identical
// to the instruction array the kernel parses, so a Program's backing slice
// can be handed to the attach call without translation.
type Op struct {
	Code uint16
	Jt   uint8
	Jf   uint8
	K    uint32
}

// NewOp returns the instruction (code, jt, jf, k).
func NewOp(code uint16, jt, jf uint8, k uint32) Op {
	return Op{Code: code, Jt: jt, Jf: jf, K: k}
}
