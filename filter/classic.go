package filter

import "golang.org/x/net/bpf"

// opRetK is BPF_RET | BPF_K: return the constant operand.
const opRetK = 0x06

// AcceptAll returns the single-instruction program that accepts every
// packet, delivering at most snapLen bytes of each to the socket.
func AcceptAll(snapLen uint32) *Program {
	return MakeProgram(1, NewOp(opRetK, 0, 0, snapLen))
}

// DropAll returns the single-instruction program that rejects every packet.
func DropAll() *Program {
	return MakeProgram(1, NewOp(opRetK, 0, 0, 0))
}

// PortFilter returns a program for packet sockets that accepts IPv4 TCP and
// UDP traffic with the given source or destination port and drops everything
// else. Offsets assume the filter sees the Ethernet frame, as on an
// AF_PACKET socket.
func PortFilter(port uint16) (*Program, error) {
	return FromInstructions([]bpf.Instruction{
		// eth.type
		bpf.LoadAbsolute{Off: 12, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpNotEqual, Val: 0x0800, SkipTrue: 9},
		// ip.proto: UDP or TCP, otherwise drop
		bpf.LoadAbsolute{Off: 23, Size: 1},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0x11, SkipTrue: 1},
		bpf.JumpIf{Cond: bpf.JumpNotEqual, Val: 0x06, SkipTrue: 6},
		// X = IP header length, then compare src and dst ports
		bpf.LoadMemShift{Off: 14},
		bpf.LoadIndirect{Off: 14, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(port), SkipTrue: 2},
		bpf.LoadIndirect{Off: 16, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpNotEqual, Val: uint32(port), SkipTrue: 1},
		bpf.RetConstant{Val: 0x40000},
		bpf.RetConstant{Val: 0},
	})
}
