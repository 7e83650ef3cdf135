//go:build linux

package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/bpf"
)

func TestAcceptAll(t *testing.T) {
	require.Equal(t, []Op{{Code: 0x06, K: 4096}}, AcceptAll(4096).ops)
}

func TestDropAll(t *testing.T) {
	require.Equal(t, []Op{{Code: 0x06}}, DropAll().ops)
}

func TestPortFilter(t *testing.T) {
	prog, err := PortFilter(53)
	require.NoError(t, err)
	require.Equal(t, 12, prog.Len())

	// every conditional jump must land inside the program
	for i, op := range prog.ops {
		if op.Code&0x07 != 0x05 {
			continue
		}

		require.Less(t, i+1+int(op.Jt), prog.Len(), "jt target of op %d", i)
		require.Less(t, i+1+int(op.Jf), prog.Len(), "jf target of op %d", i)
	}
}

func TestFromRaw(t *testing.T) {
	prog := FromRaw([]bpf.RawInstruction{
		{Op: 0x28, Jt: 1, Jf: 2, K: 12},
		{Op: 0x06, Jt: 0, Jf: 0, K: 0x40000},
	})

	require.Equal(t, []Op{
		{Code: 0x28, Jt: 1, Jf: 2, K: 12},
		{Code: 0x06, K: 0x40000},
	}, prog.ops)
}

func TestFromInstructions(t *testing.T) {
	prog, err := FromInstructions([]bpf.Instruction{
		bpf.LoadAbsolute{Off: 12, Size: 2},
		bpf.RetConstant{Val: 0x40000},
	})
	require.NoError(t, err)
	require.Equal(t, 2, prog.Len())
	require.Equal(t, uint16(0x28), prog.ops[0].Code)
}
