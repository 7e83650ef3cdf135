//go:build linux

package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcassar-diss/sockfilter/config"
)

func TestProgramLengths(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		expected int
	}{
		{
			name:     "accept all is a single return",
			cfg:      &config.Config{Kind: config.KindAcceptAll, SnapLen: 4096},
			expected: 1,
		},
		{
			name:     "drop all is a single return",
			cfg:      &config.Config{Kind: config.KindDropAll},
			expected: 1,
		},
		{
			name: "raw keeps every row",
			cfg: &config.Config{Kind: config.KindRaw, Ops: []config.RawOp{
				{Code: 0x28, K: 12},
				{Code: 0x06, K: 0x40000},
			}},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := tt.cfg.Program()
			require.NoError(t, err)
			require.Equal(t, tt.expected, prog.Len())
		})
	}
}
