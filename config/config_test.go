package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcassar-diss/sockfilter/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "filter.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "accept all", body: "program = \"accept-all\"\n"},
		{name: "drop all", body: "program = \"drop-all\"\n"},
		{name: "port", body: "program = \"port\"\nport = 53\n"},
		{name: "port missing", body: "program = \"port\"\n", err: config.ErrMissingPort},
		{name: "unknown kind", body: "program = \"nftables\"\n", err: config.ErrUnknownProgram},
		{name: "raw without ops", body: "program = \"raw\"\n", err: config.ErrEmptyProgram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(writeConfig(t, tt.body))

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}

func TestLoadDefaultsSnapLen(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "program = \"accept-all\"\n"))
	require.NoError(t, err)
	require.Equal(t, uint32(config.DefaultSnapLen), cfg.SnapLen)
}

func TestProgramFromRawConfig(t *testing.T) {
	body := `program = "raw"

[[op]]
code = 0x06
k = 0x40000
`

	cfg, err := config.Load(writeConfig(t, body))
	require.NoError(t, err)

	prog, err := cfg.Program()
	require.NoError(t, err)
	require.NotNil(t, prog)
}
