// Package config loads filter program definitions from TOML files.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tcassar-diss/sockfilter/filter"
)

var (
	ErrUnknownProgram = errors.New("unknown program kind")
	ErrMissingPort    = errors.New("port program requires a nonzero port")
	ErrEmptyProgram   = errors.New("raw program has no instructions")
)

// DefaultSnapLen is the accept length used when a config omits snap-len.
const DefaultSnapLen = 262144

// Program kinds accepted in the `program` field.
const (
	KindAcceptAll = "accept-all"
	KindDropAll   = "drop-all"
	KindPort      = "port"
	KindRaw       = "raw"
)

// RawOp is one (code, jt, jf, k) row of a raw program definition.
type RawOp struct {
	Code uint16 `toml:"code"`
	Jt   uint8  `toml:"jt"`
	Jf   uint8  `toml:"jf"`
	K    uint32 `toml:"k"`
}

// Config describes a filter program.
type Config struct {
	SnapLen uint32  `toml:"snap-len"`
	Kind    string  `toml:"program"`
	Port    uint16  `toml:"port"`
	Ops     []RawOp `toml:"op"`
}

// Load reads and validates the filter definition at path.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if cfg.SnapLen == 0 {
		cfg.SnapLen = DefaultSnapLen
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Kind {
	case KindAcceptAll, KindDropAll:
	case KindPort:
		if c.Port == 0 {
			return ErrMissingPort
		}
	case KindRaw:
		if len(c.Ops) == 0 {
			return ErrEmptyProgram
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProgram, c.Kind)
	}

	return nil
}

// Program builds the filter program the config describes.
func (c *Config) Program() (*filter.Program, error) {
	switch c.Kind {
	case KindAcceptAll:
		return filter.AcceptAll(c.SnapLen), nil
	case KindDropAll:
		return filter.DropAll(), nil
	case KindPort:
		return filter.PortFilter(c.Port)
	case KindRaw:
		ops := make([]filter.Op, len(c.Ops))
		for i, op := range c.Ops {
			ops[i] = filter.NewOp(op.Code, op.Jt, op.Jf, op.K)
		}

		return filter.NewProgram(ops), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProgram, c.Kind)
	}
}
