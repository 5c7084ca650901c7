package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/latticego/internal/builder"
	"github.com/vk/latticego/internal/config"
)

type staticLoader struct {
	model *config.Model
	err   error
}

func (s *staticLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	return s.model, s.err
}

func fodoModel() *config.Model {
	return &config.Model{
		Elements: []*config.ElementDef{
			{Category: "drift", Name: "d1", Params: []builder.Param{
				builder.P("l", builder.Number(1.0)),
			}},
			{Category: "quadrupole", Name: "qf", Params: []builder.Param{
				builder.P("l", builder.Number(0.2)),
				builder.P("k1", builder.Number(0.5)),
			}},
		},
	}
}

func TestAppRun(t *testing.T) {
	t.Run("writes the rendered machine", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "machine.gmad")
		cfg, err := NewConfig(Config{LatticePath: "unused", OutputPath: out, LogLevel: "error"})
		require.NoError(t, err)

		var logs bytes.Buffer
		a := NewApp(&logs, cfg, &staticLoader{model: fodoModel()})
		require.NoError(t, a.Run(context.Background()))

		raw, err := os.ReadFile(out)
		require.NoError(t, err)
		want := "d1: drift, l=1;\n" +
			"qf: quadrupole, l=0.2, k1=0.5;\n" +
			"lattice: line=(d1, qf);\n" +
			"use, lattice;"
		assert.Equal(t, want, string(raw))
	})

	t.Run("applies a yaml beam configuration", func(t *testing.T) {
		dir := t.TempDir()
		beamPath := filepath.Join(dir, "beam.yaml")
		require.NoError(t, os.WriteFile(beamPath, []byte(`
particle: proton
energy:
  value: 3.5
  unit: TeV
distribution: gauss
settings:
  sigmaX:
    value: 1.0
    unit: um
`), 0o644))
		out := filepath.Join(dir, "machine.gmad")
		cfg, err := NewConfig(Config{
			LatticePath: "unused",
			BeamPath:    beamPath,
			OutputPath:  out,
			LogLevel:    "error",
		})
		require.NoError(t, err)

		var logs bytes.Buffer
		a := NewApp(&logs, cfg, &staticLoader{model: fodoModel()})
		require.NoError(t, a.Run(context.Background()))

		raw, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `beam, distrType="gauss", energy=3.5*TeV, particle="proton", sigmaX=1*um;`)
	})

	t.Run("loader errors are reported", func(t *testing.T) {
		cfg, err := NewConfig(Config{LatticePath: "unused", LogLevel: "error"})
		require.NoError(t, err)

		var logs bytes.Buffer
		a := NewApp(&logs, cfg, &staticLoader{err: errors.New("boom")})
		err = a.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("missing beam file fails", func(t *testing.T) {
		cfg, err := NewConfig(Config{
			LatticePath: "unused",
			BeamPath:    filepath.Join(t.TempDir(), "nope.yaml"),
			OutputPath:  filepath.Join(t.TempDir(), "machine.gmad"),
			LogLevel:    "error",
		})
		require.NoError(t, err)

		var logs bytes.Buffer
		a := NewApp(&logs, cfg, &staticLoader{model: fodoModel()})
		assert.Error(t, a.Run(context.Background()))
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("lattice path is required", func(t *testing.T) {
		_, err := NewConfig(Config{})
		assert.Error(t, err)
	})

	t.Run("output path defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{LatticePath: "lattice.hcl"})
		require.NoError(t, err)
		assert.Equal(t, "machine.gmad", cfg.OutputPath)
	})
}
