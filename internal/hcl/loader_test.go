package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/latticego/internal/builder"
	"github.com/vk/latticego/internal/config"
)

func writeLattice(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, paths ...string) *config.Model {
	t.Helper()
	model, err := NewLoader().Load(context.Background(), paths...)
	require.NoError(t, err)
	return model
}

func TestLoadElements(t *testing.T) {
	path := writeLattice(t, t.TempDir(), "fodo.hcl", `
element "drift" "d1" {
  l = 1.0
}

element "quadrupole" "qf" {
  l  = 0.2
  k1 = 0.5
}

element "sbend" "b1" {
  l     = 2.0
  angle = 0.3
  e1    = 0.05
}
`)
	model := load(t, path)
	require.Len(t, model.Elements, 3)

	assert.Equal(t, "drift", model.Elements[0].Category)
	assert.Equal(t, "d1", model.Elements[0].Name)

	qf := model.Elements[1]
	require.Len(t, qf.Params, 2)
	assert.Equal(t, "l", qf.Params[0].Key)
	assert.Equal(t, "k1", qf.Params[1].Key)
	assert.Equal(t, 0.5, qf.Params[1].Value.Float())

	b1 := model.Elements[2]
	keys := make([]string, len(b1.Params))
	for i, p := range b1.Params {
		keys[i] = p.Key
	}
	assert.Equal(t, []string{"l", "angle", "e1"}, keys)
}

func TestLoadValueShapes(t *testing.T) {
	path := writeLattice(t, t.TempDir(), "values.hcl", `
element "rcol" "c1" {
  l        = [30, "cm"]
  xsize    = 0.005
  material = "Cu"
  knl      = [0.1, 0.2, 0.3]
  outer    = true
}
`)
	model := load(t, path)
	require.Len(t, model.Elements, 1)
	params := model.Elements[0].Params
	require.Len(t, params, 5)

	assert.Equal(t, builder.KindUnits, params[0].Value.Kind())
	assert.Equal(t, "30*cm", params[0].Value.Render())
	assert.Equal(t, "0.005", params[1].Value.Render())
	assert.Equal(t, `"Cu"`, params[2].Value.Render())
	assert.Equal(t, builder.KindList, params[3].Value.Kind())
	assert.Equal(t, "{0.1,0.2,0.3}", params[3].Value.Render())
	assert.Equal(t, "1", params[4].Value.Render())
}

func TestLoadSamplersAndMaterials(t *testing.T) {
	path := writeLattice(t, t.TempDir(), "aux.hcl", `
sampler "all" {}

sampler "d1" {
  partID = "{11,-11}"
}

material "steel" {
  density = [7.87, "g/cm3"]
  Z       = 26
}
`)
	model := load(t, path)

	require.Len(t, model.Samplers, 2)
	assert.Equal(t, "all", model.Samplers[0].Range)
	assert.Empty(t, model.Samplers[0].Options)
	require.Len(t, model.Samplers[1].Options, 1)
	assert.Equal(t, "partID", model.Samplers[1].Options[0].Key)
	assert.Equal(t, "{11,-11}", model.Samplers[1].Options[0].Value)

	require.Len(t, model.Materials, 1)
	steel := model.Materials[0]
	assert.Equal(t, "steel", steel.Name)
	require.Len(t, steel.Params, 2)
	assert.Equal(t, "7.87*g/cm3", steel.Params[0].Value.Render())
}

func TestLoadBeam(t *testing.T) {
	t.Run("full beam block", func(t *testing.T) {
		path := writeLattice(t, t.TempDir(), "beam.hcl", `
beam {
  particle     = "proton"
  energy       = [3.5, "TeV"]
  distribution = "gauss"
  sigmaX       = [1.0, "um"]
  sigmaXp      = 1.0e-5
}
`)
		model := load(t, path)
		require.NotNil(t, model.Beam)
		assert.Equal(t, "proton", model.Beam.Particle)
		assert.Equal(t, "gauss", model.Beam.Distribution)
		require.NotNil(t, model.Beam.Energy)
		assert.Equal(t, 3.5, model.Beam.Energy.Value)
		assert.Equal(t, "TeV", model.Beam.Energy.Unit)
		require.Len(t, model.Beam.Settings, 2)
		assert.Equal(t, "sigmaX", model.Beam.Settings[0].Key)
		assert.Equal(t, "sigmaXp", model.Beam.Settings[1].Key)
	})

	t.Run("bare number energy", func(t *testing.T) {
		path := writeLattice(t, t.TempDir(), "beam.hcl", `
beam {
  energy = 1.5
}
`)
		model := load(t, path)
		require.NotNil(t, model.Beam.Energy)
		assert.Equal(t, 1.5, model.Beam.Energy.Value)
		assert.Empty(t, model.Beam.Energy.Unit)
	})

	t.Run("duplicate beam blocks rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeLattice(t, dir, "a.hcl", "beam {\n  energy = 1\n}\n")
		writeLattice(t, dir, "b.hcl", "beam {\n  energy = 2\n}\n")
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate beam block")
	})
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeLattice(t, dir, "a.hcl", "element \"drift\" \"d1\" {\n  l = 1.0\n}\n")
	writeLattice(t, dir, "b.hcl", "element \"drift\" \"d2\" {\n  l = 2.0\n}\n")
	writeLattice(t, dir, "notes.txt", "ignored")

	model := load(t, dir)
	require.Len(t, model.Elements, 2)
	assert.Equal(t, "d1", model.Elements[0].Name)
	assert.Equal(t, "d2", model.Elements[1].Name)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
		assert.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), t.TempDir())
		assert.Error(t, err)
	})

	t.Run("malformed hcl", func(t *testing.T) {
		path := writeLattice(t, t.TempDir(), "bad.hcl", "element \"drift\" {\n")
		_, err := NewLoader().Load(context.Background(), path)
		assert.Error(t, err)
	})

	t.Run("null attribute rejected", func(t *testing.T) {
		path := writeLattice(t, t.TempDir(), "null.hcl", "element \"drift\" \"d1\" {\n  l = null\n}\n")
		_, err := NewLoader().Load(context.Background(), path)
		assert.Error(t, err)
	})
}
