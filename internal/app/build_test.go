package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/latticego/internal/builder"
	"github.com/vk/latticego/internal/config"
)

func TestBuildMachine(t *testing.T) {
	t.Run("elements in declaration order", func(t *testing.T) {
		model := &config.Model{
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
		m, err := BuildMachine(model)
		require.NoError(t, err)
		assert.Equal(t, []string{"d1", "qf"}, m.Sequence)
		assert.InDelta(t, 1.2, m.Length(), 1e-12)
	})

	t.Run("unknown categories are registered", func(t *testing.T) {
		model := &config.Model{
			Elements: []*config.ElementDef{
				{Category: "undulator2", Name: "u1", Params: []builder.Param{
					builder.P("l", builder.Number(1.0)),
				}},
			},
		}
		m, err := BuildMachine(model)
		require.NoError(t, err)
		assert.True(t, m.Categories.Known("undulator2"))
	})

	t.Run("unrecognised length unit is rejected", func(t *testing.T) {
		model := &config.Model{
			Elements: []*config.ElementDef{
				{Category: "drift", Name: "d1", Params: []builder.Param{
					builder.P("l", builder.UnitsOf(30, "xyz")),
				}},
			},
		}
		_, err := BuildMachine(model)
		assert.ErrorIs(t, err, builder.ErrValue)
	})

	t.Run("materials and samplers", func(t *testing.T) {
		model := &config.Model{
			Elements: []*config.ElementDef{
				{Category: "drift", Name: "d1", Params: []builder.Param{
					builder.P("l", builder.Number(1.0)),
				}},
			},
			Materials: []*config.MaterialDef{
				{Name: "steel", Params: []builder.Param{
					builder.P("density", builder.UnitsOf(7.87, "g/cm3")),
				}},
			},
			Samplers: []*config.SamplerDef{
				{Range: "all"},
				{Range: "d1", Options: []builder.Option{{Key: "partID", Value: "{11}"}}},
			},
		}
		m, err := BuildMachine(model)
		require.NoError(t, err)
		require.Len(t, m.Materials, 1)
		require.Len(t, m.Samplers, 2)
		assert.Equal(t, "sample, all;", m.Samplers[0].Render())
		assert.Equal(t, "sample, range=d1, partID={11};", m.Samplers[1].Render())
	})

	t.Run("sampler referencing a missing element fails", func(t *testing.T) {
		model := &config.Model{
			Samplers: []*config.SamplerDef{{Range: "ghost"}},
		}
		_, err := BuildMachine(model)
		assert.ErrorIs(t, err, builder.ErrValue)
	})

	t.Run("beam definition is applied with capability checks", func(t *testing.T) {
		model := &config.Model{
			Elements: []*config.ElementDef{
				{Category: "drift", Name: "d1", Params: []builder.Param{
					builder.P("l", builder.Number(1.0)),
				}},
			},
			Beam: &config.BeamDef{
				Particle:     "proton",
				Distribution: "gauss",
				Energy:       &config.EnergySpec{Value: 3.5, Unit: "TeV"},
				Settings: []builder.Param{
					builder.P("sigmaX", builder.UnitsOf(1.0, "um")),
					builder.P("sigmaXp", builder.Number(1e-5)),
				},
			},
		}
		m, err := BuildMachine(model)
		require.NoError(t, err)
		require.NotNil(t, m.Beam())
		out := m.Beam().Render()
		assert.Contains(t, out, `distrType="gauss"`)
		assert.Contains(t, out, `particle="proton"`)
		assert.Contains(t, out, "energy=3.5*TeV")
		assert.Contains(t, out, "sigmaX=1*um")
	})

	t.Run("beam setting outside the distribution fails", func(t *testing.T) {
		model := &config.Model{
			Beam: &config.BeamDef{
				Distribution: "gauss",
				Settings: []builder.Param{
					builder.P("betx", builder.UnitsOf(10, "m")),
				},
			},
		}
		_, err := BuildMachine(model)
		assert.ErrorIs(t, err, builder.ErrValue)
	})

	t.Run("empty model builds an empty machine", func(t *testing.T) {
		m, err := BuildMachine(&config.Model{})
		require.NoError(t, err)
		assert.Empty(t, m.Sequence)
	})
}
