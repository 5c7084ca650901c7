package config

import (
	"github.com/vk/latticego/internal/builder"
)

// Model is the unified, format-agnostic representation of a lattice
// description: the ordered element definitions, samplers, materials and the
// optional beam block.
type Model struct {
	Elements  []*ElementDef
	Samplers  []*SamplerDef
	Materials []*MaterialDef
	Beam      *BeamDef
}

// ElementDef describes one beamline element in declaration order.
type ElementDef struct {
	Category string
	Name     string
	Params   []builder.Param
}

// SamplerDef describes one sampler attachment.
type SamplerDef struct {
	Range   string
	Options []builder.Option
}

// MaterialDef describes one material definition.
type MaterialDef struct {
	Name   string
	Params []builder.Param
}

// EnergySpec is a beam energy with an optional unit.
type EnergySpec struct {
	Value float64
	Unit  string
}

// BeamDef describes the beam block: the well-known selectors plus the
// remaining distribution-specific settings in declaration order.
type BeamDef struct {
	Particle     string
	Distribution string
	Energy       *EnergySpec
	Settings     []builder.Param
}
