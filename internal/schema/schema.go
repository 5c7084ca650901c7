// Package schema holds the HCL-specific block structures a lattice
// description file decodes into. Translation into the format-agnostic config
// model happens in the loader.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ElementBlock is an `element "category" "name" { ... }` block. The block
// body carries the element parameters as free-form attributes.
type ElementBlock struct {
	Category string   `hcl:"category,label"`
	Name     string   `hcl:"name,label"`
	Body     hcl.Body `hcl:",remain"`
}

// SamplerBlock is a `sampler "range" { ... }` block; the body holds optional
// sampler options. The range label may also be "all", "first" or "last".
type SamplerBlock struct {
	Range string   `hcl:"range,label"`
	Body  hcl.Body `hcl:",remain"`
}

// MaterialBlock is a `material "name" { ... }` block defining a matdef
// object.
type MaterialBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// BeamBlock is the `beam { ... }` block with free-form beam parameters.
type BeamBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// LatticeConfig is the top-level structure of a lattice description file.
type LatticeConfig struct {
	Elements  []*ElementBlock  `hcl:"element,block"`
	Samplers  []*SamplerBlock  `hcl:"sampler,block"`
	Materials []*MaterialBlock `hcl:"material,block"`
	Beam      *BeamBlock       `hcl:"beam,block"`
	Body      hcl.Body         `hcl:",remain"`
}
