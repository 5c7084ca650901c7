package builder

import "strings"

// Option is a single key/value entry of a sampler option set. Options are
// ordered so that rendering stays deterministic.
type Option struct {
	Key   string
	Value string
}

// Sampler is a named observation point attached to a sequence position. The
// special range "all" samples every element.
type Sampler struct {
	Range   string
	Options []Option
}

// Render produces the sampler statement, e.g. "sample, range=d1;" or
// "sample, all;".
func (s *Sampler) Render() string {
	if s.Range == "all" {
		return "sample, all;"
	}
	var b strings.Builder
	b.WriteString("sample, range=")
	b.WriteString(s.Range)
	for _, opt := range s.Options {
		b.WriteString(", ")
		b.WriteString(opt.Key)
		b.WriteString("=")
		b.WriteString(opt.Value)
	}
	b.WriteString(";")
	return b.String()
}

// Object is a named non-sequence GMAD object: materials, apertures, regions,
// placements and the like. Objects accumulate on a machine independently of
// the element sequence.
type Object struct {
	Record
	Name string
	Type string
}

// NewObject constructs an object of an arbitrary GMAD object type.
func NewObject(name, objecttype string, params ...Param) *Object {
	return &Object{Record: *NewRecord(params...), Name: name, Type: objecttype}
}

// Render produces the object's grammar statement: "name: objecttype, k=v, ...;".
func (o *Object) Render() string {
	return renderStatement(o.Name, o.Type, &o.Record)
}

// Aperture constructs an aperture definition.
func Aperture(name string, params ...Param) *Object { return NewObject(name, "aperture", params...) }

// Atom constructs an atom definition for compound materials.
func Atom(name string, params ...Param) *Object { return NewObject(name, "atom", params...) }

// BLM constructs a beam loss monitor placement.
func BLM(name string, params ...Param) *Object { return NewObject(name, "blm", params...) }

// CavityModel constructs a cavity geometry model.
func CavityModel(name string, params ...Param) *Object {
	return NewObject(name, "cavitymodel", params...)
}

// Crystal constructs a crystal definition for channelling collimation.
func Crystal(name string, params ...Param) *Object { return NewObject(name, "crystal", params...) }

// Field constructs a field map definition.
func Field(name string, params ...Param) *Object { return NewObject(name, "field", params...) }

// Material constructs a material definition.
func Material(name string, params ...Param) *Object { return NewObject(name, "matdef", params...) }

// Modulator constructs a time-dependent field modulator.
func Modulator(name string, params ...Param) *Object { return NewObject(name, "modulator", params...) }

// NewColour constructs a custom visualisation colour.
func NewColour(name string, params ...Param) *Object { return NewObject(name, "newcolour", params...) }

// Placement constructs a geometry placement.
func Placement(name string, params ...Param) *Object { return NewObject(name, "placement", params...) }

// Query constructs a field query definition.
func Query(name string, params ...Param) *Object { return NewObject(name, "query", params...) }

// Region constructs a region with its own production cuts.
func Region(name string, params ...Param) *Object { return NewObject(name, "region", params...) }

// SamplerPlacement constructs a sampler placed in free space rather than
// attached to a sequence element.
func SamplerPlacement(name string, params ...Param) *Object {
	return NewObject(name, "samplerplacement", params...)
}

// Scorer constructs a scorer definition.
func Scorer(name string, params ...Param) *Object { return NewObject(name, "scorer", params...) }

// ScorerMesh constructs a scoring mesh.
func ScorerMesh(name string, params ...Param) *Object { return NewObject(name, "scorermesh", params...) }

// Tunnel constructs a tunnel geometry definition.
func Tunnel(name string, params ...Param) *Object { return NewObject(name, "tunnel", params...) }

// XSecBias constructs a cross-section biasing definition.
func XSecBias(name string, params ...Param) *Object { return NewObject(name, "xsecBias", params...) }

// Modifier re-opens an already defined element and overrides a subset of its
// parameters, rendering as "name: k=v, ...;".
type Modifier struct {
	Record
	Name string
}

// NewModifier constructs a modifier for the named element.
func NewModifier(name string, params ...Param) *Modifier {
	return &Modifier{Record: *NewRecord(params...), Name: name}
}

// Render produces the modifier statement.
func (m *Modifier) Render() string {
	return m.Name + ": " + m.RenderParams() + ";"
}
