// Package beam builds the initial-condition record consumed by the
// simulation engine's beam statement. A beam carries a flat key/value
// parameter set plus a distribution variant tag; each variant exposes only
// its applicable fields, checked through Supports.
package beam

import (
	"fmt"

	"github.com/vk/latticego/internal/builder"
	"github.com/vk/latticego/internal/gmadio"
)

// particles is the set of particle species the engine understands.
var particles = map[string]bool{
	"e-":         true,
	"e+":         true,
	"proton":     true,
	"antiproton": true,
	"gamma":      true,
	"mu-":        true,
	"mu+":        true,
	"neutron":    true,
	"pi-":        true,
	"pi+":        true,
}

// Beam is the beam-parameter record: an ordered key/value store with a
// distribution variant controlling which optional fields apply.
type Beam struct {
	builder.Record
	distr  string
	fields map[string]bool
}

// New constructs the default beam: a reference distribution of 1 GeV
// electrons.
func New() *Beam {
	b := &Beam{
		Record: *builder.NewRecord(),
		distr:  "reference",
		fields: make(map[string]bool),
	}
	b.Set("distrType", builder.Str("reference"))
	b.Set("energy", builder.UnitsOf(1.0, "GeV"))
	b.Set("particle", builder.Str("e-"))
	return b
}

// DistrType returns the active distribution tag.
func (b *Beam) DistrType() string { return b.distr }

// Supports reports whether the active distribution variant exposes the named
// field.
func (b *Beam) Supports(field string) bool { return b.fields[field] }

// SetParticleType sets the particle species.
func (b *Beam) SetParticleType(particle string) error {
	if !particles[particle] {
		return fmt.Errorf("%w: unknown particle type %q", builder.ErrValue, particle)
	}
	b.Set("particle", builder.Str(particle))
	return nil
}

// SetDistributionType selects the distribution variant, replacing the
// applicable field set with the variant's own.
func (b *Beam) SetDistributionType(distr string) error {
	fields, err := distributionFieldSet(distr)
	if err != nil {
		return err
	}
	b.distr = distr
	b.fields = fields
	b.Set("distrType", builder.Str(distr))
	return nil
}

// SetEnergy sets the total beam energy. An empty unit defaults to GeV.
func (b *Beam) SetEnergy(v float64, unit string) {
	if unit == "" {
		unit = "GeV"
	}
	b.Set("energy", builder.UnitsOf(v, unit))
}

// setScalar stores a value under key, unit-tagged when a unit is given.
func (b *Beam) setScalar(key string, v float64, unit string) {
	if unit == "" {
		b.Set(key, builder.Number(v))
	} else {
		b.Set(key, builder.UnitsOf(v, unit))
	}
}

// Centroid and timing setters, applicable to every distribution.

func (b *Beam) SetX0(v float64, unit string) { b.setScalar("X0", v, unit) }
func (b *Beam) SetY0(v float64, unit string) { b.setScalar("Y0", v, unit) }
func (b *Beam) SetZ0(v float64, unit string) { b.setScalar("Z0", v, unit) }
func (b *Beam) SetXP0(v float64)             { b.setScalar("Xp0", v, "") }
func (b *Beam) SetYP0(v float64)             { b.setScalar("Yp0", v, "") }
func (b *Beam) SetZP0(v float64)             { b.setScalar("Zp0", v, "") }
func (b *Beam) SetS0(v float64, unit string) { b.setScalar("S0", v, unit) }
func (b *Beam) SetT0(v float64, unit string) { b.setScalar("T0", v, unit) }

// SetE0 sets the central energy of the distribution. An empty unit defaults
// to GeV.
func (b *Beam) SetE0(v float64, unit string) {
	if unit == "" {
		unit = "GeV"
	}
	b.Set("E0", builder.UnitsOf(v, unit))
}

// SetOffsetSampleMean toggles recentring of the sampled distribution on its
// nominal mean.
func (b *Beam) SetOffsetSampleMean(on bool) {
	b.Set("offsetSampleMean", builder.Bool(on))
}

// SetDistrFileLoop sets how many times a distribution file is replayed.
func (b *Beam) SetDistrFileLoop(n int) {
	b.Set("distrFileLoop", builder.Int(n))
}

// checked stores a value under key after verifying the active variant
// exposes the field.
func (b *Beam) checked(field, key string, value builder.Value) error {
	if !b.Supports(field) {
		return fmt.Errorf("%w: field %q is not applicable to the %q distribution", builder.ErrValue, field, b.distr)
	}
	b.Set(key, value)
	return nil
}

func (b *Beam) checkedScalar(field, key string, v float64, unit string) error {
	if unit == "" {
		return b.checked(field, key, builder.Number(v))
	}
	return b.checked(field, key, builder.UnitsOf(v, unit))
}

// Render produces the beam statement: "beam, k1=v1, ...;".
func (b *Beam) Render() string {
	return "beam, " + b.RenderParams() + ";"
}

// WriteToFile writes the rendered beam statement to path, gzip-compressed
// when the path carries a compressed-file suffix.
func (b *Beam) WriteToFile(path string) error {
	return gmadio.Write(path, b.Render())
}
