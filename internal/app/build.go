package app

import (
	"fmt"
	"strings"

	"github.com/vk/latticego/internal/beam"
	"github.com/vk/latticego/internal/builder"
	"github.com/vk/latticego/internal/config"
)

// BuildMachine constructs a machine from a loaded lattice model. Element
// categories unknown to the machine's registry are registered on the fly so
// description files may introduce engine extensions.
func BuildMachine(model *config.Model) (*builder.Machine, error) {
	m := builder.NewMachine()

	for _, def := range model.Elements {
		e := builder.FromCategory(m.Categories, def.Category, def.Name, def.Params...)
		if err := m.Append(e); err != nil {
			return nil, fmt.Errorf("appending element %q: %w", def.Name, err)
		}
	}

	for _, def := range model.Materials {
		if err := m.AddMaterial(builder.Material(def.Name, def.Params...)); err != nil {
			return nil, fmt.Errorf("adding material %q: %w", def.Name, err)
		}
	}

	for _, def := range model.Samplers {
		if len(def.Options) == 0 {
			if err := m.AddSampler(def.Range); err != nil {
				return nil, err
			}
			continue
		}
		options := make(map[string]string, len(def.Options))
		for _, opt := range def.Options {
			options[opt.Key] = opt.Value
		}
		if err := m.AddSampler(map[string]map[string]string{def.Range: options}); err != nil {
			return nil, err
		}
	}

	if model.Beam != nil {
		b, err := buildBeam(model.Beam)
		if err != nil {
			return nil, err
		}
		if err := m.AddBeam(b); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// buildBeam applies a beam definition through the typed beam setters so the
// distribution's capability checks stay in force.
func buildBeam(def *config.BeamDef) (*beam.Beam, error) {
	b := beam.New()
	if def.Distribution != "" {
		if err := b.SetDistributionType(def.Distribution); err != nil {
			return nil, err
		}
	}
	if def.Particle != "" {
		if err := b.SetParticleType(def.Particle); err != nil {
			return nil, err
		}
	}
	if def.Energy != nil {
		b.SetEnergy(def.Energy.Value, def.Energy.Unit)
	}
	for _, p := range def.Settings {
		switch p.Value.Kind() {
		case builder.KindNumber, builder.KindInt:
			if err := b.SetField(p.Key, p.Value.Float(), ""); err != nil {
				return nil, err
			}
		case builder.KindUnits:
			if err := b.SetField(p.Key, p.Value.Float(), p.Value.Unit()); err != nil {
				return nil, err
			}
		case builder.KindString:
			if err := b.SetFieldText(p.Key, strings.Trim(p.Value.Text(), `"`)); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("beam setting %q has an unsupported value kind", p.Key)
		}
	}
	return b, nil
}
