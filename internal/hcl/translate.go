package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/latticego/internal/builder"
	"github.com/vk/latticego/internal/config"
	"github.com/vk/latticego/internal/schema"
)

// translate appends the decoded blocks of one file to the model.
func (l *Loader) translate(cfg *schema.LatticeConfig, model *config.Model) error {
	for _, eb := range cfg.Elements {
		params, err := bodyParams(eb.Body)
		if err != nil {
			return fmt.Errorf("element %q: %w", eb.Name, err)
		}
		model.Elements = append(model.Elements, &config.ElementDef{
			Category: eb.Category,
			Name:     eb.Name,
			Params:   params,
		})
	}
	for _, sb := range cfg.Samplers {
		options, err := bodyOptions(sb.Body)
		if err != nil {
			return fmt.Errorf("sampler %q: %w", sb.Range, err)
		}
		model.Samplers = append(model.Samplers, &config.SamplerDef{
			Range:   sb.Range,
			Options: options,
		})
	}
	for _, mb := range cfg.Materials {
		params, err := bodyParams(mb.Body)
		if err != nil {
			return fmt.Errorf("material %q: %w", mb.Name, err)
		}
		model.Materials = append(model.Materials, &config.MaterialDef{
			Name:   mb.Name,
			Params: params,
		})
	}
	if cfg.Beam != nil {
		beam, err := translateBeam(cfg.Beam)
		if err != nil {
			return err
		}
		if model.Beam != nil {
			return fmt.Errorf("duplicate beam block")
		}
		model.Beam = beam
	}
	return nil
}

// orderedAttributes returns a body's attributes sorted by their position in
// the source file, so translation order matches declaration order.
func orderedAttributes(body hcl.Body) ([]*hcl.Attribute, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})
	return ordered, nil
}

// bodyParams converts a block body's attributes into ordered builder
// parameters.
func bodyParams(body hcl.Body) ([]builder.Param, error) {
	attrs, err := orderedAttributes(body)
	if err != nil {
		return nil, err
	}
	params := make([]builder.Param, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", attr.Name, diags)
		}
		v, err := ctyToValue(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		params = append(params, builder.P(attr.Name, v))
	}
	return params, nil
}

// bodyOptions converts a sampler block body into ordered raw-text options.
func bodyOptions(body hcl.Body) ([]builder.Option, error) {
	attrs, err := orderedAttributes(body)
	if err != nil {
		return nil, err
	}
	options := make([]builder.Option, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("option %q: %w", attr.Name, diags)
		}
		text, err := ctyToText(val)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", attr.Name, err)
		}
		options = append(options, builder.Option{Key: attr.Name, Value: text})
	}
	return options, nil
}

// translateBeam splits the beam block's attributes into the well-known
// selectors and the remaining distribution-specific settings.
func translateBeam(bb *schema.BeamBlock) (*config.BeamDef, error) {
	attrs, err := orderedAttributes(bb.Body)
	if err != nil {
		return nil, err
	}
	def := &config.BeamDef{}
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("beam attribute %q: %w", attr.Name, diags)
		}
		switch attr.Name {
		case "particle":
			text, err := ctyToText(val)
			if err != nil {
				return nil, fmt.Errorf("beam particle: %w", err)
			}
			def.Particle = text
		case "distribution":
			text, err := ctyToText(val)
			if err != nil {
				return nil, fmt.Errorf("beam distribution: %w", err)
			}
			def.Distribution = text
		case "energy":
			v, err := ctyToValue(val)
			if err != nil {
				return nil, fmt.Errorf("beam energy: %w", err)
			}
			switch v.Kind() {
			case builder.KindNumber, builder.KindInt:
				def.Energy = &config.EnergySpec{Value: v.Float()}
			case builder.KindUnits:
				def.Energy = &config.EnergySpec{Value: v.Float(), Unit: v.Unit()}
			default:
				return nil, fmt.Errorf("beam energy must be a number or a [value, unit] pair")
			}
		default:
			v, err := ctyToValue(val)
			if err != nil {
				return nil, fmt.Errorf("beam attribute %q: %w", attr.Name, err)
			}
			def.Settings = append(def.Settings, builder.P(attr.Name, v))
		}
	}
	return def, nil
}
