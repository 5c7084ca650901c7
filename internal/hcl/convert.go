package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/latticego/internal/builder"
)

// ctyToValue converts an evaluated HCL value into the builder's parameter
// value union. A two-element tuple of [number, string] becomes a unit-tagged
// value; any other tuple or list becomes an ordered list.
func ctyToValue(v cty.Value) (builder.Value, error) {
	if v.IsNull() {
		return builder.Value{}, fmt.Errorf("null values are not allowed")
	}
	t := v.Type()
	switch {
	case t == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return builder.Number(f), nil
	case t == cty.String:
		return builder.Str(v.AsString()), nil
	case t == cty.Bool:
		return builder.Bool(v.True()), nil
	case t.IsTupleType() || t.IsListType():
		items := v.AsValueSlice()
		if unit, ok := asUnitPair(items); ok {
			return unit, nil
		}
		converted := make([]builder.Value, len(items))
		for i, item := range items {
			cv, err := ctyToValue(item)
			if err != nil {
				return builder.Value{}, err
			}
			converted[i] = cv
		}
		return builder.List(converted...), nil
	default:
		return builder.Value{}, fmt.Errorf("unsupported value type %s", t.FriendlyName())
	}
}

// asUnitPair recognises a [number, string] tuple as a unit-tagged value.
func asUnitPair(items []cty.Value) (builder.Value, bool) {
	if len(items) != 2 {
		return builder.Value{}, false
	}
	if items[0].IsNull() || items[1].IsNull() {
		return builder.Value{}, false
	}
	if items[0].Type() != cty.Number || items[1].Type() != cty.String {
		return builder.Value{}, false
	}
	f, _ := items[0].AsBigFloat().Float64()
	return builder.UnitsOf(f, items[1].AsString()), true
}

// ctyToText converts a value into its raw textual form, used where the
// grammar expects unquoted identifiers (sampler options, beam selectors).
func ctyToText(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("null values are not allowed")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return builder.Number(f).Render(), nil
	case cty.Bool:
		return builder.Bool(v.True()).Render(), nil
	default:
		return "", fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
}
