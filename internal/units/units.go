// Package units evaluates unit-tagged quantities into canonical SI lengths
// and formats them back into the value*unit text used by the GMAD grammar.
package units

import (
	"fmt"
	"strconv"
)

// Quantity is a numeric value with an optional unit tag. An empty Unit means
// the value is already in canonical units (metres for lengths).
type Quantity struct {
	Value float64
	Unit  string
}

// Metres wraps a bare number already expressed in metres.
func Metres(v float64) Quantity {
	return Quantity{Value: v}
}

// lengthFactors maps a length unit name to its scale factor relative to one
// metre.
var lengthFactors = map[string]float64{
	"m":  1.0,
	"cm": 1e-2,
	"mm": 1e-3,
	"um": 1e-6,
	"nm": 1e-9,
	"km": 1e3,
}

// Length converts a quantity into metres. A quantity without a unit is taken
// to be in metres already. An unrecognised unit is an error.
func Length(q Quantity) (float64, error) {
	if q.Unit == "" {
		return q.Value, nil
	}
	factor, ok := lengthFactors[q.Unit]
	if !ok {
		return 0, fmt.Errorf("unrecognised length unit %q", q.Unit)
	}
	return q.Value * factor, nil
}

// Format renders a value with its unit as "value*unit". Without a unit the
// bare numeric text is returned.
func Format(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if unit == "" {
		return s
	}
	return s + "*" + unit
}
