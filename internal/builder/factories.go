package builder

import (
	"fmt"

	"github.com/vk/latticego/internal/units"
)

// lengthInMetres converts a unit-tagged value into metres.
func lengthInMetres(v Value) (float64, error) {
	m, err := units.Length(units.Quantity{Value: v.Float(), Unit: v.Unit()})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValue, err)
	}
	return m, nil
}

// withLength prefixes params with the "l" length parameter.
func withLength(l float64, params []Param) []Param {
	return append([]Param{P("l", Number(l))}, params...)
}

// Drift constructs a field-free straight section of length l metres.
func Drift(name string, l float64, params ...Param) *Element {
	return NewElement(name, "drift", withLength(l, params)...)
}

// Marker constructs a zero-length logical marker.
func Marker(name string) *Element {
	return NewElement(name, "marker")
}

// Quadrupole constructs a quadrupole of length l and normalised strength k1.
func Quadrupole(name string, l, k1 float64, params ...Param) *Element {
	return NewElement(name, "quadrupole",
		append(withLength(l, nil), append([]Param{P("k1", Number(k1))}, params...)...)...)
}

// Sextupole constructs a sextupole of length l and strength k2.
func Sextupole(name string, l, k2 float64, params ...Param) *Element {
	return NewElement(name, "sextupole",
		append(withLength(l, nil), append([]Param{P("k2", Number(k2))}, params...)...)...)
}

// Octupole constructs an octupole of length l and strength k3.
func Octupole(name string, l, k3 float64, params ...Param) *Element {
	return NewElement(name, "octupole",
		append(withLength(l, nil), append([]Param{P("k3", Number(k3))}, params...)...)...)
}

// SBend constructs a sector bending magnet of length l. The bend angle, edge
// angles and fringe field integrals are passed as ordinary parameters.
func SBend(name string, l float64, params ...Param) *Element {
	return NewElement(name, "sbend", withLength(l, params)...)
}

// RBend constructs a rectangular bending magnet of length l.
func RBend(name string, l float64, params ...Param) *Element {
	return NewElement(name, "rbend", withLength(l, params)...)
}

// HKicker constructs a horizontal kicker of length l.
func HKicker(name string, l float64, params ...Param) *Element {
	return NewElement(name, "hkicker", withLength(l, params)...)
}

// VKicker constructs a vertical kicker of length l.
func VKicker(name string, l float64, params ...Param) *Element {
	return NewElement(name, "vkicker", withLength(l, params)...)
}

// Solenoid constructs a solenoid of length l and strength ks.
func Solenoid(name string, l, ks float64, params ...Param) *Element {
	return NewElement(name, "solenoid",
		append(withLength(l, nil), append([]Param{P("ks", Number(ks))}, params...)...)...)
}

// RFCavity constructs an RF cavity of length l with gradient in MV/m.
func RFCavity(name string, l, gradient float64, params ...Param) *Element {
	return NewElement(name, "rfcavity",
		append(withLength(l, nil), append([]Param{P("gradient", Number(gradient))}, params...)...)...)
}

// RCol constructs a rectangular collimator of length l with half apertures
// xsize and ysize.
func RCol(name string, l, xsize, ysize float64, params ...Param) *Element {
	return NewElement(name, "rcol",
		append(withLength(l, nil), append([]Param{
			P("xsize", Number(xsize)),
			P("ysize", Number(ysize)),
		}, params...)...)...)
}

// ECol constructs an elliptical collimator of length l with half apertures
// xsize and ysize.
func ECol(name string, l, xsize, ysize float64, params ...Param) *Element {
	return NewElement(name, "ecol",
		append(withLength(l, nil), append([]Param{
			P("xsize", Number(xsize)),
			P("ysize", Number(ysize)),
		}, params...)...)...)
}

// Gap constructs a gap of length l: a section with no physical volume at all.
func Gap(name string, l float64, params ...Param) *Element {
	return NewElement(name, "gap", withLength(l, params)...)
}
