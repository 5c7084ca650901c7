package builder

import (
	"fmt"
)

// lengthTolerance is the absolute tolerance applied when checking that a
// split partition sums to the element length.
const lengthTolerance = 1e-9

// scaleByLength lists the parameters whose value is proportional to element
// length and must be scaled when an element is subdivided.
var scaleByLength = []string{"angle", "kick", "hkick", "vkick"}

// Entry and exit edge parameters of bending magnets. When a bend is
// subdivided, entry parameters belong to the first part only and exit
// parameters to the last part only; duplicating them would double-count the
// fringe fields.
var (
	bendEntryParams = []string{"e1", "fint", "h1"}
	bendExitParams  = []string{"e2", "fintx", "h2"}
)

// Element is one physical component of a beamline: a parameter record tagged
// with a category and a name unique within the machine that owns it.
type Element struct {
	Record
	Name     string
	Category string
}

// NewElement constructs an element of an arbitrary category with ordered
// parameters.
func NewElement(name, category string, params ...Param) *Element {
	e := &Element{
		Record:   *NewRecord(params...),
		Name:     name,
		Category: category,
	}
	return e
}

// FromCategory constructs an element of the given category, registering the
// category first if the registry does not know it yet.
func FromCategory(reg *CategoryRegistry, category, name string, params ...Param) *Element {
	if !reg.Known(category) {
		reg.Register(category)
	}
	return NewElement(name, category, params...)
}

// Length returns the element length in metres, derived from the "l"
// parameter. Elements without a length parameter have length zero.
func (e *Element) Length() float64 {
	v, ok := e.Get("l")
	if !ok || !v.IsNumeric() {
		return 0
	}
	if v.Kind() == KindUnits {
		m, err := lengthInMetres(v)
		if err != nil {
			return 0
		}
		return m
	}
	return v.Float()
}

// validateLength checks that a unit-tagged "l" parameter carries a
// recognised length unit, so a typo'd unit surfaces instead of silently
// contributing length zero to the machine's bookkeeping.
func (e *Element) validateLength() error {
	v, ok := e.Get("l")
	if !ok || v.Kind() != KindUnits {
		return nil
	}
	if _, err := lengthInMetres(v); err != nil {
		return fmt.Errorf("element %q: %w", e.Name, err)
	}
	return nil
}

// splittable reports whether the element supports the split operation.
func (e *Element) splittable() bool {
	return e.Has("l") && lengthBearing[e.Category]
}

// isBend reports whether the element is a bending magnet with edge structure.
func (e *Element) isBend() bool {
	return e.Category == "sbend" || e.Category == "rbend"
}

// Render produces the element's grammar statement: "name: category, k=v, ...;".
func (e *Element) Render() string {
	return renderStatement(e.Name, e.Category, &e.Record)
}

// Split subdivides the element into len(lengths) parts whose lengths are
// given by the partition. The partition entries must be positive and sum to
// the element length within lengthTolerance. Parts are named
// "{name}_split_{i}" and are independent copies of the parameter store with
// "l" set to the sub-length.
//
// Length-proportional parameters are scaled by subLength/total on every
// part. On bending magnets the entry edge parameters survive only on the
// first part and the exit edge parameters only on the last, while the bend
// angle is distributed proportionally so the part angles sum to the original
// angle.
func (e *Element) Split(lengths []float64) ([]*Element, error) {
	if !e.splittable() {
		return nil, fmt.Errorf("%w: category %q does not support splitting", ErrType, e.Category)
	}
	if len(lengths) == 0 {
		return nil, fmt.Errorf("%w: empty split partition", ErrValue)
	}
	total := e.Length()
	sum := 0.0
	for _, l := range lengths {
		if l <= 0 {
			return nil, fmt.Errorf("%w: split lengths must be positive, got %v", ErrValue, l)
		}
		sum += l
	}
	if diff := sum - total; diff > lengthTolerance || diff < -lengthTolerance {
		return nil, fmt.Errorf("%w: split lengths sum to %v, element length is %v", ErrValue, sum, total)
	}

	bend := e.isBend()
	parts := make([]*Element, len(lengths))
	for i, sub := range lengths {
		part := &Element{
			Record:   *e.Record.Clone(),
			Name:     fmt.Sprintf("%s_split_%d", e.Name, i),
			Category: e.Category,
		}
		part.Set("l", Number(sub))
		for _, key := range scaleByLength {
			v, ok := e.Get(key)
			if !ok || !v.IsNumeric() {
				continue
			}
			scaled := v.Float() * sub / total
			if v.Kind() == KindUnits {
				part.Set(key, UnitsOf(scaled, v.Unit()))
			} else {
				part.Set(key, Number(scaled))
			}
		}
		if bend {
			if i != 0 {
				for _, key := range bendEntryParams {
					part.Delete(key)
				}
			}
			if i != len(lengths)-1 {
				for _, key := range bendExitParams {
					part.Delete(key)
				}
			}
		}
		parts[i] = part
	}
	return parts, nil
}

// Divide splits the element into n equal-length parts.
func (e *Element) Divide(n int) ([]*Element, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: divisor must be a positive integer, got %d", ErrType, n)
	}
	lengths := make([]float64, n)
	sub := e.Length() / float64(n)
	for i := range lengths {
		lengths[i] = sub
	}
	return e.Split(lengths)
}
