package builder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/latticego/internal/gmadio"
)

// BeamRecord is the contract a beam-parameter record must satisfy to be
// attached to a machine. The machine only needs membership, indexing and
// rendering; distribution-specific behaviour stays with the implementation.
type BeamRecord interface {
	Has(key string) bool
	Get(key string) (Value, bool)
	Render() string
}

// Machine is an ordered beamline: a sequence of element names, a name to
// element registry, the cumulative-length index over the sequence, plus
// samplers and auxiliary objects accumulated independently of the sequence.
//
// A machine is not safe for concurrent use; parallel construction requires
// independent instances.
type Machine struct {
	// Sequence is the ordered list of element names. The same name may
	// appear more than once.
	Sequence []string
	// Elements maps a name to its element. Lookup by name is significant,
	// insertion order is not.
	Elements map[string]*Element
	// LenInt holds one cumulative length per sequence position. It is
	// recomputed after every structural edit.
	LenInt []float64
	// Samplers is the ordered list of sampler descriptors.
	Samplers []*Sampler
	// Materials and Objects accumulate non-sequence definitions.
	Materials []*Object
	Objects   []*Object
	// Categories is the registry of known element categories.
	Categories *CategoryRegistry

	beam BeamRecord
	brho float64
}

// NewMachine constructs an empty machine with a freshly seeded category
// registry.
func NewMachine() *Machine {
	return &Machine{
		Elements:   make(map[string]*Element),
		Categories: NewCategoryRegistry(),
	}
}

// Length returns the total machine length: the last cumulative length, or
// zero for an empty machine.
func (m *Machine) Length() float64 {
	if len(m.LenInt) == 0 {
		return 0
	}
	return m.LenInt[len(m.LenInt)-1]
}

// recomputeLenInt rebuilds the cumulative-length index in a single pass over
// the sequence. Elements without a length count as zero.
func (m *Machine) recomputeLenInt() {
	m.LenInt = make([]float64, len(m.Sequence))
	running := 0.0
	for i, name := range m.Sequence {
		if e, ok := m.Elements[name]; ok {
			running += e.Length()
		}
		m.LenInt[i] = running
	}
}

// Beam returns the attached beam record, if any.
func (m *Machine) Beam() BeamRecord { return m.beam }

// SetRigidity sets the magnetic rigidity (brho, in T*m) used to derive bend
// angles from field strengths.
func (m *Machine) SetRigidity(brho float64) { m.brho = brho }

// Append adds the element to the end of the sequence and registers it,
// overwriting any existing registry entry of the same name.
func (m *Machine) Append(e *Element) error {
	if e == nil {
		return fmt.Errorf("%w: Append requires an element", ErrType)
	}
	if err := e.validateLength(); err != nil {
		return err
	}
	m.Elements[e.Name] = e
	m.Sequence = append(m.Sequence, e.Name)
	m.recomputeLenInt()
	return nil
}

// resolveIndex turns an integer position or an element name into a sequence
// position. Name resolution picks the first occurrence.
func (m *Machine) resolveIndex(index any) (int, error) {
	switch idx := index.(type) {
	case int:
		if idx < 0 || idx >= len(m.Sequence) {
			return 0, fmt.Errorf("%w: index %d out of range for sequence of %d", ErrValue, idx, len(m.Sequence))
		}
		return idx, nil
	case string:
		for i, name := range m.Sequence {
			if name == idx {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: name %q not in sequence", ErrValue, idx)
	default:
		return 0, fmt.Errorf("%w: index must be an int or an element name, got %T", ErrType, index)
	}
}

// Insert places an element (or a reference to an already registered name)
// into the sequence at the resolved index. With after the insertion happens
// after the index, with substitute the entry at the index is replaced
// in-place, both in the sequence and in the registry.
func (m *Machine) Insert(item any, index any, after, substitute bool) error {
	pos, err := m.resolveIndex(index)
	if err != nil {
		return err
	}

	var name string
	switch it := item.(type) {
	case *Element:
		if it == nil {
			return fmt.Errorf("%w: Insert requires an element", ErrType)
		}
		if err := it.validateLength(); err != nil {
			return err
		}
		name = it.Name
		m.Elements[name] = it
	case string:
		if _, ok := m.Elements[it]; !ok {
			return fmt.Errorf("%w: cannot insert unknown element name %q", ErrValue, it)
		}
		name = it
	default:
		return fmt.Errorf("%w: Insert requires an element or an element name, got %T", ErrType, item)
	}

	switch {
	case substitute:
		m.Sequence[pos] = name
	case after:
		m.Sequence = append(m.Sequence[:pos+1], append([]string{name}, m.Sequence[pos+1:]...)...)
	default:
		m.Sequence = append(m.Sequence[:pos], append([]string{name}, m.Sequence[pos:]...)...)
	}
	m.recomputeLenInt()
	return nil
}

// ReplaceWithElement rebinds every occurrence of name to the new element.
// The registry key follows the new element's name when it differs.
func (m *Machine) ReplaceWithElement(name string, e *Element) error {
	if e == nil {
		return fmt.Errorf("%w: ReplaceWithElement requires an element", ErrType)
	}
	if err := e.validateLength(); err != nil {
		return err
	}
	if _, ok := m.Elements[name]; !ok {
		return fmt.Errorf("%w: element %q not registered", ErrValue, name)
	}
	for i, n := range m.Sequence {
		if n == name {
			m.Sequence[i] = e.Name
		}
	}
	if e.Name != name {
		delete(m.Elements, name)
	}
	m.Elements[e.Name] = e
	m.recomputeLenInt()
	return nil
}

// ReplaceElementCategory renames the category tag on every element currently
// tagged with oldCategory.
func (m *Machine) ReplaceElementCategory(oldCategory, newCategory string) {
	if !m.Categories.Known(newCategory) {
		m.Categories.Register(newCategory)
	}
	for _, e := range m.Elements {
		if e.Category == oldCategory {
			e.Category = newCategory
		}
	}
}

// UpdateElements applies Set(key, value) to every element matched by the
// selector: a list of literal names, or a single pattern string matched
// against element names according to namelocation ("start", "end" or
// "anywhere").
func (m *Machine) UpdateElements(selector any, key string, value Value, namelocation string) error {
	switch namelocation {
	case "start", "end", "anywhere":
	default:
		return fmt.Errorf("%w: unrecognised namelocation %q", ErrValue, namelocation)
	}
	if key == "l" && value.Kind() == KindUnits {
		if _, err := lengthInMetres(value); err != nil {
			return err
		}
	}

	switch sel := selector.(type) {
	case []string:
		for _, name := range sel {
			if e, ok := m.Elements[name]; ok {
				e.Set(key, value)
			}
		}
	case string:
		var match func(string) bool
		switch namelocation {
		case "start":
			match = func(name string) bool { return strings.HasPrefix(name, sel) }
		case "end":
			match = func(name string) bool { return strings.HasSuffix(name, sel) }
		default:
			match = func(name string) bool { return strings.Contains(name, sel) }
		}
		for _, e := range m.Elements {
			if match(e.Name) {
				e.Set(key, value)
			}
		}
	default:
		return fmt.Errorf("%w: selector must be a name, a list of names or a pattern, got %T", ErrType, selector)
	}
	m.recomputeLenInt()
	return nil
}

// UpdateCategoryParameter applies Set(key, value) to every element of the
// given category.
func (m *Machine) UpdateCategoryParameter(category, key string, value Value) {
	for _, e := range m.Elements {
		if e.Category == category {
			e.Set(key, value)
		}
	}
	m.recomputeLenInt()
}

// UpdateGlobalParameter applies Set(key, value) to every registered element.
func (m *Machine) UpdateGlobalParameter(key string, value Value) {
	for _, e := range m.Elements {
		e.Set(key, value)
	}
	m.recomputeLenInt()
}

// InsertAndReplace places the new element so that it occupies the span
// [sLocation, sLocation+length) of the existing beamline, replacing whatever
// is there. Elements cut by a span boundary are split and their surviving
// parts kept, so the total machine length is unchanged. A zero-length
// element degenerates to pure insertion at sLocation. The span must lie
// within [0, Length()].
func (m *Machine) InsertAndReplace(e *Element, sLocation float64) error {
	if e == nil {
		return fmt.Errorf("%w: InsertAndReplace requires an element", ErrType)
	}
	if err := e.validateLength(); err != nil {
		return err
	}
	total := m.Length()
	if sLocation < 0 || sLocation > total {
		return fmt.Errorf("%w: s location %v outside machine span [0, %v]", ErrValue, sLocation, total)
	}
	end := sLocation + e.Length()
	if end > total+lengthTolerance {
		return fmt.Errorf("%w: element of length %v at s=%v overruns machine length %v", ErrValue, e.Length(), sLocation, total)
	}

	var newSeq []string
	newElems := make(map[string]*Element)
	inserted := false
	cursor := 0.0
	for _, name := range m.Sequence {
		old := m.Elements[name]
		l := old.Length()
		a, b := cursor, cursor+l
		cursor = b

		if b <= sLocation+lengthTolerance {
			newSeq = append(newSeq, name)
			continue
		}
		if !inserted {
			// First element reaching into the span: keep its leading piece.
			if lead := sLocation - a; lead > lengthTolerance {
				trail := b - end
				if trail > lengthTolerance {
					if span := end - sLocation; span > lengthTolerance {
						// Both cuts fall inside this one element.
						parts, err := old.Split([]float64{lead, span, trail})
						if err != nil {
							return err
						}
						newElems[parts[0].Name] = parts[0]
						newElems[parts[2].Name] = parts[2]
						newSeq = append(newSeq, parts[0].Name, e.Name, parts[2].Name)
						inserted = true
						continue
					}
					// Zero-length span strictly inside the element: cut once
					// and place the new element between the two halves.
					parts, err := old.Split([]float64{lead, l - lead})
					if err != nil {
						return err
					}
					newElems[parts[0].Name] = parts[0]
					newElems[parts[1].Name] = parts[1]
					newSeq = append(newSeq, parts[0].Name, e.Name, parts[1].Name)
					inserted = true
					continue
				}
				parts, err := old.Split([]float64{lead, l - lead})
				if err != nil {
					return err
				}
				newElems[parts[0].Name] = parts[0]
				newSeq = append(newSeq, parts[0].Name)
			}
			newSeq = append(newSeq, e.Name)
			inserted = true
			if b <= end+lengthTolerance {
				continue // remainder of this element is consumed
			}
		}
		if a >= end-lengthTolerance {
			newSeq = append(newSeq, name)
			continue
		}
		if trail := b - end; trail > lengthTolerance {
			parts, err := old.Split([]float64{end - a, trail})
			if err != nil {
				return err
			}
			newElems[parts[1].Name] = parts[1]
			newSeq = append(newSeq, parts[1].Name)
		}
		// else: element fully consumed by the span, dropped.
	}
	if !inserted {
		newSeq = append(newSeq, e.Name)
	}

	// Commit only once every split has succeeded.
	dropped := make(map[string]bool, len(m.Sequence))
	for _, name := range m.Sequence {
		dropped[name] = true
	}
	for _, name := range newSeq {
		delete(dropped, name)
	}
	m.Sequence = newSeq
	m.Elements[e.Name] = e
	for name, el := range newElems {
		m.Elements[name] = el
	}
	for name := range dropped {
		delete(m.Elements, name)
	}
	m.recomputeLenInt()
	return nil
}

// sequenceHas reports whether name appears in the sequence.
func (m *Machine) sequenceHas(name string) bool {
	for _, n := range m.Sequence {
		if n == name {
			return true
		}
	}
	return false
}

// AddSampler attaches sampler descriptors. The argument may be a single name,
// the literal "first"/"last" (resolved against the sequence ends), "all", a
// list of names, or a map from name to an options map. Every referenced name
// must be present in the sequence.
func (m *Machine) AddSampler(spec any) error {
	resolve := func(name string) (string, error) {
		switch name {
		case "all":
			return "all", nil
		case "first":
			if len(m.Sequence) == 0 {
				return "", fmt.Errorf("%w: cannot sample first element of an empty machine", ErrValue)
			}
			return m.Sequence[0], nil
		case "last":
			if len(m.Sequence) == 0 {
				return "", fmt.Errorf("%w: cannot sample last element of an empty machine", ErrValue)
			}
			return m.Sequence[len(m.Sequence)-1], nil
		default:
			if !m.sequenceHas(name) {
				return "", fmt.Errorf("%w: sampler references %q which is not in the sequence", ErrValue, name)
			}
			return name, nil
		}
	}

	switch s := spec.(type) {
	case string:
		name, err := resolve(s)
		if err != nil {
			return err
		}
		m.Samplers = append(m.Samplers, &Sampler{Range: name})
	case []string:
		pending := make([]*Sampler, 0, len(s))
		for _, raw := range s {
			name, err := resolve(raw)
			if err != nil {
				return err
			}
			pending = append(pending, &Sampler{Range: name})
		}
		m.Samplers = append(m.Samplers, pending...)
	case map[string]map[string]string:
		names := make([]string, 0, len(s))
		for raw := range s {
			names = append(names, raw)
		}
		sort.Strings(names)
		pending := make([]*Sampler, 0, len(names))
		for _, raw := range names {
			name, err := resolve(raw)
			if err != nil {
				return err
			}
			opts := s[raw]
			keys := make([]string, 0, len(opts))
			for k := range opts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			sampler := &Sampler{Range: name}
			for _, k := range keys {
				sampler.Options = append(sampler.Options, Option{Key: k, Value: opts[k]})
			}
			pending = append(pending, sampler)
		}
		m.Samplers = append(m.Samplers, pending...)
	default:
		return fmt.Errorf("%w: unsupported sampler specification %T", ErrType, spec)
	}
	return nil
}

// AddMaterial accumulates a material definition or a list of them.
func (m *Machine) AddMaterial(material any) error {
	switch mat := material.(type) {
	case *Object:
		m.Materials = append(m.Materials, mat)
	case []*Object:
		m.Materials = append(m.Materials, mat...)
	default:
		return fmt.Errorf("%w: AddMaterial requires a material object or a list, got %T", ErrType, material)
	}
	return nil
}

// AddObject accumulates any non-sequence definition (aperture, region,
// placement, ...).
func (m *Machine) AddObject(o *Object) {
	m.Objects = append(m.Objects, o)
}

// dipoleCategories are the bend categories AddDipole accepts.
var dipoleCategories = map[string]bool{"sbend": true, "rbend": true}

// AddDipole appends a bending magnet specified by exactly one of bend angle
// or field strength. When only the field is given the angle is derived from
// the machine rigidity and the magnet length; a zero field degenerates to a
// zero angle. With no rigidity available the field is kept as the B
// parameter instead.
func (m *Machine) AddDipole(name, category string, length float64, angle, b *float64, params ...Param) error {
	if !dipoleCategories[category] {
		return fmt.Errorf("%w: invalid dipole category %q", ErrValue, category)
	}
	if angle == nil && b == nil {
		return fmt.Errorf("%w: a dipole requires either an angle or a field strength", ErrType)
	}
	if angle != nil && b != nil {
		return fmt.Errorf("%w: angle and field strength are mutually exclusive", ErrType)
	}

	e := NewElement(name, category, withLength(length, nil)...)
	switch {
	case angle != nil:
		e.Set("angle", Number(*angle))
	case *b == 0:
		e.Set("angle", Number(0))
	case m.brho != 0:
		e.Set("angle", Number(*b*length/m.brho))
	default:
		e.Set("B", Number(*b))
	}
	for _, p := range params {
		e.Set(p.Key, p.Value)
	}
	return m.Append(e)
}

// AddBeam attaches a beam-parameter record. Anything that does not satisfy
// the beam record contract is rejected.
func (m *Machine) AddBeam(beam any) error {
	record, ok := beam.(BeamRecord)
	if !ok || record == nil {
		return fmt.Errorf("%w: AddBeam requires a beam-parameter record, got %T", ErrType, beam)
	}
	m.beam = record
	return nil
}

// Render serialises the whole machine deterministically: materials and
// auxiliary objects first, then one definition per distinct sequence element
// in first-appearance order, the line and its use statement, samplers, and
// finally the beam when attached.
func (m *Machine) Render() string {
	var lines []string
	for _, mat := range m.Materials {
		lines = append(lines, mat.Render())
	}
	for _, o := range m.Objects {
		lines = append(lines, o.Render())
	}
	seen := make(map[string]bool, len(m.Elements))
	for _, name := range m.Sequence {
		if seen[name] {
			continue
		}
		seen[name] = true
		if e, ok := m.Elements[name]; ok {
			lines = append(lines, e.Render())
		}
	}
	if len(m.Sequence) > 0 {
		lines = append(lines, "lattice: line=("+strings.Join(m.Sequence, ", ")+");")
		lines = append(lines, "use, lattice;")
	}
	for _, s := range m.Samplers {
		lines = append(lines, s.Render())
	}
	if m.beam != nil {
		lines = append(lines, m.beam.Render())
	}
	return strings.Join(lines, "\n")
}

// WriteToFile writes the rendered machine to path, gzip-compressed when the
// path carries a compressed-file suffix.
func (m *Machine) WriteToFile(path string) error {
	return gmadio.Write(path, m.Render())
}
