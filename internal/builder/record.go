package builder

import (
	"strings"
)

// aperTolerance is the magnitude below which aperture-class parameters are
// discarded. Near-zero apertures are almost always spurious and would
// otherwise close the beampipe entirely.
const aperTolerance = 1e-6

// Param is a single key/value pair, used to pass ordered parameter sets to
// constructors.
type Param struct {
	Key   string
	Value Value
}

// P is shorthand for constructing a Param.
func P(key string, value Value) Param {
	return Param{Key: key, Value: value}
}

// Record is an ordered parameter store with type-aware rendering into the
// GMAD grammar. Keys keep their insertion order; setting an existing key
// updates the value in place.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord constructs an empty record, optionally seeded with ordered
// parameters.
func NewRecord(params ...Param) *Record {
	r := &Record{values: make(map[string]Value)}
	for _, p := range params {
		r.Set(p.Key, p.Value)
	}
	return r
}

// isApertureKey reports whether a parameter belongs to the aperture class.
func isApertureKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "aper")
}

// Set stores a value under key. Aperture-class parameters whose numeric
// magnitude is below aperTolerance are silently dropped.
func (r *Record) Set(key string, value Value) {
	if isApertureKey(key) && value.IsNumeric() {
		mag := value.Float()
		if mag < 0 {
			mag = -mag
		}
		if mag < aperTolerance {
			return
		}
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the stored, already-normalised value for key.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is stored.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key from the record. Removing an absent key is a no-op.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the stored keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of stored parameters.
func (r *Record) Len() int {
	return len(r.keys)
}

// Clone returns an independent copy of the record. List values are copied;
// opaque payloads are shared.
func (r *Record) Clone() *Record {
	c := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]Value, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		if v.kind == KindList {
			list := make([]Value, len(v.list))
			copy(list, v.list)
			v.list = list
		}
		c.values[k] = v
	}
	return c
}

// RenderParams renders the record's parameters as "k1=v1, k2=v2" in
// insertion order. Repeated renders of an unmutated record are
// byte-identical.
func (r *Record) RenderParams() string {
	parts := make([]string, len(r.keys))
	for i, k := range r.keys {
		parts[i] = k + "=" + r.values[k].Render()
	}
	return strings.Join(parts, ", ")
}

// renderStatement renders one full grammar statement for a named object:
// "name: objecttype, k1=v1, ...;". With no parameters the comma list is
// omitted.
func renderStatement(name, objecttype string, r *Record) string {
	head := name + ": " + objecttype
	if r.Len() == 0 {
		return head + ";"
	}
	return head + ", " + r.RenderParams() + ";"
}
