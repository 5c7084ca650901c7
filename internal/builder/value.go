package builder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which member of the parameter value union a Value holds.
type Kind int

const (
	// KindNumber is a plain floating point number.
	KindNumber Kind = iota
	// KindInt is an integer number.
	KindInt
	// KindBool is a boolean, rendered as 1 or 0.
	KindBool
	// KindString is a quoted string. The stored form always carries the
	// surrounding double quotes.
	KindString
	// KindRaw is a string rendered verbatim, without quoting.
	KindRaw
	// KindUnits is a number tagged with a unit, rendered as value*unit.
	KindUnits
	// KindList is an ordered list, rendered as {a,b,c}.
	KindList
	// KindOpaque is a pass-through value carried but not meaningfully
	// rendered, e.g. a weighting function specification.
	KindOpaque
)

// Value is the closed union of parameter value kinds understood by the GMAD
// grammar. A Value is always in its final serialisable form: quoting and
// normalisation happen at construction, never at render time.
type Value struct {
	kind   Kind
	num    float64
	str    string
	unit   string
	list   []Value
	opaque any
}

// Number constructs a floating point value.
func Number(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

// Int constructs an integer value.
func Int(v int) Value {
	return Value{kind: KindInt, num: float64(v)}
}

// Bool constructs a boolean value.
func Bool(v bool) Value {
	val := Value{kind: KindBool}
	if v {
		val.num = 1
	}
	return val
}

// Str constructs a quoted string value. A string already wrapped in double
// quotes is stored as-is so it is never quoted twice.
func Str(s string) Value {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return Value{kind: KindString, str: s}
	}
	return Value{kind: KindString, str: `"` + s + `"`}
}

// Raw constructs a string value rendered verbatim, without quotes. It is used
// for identifier-like values such as sampler option settings.
func Raw(s string) Value {
	return Value{kind: KindRaw, str: s}
}

// UnitsOf constructs a unit-tagged numeric value rendered as value*unit.
func UnitsOf(v float64, unit string) Value {
	return Value{kind: KindUnits, num: v, unit: unit}
}

// List constructs an ordered list value.
func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, list: list}
}

// Opaque wraps an arbitrary value carried through the record untouched.
func Opaque(v any) Value {
	return Value{kind: KindOpaque, opaque: v}
}

// Kind reports which union member the value holds.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric payload for number, integer, boolean and
// unit-tagged values. It is zero for the other kinds.
func (v Value) Float() float64 { return v.num }

// Text returns the stored string payload (including quotes for KindString).
func (v Value) Text() string { return v.str }

// Unit returns the unit tag of a KindUnits value.
func (v Value) Unit() string { return v.unit }

// Items returns the elements of a KindList value.
func (v Value) Items() []Value { return v.list }

// Payload returns the wrapped value of a KindOpaque value.
func (v Value) Payload() any { return v.opaque }

// IsNumeric reports whether the value carries a usable numeric magnitude.
func (v Value) IsNumeric() bool {
	switch v.kind {
	case KindNumber, KindInt, KindUnits:
		return true
	}
	return false
}

// Render produces the grammar text for the value.
func (v Value) Render() string {
	switch v.kind {
	case KindNumber:
		return formatFloat(v.num)
	case KindInt:
		return strconv.Itoa(int(v.num))
	case KindBool:
		if v.num != 0 {
			return "1"
		}
		return "0"
	case KindString, KindRaw:
		return v.str
	case KindUnits:
		return formatFloat(v.num) + "*" + v.unit
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Render()
		}
		return "{" + strings.Join(parts, ",") + "}"
	case KindOpaque:
		return renderOpaque(v.opaque)
	}
	return ""
}

// formatFloat renders a number in its natural decimal or exponential form,
// e.g. 0.5 or 9.1e-09.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// renderOpaque gives opaque payloads a stable textual form so repeated
// renders of an unchanged record stay byte-identical.
func renderOpaque(payload any) string {
	if m, ok := payload.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s:%v", k, m[k])
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return fmt.Sprintf("%v", payload)
}
