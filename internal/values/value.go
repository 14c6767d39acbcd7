// Package values implements the Value Model & Variable Store (spec.md C1,
// §3): a dynamically-typed value plus the insertion-ordered, case-insensitive
// variable store it lives in.
//
// Grounded on github.com/cwbudde/go-dws internal/interp/value.go: a Value
// interface (not interface{}) implemented by small concrete structs, one per
// kind, each reporting its own Type()/String(). Extended here with the kinds
// spec.md §3 actually names for REXX (sequence, mapping, opaque handle,
// absent) in place of DWScript's class/record/enum kinds, which have no
// REXX counterpart.
package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which of the §3 value kinds a Value holds.
type Kind string

const (
	KindString  Kind = "STRING"
	KindInteger Kind = "INTEGER"
	KindFloat   Kind = "FLOAT"
	KindBoolean Kind = "BOOLEAN"
	KindSeq     Kind = "SEQUENCE"
	KindMap     Kind = "MAPPING"
	KindHandle  Kind = "HANDLE"
	KindAbsent  Kind = "ABSENT"
)

// Value is a dynamically-typed runtime value (spec.md §3).
type Value interface {
	Kind() Kind
	String() string
}

// Str is a REXX string value.
type Str struct{ V string }

func (s Str) Kind() Kind      { return KindString }
func (s Str) String() string  { return s.V }

// Int is a REXX integer value.
type Int struct{ V int64 }

func (i Int) Kind() Kind     { return KindInteger }
func (i Int) String() string { return strconv.FormatInt(i.V, 10) }

// Float is a REXX rational/float value.
type Float struct{ V float64 }

func (f Float) Kind() Kind { return KindFloat }
func (f Float) String() string {
	return strconv.FormatFloat(f.V, 'g', -1, 64)
}

// Bool is a REXX boolean value. REXX itself only has truthy strings, but the
// ADDRESS handler contract (spec.md §6) and ADDRESS results can legitimately
// carry a host boolean, so the value model needs a first-class kind for it.
type Bool struct{ V bool }

func (b Bool) Kind() Kind { return KindBoolean }
func (b Bool) String() string {
	if b.V {
		return "1"
	}
	return "0"
}

// Seq is an ordered sequence of values (spec.md §3: "ordered sequence of
// values"), the type ARRAY_FILTER/ARRAY_MAP (C12) and DO OVER (C4) operate
// on.
type Seq struct{ Items []Value }

func (s Seq) Kind() Kind { return KindSeq }
func (s Seq) String() string {
	parts := make([]string, len(s.Items))
	for i, v := range s.Items {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map is an insertion-ordered mapping from string to Value (spec.md §3:
// "mapping from string to value"). Used for ADDRESS context snapshots,
// rexxVariables writeback, and REXX's own compound-name-less mapping
// literals.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap creates an empty, insertion-ordered mapping.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

func (m *Map) Kind() Kind { return KindMap }

func (m *Map) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m.values[k].String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Set inserts or overwrites a key, preserving first-insertion order.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get retrieves a key's value.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// ToMap copies the mapping into a plain Go map, discarding insertion order;
// callers that need order should use Keys() instead. Used wherever a
// snapshot is handed to something outside this package's order-preserving
// contract (error contexts, JSON marshaling).
func (m *Map) ToMap() map[string]Value {
	out := make(map[string]Value, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

// Handle is an opaque host-owned reference (e.g. a DOM element, a file
// descriptor, a DB cursor) that REXX code can hold and pass around but never
// inspect directly (spec.md §3: "opaque handle").
type Handle struct {
	Tag   string // host-defined discriminator, e.g. "DOM_ELEMENT"
	Ref   any    // host-owned payload; engine never dereferences it
}

func (h Handle) Kind() Kind     { return KindHandle }
func (h Handle) String() string { return fmt.Sprintf("<%s>", h.Tag) }

// Absent is the marker spec.md §3 calls "the absent marker": classical REXX
// behavior where reading an undefined name returns the uppercase name
// itself. Name holds that echoed name so String() matches REXX's
// rule without the variable store needing a special case at every read
// site.
type Absent struct{ Name string }

func (a Absent) Kind() Kind     { return KindAbsent }
func (a Absent) String() string { return a.Name }

// Truthy implements REXX's condition-evaluation rule (spec.md §4.2): a
// non-empty string other than "0" is true; the numeric 0 is false.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return t.V
	case Int:
		return t.V != 0
	case Float:
		return t.V != 0
	case Str:
		return t.V != "" && t.V != "0"
	case Absent:
		return false
	default:
		return true
	}
}

// AsNumeric reports whether v is numeric-looking (an Int/Float value, or a
// Str whose trimmed contents parse as a REXX number) and returns its float64
// value. REXX treats integers and floats uniformly for arithmetic purposes;
// callers needing to preserve integer-ness should check Kind() first.
func AsNumeric(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t.V), true
	case Float:
		return t.V, true
	case Str:
		s := strings.TrimSpace(t.V)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumericLooking reports whether v would be accepted as a numeric operand
// by AsNumeric, without actually doing the conversion.
func IsNumericLooking(v Value) bool {
	_, ok := AsNumeric(v)
	return ok
}
