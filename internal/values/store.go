package values

// Store is the variable store (spec.md §3): an insertion-order-preserving
// mapping from canonical (upper-cased) identifier to Value. Compound names
// (stem.tail) are literal keys — the dot is never interpreted as a path.
//
// Grounded on github.com/cwbudde/go-dws internal/interp/runtime/
// environment.go's Environment, but flattened: DWScript's Environment is a
// lexically-nested scope chain (one Environment per block/function),
// whereas this engine never opens a new scope at IF/DO/SELECT block
// boundaries. Store therefore drops Environment's outer-chain walk in favor
// of a single flat map per engine: CALL runs subroutine bodies against the
// caller's Store (see internal/engine/subroutine.go), and only INTERPRET's
// classic and isolated modes give the child engine a different Store.
type Store struct {
	keys   []string
	values map[string]Value
}

// NewStore creates an empty variable store.
func NewStore() *Store {
	return &Store{values: make(map[string]Value)}
}

// Get reads a variable. Per spec.md §3, an absent name resolves to the
// uppercase name itself rather than an error — callers that need to
// distinguish "never assigned" from "assigned the literal uppercase name"
// should use Has instead.
func (s *Store) Get(name string) Value {
	key := CanonicalName(name)
	if v, ok := s.values[key]; ok {
		return v
	}
	return Absent{Name: key}
}

// Has reports whether name has ever been written, without triggering the
// classical-REXX absent-name echo. Used by presence-testing built-ins
// (spec.md §3: "except inside conditional/expression contexts where
// specific functions exist to test presence").
func (s *Store) Has(name string) bool {
	_, ok := s.values[CanonicalName(name)]
	return ok
}

// Set writes a variable (spec.md §3: "Writes are atomic per command" — true
// here because the engine's single-threaded execution model, §5, never
// interleaves two Set calls on the same Store).
func (s *Store) Set(name string, v Value) {
	key := CanonicalName(name)
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Unset removes a variable entirely, used by callback evaluation
// (internal/engine/callback.go) to drop a callback parameter that did not
// previously exist.
func (s *Store) Unset(name string) {
	key := CanonicalName(name)
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Names returns all defined variable names in insertion order.
func (s *Store) Names() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Snapshot returns a new Map holding a copy of every defined variable, used
// to build the ADDRESS handler contract's `context` argument (spec.md §6:
// "snapshot of current variables as a plain mapping") and the variable
// dump a caught SIGNAL condition records for the ERROR_* built-ins.
func (s *Store) Snapshot() *Map {
	m := NewMap()
	for _, k := range s.keys {
		m.Set(k, s.values[k])
	}
	return m
}

// Clone returns an independent copy of the store, used by INTERPRET's
// classic mode (§4.9), which needs a store that starts identical to the
// parent's but diverges independently.
func (s *Store) Clone() *Store {
	c := NewStore()
	for _, k := range s.keys {
		c.Set(k, s.values[k])
	}
	return c
}
