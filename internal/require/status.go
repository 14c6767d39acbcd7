package require

import (
	"sort"

	"github.com/maruel/natural"
)

// Status is one row of the REQUIRE status listing operation SPEC_FULL.md
// adds (spec.md's dependency-graph model exposed as a user-facing report):
// library name, resolved version, and its direct dependencies.
type Status struct {
	Name         string
	Version      string
	Source       string
	Dependencies []string
	Loaded       bool
}

// ListStatus builds a naturally-sorted status report from a graph and
// manifest, so "lib2" sorts before "lib10" the way a human reads library
// names instead of lexicographic sort putting "lib10" first.
func ListStatus(g *Graph, m *Manifest) []Status {
	names := g.Names()
	sort.Sort(natural.StringSlice(names))

	out := make([]Status, 0, len(names))
	for _, name := range names {
		st := Status{
			Name:         name,
			Dependencies: g.Dependencies(name),
			Loaded:       g.IsLoaded(name),
		}
		if entry, ok := m.Lookup(name); ok {
			st.Version = entry.Version
			st.Source = entry.Source
		}
		out = append(out, st)
	}
	return out
}
