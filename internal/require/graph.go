// Package require implements the REQUIRE / Dependency Loader (spec.md C9,
// §4.8): path normalization, cycle-guarded recursive dependency resolution,
// a strategy ladder for locating library source, AS-clause renaming, and
// security-policy gating.
//
// Grounded on github.com/cwbudde/go-dws internal/units, whose behavior
// (load-by-name with search paths, recursive `uses`-clause dependency
// loading, cycle detection, result caching) is inferred from its
// `*_test.go` file names and doc comments — only test files survived
// retrieval for that package, so there is no source to adapt in place; the
// dependency-graph/cycle-detection shape below is original code written to
// match that inferred behavior plus spec.md §3's explicit "Dependency
// Graph" data model ("Mapping library name → { dependencies, dependents,
// loading flag }").
package require

import "fmt"

// node is one entry of the dependency graph (spec.md §3).
type node struct {
	dependencies []string
	dependents   []string
	loading      bool
	loaded       bool
}

// Graph tracks which libraries depend on which, detecting cycles as edges
// are added (spec.md §8 invariant 4: "the dependency graph contains no
// cycles").
type Graph struct {
	nodes map[string]*node
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

func (g *Graph) get(name string) *node {
	n, ok := g.nodes[name]
	if !ok {
		n = &node{}
		g.nodes[name] = n
	}
	return n
}

// BeginLoading marks name as currently being loaded. Returns false if name
// is already loading (the cycle case) — spec.md §4.8 step 2: "if already in
// the loading set, return (break the cycle)".
func (g *Graph) BeginLoading(name string) bool {
	n := g.get(name)
	if n.loading {
		return false
	}
	n.loading = true
	return true
}

// FinishLoading clears the loading flag and marks name as loaded.
func (g *Graph) FinishLoading(name string) {
	n := g.get(name)
	n.loading = false
	n.loaded = true
}

// IsLoaded reports whether name has completed loading.
func (g *Graph) IsLoaded(name string) bool {
	n, ok := g.nodes[name]
	return ok && n.loaded
}

// AddDependency records that `from` depends on `to`. Returns an error
// naming the cycle if `to` transitively depends on `from` (a true cycle,
// distinct from the loading-flag same-name recursion BeginLoading guards
// against).
func (g *Graph) AddDependency(from, to string) error {
	fromNode := g.get(from)
	toNode := g.get(to)
	fromNode.dependencies = append(fromNode.dependencies, to)
	toNode.dependents = append(toNode.dependents, from)

	if path, cyclic := g.findPath(to, from); cyclic {
		return fmt.Errorf("dependency cycle detected: %v", append(path, from))
	}
	return nil
}

// findPath performs a DFS from start looking for target, returning the path
// if found.
func (g *Graph) findPath(start, target string) ([]string, bool) {
	visited := make(map[string]bool)
	var path []string
	var dfs func(name string) bool
	dfs = func(name string) bool {
		if name == target {
			path = append(path, name)
			return true
		}
		if visited[name] {
			return false
		}
		visited[name] = true
		n, ok := g.nodes[name]
		if !ok {
			return false
		}
		for _, dep := range n.dependencies {
			if dfs(dep) {
				path = append(path, name)
				return true
			}
		}
		return false
	}
	if dfs(start) {
		// path was built leaf-first; reverse it.
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		return path, true
	}
	return nil, false
}

// Names returns every library name the graph has seen, in no particular
// order; callers needing a stable order should sort the result (see
// status.go's natural sort for the user-facing listing).
func (g *Graph) Names() []string {
	out := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		out = append(out, name)
	}
	return out
}

// Dependencies returns the direct dependencies recorded for name.
func (g *Graph) Dependencies(name string) []string {
	n, ok := g.nodes[name]
	if !ok {
		return nil
	}
	out := make([]string, len(n.dependencies))
	copy(out, n.dependencies)
	return out
}
