package engine

import "github.com/rexxgo/rexxcore/internal/values"

// DefaultTarget is the pseudo-target active before any ADDRESS statement
// (spec.md §4.6: "Default pseudo-target is default (no handler; quoted
// strings become SAY output)").
const DefaultTarget = "DEFAULT"

// Handler is an ADDRESS target's callback (spec.md §6 "ADDRESS handler
// contract"). It receives the raw command string, a JSON object snapshot
// of every variable, and source coordinates, returning a JSON-encoded
// result (see address_json.go for the scalar-vs-object response shapes
// honored by the engine).
type Handler func(commandString string, contextJSON string, source SourceContext) (string, error)

// SourceContext carries the coordinates an ADDRESS handler needs to do its
// own interpolation (spec.md §6).
type SourceContext struct {
	LineNumber     int
	SourceLine     string
	SourceFilename string
}

// TargetMeta is the subset of Extension Library Metadata (spec.md §3) an
// ADDRESS target carries: where it came from, and how it wants strings
// handled.
type TargetMeta struct {
	Origin string
	// InterpolationHandledByEngine, when true, makes the engine
	// pre-interpolate the command string before calling Handler; when
	// false the target does its own substitution (e.g. SQL parameter
	// binding), per spec.md §4.6.
	InterpolationHandledByEngine bool
	// SuppressResultVariable makes the engine skip writing RESULT for this
	// target's responses. spec.md §4.6 hardcodes this to the target name
	// "expectations"; Design Notes open question 2 asks that this become a
	// metadata flag instead of a name-based special case — implemented
	// here as exactly that flag, defaulted true for a target literally
	// named "expectations" when registered via NewTarget.
	SuppressResultVariable bool
}

// Target is one ADDRESS Target Record (spec.md §3).
type Target struct {
	Name    string
	Handler Handler
	Methods map[string]bool
	Meta    TargetMeta
}

// NewTarget builds a Target, defaulting SuppressResultVariable per the
// "expectations" convention spec.md §4.6 names, while still letting
// callers override Meta after construction.
func NewTarget(name string, handler Handler, methods []string) *Target {
	methodSet := make(map[string]bool, len(methods))
	for _, m := range methods {
		methodSet[values.CanonicalName(m)] = true
	}
	return &Target{
		Name:    name,
		Handler: handler,
		Methods: methodSet,
		Meta:    TargetMeta{SuppressResultVariable: values.CanonicalName(name) == "EXPECTATIONS"},
	}
}

// Table is the addressTargets map plus current-target state (spec.md §4.6).
type Table struct {
	targets map[string]*Target
	current string
}

// NewTable creates a Table with DEFAULT active and no registered targets.
func NewTable() *Table {
	return &Table{targets: map[string]*Target{}, current: DefaultTarget}
}

// Register adds or replaces a target.
func (t *Table) Register(target *Target) {
	t.targets[values.CanonicalName(target.Name)] = target
}

// SwitchTo makes name the current target; it need not already be
// registered (a later REQUIRE may register it, or it may simply have no
// handler and behave like DEFAULT).
func (t *Table) SwitchTo(name string) {
	t.current = values.CanonicalName(name)
}

// Current returns the active target name.
func (t *Table) Current() string {
	return t.current
}

// Lookup returns the registered Target for name, if any.
func (t *Table) Lookup(name string) (*Target, bool) {
	target, ok := t.targets[values.CanonicalName(name)]
	return target, ok
}
