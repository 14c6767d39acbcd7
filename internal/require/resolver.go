package require

import (
	"fmt"

	"github.com/rexxgo/rexxcore/internal/security"
)

// Metadata is a library's self-declared shape, produced by invoking its
// detection function after evaluation (spec.md §3 "Library Detection
// Function Contract", §4.8 step 8).
type Metadata struct {
	Type                            string // "functions" | "address-target" | "hybrid"
	Functions                       []string
	Operations                      []string
	AddressTarget                   string
	Dependencies                    []string
	Version                         string
	InterpreterHandlesInterpolation bool
}

// LoadedLibrary is library source paired with the reference it was resolved
// from, ready for evaluation.
type LoadedLibrary struct {
	Ref  Ref
	Code string
}

// Resolver is one rung of the REQUIRE resolution ladder (spec.md §4.8
// step 6): "try the registry-style fetch, then built-ins, then local/module
// paths, then a remote git host, then the control bus, then a remote
// orchestrated checkpoint round-trip". Each concrete resolver wraps exactly
// one of those strategies and declares the security.Origin it represents so
// the policy Gate can approve or reject it before it ever runs.
type Resolver interface {
	Origin() security.Origin
	// Applies reports whether this resolver can attempt to resolve ref at
	// all (e.g. the builtin resolver only applies to names in its static
	// table; the local-path resolver applies when ref.IsPath or when it has
	// search paths configured).
	Applies(ref Ref) bool
	Resolve(ref Ref) (LoadedLibrary, error)
}

// Ladder is an ordered list of resolvers tried in turn until one both
// Applies and succeeds. The order callers construct it in IS the
// resolution-strategy order from spec.md §4.8 step 6.
type Ladder []Resolver

// ErrNoResolver is returned when no resolver in the ladder applies to ref.
type ErrNoResolver struct {
	Ref Ref
}

func (e *ErrNoResolver) Error() string {
	return fmt.Sprintf("require: no resolution strategy matched %q", e.Ref.Key())
}

// Resolve walks the ladder, skipping resolvers the gate rejects and
// resolvers that don't apply, returning the first successful load.
func (l Ladder) Resolve(ref Ref, gate *security.Gate) (LoadedLibrary, error) {
	var lastErr error
	tried := false
	for _, r := range l {
		if !r.Applies(ref) {
			continue
		}
		tried = true
		if ok, reason := gate.Approve(r.Origin()); !ok {
			lastErr = fmt.Errorf("require: %s: %s", ref.Key(), reason)
			continue
		}
		lib, err := r.Resolve(ref)
		if err != nil {
			lastErr = err
			continue
		}
		return lib, nil
	}
	if !tried {
		return LoadedLibrary{}, &ErrNoResolver{Ref: ref}
	}
	if lastErr == nil {
		lastErr = &ErrNoResolver{Ref: ref}
	}
	return LoadedLibrary{}, lastErr
}

// Evaluator executes library source in a fresh host context and reports its
// exported Metadata (spec.md §4.8 step 7: "evaluate the library code in a
// context that exposes host globals"). The engine package supplies the real
// implementation (it owns the interpreter loop); this package only needs
// the contract, so REQUIRE's graph/cycle/policy logic stays independent of
// the evaluator.
type Evaluator interface {
	Execute(code string) (Metadata, error)
}
