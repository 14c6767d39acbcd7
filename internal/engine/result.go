// Package engine implements the Core Engine Orchestration and its
// specialists (spec.md C2, C4–C7, C10–C14): the command dispatch loop,
// expression evaluator, control-flow executor, subroutine/label engine,
// signal handling, ADDRESS dispatch, INTERPRET, execution-context stack,
// interpreter-aware array higher-order functions, and numeric settings.
//
// Grounded throughout on github.com/cwbudde/go-dws's internal/interp
// package: one file per concern, a typed Value already supplied by
// internal/values, and a registry already supplied by internal/registry.
package engine

import "github.com/rexxgo/rexxcore/internal/values"

// Kind tags the variant of a ControlResult (spec.md §9 Design Notes:
// "model as an explicit result sum type... ControlResult = Continue |
// JumpToLabel(name) | Returned(value) | Exited(code)"). A fifth variant,
// Skip, covers C14's `{skipCommands: N}` sentinel.
type Kind string

const (
	KindContinue Kind = "CONTINUE"
	KindJump     Kind = "JUMP"
	KindReturned Kind = "RETURNED"
	KindExited   Kind = "EXITED"
	KindSkip     Kind = "SKIP"
)

// ControlResult is the non-error outcome of executing one command or body:
// either "keep going" or one of the handful of structural escapes REXX
// defines. Using a sum type here, rather than Go panics/recover or a typed
// exception, is a direct response to spec.md §9's "exceptions for control
// flow" note.
type ControlResult struct {
	Kind  Kind
	Label string
	Value values.Value
	Code  int
	Skip  int
}

// Continue is the steady-state result: proceed to the next command.
var Continue = ControlResult{Kind: KindContinue}

// Jump produces a {jump: label} sentinel (SIGNAL's control transfer).
func Jump(label string) ControlResult {
	return ControlResult{Kind: KindJump, Label: label}
}

// Returned produces a RETURN sentinel carrying the returned value.
func Returned(v values.Value) ControlResult {
	return ControlResult{Kind: KindReturned, Value: v}
}

// Exited produces an EXIT sentinel carrying the process-visible exit code.
func Exited(code int) ControlResult {
	return ControlResult{Kind: KindExited, Code: code}
}

// SkipN advances the top-level command index by n without executing the
// intervening commands (Run uses it to step over a discovered subroutine
// body when it reaches that body's label in sequence).
func SkipN(n int) ControlResult {
	return ControlResult{Kind: KindSkip, Skip: n}
}

// IsTerminating reports whether r should stop a surrounding body from
// continuing to its next statement (RETURN/EXIT/JUMP all bubble; Continue
// and Skip do not escape their own loop/body).
func (r ControlResult) IsTerminating() bool {
	return r.Kind == KindReturned || r.Kind == KindExited || r.Kind == KindJump
}
