package engine

import (
	"io"

	"github.com/rexxgo/rexxcore/internal/require"
	"github.com/rexxgo/rexxcore/internal/security"
	"github.com/rexxgo/rexxcore/internal/values"
)

// Option configures an Engine at construction time, grounded on the
// functional-options convention SPEC_FULL.md's ambient-stack section
// commits to (go-dws's own internal/interp/options.go expresses the same
// concern as a settings interface; functional options are the idiomatic Go
// generalization of that shape once construction, not just querying, needs
// to be configurable).
type Option func(*Engine)

// WithOutput redirects SAY and default-ADDRESS command-string output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.Out = w }
}

// WithDigits overrides the NUMERIC DIGITS default (9).
func WithDigits(digits int) Option {
	return func(e *Engine) { e.Numeric.Digits = digits }
}

// WithParser installs the host-supplied REXX parser, required for
// INTERPRET and REQUIRE to evaluate dynamically-produced source.
func WithParser(p Parser) Option {
	return func(e *Engine) { e.parser = p }
}

// WithSecurityGate overrides the default strict/local-node gate REQUIRE
// consults before resolving a library.
func WithSecurityGate(policy security.Policy, env security.Environment) Option {
	return func(e *Engine) { e.gate = security.NewGate(policy, env) }
}

// WithRequireLadder installs the resolution ladder REQUIRE walks, wiring
// it to this engine's own gate and a library evaluator backed by this
// engine (see require_stmt.go's engineEvaluator).
func WithRequireLadder(ladder require.Ladder) Option {
	return func(e *Engine) {
		e.requireLoader = require.NewLoader(ladder, e.gate, &engineEvaluator{host: e})
	}
}

// WithScriptDir sets the directory REQUIRE path-normalizes relative
// targets against (spec.md §4.8 step 1).
func WithScriptDir(dir string) Option {
	return func(e *Engine) { e.scriptDir = dir }
}

// WithScriptRunner installs the external-script executor CALL uses when
// its target looks like a script path rather than a label (spec.md §4.4).
func WithScriptRunner(run func(path string, args []values.Value) (values.Value, error)) Option {
	return func(e *Engine) { e.ScriptRunner = run }
}

// WithTraceMode sets the initial TRACE mode (spec.md §4.10).
func WithTraceMode(mode Mode) Option {
	return func(e *Engine) { e.traceMode = mode }
}
