package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/rexxgo/rexxcore/internal/registry"
	"github.com/rexxgo/rexxcore/internal/require"
	"github.com/rexxgo/rexxcore/internal/runtimefacts"
	"github.com/rexxgo/rexxcore/internal/security"
	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// Engine is C14's orchestration context: the single struct every specialist
// file in this package operates on, grounded on go-dws's internal/interp
// package-per-concern split but collapsed into one shared context rather
// than go-dws's Interpreter/Environment pair, since REXX's scoping rules
// (spec.md §3, §4.4) need far less structure than a lexically-scoped
// language's environment chain.
type Engine struct {
	Store     *values.Store
	Registry  *registry.Registry
	Addresses *Table
	Stack     *values.EvalStack
	Numeric   Settings
	Out       io.Writer

	traceMode Mode
	traceLog  []Record

	execStack   *ExecStack
	handlers    *HandlerTable
	subroutines *SubroutineTable
	callStack   []*CallFrame

	currentSubroutine string
	lastError         *errorContext

	commands       []*ast.Command
	sourceLines    []string
	sourceFilename string
	scriptDir      string

	noInterpret bool

	requireLoader *require.Loader
	parser        Parser
	gate          *security.Gate

	// ScriptRunner, when set, backs CALL of an external script path
	// (spec.md §4.4); nil means external-script CALL is unsupported.
	ScriptRunner func(path string, args []values.Value) (values.Value, error)

	// libraryEngines holds the persistent child Engine backing each loaded
	// REQUIRE library, keyed by its dependency-graph key, so a later call to
	// one of its exported functions can be dispatched via callSubroutine
	// against the same engine that ran the library's top-level code
	// (spec.md §4.8 step 7: "evaluate ... copy any function exports back").
	libraryEngines map[string]*Engine
}

// Parser is the host-supplied REXX parser (spec.md §1: out of this
// module's scope). INTERPRET and REQUIRE both need to turn a string of
// REXX source into commands at run time.
type Parser interface {
	Parse(source string) ([]*ast.Command, error)
}

// New creates an Engine with every table initialized and the built-in
// registry populated, then applies opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		Store:          values.NewStore(),
		Registry:       registry.New(),
		Addresses:      NewTable(),
		Stack:          values.NewEvalStack(),
		Numeric:        DefaultSettings(),
		Out:            io.Discard,
		execStack:      NewExecStack(""),
		handlers:       NewHandlerTable(),
		subroutines:    &SubroutineTable{labels: map[string]int{}, bodies: map[string]*Subroutine{}},
		gate:           security.NewGate(security.PolicyStrict, security.EnvLocalNode),
		libraryEngines: map[string]*Engine{},
	}
	e.registerBuiltins()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// sourceLine returns the 1-based source line for diagnostics, or "" once
// the requested line is out of range (e.g. a synthesized command with no
// direct source, such as an INTERPRET child's own diagnostics).
func (e *Engine) sourceLine(n int) string {
	if n < 1 || n > len(e.sourceLines) {
		return ""
	}
	return e.sourceLines[n-1]
}

// splitSourceLines normalizes CRLF/CR line endings before splitting, so
// sourceLine's indexing matches the parser's 1-based LineNumber regardless
// of which line-ending convention the original file used.
func splitSourceLines(text string) []string {
	normalized := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
	return strings.Split(normalized, "\n")
}

// Run executes commands (C14, spec.md §4.1): discover labels/subroutines,
// then walk the top level in source order, following SIGNAL jumps and
// stopping on RETURN/EXIT. A label reached in sequence steps over the
// subroutine body that follows it, so the top level never falls into a
// subroutine's own RETURN; a SIGNAL jump resumes at the command after its
// label.
func (e *Engine) Run(commands []*ast.Command, sourceText, sourceFilename string) (values.Value, error) {
	e.commands = commands
	e.sourceFilename = sourceFilename
	e.sourceLines = splitSourceLines(sourceText)
	e.subroutines = discover(commands)
	e.execStack = NewExecStack(sourceFilename)

	i := 0
	for i < len(commands) {
		cmd := commands[i]
		e.execStack.UpdateTop(cmd.LineNumber, e.sourceLine(cmd.LineNumber))
		var cr ControlResult
		var err error
		if sub, ok := e.subroutines.Lookup(cmd.LabelName); ok && cmd.Type == ast.Label {
			cr = SkipN(sub.End - i)
		} else {
			cr, err = e.execCommand(cmd)
		}
		if err != nil {
			return nil, err
		}

		switch cr.Kind {
		case KindReturned:
			return cr.Value, nil
		case KindExited:
			return values.Int{V: int64(cr.Code)}, nil
		case KindJump:
			idx, ok := e.subroutines.LabelIndex(cr.Label)
			if !ok {
				return nil, fmt.Errorf("SIGNAL target label not found: %s", cr.Label)
			}
			i = idx + 1
			continue
		case KindSkip:
			i += cr.Skip
			continue
		}
		i++
	}
	return values.Str{V: ""}, nil
}

// execCommand is the per-command dispatch point every other file in this
// package calls (execBody's loop, callSubroutine's body walk, INTERPRET's
// sub-run). It wraps the raw type switch (dispatch.go) with fault recovery:
// an error surfacing from anywhere in the call tree below is classified
// into a *Fault and offered to the active SIGNAL handlers before
// propagating, so `SIGNAL ON ERROR` catches failures no matter how deeply
// nested the command that raised them was.
func (e *Engine) execCommand(cmd *ast.Command) (ControlResult, error) {
	cr, err := e.dispatch(cmd)
	if err == nil {
		return cr, nil
	}

	if es, ok := err.(*exitSignal); ok {
		return Exited(es.Code), nil
	}
	if js, ok := err.(*jumpSignal); ok {
		return Jump(js.Label), nil
	}

	fault := classify(err, cmd.LineNumber, e.sourceLine(cmd.LineNumber), e.sourceFilename)
	return e.handleFault(fault)
}

// classify converts a generic Go error raised by the evaluator or a
// command handler into a categorized *Fault (spec.md §7), passing already-
// classified faults through unchanged.
func classify(err error, line int, sourceLine, filename string) *Fault {
	if f, ok := err.(*Fault); ok {
		return f
	}
	msg := err.Error()
	category := CategoryName
	switch {
	case strings.Contains(msg, "REQUIRE"):
		category = CategoryRequire
	case strings.Contains(msg, "INTERPRET"):
		category = CategoryInterpret
	case strings.Contains(msg, "ADDRESS"):
		category = CategoryAddress
	case strings.Contains(msg, "division by zero"),
		strings.Contains(msg, "non-numeric"),
		strings.Contains(msg, "is not numeric"):
		category = CategoryArithmetic
	}
	return newFault(category, line, sourceLine, filename, "%s", msg)
}

// registerBuiltins installs the always-present function/operation set and
// seeds the variables spec.md §6 promises are present at startup.
func (e *Engine) registerBuiltins() {
	e.Store.Set("RC", values.Int{V: 0})
	e.Store.Set("RESULT", values.Str{V: ""})
	e.Store.Set("ERRORTEXT", values.Str{V: ""})
	e.Store.Set("SIGL", values.Int{V: 0})

	runtimefacts.Current().Populate(e.Store.Set)

	e.Registry.RegisterFunction(registry.FunctionInfo{
		Name: "ARG",
		Impl: e.argFunction,
	})
	e.Registry.RegisterFunction(registry.FunctionInfo{
		Name: "GETENV",
		Impl: func(args []values.Value) (values.Value, error) {
			if len(args) == 0 {
				return values.Str{V: ""}, nil
			}
			return values.Str{V: runtimefacts.Getenv(args[0].String())}, nil
		},
		RequiresParameters: true,
	})
	e.Registry.RegisterFunction(registry.FunctionInfo{
		Name: "ERROR_MESSAGE",
		Impl: func(args []values.Value) (values.Value, error) {
			if e.lastError == nil {
				return values.Str{V: ""}, nil
			}
			return values.Str{V: e.lastError.Message}, nil
		},
	})
	e.Registry.RegisterFunction(registry.FunctionInfo{
		Name: "ERROR_LINE",
		Impl: func(args []values.Value) (values.Value, error) {
			if e.lastError == nil {
				return values.Int{V: 0}, nil
			}
			return values.Int{V: int64(e.lastError.Line)}, nil
		},
	})
	e.Registry.RegisterFunction(registry.FunctionInfo{
		Name: "ERROR_VARIABLES",
		Impl: func(args []values.Value) (values.Value, error) {
			m := values.NewMap()
			if e.lastError != nil {
				for k, v := range e.lastError.Variables {
					m.Set(k, v)
				}
			}
			return m, nil
		},
	})
	e.Registry.RegisterFunction(registry.FunctionInfo{
		Name: "ARRAY_FILTER",
		Impl: e.arrayFilter,
		RequiresParameters: true,
	})
	e.Registry.RegisterFunction(registry.FunctionInfo{
		Name: "ARRAY_MAP",
		Impl: e.arrayMap,
		RequiresParameters: true,
	})
	e.Registry.RegisterFunction(registry.FunctionInfo{Name: "FILTER", Impl: e.arrayFilter, RequiresParameters: true})
	e.Registry.RegisterFunction(registry.FunctionInfo{Name: "MAP", Impl: e.arrayMap, RequiresParameters: true})

	e.Registry.RegisterOperation(registry.OperationInfo{
		Name: "DUMP_TRACE",
		Impl: func(named map[string]values.Value) (values.Value, error) {
			items := make([]values.Value, 0, len(e.traceLog))
			for _, r := range e.DumpTrace() {
				items = append(items, values.Str{V: r.Message})
			}
			return values.Seq{Items: items}, nil
		},
	})
}
