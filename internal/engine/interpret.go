package engine

import (
	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// execInterpret implements INTERPRET's three scope modes (spec.md §4.9):
//
//   - default: the child runs against this engine's own Store directly —
//     every assignment is immediately visible to the parent and vice versa.
//   - classic: the child gets a Store cloned from the parent's at the
//     moment of the call, diverging independently afterward; nothing it
//     does is visible back to the parent.
//   - isolated: the child gets a fresh, empty Store seeded only with the
//     named ImportVars, and only the named ExportVars are copied back.
func (e *Engine) execInterpret(cmd *ast.Command) (ControlResult, error) {
	if e.noInterpret {
		return Continue, newFault(CategoryInterpret, cmd.LineNumber, e.sourceLine(cmd.LineNumber), e.sourceFilename,
			"INTERPRET is disabled (NO-INTERPRET was issued)")
	}
	if e.parser == nil {
		return Continue, newFault(CategoryInterpret, cmd.LineNumber, e.sourceLine(cmd.LineNumber), e.sourceFilename,
			"INTERPRET: no parser configured")
	}

	sourceV, err := e.evaluateExpression(cmd.InterpretExpr)
	if err != nil {
		return Continue, err
	}
	source := sourceV.String()

	commands, err := e.parser.Parse(source)
	if err != nil {
		return Continue, newFault(CategoryInterpret, cmd.LineNumber, e.sourceLine(cmd.LineNumber), e.sourceFilename,
			"INTERPRET: parsing: %v", err)
	}

	child := e.childForInterpret(cmd.InterpretMode)
	if cmd.InterpretMode == ast.InterpretIsolated {
		for _, name := range cmd.ImportVars {
			child.Store.Set(name, e.Store.Get(name))
		}
	}

	e.execStack.Push(&Frame{Type: FrameInterpret, Name: "INTERPRET", SourceFilename: e.sourceFilename})
	defer e.execStack.Pop()

	result, err := child.Run(commands, source, e.sourceFilename)
	if err != nil {
		return Continue, e.enrichInterpretError(cmd, source, err)
	}

	if cmd.InterpretMode == ast.InterpretIsolated {
		for _, name := range cmd.ExportVars {
			e.Store.Set(name, child.Store.Get(name))
		}
	}

	e.Store.Set("RESULT", result)
	return Continue, nil
}

// childForInterpret builds the per-mode child engine. The child shares the
// parent's Registry, Addresses table, require loader, and output, and
// copies the parent's trace mode (trace records the child makes go to the
// child's own log, not the parent's) — INTERPRET is a scoping discipline
// over the variable store, not a wholesale sandbox of the rest of the
// engine's state.
func (e *Engine) childForInterpret(mode ast.InterpretMode) *Engine {
	child := &Engine{
		Store:          e.Store,
		Registry:       e.Registry,
		Addresses:      e.Addresses,
		Stack:          e.Stack,
		Numeric:        e.Numeric,
		Out:            e.Out,
		traceMode:      e.traceMode,
		handlers:       e.handlers.Clone(),
		requireLoader:  e.requireLoader,
		parser:         e.parser,
		gate:           e.gate,
		scriptDir:      e.scriptDir,
		ScriptRunner:   e.ScriptRunner,
		libraryEngines: e.libraryEngines,
	}
	switch mode {
	case ast.InterpretClassic:
		child.Store = e.Store.Clone()
	case ast.InterpretIsolated:
		child.Store = values.NewStore()
	}
	return child
}

// enrichInterpretError wraps a child-engine error with the INTERPRET frame
// coordinates (spec.md §7: "INTERPRET failures — child-engine errors,
// wrapped with the INTERPRET frame coordinates"): the line, the first line
// of the interpreted source, and the cause. No stack dump of the child
// engine is attached.
func (e *Engine) enrichInterpretError(cmd *ast.Command, source string, cause error) error {
	return newFaultWithCause(CategoryInterpret, cmd.LineNumber, e.sourceLine(cmd.LineNumber), e.sourceFilename,
		cause, "INTERPRET at line %d failed evaluating %q: %v", cmd.LineNumber, firstLine(source), cause)
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

func newFaultWithCause(category Category, line int, sourceLine, filename string, cause error, format string, args ...any) *Fault {
	f := newFault(category, line, sourceLine, filename, format, args...)
	f.Cause = cause
	return f
}
