package engine

import (
	"fmt"

	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// Subroutine is a discovered label-delimited command body (spec.md §3
// "Subroutine"): every command from its LABEL up to and including the
// next RETURN, or up to (but not including) the next LABEL.
type Subroutine struct {
	Name  string
	Start int
	End   int // exclusive
}

// SubroutineTable is C5's discovery-pass result: every label's position and
// the subroutine body rooted there.
type SubroutineTable struct {
	labels map[string]int
	bodies map[string]*Subroutine
}

// discover performs the single linear pre-scan spec.md §4.4 describes.
func discover(commands []*ast.Command) *SubroutineTable {
	t := &SubroutineTable{labels: map[string]int{}, bodies: map[string]*Subroutine{}}
	for i, cmd := range commands {
		if cmd.Type != ast.Label {
			continue
		}
		name := values.CanonicalName(cmd.LabelName)
		t.labels[name] = i

		end := len(commands)
		for j := i + 1; j < len(commands); j++ {
			if commands[j].Type == ast.Label {
				end = j
				break
			}
			if commands[j].Type == ast.Return {
				end = j + 1
				break
			}
		}
		t.bodies[name] = &Subroutine{Name: name, Start: i + 1, End: end}
	}
	return t
}

// LabelIndex returns the command index of a LABEL node, used by SIGNAL's
// jumpToLabel (spec.md §4.5 step 2).
func (t *SubroutineTable) LabelIndex(name string) (int, bool) {
	idx, ok := t.labels[values.CanonicalName(name)]
	return idx, ok
}

// Lookup returns the discovered subroutine body for name.
func (t *SubroutineTable) Lookup(name string) (*Subroutine, bool) {
	s, ok := t.bodies[values.CanonicalName(name)]
	return s, ok
}

// CallFrame is pushed per CALL/callSubroutine invocation (spec.md §3 "Call
// Frame"): the argument vector ARG() reads from, and the pre-call RESULT
// to restore if the call terminates without an explicit RETURN value.
type CallFrame struct {
	Args       []values.Value
	PrevResult values.Value
}

// execCall implements the CALL command (spec.md §4.4): evaluate arguments
// left to right, then either invoke the external-script executor (out of
// scope for this core beyond the hook point — ScriptRunner) or push a call
// frame and execute the discovered subroutine body against the caller's
// variable store.
func (e *Engine) execCall(cmd *ast.Command) (ControlResult, error) {
	args := make([]values.Value, len(cmd.Arguments))
	for i, argExpr := range cmd.Arguments {
		v, err := e.evaluateExpression(argExpr)
		if err != nil {
			return Continue, err
		}
		args[i] = v
	}

	if e.ScriptRunner != nil && looksLikeScriptPath(cmd.Subroutine) {
		v, err := e.ScriptRunner(cmd.Subroutine, args)
		if err != nil {
			return Continue, err
		}
		e.Store.Set("RESULT", v)
		return Continue, nil
	}

	v, err := e.callSubroutine(cmd.Subroutine, args)
	if err != nil {
		return Continue, err
	}
	e.Store.Set("RESULT", v)
	return Continue, nil
}

func looksLikeScriptPath(name string) bool {
	for _, suffix := range []string{".rexx", ".rx"} {
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// callSubroutine runs a discovered subroutine body by name. The body runs
// against the engine's one variable store, so it reads and writes the
// caller's variables directly; no child scope is created, and the
// arguments are reachable only through ARG() and PARSE ARG via the pushed
// call frame. It is also how REQUIRE'd functions reach back
// into a library's own child engine (internal/engine/require_stmt.go).
func (e *Engine) callSubroutine(name string, args []values.Value) (values.Value, error) {
	sub, ok := e.subroutines.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("undefined subroutine: %s", name)
	}

	prevResult := e.Store.Get("RESULT")
	e.callStack = append(e.callStack, &CallFrame{Args: args, PrevResult: prevResult})
	e.execStack.Push(&Frame{Type: FrameCall, Name: name, SourceFilename: e.sourceFilename})
	prevSub := e.currentSubroutine
	e.currentSubroutine = name
	defer func() {
		e.currentSubroutine = prevSub
		e.callStack = e.callStack[:len(e.callStack)-1]
		e.execStack.Pop()
	}()

	result := values.Value(values.Str{V: ""})
	body := e.commands[sub.Start:sub.End]
	for i := 0; i < len(body); i++ {
		cmd := body[i]
		e.execStack.UpdateTop(cmd.LineNumber, e.sourceLine(cmd.LineNumber))
		cr, err := e.execCommand(cmd)
		if err != nil {
			return nil, err
		}
		switch cr.Kind {
		case KindReturned:
			result = cr.Value
			return result, nil
		case KindExited:
			return nil, &exitSignal{Code: cr.Code}
		case KindJump:
			idx, ok := e.subroutines.LabelIndex(cr.Label)
			if !ok {
				return nil, fmt.Errorf("SIGNAL target label not found: %s", cr.Label)
			}
			// A jump out of a subroutine body transfers to a top-level
			// label; since the label may not belong to this subroutine,
			// bubble it to the caller (C14) rather than looping locally.
			if idx < sub.Start || idx >= sub.End {
				return nil, &jumpSignal{Label: cr.Label}
			}
			i = idx - sub.Start
		}
	}
	return result, nil
}

// exitSignal/jumpSignal carry EXIT/cross-body SIGNAL transfers up through
// Go's normal error return, since those two cases must unwind arbitrarily
// many nested DO/IF/SELECT/CALL frames — exactly the "tagged exception"
// spec.md §4.1 describes for EXIT, generalized to a typed error rather
// than a panic/recover pair.
type exitSignal struct{ Code int }

func (s *exitSignal) Error() string { return fmt.Sprintf("EXIT %d", s.Code) }

type jumpSignal struct{ Label string }

func (s *jumpSignal) Error() string { return "SIGNAL " + s.Label }

// argFunction backs the ARG() built-in (spec.md §4.4): ARG() -> count,
// ARG(n) -> 1-based value or empty string, ARG(n,'E') -> exists, ARG(n,'O')
// -> omitted.
func (e *Engine) argFunction(args []values.Value) (values.Value, error) {
	var frame *CallFrame
	if len(e.callStack) > 0 {
		frame = e.callStack[len(e.callStack)-1]
	}
	if len(args) == 0 {
		if frame == nil {
			return values.Int{V: 0}, nil
		}
		return values.Int{V: int64(len(frame.Args))}, nil
	}

	n, ok := values.AsNumeric(args[0])
	if !ok || frame == nil {
		return values.Str{V: ""}, nil
	}
	idx := int(n) - 1

	mode := "V"
	if len(args) > 1 {
		mode = values.CanonicalName(args[1].String())
	}
	exists := idx >= 0 && idx < len(frame.Args)

	switch mode {
	case "E":
		return values.Bool{V: exists}, nil
	case "O":
		return values.Bool{V: !exists}, nil
	default:
		if !exists {
			return values.Str{V: ""}, nil
		}
		return frame.Args[idx], nil
	}
}
