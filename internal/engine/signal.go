package engine

import (
	"fmt"

	"github.com/rexxgo/rexxcore/internal/values"
)

// SignalHandler is one installed SIGNAL ON entry (spec.md §3 "Error Handler
// Table").
type SignalHandler struct {
	Label   string
	Enabled bool
}

// HandlerTable maps a condition name to its handler. SIGNAL ON/OFF
// idempotence (spec.md §8 invariant 6) falls out naturally: installing the
// same condition/label twice just overwrites the map entry.
type HandlerTable struct {
	byCondition map[string]*SignalHandler
}

// NewHandlerTable creates an empty table; the conditions spec.md §3 names
// (ERROR, SYNTAX, HALT, NOVALUE, FAILURE) are installed on demand, not
// pre-populated, since an uninstalled condition behaves identically to a
// disabled one.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{byCondition: map[string]*SignalHandler{}}
}

// On installs (or idempotently re-installs) a handler for cond.
func (h *HandlerTable) On(cond, label string) {
	h.byCondition[cond] = &SignalHandler{Label: label, Enabled: true}
}

// Off removes cond's handler entirely, label included; a later
// `SIGNAL ON <cond>` has to name its label again.
func (h *HandlerTable) Off(cond string) {
	delete(h.byCondition, cond)
}

// Get returns the handler for cond, if installed and enabled.
func (h *HandlerTable) Get(cond string) (*SignalHandler, bool) {
	if cond == "" {
		return nil, false
	}
	handler, ok := h.byCondition[cond]
	if !ok || !handler.Enabled {
		return nil, false
	}
	return handler, true
}

// Clone returns an independent copy, used when INTERPRET spins up a child
// engine (spec.md §4.9: "a cloned error-handler map").
func (h *HandlerTable) Clone() *HandlerTable {
	clone := NewHandlerTable()
	for cond, handler := range h.byCondition {
		cp := *handler
		clone.byCondition[cond] = &cp
	}
	return clone
}

// errorContext is the rich diagnostic snapshot spec.md §4.5 describes,
// readable only from within a SIGNAL handler via the ERROR_* built-ins.
type errorContext struct {
	Line      int
	Message   string
	Function  string
	Command   string
	Variables map[string]values.Value
}

// handleFault implements C6's dispatch on an exception raised during
// command execution (spec.md §4.5 steps 1–4). It returns (jumpResult, nil)
// when a handler catches the fault, or (Continue, err) to propagate it
// unhandled. An unhandled fault is returned as the *Fault itself, carrying
// its source line; an unhandled REQUIRE fault is returned as a plain
// "REQUIRE: <message>" error without the line.
func (e *Engine) handleFault(fault *Fault) (ControlResult, error) {
	cond := conditionFor(fault.Category)
	if handler, ok := e.handlers.Get(cond); ok && cond != "" {
		e.Store.Set("RC", values.Int{V: 1})
		e.Store.Set("ERRORTEXT", values.Str{V: fault.Message})
		e.Store.Set("SIGL", values.Int{V: int64(fault.Line)})
		e.lastError = &errorContext{
			Line:      fault.Line,
			Message:   fault.Message,
			Function:  e.currentSubroutine,
			Command:   fault.SourceLine,
			Variables: e.Store.Snapshot().ToMap(),
		}
		return Jump(handler.Label), nil
	}
	if fault.Category == CategoryRequire {
		return Continue, fmt.Errorf("REQUIRE: %s", fault.Message)
	}
	return Continue, fault
}
