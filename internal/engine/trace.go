package engine

import "github.com/rexxgo/rexxcore/internal/values"

// Mode is a TRACE setting (spec.md §4.10).
type Mode string

const (
	TraceOff          Mode = "OFF"
	TraceAll          Mode = "A"
	TraceResults      Mode = "R"
	TraceIntermediate Mode = "I"
	TraceOffAlias     Mode = "O"
	TraceNormal       Mode = "NORMAL"
)

// RecordKind tags what kind of command produced a trace record.
type RecordKind string

const (
	RecordInstruction    RecordKind = "instruction"
	RecordAssignment     RecordKind = "assignment"
	RecordCall           RecordKind = "call"
	RecordAddressCommand RecordKind = "address_command"
	RecordAddressHeredoc RecordKind = "address_heredoc"
)

// Record is one entry of the in-memory trace log (spec.md §4.10).
type Record struct {
	Message    string
	Kind       RecordKind
	LineNumber int
	Result     values.Value
}

// emitTrace appends a record when tracing is active for kind. TraceOff and
// TraceOffAlias suppress everything; every other mode records everything
// the core emits — this core does not distinguish R/I/A granularity beyond
// "traced or not", since spec.md does not define per-mode filtering rules
// beyond naming the modes.
func (e *Engine) emitTrace(kind RecordKind, message string, line int, result values.Value) {
	if e.traceMode == TraceOff || e.traceMode == TraceOffAlias || e.traceMode == "" {
		return
	}
	e.traceLog = append(e.traceLog, Record{Message: message, Kind: kind, LineNumber: line, Result: result})
}

// DumpTrace returns the accumulated trace ring (SPEC_FULL.md supplement 3:
// the `DUMP TRACE` built-in operation's backing data).
func (e *Engine) DumpTrace() []Record {
	out := make([]Record, len(e.traceLog))
	copy(out, e.traceLog)
	return out
}
