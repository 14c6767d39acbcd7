package engine

import (
	"time"

	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// retryDeadline bounds total time spent retrying a RETRY_ON_STALE block
// (spec.md §5: "a total deadline, default 10s").
const retryDeadline = 10 * time.Second

// execRetryOnStale implements RETRY_ON_STALE (spec.md §5): re-run the body
// whenever it raises a CategoryRetriable fault, preserving the named
// variables' values across attempts, until the body succeeds, raises a
// different fault, or the deadline elapses.
func (e *Engine) execRetryOnStale(cmd *ast.Command) (ControlResult, error) {
	preserved := make(map[string]values.Value, len(cmd.RetryPreserve))
	for _, name := range cmd.RetryPreserve {
		preserved[name] = e.Store.Get(name)
	}

	deadline := time.Now().Add(retryDeadline)
	for {
		for name, v := range preserved {
			e.Store.Set(name, v)
		}

		cr, err := e.execBody(cmd.RetryBody)
		if err == nil {
			return cr, nil
		}

		fault, ok := err.(*Fault)
		if !ok || fault.Category != CategoryRetriable {
			return Continue, err
		}
		if time.Now().After(deadline) {
			return Continue, fault
		}
	}
}
