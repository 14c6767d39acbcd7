package engine

import (
	"fmt"
	"strings"

	"github.com/rexxgo/rexxcore/internal/values"
)

// splitCallback recognizes the two REXX-syntax callback shapes spec.md
// §4.11 describes: an explicit arrow form ("n => n // 2 = 0") naming its
// own parameter, or an implicit form (bare "ITEM // 2 = 0") that binds the
// element under the conventional name ITEM.
func splitCallback(spec string) (param, body string) {
	if idx := strings.Index(spec, "=>"); idx != -1 {
		return strings.TrimSpace(spec[:idx]), strings.TrimSpace(spec[idx+2:])
	}
	return "ITEM", strings.TrimSpace(spec)
}

// arrayFilter implements ARRAY_FILTER (spec.md C12): keep every element for
// which the callback evaluates truthy.
func (e *Engine) arrayFilter(args []values.Value) (values.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("ARRAY_FILTER requires a collection and a callback")
	}
	items, err := elementsOf(args[0])
	if err != nil {
		return nil, err
	}
	param, body := splitCallback(args[1].String())

	var kept []values.Value
	for _, item := range items {
		v, err := e.evalCallbackExpr(body, param, item)
		if err != nil {
			return nil, err
		}
		if values.Truthy(v) {
			kept = append(kept, item)
		}
	}
	return values.Seq{Items: kept}, nil
}

// arrayMap implements ARRAY_MAP (spec.md C12): replace each element with
// the callback's result.
func (e *Engine) arrayMap(args []values.Value) (values.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("ARRAY_MAP requires a collection and a callback")
	}
	items, err := elementsOf(args[0])
	if err != nil {
		return nil, err
	}
	param, body := splitCallback(args[1].String())

	out := make([]values.Value, len(items))
	for i, item := range items {
		v, err := e.evalCallbackExpr(body, param, item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return values.Seq{Items: out}, nil
}
