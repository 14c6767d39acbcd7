package engine

import (
	"strings"

	"github.com/rexxgo/rexxcore/internal/values"
)

// Interpolator implements C3: a pluggable delimiter pattern over a
// template string, substituting each `Open...Close` span with the result
// of resolving its contents as a variable name. ADDRESS handlers that
// prefer to do their own substitution receive one via SourceContext and
// call Interpolate themselves (spec.md §6: "the handler may opt to do its
// own interpolation by calling interpolation.interpolate(template,
// resolver)").
type Interpolator struct {
	Open, Close string
}

// DefaultInterpolator uses REXX-JS-style `{name}` delimiters.
var DefaultInterpolator = Interpolator{Open: "{", Close: "}"}

// Resolver looks up a variable by name, REXX-style: it cannot fail —
// absent names resolve to their own uppercase form, matching
// values.Store.Get's contract.
type Resolver func(name string) values.Value

// Interpolate replaces every `{name}` span in template with the resolved
// value's string form.
func (in Interpolator) Interpolate(template string, resolve Resolver) string {
	if in.Open == "" || in.Close == "" {
		return template
	}
	var sb strings.Builder
	rest := template
	for {
		start := strings.Index(rest, in.Open)
		if start == -1 {
			sb.WriteString(rest)
			break
		}
		end := strings.Index(rest[start+len(in.Open):], in.Close)
		if end == -1 {
			sb.WriteString(rest)
			break
		}
		end += start + len(in.Open)
		sb.WriteString(rest[:start])
		name := rest[start+len(in.Open) : end]
		sb.WriteString(resolve(strings.TrimSpace(name)).String())
		rest = rest[end+len(in.Close):]
	}
	return sb.String()
}

// interpolateWithStore is the engine's default resolver, reading straight
// from the variable store (absent names echo their own uppercase name per
// values.Store.Get).
func (e *Engine) interpolateWithStore(template string) string {
	return DefaultInterpolator.Interpolate(template, func(name string) values.Value {
		return e.Store.Get(name)
	})
}
