package engine

import (
	"strings"

	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// execParse implements PARSE ARG/VAR/PULL/VALUE (spec.md §3 "Command
// Node": PARSE). The source string is split across the template's fields
// using the literal delimiter that ends each field (or whitespace, when none
// is given), classic REXX word-parsing: every field but the last takes one
// "word", the last field takes the remainder.
func (e *Engine) execParse(cmd *ast.Command) (ControlResult, error) {
	var source string

	switch cmd.ParseSource {
	case ast.ParseArg:
		if len(e.callStack) > 0 {
			frame := e.callStack[len(e.callStack)-1]
			parts := make([]string, len(frame.Args))
			for i, a := range frame.Args {
				parts[i] = a.String()
			}
			source = strings.Join(parts, " ")
		}
	case ast.ParseVar:
		source = e.Store.Get(cmd.ParseTemplate[0].Variable).String()
	case ast.ParsePull:
		if v, ok := e.Stack.Pull(); ok {
			source = v.String()
		}
	case ast.ParseValue:
		v, err := e.evaluateExpression(cmd.ParseExpr)
		if err != nil {
			return Continue, err
		}
		source = v.String()
	}

	assignParseTemplate(e, cmd.ParseTemplate, source)
	return Continue, nil
}

// assignParseTemplate walks the template fields, splitting source on
// whitespace by default or the field's literal delimiter when given, and
// binds each variable in turn. The final field always receives whatever
// remains, un-split.
func assignParseTemplate(e *Engine, fields []*ast.ParseField, source string) {
	rest := source
	for i, field := range fields {
		last := i == len(fields)-1
		var word string
		if last {
			word = strings.TrimLeft(rest, " \t")
		} else if field.Literal != "" {
			idx := strings.Index(rest, field.Literal)
			if idx == -1 {
				word, rest = rest, ""
			} else {
				word, rest = rest[:idx], rest[idx+len(field.Literal):]
			}
		} else {
			rest = strings.TrimLeft(rest, " \t")
			idx := strings.IndexAny(rest, " \t")
			if idx == -1 {
				word, rest = rest, ""
			} else {
				word, rest = rest[:idx], rest[idx+1:]
			}
		}
		if field.Variable != "" {
			e.Store.Set(field.Variable, values.Str{V: word})
		}
	}
}
