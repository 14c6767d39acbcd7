package require

import "strings"

// RewriteFunctionName applies an AS-clause to a declared function or
// operation name (spec.md §4.8 "AS-clause rewriting"). If the clause
// contains the literal marker "(.*)", the text preceding it is the prefix
// (e.g. "math_(.*)" for library exports "add"/"sub" yields "math_add" /
// "math_sub"); otherwise the whole clause is the prefix, with a trailing
// underscore auto-appended when the author omitted one so "AS MY" and
// "AS MY_" behave identically.
func RewriteFunctionName(asClause, original string) string {
	if asClause == "" {
		return original
	}
	if idx := strings.Index(asClause, "(.*)"); idx != -1 {
		return asClause[:idx] + original
	}
	prefix := asClause
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return prefix + original
}

// RewriteAddressTarget applies an AS-clause to a library's ADDRESS target
// name. Unlike function names, the clause is the exact replacement target
// name — prefixing doesn't apply, and pattern syntax is rejected: an
// ADDRESS target is a single literal token other code refers to verbatim,
// so there is nothing for a regex to match against.
func RewriteAddressTarget(asClause, original string) (string, error) {
	if asClause == "" {
		return original, nil
	}
	if strings.ContainsAny(asClause, `.*+?[](){}|^$\`) {
		return "", &InvalidAsClauseError{Clause: asClause}
	}
	return asClause, nil
}

// InvalidAsClauseError reports an AS-clause that used pattern syntax where
// an exact ADDRESS target name was required.
type InvalidAsClauseError struct {
	Clause string
}

func (e *InvalidAsClauseError) Error() string {
	return "AS clause \"" + e.Clause + "\" looks like a pattern; ADDRESS target renames must be an exact name"
}
