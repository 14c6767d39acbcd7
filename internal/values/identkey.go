package values

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upperCaser performs Unicode-correct upper-casing for variable-name
// canonicalization (spec.md §3: "Names are case-insensitive at the surface
// but stored canonically (upper-case)"). A byte-wise strings.ToUpper is
// ASCII-only; cases.Upper handles the full Unicode case-folding table, which
// matters for any embedding host whose scripts touch non-ASCII identifiers.
//
// Grounded on pkg/ident's documented Normalize/Equal contract (only its
// _test.go files survived retrieval, so there is no source to adapt
// in-place), rebuilt here against a real Unicode case-folding dependency
// instead of a hand-rolled fold.
var upperCaser = cases.Upper(language.Und)

// CanonicalName upper-cases name for use as a variable-store key. Compound
// names (stem.tail) are canonicalized whole, since the dot is part of the
// literal key (spec.md §3), not a path separator.
func CanonicalName(name string) string {
	return upperCaser.String(name)
}
