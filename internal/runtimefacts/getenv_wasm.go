//go:build js

package runtimefacts

// Getenv always returns empty in a browser embedding (spec.md §6: "returns
// empty in browser").
func Getenv(name string) string {
	return ""
}
