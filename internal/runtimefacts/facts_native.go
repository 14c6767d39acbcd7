//go:build !js

package runtimefacts

import "runtime"

// currentFacts reports the server/CLI host facts: a real Go runtime, no DOM,
// a real filesystem require-equivalent (REQUIRE's "local or module path"
// resolution strategy, spec.md §4.8).
func currentFacts() Facts {
	return Facts{
		Type:             TypeNodeJS,
		NodeVersion:      runtime.Version(),
		IsPkg:            false,
		HasWindow:        false,
		HasDOM:           false,
		HasNodeJSRequire: true,
	}
}
