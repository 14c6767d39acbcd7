//go:build js

package runtimefacts

// currentFacts reports the browser host facts: no filesystem require, a DOM
// and window are assumed present (the wasm entry point is only built for a
// browser target, never a headless js runner).
func currentFacts() Facts {
	return Facts{
		Type:             TypeBrowser,
		NodeVersion:      "",
		IsPkg:            false,
		HasWindow:        true,
		HasDOM:           true,
		HasNodeJSRequire: false,
	}
}
