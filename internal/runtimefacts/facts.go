// Package runtimefacts populates the pre-populated RUNTIME.* variable-store
// entries spec.md §6 requires at startup, plus GETENV.
//
// Grounded on github.com/cwbudde/go-dws pkg/platform's native/wasm
// build-tag split (only _test.go files survived retrieval for that package,
// confirming the pattern without giving source to copy): a common Facts()
// function whose return value differs per build target, selected by
// facts_native.go / facts_wasm.go build constraints rather than a runtime
// type-switch.
package runtimefacts

import "github.com/rexxgo/rexxcore/internal/values"

// Type values for RUNTIME.TYPE (spec.md §6).
const (
	TypeNodeJS  = "nodejs"
	TypePkg     = "pkg"
	TypeBrowser = "browser"
	TypeUnknown = "unknown"
)

// Facts holds the runtime environment facts exposed under RUNTIME.* names.
type Facts struct {
	Type            string
	NodeVersion     string
	IsPkg           bool
	HasWindow       bool
	HasDOM          bool
	HasNodeJSRequire bool
}

// Populate writes every RUNTIME.* fact into store, as the engine does once
// at interpreter construction (spec.md §6).
func (f Facts) Populate(set func(name string, v values.Value)) {
	set("RUNTIME.TYPE", values.Str{V: f.Type})
	set("RUNTIME.NODE_VERSION", values.Str{V: f.NodeVersion})
	set("RUNTIME.IS_PKG", values.Bool{V: f.IsPkg})
	set("RUNTIME.HAS_WINDOW", values.Bool{V: f.HasWindow})
	set("RUNTIME.HAS_DOM", values.Bool{V: f.HasDOM})
	set("RUNTIME.HAS_NODEJS_REQUIRE", values.Bool{V: f.HasNodeJSRequire})
}

// Current returns the Facts for the build this binary was compiled for; see
// facts_native.go and facts_wasm.go.
func Current() Facts {
	return currentFacts()
}
