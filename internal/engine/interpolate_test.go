package engine

import (
	"testing"

	"github.com/rexxgo/rexxcore/internal/values"
)

func TestInterpolateSubstitutesEachSpan(t *testing.T) {
	resolve := func(name string) values.Value {
		if name == "NAME" {
			return values.Str{V: "World"}
		}
		return values.Str{V: name}
	}
	got := DefaultInterpolator.Interpolate("Hello, {NAME}! ({ OTHER })", resolve)
	want := "Hello, World! (OTHER)"
	if got != want {
		t.Fatalf("Interpolate() = %q, want %q", got, want)
	}
}

func TestInterpolateUnterminatedSpanIsLeftVerbatim(t *testing.T) {
	got := DefaultInterpolator.Interpolate("Hello, {NAME", func(name string) values.Value {
		return values.Str{V: "unused"}
	})
	if got != "Hello, {NAME" {
		t.Fatalf("Interpolate() = %q, want the template unchanged", got)
	}
}

func TestInterpolateEmptyDelimitersReturnsTemplateUnchanged(t *testing.T) {
	in := Interpolator{}
	got := in.Interpolate("{NAME}", func(name string) values.Value {
		return values.Str{V: "should not be called"}
	})
	if got != "{NAME}" {
		t.Fatalf("Interpolate() = %q, want template returned as-is", got)
	}
}

func TestInterpolateWithStoreReadsEngineVariables(t *testing.T) {
	e := New()
	e.Store.Set("GREETING", values.Str{V: "hi"})
	got := e.interpolateWithStore("{GREETING} there, {UNSET}")
	if got != "hi there, UNSET" {
		t.Fatalf("interpolateWithStore() = %q, want %q", got, "hi there, UNSET")
	}
}
