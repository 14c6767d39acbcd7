package require

import "testing"

func TestBuiltinResolverAppliesOnlyToKnownNames(t *testing.T) {
	r := NewBuiltinResolver(map[string]string{"json": "-- json source"})
	if !r.Applies(Ref{Name: "json"}) {
		t.Fatal("expected Applies(json) to be true")
	}
	if r.Applies(Ref{Name: "unknown"}) {
		t.Fatal("expected Applies(unknown) to be false")
	}
	if r.Applies(Ref{Name: "json", IsPath: true}) {
		t.Fatal("a path reference is never a builtin, even if the name matches")
	}
}

func TestBuiltinResolverResolveReturnsSource(t *testing.T) {
	r := NewBuiltinResolver(map[string]string{"json": "-- json source"})
	lib, err := r.Resolve(Ref{Name: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lib.Code != "-- json source" {
		t.Fatalf("Code = %q, want the builtin source", lib.Code)
	}
}

func TestBuiltinResolverResolveUnknownIsAnError(t *testing.T) {
	r := NewBuiltinResolver(map[string]string{})
	if _, err := r.Resolve(Ref{Name: "missing"}); err == nil {
		t.Fatal("expected an error resolving an unregistered name")
	}
}
