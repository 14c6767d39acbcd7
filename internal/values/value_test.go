package values

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Str{"0"}, false},
		{Str{""}, false},
		{Str{"0 "}, true}, // only the exact string "0" is false
		{Str{"hello"}, true},
		{Int{0}, false},
		{Int{1}, true},
		{Float{0}, false},
		{Bool{false}, false},
		{Bool{true}, true},
		{Absent{Name: "X"}, false},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestAsNumeric(t *testing.T) {
	if f, ok := AsNumeric(Str{"  42.5  "}); !ok || f != 42.5 {
		t.Errorf("AsNumeric(42.5) = %v, %v", f, ok)
	}
	if _, ok := AsNumeric(Str{"abc"}); ok {
		t.Error("AsNumeric(abc) should fail")
	}
	if _, ok := AsNumeric(Str{""}); ok {
		t.Error("AsNumeric(empty) should fail")
	}
	if f, ok := AsNumeric(Int{7}); !ok || f != 7 {
		t.Errorf("AsNumeric(Int 7) = %v, %v", f, ok)
	}
}

func TestAbsentEchoesUppercaseName(t *testing.T) {
	s := NewStore()
	v := s.Get("foo")
	a, ok := v.(Absent)
	if !ok {
		t.Fatalf("expected Absent, got %T", v)
	}
	if a.String() != "FOO" {
		t.Errorf("Absent.String() = %q, want FOO", a.String())
	}
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", Int{2})
	m.Set("a", Int{1})
	m.Set("b", Int{20}) // overwrite must not move position
	want := []string{"b", "a"}
	got := m.Keys()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	v, _ := m.Get("b")
	if v.(Int).V != 20 {
		t.Errorf("overwrite did not take effect: %v", v)
	}
}
