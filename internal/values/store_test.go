package values

import "testing"

func TestStoreCaseInsensitive(t *testing.T) {
	s := NewStore()
	s.Set("myVar", Str{"hello"})
	got := s.Get("MYVAR")
	if got.String() != "hello" {
		t.Errorf("case-insensitive lookup failed: %v", got)
	}
}

func TestStoreCompoundNameIsLiteralKey(t *testing.T) {
	s := NewStore()
	s.Set("stem.1", Int{1})
	s.Set("stem.2", Int{2})
	if !s.Has("STEM.1") || !s.Has("stem.2") {
		t.Error("compound names should be literal, case-insensitive keys")
	}
	if s.Has("stem") {
		t.Error("compound assignment must not create a bare 'stem' entry")
	}
}

func TestStoreUnsetRestoresAbsence(t *testing.T) {
	s := NewStore()
	s.Set("i", Int{5})
	s.Unset("i")
	if s.Has("i") {
		t.Error("Unset should remove the variable")
	}
	v := s.Get("i")
	if v.String() != "I" {
		t.Errorf("after Unset, Get should echo uppercase name, got %v", v)
	}
}

func TestStoreCloneIsIndependent(t *testing.T) {
	parent := NewStore()
	parent.Set("x", Int{1})
	child := parent.Clone()
	child.Set("x", Int{2})
	if parent.Get("x").(Int).V != 1 {
		t.Error("clone must not affect parent")
	}
	if child.Get("x").(Int).V != 2 {
		t.Error("child should have its own value")
	}
}

func TestEvalStackLIFOandFIFO(t *testing.T) {
	s := NewEvalStack()
	s.Push(Int{1})
	s.Push(Int{2})
	v, ok := s.Pull()
	if !ok || v.(Int).V != 2 {
		t.Errorf("LIFO Pull should return last Push, got %v", v)
	}

	s2 := NewEvalStack()
	s2.Queue(Int{1})
	s2.Queue(Int{2})
	v2, ok2 := s2.Pull()
	if !ok2 || v2.(Int).V != 1 {
		t.Errorf("FIFO Pull should return first Queue, got %v", v2)
	}
}
