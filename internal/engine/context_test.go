package engine

import (
	"testing"

	"github.com/rexxgo/rexxcore/pkg/ast"
)

func TestNewExecStackStartsWithOneMainFrame(t *testing.T) {
	s := NewExecStack("prog.rexx")
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
	if top := s.Top(); top.Type != FrameMain || top.SourceFilename != "prog.rexx" {
		t.Fatalf("Top() = %#v, want the main frame for prog.rexx", top)
	}
}

func TestPushAndPopTrackNestedFrames(t *testing.T) {
	s := NewExecStack("prog.rexx")
	s.Push(&Frame{Type: FrameCall, Name: "SUB"})
	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2 after one Push", s.Depth())
	}
	if top := s.Top(); top.Type != FrameCall || top.Name != "SUB" {
		t.Fatalf("Top() = %#v, want the SUB call frame", top)
	}

	popped := s.Pop()
	if popped == nil || popped.Name != "SUB" {
		t.Fatalf("Pop() = %#v, want the SUB frame back", popped)
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1 after popping back to main", s.Depth())
	}
}

func TestPopNeverRemovesTheMainFrame(t *testing.T) {
	s := NewExecStack("prog.rexx")
	if popped := s.Pop(); popped != nil {
		t.Fatalf("Pop() on a stack holding only the main frame = %#v, want nil", popped)
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1 (main frame survives)", s.Depth())
	}
}

func TestUpdateTopOnlyAffectsCurrentFrame(t *testing.T) {
	s := NewExecStack("prog.rexx")
	s.UpdateTop(5, "SAY 'hi'")
	s.Push(&Frame{Type: FrameCall, Name: "SUB"})
	s.UpdateTop(10, "RETURN 1")

	dump := s.Dump()
	if len(dump) != 2 {
		t.Fatalf("Dump() returned %d frames, want 2", len(dump))
	}
	if dump[0].LineNumber != 5 || dump[0].SourceLine != "SAY 'hi'" {
		t.Fatalf("main frame = %#v, want line 5 preserved under the SUB frame", dump[0])
	}
	if dump[1].LineNumber != 10 || dump[1].SourceLine != "RETURN 1" {
		t.Fatalf("SUB frame = %#v, want line 10", dump[1])
	}
}

// TestDepthReturnsToOneAfterRun exercises spec.md §8's invariant that the
// execution stack depth after a run returns is one (the surviving main
// frame) even after a CALL pushed and popped a frame along the way.
func TestDepthReturnsToOneAfterRun(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		callCmd(1, "SUB"),
		labelCmd(2, "SUB"),
		returnCmd(3, lit(int64(1))),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.execStack.Depth() != 1 {
		t.Fatalf("execStack.Depth() = %d after Run returned, want 1", e.execStack.Depth())
	}
}
