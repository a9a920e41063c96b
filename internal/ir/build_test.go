package ir

import (
	"testing"

	"github.com/zkregex-go/compiler/internal/frontend"
)

func TestBuildLiteralHasByteEdgeAndAcceptState(t *testing.T) {
	prog, err := frontend.NewAdapter().Parse(`ab`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := Build(`ab`, prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(g.AcceptStates) == 0 {
		t.Fatal("expected at least one accept state")
	}
	if len(g.StartStates) == 0 {
		t.Fatal("expected at least one start state")
	}
}

func TestBuildCaptureGroupRecordsEvents(t *testing.T) {
	prog, err := frontend.NewAdapter().Parse(`a(b)c`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := Build(`a(b)c`, prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NumCaptureGroups != 1 {
		t.Fatalf("NumCaptureGroups = %d, want 1", g.NumCaptureGroups)
	}

	var sawStart, sawEnd bool
	for _, s := range g.States {
		for _, events := range s.Captures {
			for _, e := range events {
				if e.Group != 1 {
					t.Fatalf("unexpected capture group id %d", e.Group)
				}
				if e.IsStart {
					sawStart = true
				} else {
					sawEnd = true
				}
			}
		}
	}
	if !sawStart || !sawEnd {
		t.Fatalf("expected both a start and end capture event, sawStart=%v sawEnd=%v", sawStart, sawEnd)
	}
}

func TestValidateRejectsEmptyGraph(t *testing.T) {
	g := NewGraph(``, 0)
	if err := g.Validate(); err == nil {
		t.Fatal("expected error for empty graph")
	}
}

func TestValidateRejectsMissingStartState(t *testing.T) {
	g := NewGraph(`x`, 1)
	g.AddAccept(0)
	if err := g.Validate(); err == nil {
		t.Fatal("expected error for graph with no start state")
	}
}

func TestCaptureEventLessOrdersCloseBeforeOpenOfSameGroup(t *testing.T) {
	open := CaptureEvent{Group: 1, IsStart: true}
	close_ := CaptureEvent{Group: 1, IsStart: false}
	if !close_.Less(open) {
		t.Fatal("expected close event to sort before open event of the same group")
	}
	if open.Less(close_) {
		t.Fatal("open event should not sort before close event of the same group")
	}
}
