package simulate

import (
	"testing"

	"github.com/zkregex-go/compiler/internal/elim"
	"github.com/zkregex-go/compiler/internal/frontend"
	"github.com/zkregex-go/compiler/internal/ir"
	"github.com/zkregex-go/compiler/internal/nfa"
)

func compileToFinal(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	prog, err := frontend.NewAdapter().Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	g, err := ir.Build(pattern, prog)
	if err != nil {
		t.Fatalf("Build(%q): %v", pattern, err)
	}
	f, err := elim.Eliminate(g)
	if err != nil {
		t.Fatalf("Eliminate(%q): %v", pattern, err)
	}
	return f
}

func TestFindMatchesEarliestStart(t *testing.T) {
	f := compileToFinal(t, `ab`)
	run, err := Find(f, []byte("xxabxx"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if run.Span.Start != 2 || run.Span.Length != 2 {
		t.Fatalf("got span %+v, want start=2 length=2", run.Span)
	}
}

func TestFindPrefersLongestRunAtEarliestStart(t *testing.T) {
	f := compileToFinal(t, `a+`)
	run, err := Find(f, []byte("aaab"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if run.Span.Start != 0 || run.Span.Length != 3 {
		t.Fatalf("got span %+v, want start=0 length=3", run.Span)
	}
}

func TestFindReturnsNoMatchError(t *testing.T) {
	f := compileToFinal(t, `xyz`)
	_, err := Find(f, []byte("abc"))
	if err == nil {
		t.Fatal("expected NoMatch error")
	}
}

func TestFindRecordsCaptureEventsOnSteps(t *testing.T) {
	f := compileToFinal(t, `a(b)c`)
	run, err := Find(f, []byte("abc"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	var sawStart, sawEnd bool
	for _, step := range run.Steps {
		for _, ev := range step.Events {
			if ev.Group != 1 {
				t.Fatalf("unexpected group id %d", ev.Group)
			}
			if ev.IsStart {
				sawStart = true
			} else {
				sawEnd = true
			}
		}
	}
	if !sawStart || !sawEnd {
		t.Fatalf("expected both capture boundaries on the run, sawStart=%v sawEnd=%v", sawStart, sawEnd)
	}
}

func TestFindMatchesEmptyStringForStarPattern(t *testing.T) {
	f := compileToFinal(t, `a*`)
	run, err := Find(f, []byte(""))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if run.Span.Length != 0 {
		t.Fatalf("got length %d, want 0", run.Span.Length)
	}
}
