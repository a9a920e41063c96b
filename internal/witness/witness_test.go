package witness

import (
	"testing"

	"github.com/zkregex-go/compiler/internal/elim"
	"github.com/zkregex-go/compiler/internal/frontend"
	"github.com/zkregex-go/compiler/internal/ir"
	"github.com/zkregex-go/compiler/internal/simulate"
)

func findRun(t *testing.T, pattern string, input []byte) *simulate.Run {
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
	run, err := simulate.Find(f, input)
	if err != nil {
		t.Fatalf("Find(%q, %q): %v", pattern, input, err)
	}
	return run
}

func TestGeneratePadsHaystackAndStateArrays(t *testing.T) {
	run := findRun(t, `ab`, []byte("ab"))
	w, err := Generate(run, []byte("ab"), 8, 4, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(w.Haystack) != 8 || len(w.Curr) != 4 || len(w.Next) != 4 {
		t.Fatalf("unexpected padded lengths: haystack=%d curr=%d next=%d", len(w.Haystack), len(w.Curr), len(w.Next))
	}
	for i := 2; i < 8; i++ {
		if w.Haystack[i] != 0 {
			t.Fatalf("expected zero padding at haystack[%d], got %d", i, w.Haystack[i])
		}
	}
}

func TestGenerateRejectsInputLongerThanH(t *testing.T) {
	run := findRun(t, `ab`, []byte("ab"))
	if _, err := Generate(run, []byte("ab"), 1, 4, nil); err == nil {
		t.Fatal("expected error when input exceeds H")
	}
}

func TestGenerateRejectsCaptureExceedingMaxBytes(t *testing.T) {
	run := findRun(t, `a(bbb)c`, []byte("abbbc"))
	_, err := Generate(run, []byte("abbbc"), 8, 8, []int{1})
	if err == nil {
		t.Fatal("expected InvalidCapture error when captured length exceeds declared max")
	}
}

func TestGeneratePopulatesCaptureGroupArrays(t *testing.T) {
	run := findRun(t, `a(b)c`, []byte("abc"))
	w, err := Generate(run, []byte("abc"), 8, 8, []int{1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(w.CaptureGroupID) != 1 {
		t.Fatalf("got %d group arrays, want 1", len(w.CaptureGroupID))
	}
	if w.CaptureGroupStartIndices[0] != 1 {
		t.Fatalf("got start index %d, want 1", w.CaptureGroupStartIndices[0])
	}
}

func TestCapturedLengthRunsToEndWhenNoCloseFires(t *testing.T) {
	if got := capturedLength(2, -1, 5); got != 3 {
		t.Fatalf("capturedLength(2, -1, 5) = %d, want 3", got)
	}
}

func TestVerifyAgainstReferenceMatchesComputedSpan(t *testing.T) {
	run := findRun(t, `a(b)c`, []byte("abc"))
	w, err := Generate(run, []byte("abc"), 8, 8, []int{1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := VerifyAgainstReference(w, []byte("abc"), `a(b)c`, 1); err != nil {
		t.Fatalf("VerifyAgainstReference: %v", err)
	}
}
