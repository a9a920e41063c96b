package circom

import (
	"strings"
	"testing"

	"github.com/zkregex-go/compiler/internal/coalesce"
	"github.com/zkregex-go/compiler/internal/elim"
	"github.com/zkregex-go/compiler/internal/frontend"
	"github.com/zkregex-go/compiler/internal/ir"
)

func TestEmitProducesValidTemplateShape(t *testing.T) {
	adapter := frontend.NewAdapter()
	prog, err := adapter.Parse(`ab+`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	graph, err := ir.Build(`ab+`, prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f, err := elim.Eliminate(graph)
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	transitions := coalesce.Coalesce(f)

	code, err := Emit(f, transitions, Options{TemplateName: "MatchAB", H: 16, M: 8})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	for _, want := range []string{
		"template MatchAB()",
		"signal input inHaystack[16]",
		"signal input currStates[8]",
		"signal output isValid",
		"template SelectSubArray",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("emitted code missing %q", want)
		}
	}
}

func TestEmitRejectsEmptyTemplateName(t *testing.T) {
	adapter := frontend.NewAdapter()
	prog, _ := adapter.Parse(`a`)
	graph, _ := ir.Build(`a`, prog)
	f, err := elim.Eliminate(graph)
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	_, err = Emit(f, coalesce.Coalesce(f), Options{TemplateName: "", H: 4, M: 4})
	if err == nil {
		t.Fatal("expected error for empty template name")
	}
}

func TestEmitIncludesCaptureSignalsWhenGroupsPresent(t *testing.T) {
	adapter := frontend.NewAdapter()
	prog, err := adapter.Parse(`a(b)c`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	graph, err := ir.Build(`a(b)c`, prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f, err := elim.Eliminate(graph)
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	transitions := coalesce.Coalesce(f)

	code, err := Emit(f, transitions, Options{
		TemplateName:     "MatchABC",
		H:                16,
		M:                8,
		MaxBytesPerGroup: []int{4},
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	for _, want := range []string{
		"signal input captureGroup1Id",
		"signal input captureGroup1Start",
		"signal output capture1[4]",
		"captureGroupStartIndices",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("emitted code missing %q", want)
		}
	}
}

func TestEmitRejectsZeroMaxBytes(t *testing.T) {
	adapter := frontend.NewAdapter()
	prog, _ := adapter.Parse(`a(b)c`)
	graph, _ := ir.Build(`a(b)c`, prog)
	f, err := elim.Eliminate(graph)
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	_, err = Emit(f, coalesce.Coalesce(f), Options{
		TemplateName:     "X",
		H:                8,
		M:                8,
		MaxBytesPerGroup: []int{0},
	})
	if err == nil {
		t.Fatal("expected InvalidCapture error for zero max_bytes")
	}
}
