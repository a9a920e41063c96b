package noir

import (
	"strings"
	"testing"

	"github.com/zkregex-go/compiler/internal/coalesce"
	"github.com/zkregex-go/compiler/internal/elim"
	"github.com/zkregex-go/compiler/internal/frontend"
	"github.com/zkregex-go/compiler/internal/ir"
)

func TestEmitProducesTableAndFunction(t *testing.T) {
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

	code, err := Emit(f, transitions, Options{FunctionName: "regex_match", H: 16, M: 8})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	for _, want := range []string{
		"struct Sequence",
		"fn regex_match<let H: u32, let M: u32>",
		"global START_STATES",
		"global ACCEPT_STATES",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("emitted code missing %q", want)
		}
	}
}

func TestChooseTableKindSwitchesToSparse(t *testing.T) {
	if kind := chooseTableKind(2, 1<<30); kind != TableSimple {
		t.Errorf("small automaton: got %v, want Simple", kind)
	}
	if kind := chooseTableKind(1000000, 10); kind != TableSparse {
		t.Errorf("huge automaton with tiny bound: got %v, want Sparse", kind)
	}
}

func TestEmitRejectsEmptyFunctionName(t *testing.T) {
	adapter := frontend.NewAdapter()
	prog, _ := adapter.Parse(`a`)
	graph, _ := ir.Build(`a`, prog)
	f, err := elim.Eliminate(graph)
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	_, err = Emit(f, coalesce.Coalesce(f), Options{FunctionName: "", H: 4, M: 4})
	if err == nil {
		t.Fatal("expected error for empty function name")
	}
}

func TestEmitIncludesExtractCaptureFunctions(t *testing.T) {
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
		FunctionName:     "regex_match",
		H:                16,
		M:                8,
		MaxBytesPerGroup: []int{4},
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(code, "fn extract_capture1<let H: u32>") {
		t.Errorf("emitted code missing extract_capture1 function")
	}
}
