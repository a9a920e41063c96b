package nfa

import (
	"reflect"
	"testing"
)

func sampleNFA() *NFA {
	return &NFA{
		Pattern:      "a(b)c",
		StartStates:  []int{0},
		AcceptStates: []int{2},
		States: []State{
			{ID: 0, ByteEdges: []ByteEdge{{Byte: 'a', Target: 1}}, Captures: map[int][]CaptureEvent{
				1: {{Group: 1, IsStart: true}},
			}},
			{ID: 1, ByteEdges: []ByteEdge{{Byte: 'b', Target: 2}}, Captures: map[int][]CaptureEvent{}},
			{ID: 2, ByteEdges: nil, Captures: map[int][]CaptureEvent{}},
		},
		NumCaptureGroups: 1,
	}
}

func TestJSONRoundTripPreservesStructure(t *testing.T) {
	f := sampleNFA()
	data, err := f.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if !reflect.DeepEqual(f, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", f, got)
	}
}

func TestFromJSONRejectsMalformedInput(t *testing.T) {
	if _, err := FromJSON([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestVerifyRejectsOutOfRangeTarget(t *testing.T) {
	f := sampleNFA()
	f.States[0].ByteEdges[0].Target = 99
	if err := f.Verify(); err == nil {
		t.Fatal("expected error for out-of-range byte edge target")
	}
}

func TestAlphabetReturnsSortedDistinctBytes(t *testing.T) {
	f := sampleNFA()
	got := f.Alphabet()
	want := []byte{'a', 'b'}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Alphabet() = %v, want %v", got, want)
	}
}

func TestStateCountMatchesStatesSlice(t *testing.T) {
	f := sampleNFA()
	if f.StateCount() != 3 {
		t.Fatalf("StateCount() = %d, want 3", f.StateCount())
	}
}
