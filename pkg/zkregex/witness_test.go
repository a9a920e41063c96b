package zkregex

import (
	"context"
	"testing"
)

func TestGenerateWitnessRoundTrip(t *testing.T) {
	nfaVal, _, err := Compile(context.Background(), `a(b)c`, Options{
		Framework:        Circom,
		TemplateName:     "MatchABC",
		H:                16,
		M:                8,
		MaxBytesPerGroup: map[int]int{1: 1},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	w, err := GenerateWitness(context.Background(), nfaVal, []byte("abc"), 16, 8, map[int]int{1: 1}, Circom)
	if err != nil {
		t.Fatalf("GenerateWitness: %v", err)
	}
	if w.MatchStart != 0 || w.MatchLength != 3 {
		t.Errorf("got start=%d length=%d, want start=0 length=3", w.MatchStart, w.MatchLength)
	}

	data, err := MarshalWitnessJSON(w, Circom)
	if err != nil {
		t.Fatalf("MarshalWitnessJSON: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty JSON")
	}
}

func TestGenerateWitnessNoMatch(t *testing.T) {
	nfaVal, _, err := Compile(context.Background(), `xyz`, Options{
		Framework:    Circom,
		TemplateName: "MatchXYZ",
		H:            8,
		M:            4,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, err = GenerateWitness(context.Background(), nfaVal, []byte("abc"), 8, 4, nil, Circom)
	if err == nil {
		t.Fatal("expected NoMatch error")
	}
}
