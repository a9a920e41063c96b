// Package simulate implements the path finder (spec.md §4.6, C6): given an
// input and a final NFA, find an accepting run with a contiguous match
// span. It tries each candidate starting offset in turn and, for the
// earliest offset that yields any accepting run, returns the longest one —
// leftmost-longest semantics, per spec.md §9's resolved ambiguity (the
// earlier implementation's "last accepting path across all starts" is
// explicitly rejected in favor of this).
package simulate

import (
	"sort"

	"github.com/zkregex-go/compiler/internal/nfa"
	"github.com/zkregex-go/compiler/internal/zkerr"
)

// Step is one byte consumed along a run.
type Step struct {
	Curr, Next int
	Byte       byte
	Events     []nfa.CaptureEvent
}

// Span is the matched region of the input.
type Span struct {
	Start, Length int
}

// Run is an accepting path through the NFA.
type Run struct {
	Steps []Step
	Span  Span
}

// thread is one in-flight candidate path during lock-step simulation.
type thread struct {
	state int
	steps []Step
}

// Find returns the earliest-start, longest accepting run over input,
// failing with zkerr.NoMatch when no starting offset yields an accepting
// run (spec.md §4.6).
func Find(f *nfa.NFA, input []byte) (*Run, error) {
	byteEdgeIndex := buildIndex(f)

	for start := 0; start <= len(input); start++ {
		run, ok := runFrom(f, byteEdgeIndex, input, start)
		if ok {
			return run, nil
		}
	}
	return nil, zkerr.ErrNoMatch
}

// runFrom simulates every start-state thread from offset start, expanding
// in lock-step per byte (spec.md §4.6: "maintain the set of (state, path)
// pairs; on each byte, expand to successors"), and keeps the last
// accepting frontier reached so the result is the longest run for this
// start, not just the first.
func runFrom(f *nfa.NFA, index edgeIndex, input []byte, start int) (*Run, bool) {
	threads := make([]thread, 0, len(f.StartStates))
	for _, s := range f.StartStates {
		threads = append(threads, thread{state: s})
	}

	var bestSteps []Step
	haveBest := false
	if acceptAny(f, threads) {
		bestSteps = nil
		haveBest = true
	}

	for offset := start; offset < len(input); offset++ {
		b := input[offset]
		var next []thread
		for _, th := range threads {
			for _, target := range index.lookup(th.state, b) {
				steps := make([]Step, len(th.steps), len(th.steps)+1)
				copy(steps, th.steps)
				steps = append(steps, Step{
					Curr:   th.state,
					Next:   target,
					Byte:   b,
					Events: index.events(th.state, b, target),
				})
				next = append(next, thread{state: target, steps: steps})
			}
		}
		threads = next
		if len(threads) == 0 {
			break
		}
		if acceptAny(f, threads) {
			bestSteps = longestAccepting(f, threads)
			haveBest = true
		}
	}

	if !haveBest {
		return nil, false
	}
	return &Run{
		Steps: bestSteps,
		Span:  Span{Start: start, Length: len(bestSteps)},
	}, true
}

func acceptAny(f *nfa.NFA, threads []thread) bool {
	for _, th := range threads {
		if f.IsAccept(th.state) {
			return true
		}
	}
	return false
}

// longestAccepting returns the steps of the accepting thread with the most
// steps (they all share the same length in lock-step simulation, but this
// stays explicit about the "longest" requirement rather than assuming it).
func longestAccepting(f *nfa.NFA, threads []thread) []Step {
	var best []Step
	for _, th := range threads {
		if !f.IsAccept(th.state) {
			continue
		}
		if len(th.steps) >= len(best) {
			best = th.steps
		}
	}
	return best
}

// edgeIndex is a (state, byte) -> sorted target list lookup built once per
// Find call, avoiding an O(edges) scan per step.
type edgeIndex struct {
	byState    map[int]map[byte][]int
	edgeEvents map[[3]int][]nfa.CaptureEvent // [state, int(byte), target] -> events
}

func buildIndex(f *nfa.NFA) edgeIndex {
	idx := edgeIndex{
		byState:    map[int]map[byte][]int{},
		edgeEvents: map[[3]int][]nfa.CaptureEvent{},
	}
	for _, s := range f.States {
		perByte := map[byte][]int{}
		for _, e := range s.ByteEdges {
			perByte[e.Byte] = append(perByte[e.Byte], e.Target)
			if evs := s.Captures[e.Target]; len(evs) > 0 {
				idx.edgeEvents[[3]int{s.ID, int(e.Byte), e.Target}] = evs
			}
		}
		for b, targets := range perByte {
			sort.Ints(targets)
			perByte[b] = targets
		}
		idx.byState[s.ID] = perByte
	}
	return idx
}

func (idx edgeIndex) lookup(state int, b byte) []int {
	return idx.byState[state][b]
}

func (idx edgeIndex) events(state int, b byte, target int) []nfa.CaptureEvent {
	return idx.edgeEvents[[3]int{state, int(b), target}]
}
