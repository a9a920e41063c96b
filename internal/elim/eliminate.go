package elim

import (
	"sort"

	"github.com/zkregex-go/compiler/internal/ir"
	"github.com/zkregex-go/compiler/internal/nfa"
)

// Eliminate removes every epsilon edge from g and returns the resulting
// ε-free nfa.NFA, applying the two-sided capture-delivery rewrite rule of
// spec.md §4.3 (grounded on epsilon.rs's remove_epsilon_transitions), then
// pruning unreachable states and re-indexing (spec.md §4.3's "Pruning").
func Eliminate(g *ir.Graph) (*nfa.NFA, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	closures := computeClosures(g)

	type rawEdge struct {
		byte   byte
		target int
	}
	newByteEdges := make([]map[rawEdge]bool, len(g.States))
	newCaptures := make([]map[int][]ir.CaptureEvent, len(g.States))
	hasByteTransitions := make([]bool, len(g.States))
	for i := range newByteEdges {
		newByteEdges[i] = map[rawEdge]bool{}
		newCaptures[i] = map[int][]ir.CaptureEvent{}
	}

	acceptStates := map[int]bool{}

	for state, cl := range closures {
		if cl.isAccept {
			acceptStates[state] = true
		}

		for _, r := range cl.states {
			if len(g.States[r].ByteEdges) == 0 {
				continue
			}
			hasByteTransitions[r] = true

			for b, targets := range g.States[r].ByteEdges {
				for _, target := range targets {
					newByteEdges[state][rawEdge{b, target}] = true

					events := newCaptures[state][target]
					events = mergeStartEvents(events, cl.captures)
					events = mergeEndEvents(events, closures[target].captures)
					newCaptures[state][target] = events
				}
			}
		}
	}

	// Start-state promotion (spec.md §4.3): original starts are always
	// kept; a state reachable-by-epsilon from an original start is also
	// promoted to a start state, but only when that original start's
	// closure carries no start-capture events (promoting through a start
	// capture would let a run skip the group's open boundary).
	startSet := map[int]bool{}
	for _, o := range g.StartStates {
		startSet[o] = true
		if hasStartCapture(closures[o]) {
			continue
		}
		for _, r := range closures[o].states {
			if r == o {
				continue
			}
			if hasByteTransitions[r] {
				startSet[r] = true
			}
		}
	}

	out := nfa.NFA{
		Pattern:          g.Pattern,
		NumCaptureGroups: g.NumCaptureGroups,
		States:            make([]nfa.State, len(g.States)),
	}
	for id := range g.States {
		st := nfa.State{ID: id, Captures: map[int][]nfa.CaptureEvent{}}

		var edges []rawEdge
		for e := range newByteEdges[id] {
			edges = append(edges, e)
		}
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].byte != edges[j].byte {
				return edges[i].byte < edges[j].byte
			}
			return edges[i].target < edges[j].target
		})
		for _, e := range edges {
			st.ByteEdges = append(st.ByteEdges, nfa.ByteEdge{Byte: e.byte, Target: e.target})
		}

		for target, events := range newCaptures[id] {
			st.Captures[target] = toNFAEvents(events)
		}

		out.States[id] = st
	}
	for id := range startSet {
		out.StartStates = append(out.StartStates, id)
	}
	for id := range acceptStates {
		out.AcceptStates = append(out.AcceptStates, id)
	}
	sort.Ints(out.StartStates)
	sort.Ints(out.AcceptStates)

	pruned := prune(&out)

	if err := pruned.Verify(); err != nil {
		return nil, err
	}
	return pruned, nil
}

func mergeStartEvents(into []ir.CaptureEvent, from []ir.CaptureEvent) []ir.CaptureEvent {
	for _, ev := range from {
		if !ev.IsStart {
			continue
		}
		into = addEventIfMissing(into, ev)
	}
	return into
}

func mergeEndEvents(into []ir.CaptureEvent, from []ir.CaptureEvent) []ir.CaptureEvent {
	for _, ev := range from {
		if ev.IsStart {
			continue
		}
		into = addEventIfMissing(into, ev)
	}
	return into
}

func addEventIfMissing(set []ir.CaptureEvent, ev ir.CaptureEvent) []ir.CaptureEvent {
	for _, e := range set {
		if e == ev {
			return set
		}
	}
	return append(set, ev)
}

func toNFAEvents(events []ir.CaptureEvent) []nfa.CaptureEvent {
	out := make([]nfa.CaptureEvent, len(events))
	for i, e := range events {
		out[i] = nfa.CaptureEvent{Group: e.Group, IsStart: e.IsStart}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return !out[i].IsStart && out[j].IsStart
	})
	return out
}

// prune removes states unreachable from the start states via byte edges,
// then re-indexes the survivors contiguously from 0 (spec.md §4.3's
// "Pruning"), grounded on epsilon.rs's remove_unreachable_states.
func prune(f *nfa.NFA) *nfa.NFA {
	reachable := map[int]bool{}
	var queue []int
	for _, s := range f.StartStates {
		if !reachable[s] {
			reachable[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for _, e := range f.States[state].ByteEdges {
			if !reachable[e.Target] {
				reachable[e.Target] = true
				queue = append(queue, e.Target)
			}
		}
	}

	if len(reachable) == len(f.States) {
		return f
	}

	oldToNew := map[int]int{}
	nextID := 0
	for id := 0; id < len(f.States); id++ {
		if reachable[id] {
			oldToNew[id] = nextID
			nextID++
		}
	}

	newStates := make([]nfa.State, 0, nextID)
	for id := 0; id < len(f.States); id++ {
		if !reachable[id] {
			continue
		}
		old := f.States[id]
		ns := nfa.State{ID: oldToNew[id], Captures: map[int][]nfa.CaptureEvent{}}
		for _, e := range old.ByteEdges {
			if newTarget, ok := oldToNew[e.Target]; ok {
				ns.ByteEdges = append(ns.ByteEdges, nfa.ByteEdge{Byte: e.Byte, Target: newTarget})
			}
		}
		for target, events := range old.Captures {
			if newTarget, ok := oldToNew[target]; ok {
				ns.Captures[newTarget] = events
			}
		}
		newStates = append(newStates, ns)
	}

	remap := func(ids []int) []int {
		var out []int
		for _, id := range ids {
			if newID, ok := oldToNew[id]; ok {
				out = append(out, newID)
			}
		}
		sort.Ints(out)
		return out
	}

	return &nfa.NFA{
		Pattern:          f.Pattern,
		States:           newStates,
		StartStates:      remap(f.StartStates),
		AcceptStates:     remap(f.AcceptStates),
		NumCaptureGroups: f.NumCaptureGroups,
	}
}
