// Package ir implements the intermediate NFA graph: a mutable, ε-containing
// representation built directly from internal/frontend primitives and
// consumed by internal/elim's ε-elimination pass.
//
// The shape mirrors original_source/compiler/src/ir/intermediate.rs's
// IntermediateNFA/IntermediateNFANode one-for-one (byte_transitions,
// epsilon_transitions, capture_groups keyed by target state), translated
// into Go's arena-of-structs-by-index style the way
// coregx-coregex/nfa/builder.go represents its own NFA (no owning
// pointers — states reference each other purely by int id, per spec.md §9).
package ir

import (
	"sort"

	"github.com/zkregex-go/compiler/internal/zkerr"
)

// CaptureEvent is a (group id, is-start) pair: the open or close boundary
// of a public capture group.
type CaptureEvent struct {
	Group   int
	IsStart bool
}

// Less orders CaptureEvents by group then by close-before-open, giving a
// stable sort independent of insertion order — needed so two structurally
// identical graphs always serialize capture event sets identically.
func (e CaptureEvent) Less(o CaptureEvent) bool {
	if e.Group != o.Group {
		return e.Group < o.Group
	}
	return !e.IsStart && o.IsStart
}

// State is one node of the intermediate graph.
type State struct {
	ID int

	// ByteEdges maps a byte to the sorted, deduplicated set of target
	// state ids reachable by consuming that byte.
	ByteEdges map[byte][]int

	// EpsEdges is the sorted, deduplicated set of target ids reachable by
	// an epsilon transition.
	EpsEdges []int

	// Captures maps a target state id (the destination of one of this
	// state's epsilon edges) to the set of capture events attached to
	// that specific edge.
	Captures map[int][]CaptureEvent
}

func newState(id int) State {
	return State{
		ID:        id,
		ByteEdges: make(map[byte][]int),
		Captures:  make(map[int][]CaptureEvent),
	}
}

func (s *State) addByteEdge(b byte, target int) {
	targets := s.ByteEdges[b]
	idx := sort.SearchInts(targets, target)
	if idx < len(targets) && targets[idx] == target {
		return
	}
	targets = append(targets, 0)
	copy(targets[idx+1:], targets[idx:])
	targets[idx] = target
	s.ByteEdges[b] = targets
}

func (s *State) addEpsEdge(target int) {
	idx := sort.SearchInts(s.EpsEdges, target)
	if idx < len(s.EpsEdges) && s.EpsEdges[idx] == target {
		return
	}
	s.EpsEdges = append(s.EpsEdges, 0)
	copy(s.EpsEdges[idx+1:], s.EpsEdges[idx:])
	s.EpsEdges[idx] = target
}

func (s *State) addCapture(target int, ev CaptureEvent) {
	events := s.Captures[target]
	for _, e := range events {
		if e == ev {
			return
		}
	}
	events = append(events, ev)
	sort.Slice(events, func(i, j int) bool { return events[i].Less(events[j]) })
	s.Captures[target] = events
}

// Graph is the mutable, ε-containing intermediate NFA (spec.md §3's
// "Intermediate NFA G").
type Graph struct {
	Pattern          string
	States           []State
	StartStates      []int
	AcceptStates     []int
	NumCaptureGroups int
}

// NewGraph creates an empty graph with n uninitialized states (ids 0..n-1).
func NewGraph(pattern string, n int) *Graph {
	g := &Graph{Pattern: pattern, States: make([]State, n)}
	for i := range g.States {
		g.States[i] = newState(i)
	}
	return g
}

func insertSorted(set []int, v int) []int {
	idx := sort.SearchInts(set, v)
	if idx < len(set) && set[idx] == v {
		return set
	}
	set = append(set, 0)
	copy(set[idx+1:], set[idx:])
	set[idx] = v
	return set
}

// AddAccept marks state id as accepting.
func (g *Graph) AddAccept(id int) {
	g.AcceptStates = insertSorted(g.AcceptStates, id)
}

// AddStart marks state id as a start state.
func (g *Graph) AddStart(id int) {
	g.StartStates = insertSorted(g.StartStates, id)
}

// AddByteRange adds byte edges id --b--> next for every b in [lo,hi].
func (g *Graph) AddByteRange(id int, lo, hi byte, next int) {
	for b := int(lo); b <= int(hi); b++ {
		g.States[id].addByteEdge(byte(b), next)
	}
}

// AddEpsilon adds an unconditional epsilon edge id --ε--> next.
func (g *Graph) AddEpsilon(id, next int) {
	g.States[id].addEpsEdge(next)
}

// AddCapture adds an epsilon edge id --ε--> next carrying a capture event.
func (g *Graph) AddCapture(id, next, group int, isStart bool) {
	g.States[id].addEpsEdge(next)
	if group > 0 {
		g.States[id].addCapture(next, CaptureEvent{Group: group, IsStart: isStart})
		if group > g.NumCaptureGroups {
			g.NumCaptureGroups = group
		}
	}
}

// Validate checks the structural invariants spec.md §3 requires: state ids
// contiguous from 0, every edge target in range, at least one start state,
// and group ids confined to 1..=NumCaptureGroups.
func (g *Graph) Validate() error {
	if len(g.States) == 0 {
		return zkerr.New(zkerr.EmptyAutomaton, "graph has no states")
	}
	for idx, s := range g.States {
		if s.ID != idx {
			return zkerr.New(zkerr.InvalidStateID, "state at index %d has id %d", idx, s.ID)
		}
		for b, targets := range s.ByteEdges {
			for _, t := range targets {
				if t < 0 || t >= len(g.States) {
					return zkerr.New(zkerr.InvalidTransition, "state %d byte 0x%02x targets out-of-range state %d", idx, b, t)
				}
			}
		}
		for _, t := range s.EpsEdges {
			if t < 0 || t >= len(g.States) {
				return zkerr.New(zkerr.InvalidTransition, "state %d epsilon edge targets out-of-range state %d", idx, t)
			}
		}
		for target, events := range s.Captures {
			if target < 0 || target >= len(g.States) {
				return zkerr.New(zkerr.InvalidTransition, "state %d capture targets out-of-range state %d", idx, target)
			}
			for _, e := range events {
				if e.Group < 1 || e.Group > g.NumCaptureGroups {
					return zkerr.New(zkerr.InvalidCapture, "capture group id %d out of range [1,%d]", e.Group, g.NumCaptureGroups)
				}
			}
		}
	}
	if len(g.StartStates) == 0 {
		return zkerr.New(zkerr.Verification, "no start state defined")
	}
	return nil
}
