// Package nfa defines the final, ε-free NFA (spec.md §3's "Final NFA F"):
// an immutable, JSON-serializable value produced by internal/elim and
// consumed by internal/coalesce, internal/simulate, and the two backend
// emitters. All containers are kept sorted so that two compilations of the
// same pattern serialize byte-for-byte identically (spec.md §8's
// "deterministic emission" property), mirroring
// original_source/compiler/src/ir/nfa.rs's BTreeMap/BTreeSet-backed
// NFAGraph and coregx-coregex's sorted-slice NFA representation.
package nfa

import (
	"sort"

	"github.com/zkregex-go/compiler/internal/zkerr"
)

// CaptureEvent is a (group id, is-start) pair, identical in shape to
// internal/ir.CaptureEvent but kept as its own type so this package has no
// dependency on the mutable intermediate representation.
type CaptureEvent struct {
	Group   int  `json:"group"`
	IsStart bool `json:"isStart"`
}

func (e CaptureEvent) less(o CaptureEvent) bool {
	if e.Group != o.Group {
		return e.Group < o.Group
	}
	return !e.IsStart && o.IsStart
}

// ByteEdge is one outgoing byte-consuming transition.
type ByteEdge struct {
	Byte   byte `json:"byte"`
	Target int  `json:"target"`
}

// State is one node of the final, ε-free NFA.
type State struct {
	ID int `json:"id"`

	// ByteEdges is sorted by (Byte, Target).
	ByteEdges []ByteEdge `json:"byteEdges"`

	// Captures maps a target state id (as a string key for stable JSON
	// object ordering is irrelevant here since Go's encoding/json always
	// sorts map[string] keys; ids are formatted decimal) to its capture
	// event set, sorted.
	Captures map[int][]CaptureEvent `json:"captures"`
}

// NFA is the immutable, ε-free automaton.
type NFA struct {
	Pattern          string `json:"pattern"`
	States           []State `json:"states"`
	StartStates      []int   `json:"startStates"`
	AcceptStates     []int   `json:"acceptStates"`
	NumCaptureGroups int     `json:"numCaptureGroups"`
}

// StateCount returns the number of states.
func (f *NFA) StateCount() int {
	return len(f.States)
}

// Alphabet returns every distinct byte appearing on any edge, ascending.
func (f *NFA) Alphabet() []byte {
	seen := make(map[byte]bool)
	for _, s := range f.States {
		for _, e := range s.ByteEdges {
			seen[e.Byte] = true
		}
	}
	out := make([]byte, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PseudoEdge is one (src, byte, dst, optional capture-event-set) tuple, the
// flattened form transitions_with_capture_info() yields per spec.md §4.4.
type PseudoEdge struct {
	Src    int
	Byte   byte
	Dst    int
	Events []CaptureEvent // nil when this transition carries no capture event
}

// TransitionsWithCaptureInfo flattens every byte edge in the NFA into one
// PseudoEdge per (src, byte, dst), in ascending (src, byte, dst) order.
func (f *NFA) TransitionsWithCaptureInfo() []PseudoEdge {
	var out []PseudoEdge
	for _, s := range f.States {
		for _, e := range s.ByteEdges {
			var events []CaptureEvent
			if evs, ok := s.Captures[e.Target]; ok && len(evs) > 0 {
				events = evs
			}
			out = append(out, PseudoEdge{Src: s.ID, Byte: e.Byte, Dst: e.Target, Events: events})
		}
	}
	return out
}

// IsAccept reports whether id is an accept state.
func (f *NFA) IsAccept(id int) bool {
	idx := sort.SearchInts(f.AcceptStates, id)
	return idx < len(f.AcceptStates) && f.AcceptStates[idx] == id
}

// Verify checks the invariants a final NFA must hold: at least one start
// state, at least one accept state, and every id in range.
func (f *NFA) Verify() error {
	if len(f.States) == 0 {
		return zkerr.New(zkerr.EmptyAutomaton, "final NFA has no states")
	}
	if len(f.StartStates) == 0 {
		return zkerr.New(zkerr.Verification, "final NFA has no start states")
	}
	if len(f.AcceptStates) == 0 {
		return zkerr.New(zkerr.Verification, "final NFA has no accept states")
	}
	for idx, s := range f.States {
		if s.ID != idx {
			return zkerr.New(zkerr.InvalidStateID, "state at index %d has id %d", idx, s.ID)
		}
		for _, e := range s.ByteEdges {
			if e.Target < 0 || e.Target >= len(f.States) {
				return zkerr.New(zkerr.InvalidTransition, "state %d byte 0x%02x targets out-of-range state %d", idx, e.Byte, e.Target)
			}
		}
	}
	for _, id := range f.StartStates {
		if id < 0 || id >= len(f.States) {
			return zkerr.New(zkerr.InvalidStateID, "start state %d out of range", id)
		}
	}
	for _, id := range f.AcceptStates {
		if id < 0 || id >= len(f.States) {
			return zkerr.New(zkerr.InvalidStateID, "accept state %d out of range", id)
		}
	}
	return nil
}
