package nfa

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/zkregex-go/compiler/internal/zkerr"
)

// jsonState and jsonNFA give the wire format stable, explicitly ordered
// capture-group keys (JSON object keys are strings; Go's encoding/json
// already emits map[string]V keys in sorted order, but state target ids are
// ints here, so we convert to decimal strings ourselves to keep the
// schema obvious on the wire rather than relying on that implementation
// detail) — this is the "stable text form keyed on sorted containers" that
// spec.md §4.4 and §6 require for byte-identical round trips.
type jsonState struct {
	ID        int                     `json:"id"`
	ByteEdges []ByteEdge              `json:"byteEdges"`
	Captures  map[string][]CaptureEvent `json:"captures"`
}

type jsonNFA struct {
	Pattern          string      `json:"pattern"`
	States           []jsonState `json:"states"`
	StartStates      []int       `json:"startStates"`
	AcceptStates     []int       `json:"acceptStates"`
	NumCaptureGroups int         `json:"numCaptureGroups"`
}

// MarshalJSON implements a stable, sorted serialization of the NFA.
func (f *NFA) MarshalJSON() ([]byte, error) {
	jf := jsonNFA{
		Pattern:          f.Pattern,
		StartStates:      f.StartStates,
		AcceptStates:     f.AcceptStates,
		NumCaptureGroups: f.NumCaptureGroups,
	}
	for _, s := range f.States {
		js := jsonState{ID: s.ID, ByteEdges: s.ByteEdges, Captures: map[string][]CaptureEvent{}}
		targets := make([]int, 0, len(s.Captures))
		for t := range s.Captures {
			targets = append(targets, t)
		}
		sort.Ints(targets)
		for _, t := range targets {
			js.Captures[strconv.Itoa(t)] = s.Captures[t]
		}
		jf.States = append(jf.States, js)
	}
	data, err := json.Marshal(jf)
	if err != nil {
		return nil, zkerr.Wrap(zkerr.Serialization, err, "marshaling NFA")
	}
	return data, nil
}

// UnmarshalJSON implements the inverse of MarshalJSON.
func (f *NFA) UnmarshalJSON(data []byte) error {
	var jf jsonNFA
	if err := json.Unmarshal(data, &jf); err != nil {
		return zkerr.Wrap(zkerr.Deserialization, err, "unmarshaling NFA")
	}
	f.Pattern = jf.Pattern
	f.StartStates = jf.StartStates
	f.AcceptStates = jf.AcceptStates
	f.NumCaptureGroups = jf.NumCaptureGroups
	f.States = make([]State, len(jf.States))
	for i, js := range jf.States {
		s := State{ID: js.ID, ByteEdges: js.ByteEdges, Captures: map[int][]CaptureEvent{}}
		for k, v := range js.Captures {
			target, err := strconv.Atoi(k)
			if err != nil {
				return zkerr.Wrap(zkerr.Deserialization, err, "invalid capture target key %q", k)
			}
			s.Captures[target] = v
		}
		f.States[i] = s
	}
	return nil
}

// FromJSON deserializes a final NFA and verifies its invariants.
func FromJSON(data []byte) (*NFA, error) {
	var f NFA
	if err := f.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	if err := f.Verify(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ToJSON serializes f after verifying its invariants.
func (f *NFA) ToJSON() ([]byte, error) {
	if err := f.Verify(); err != nil {
		return nil, err
	}
	return f.MarshalJSON()
}

// Debug renders a human-readable transition listing, grounded on
// original_source/compiler/src/nfa/debug.rs. Nothing in this module calls
// it; the CLI has no flag that prints it.
func (f *NFA) Debug() string {
	out := fmt.Sprintf("NFA for %q: %d states, start=%v, accept=%v, groups=%d\n",
		f.Pattern, len(f.States), f.StartStates, f.AcceptStates, f.NumCaptureGroups)
	for _, s := range f.States {
		for _, e := range s.ByteEdges {
			evs := s.Captures[e.Target]
			if len(evs) == 0 {
				out += fmt.Sprintf("  %d -[0x%02x]-> %d\n", s.ID, e.Byte, e.Target)
			} else {
				out += fmt.Sprintf("  %d -[0x%02x]-> %d %v\n", s.ID, e.Byte, e.Target, evs)
			}
		}
	}
	return out
}
