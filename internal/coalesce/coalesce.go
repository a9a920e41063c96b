// Package coalesce implements the range coalescer (spec.md §4.5, C5): it
// flattens a final NFA's per-byte edges into the minimal set of contiguous
// byte-range tuples sharing (src, dst, capture-event-set), since each tuple
// becomes one constraint block in the emitted circuit. Grounded on
// original_source/compiler/src/nfa/codegen/circom.rs's
// get_transitions_with_capture_info (group-by-destination, sort bytes,
// find contiguous runs), but keyed on the *full* capture-event set per
// spec.md §9's resolved ambiguity, not a single capture pair.
package coalesce

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zkregex-go/compiler/internal/nfa"
)

// Transition is one coalesced byte-range tuple, spec.md §3's
// "(src, lo, hi, dst, events)".
type Transition struct {
	Src    int
	Lo, Hi byte
	Dst    int
	Events []nfa.CaptureEvent
}

// eventKey renders a capture-event set into a canonical, order-independent
// string so it can be used as a Go map key while grouping edges — the
// events are pre-sorted by nfa.CaptureEvent's stable ordering before this is
// called, so the string is deterministic across runs.
func eventKey(events []nfa.CaptureEvent) string {
	if len(events) == 0 {
		return ""
	}
	parts := make([]string, len(events))
	for i, e := range events {
		start := 0
		if e.IsStart {
			start = 1
		}
		parts[i] = fmt.Sprintf("%d:%d", e.Group, start)
	}
	return strings.Join(parts, ",")
}

type groupKey struct {
	src, dst int
	events   string
}

// Coalesce groups f's byte edges by (src, dst, capture-event-set) and emits
// one Transition per contiguous byte run within each group, in the
// deterministic order spec.md §4.5 mandates: ascending src, then dst, then
// capture-event-set (by canonical string), then lo.
func Coalesce(f *nfa.NFA) []Transition {
	groups := map[groupKey][]byte{}
	eventsByKey := map[string][]nfa.CaptureEvent{}

	for _, edge := range f.TransitionsWithCaptureInfo() {
		key := groupKey{src: edge.Src, dst: edge.Dst, events: eventKey(edge.Events)}
		groups[key] = append(groups[key], edge.Byte)
		if _, ok := eventsByKey[key.events]; !ok {
			eventsByKey[key.events] = edge.Events
		}
	}

	var keys []groupKey
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.src != b.src {
			return a.src < b.src
		}
		if a.dst != b.dst {
			return a.dst < b.dst
		}
		return a.events < b.events
	})

	var out []Transition
	for _, k := range keys {
		bytes := groups[k]
		sort.Slice(bytes, func(i, j int) bool { return bytes[i] < bytes[j] })

		lo := bytes[0]
		hi := bytes[0]
		flush := func() {
			out = append(out, Transition{Src: k.src, Lo: lo, Hi: hi, Dst: k.dst, Events: eventsByKey[k.events]})
		}
		for i := 1; i < len(bytes); i++ {
			if bytes[i] == hi+1 {
				hi = bytes[i]
				continue
			}
			flush()
			lo, hi = bytes[i], bytes[i]
		}
		flush()
	}

	return out
}
