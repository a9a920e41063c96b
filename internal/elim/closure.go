// Package elim implements ε-closure computation and ε-elimination: the
// single hardest pass in the pipeline (spec.md §1, §4.3, §9). It turns an
// internal/ir.Graph (which may contain epsilon edges) into an
// internal/nfa.NFA (which may not), redistributing capture-group start/end
// events from epsilon paths onto the byte transitions that survive.
//
// The algorithm is grounded directly on
// original_source/compiler/src/passes/epsilon.rs's remove_epsilon_transitions
// (DFS closures, two-sided capture delivery, start-state promotion gated on
// "no start captures in the original closure", BFS-based unreachable-state
// pruning) reexpressed with Go's sorted-slice-of-ints idiom
// (coregx-coregex/nfa/builder.go) instead of BTreeSet/BTreeMap.
package elim

import (
	"sort"

	"github.com/zkregex-go/compiler/internal/ir"
)

// closure is the epsilon closure of one state: every state reachable by
// zero or more epsilon edges (including the state itself), the union of
// capture events seen on any of those edges, and whether any member state
// is accepting.
type closure struct {
	states   []int // sorted, deduplicated
	captures []ir.CaptureEvent
	isAccept bool
}

func (c *closure) addState(id int) bool {
	idx := sort.SearchInts(c.states, id)
	if idx < len(c.states) && c.states[idx] == id {
		return false
	}
	c.states = append(c.states, 0)
	copy(c.states[idx+1:], c.states[idx:])
	c.states[idx] = id
	return true
}

func (c *closure) addCapture(ev ir.CaptureEvent) {
	for _, e := range c.captures {
		if e == ev {
			return
		}
	}
	c.captures = append(c.captures, ev)
}

// computeClosures computes the epsilon closure of every state in g via DFS,
// mirroring epsilon.rs's compute_epsilon_closure exactly (visited-set guard
// against epsilon cycles, captures collected from every state visited, not
// just the start state).
func computeClosures(g *ir.Graph) []closure {
	closures := make([]closure, len(g.States))
	for id := range g.States {
		closures[id] = computeClosure(g, id)
	}
	return closures
}

func computeClosure(g *ir.Graph, start int) closure {
	var c closure
	visited := make([]bool, len(g.States))

	var dfs func(state int)
	dfs = func(state int) {
		if visited[state] {
			return
		}
		visited[state] = true
		c.addState(state)

		if containsInt(g.AcceptStates, state) {
			c.isAccept = true
		}

		for _, events := range g.States[state].Captures {
			for _, ev := range events {
				c.addCapture(ev)
			}
		}

		for _, next := range g.States[state].EpsEdges {
			dfs(next)
		}
	}
	dfs(start)

	return c
}

func containsInt(sorted []int, v int) bool {
	idx := sort.SearchInts(sorted, v)
	return idx < len(sorted) && sorted[idx] == v
}

func hasStartCapture(c closure) bool {
	for _, ev := range c.captures {
		if ev.IsStart {
			return true
		}
	}
	return false
}
