package ir

import (
	"github.com/zkregex-go/compiler/internal/frontend"
	"github.com/zkregex-go/compiler/internal/zkerr"
)

// Build translates a frontend.Program into an intermediate Graph, applying
// the per-primitive rules of spec.md §4.2: Match states become accept
// states, ByteRange/Sparse/Dense install byte edges, Union/BinaryUnion
// become epsilon edges, Capture becomes an epsilon edge carrying a capture
// event, Look becomes a plain (predicate-discarded) epsilon edge, and Fail
// contributes no edges at all.
func Build(pattern string, prog *frontend.Program) (*Graph, error) {
	g := NewGraph(pattern, len(prog.Insts))
	g.NumCaptureGroups = prog.NumCaptureGroups
	g.AddStart(prog.Start)

	for id, inst := range prog.Insts {
		switch v := inst.(type) {
		case frontend.Match:
			g.AddAccept(id)

		case frontend.ByteRange:
			g.AddByteRange(id, v.Lo, v.Hi, v.Next)

		case frontend.Sparse:
			for _, e := range v.Entries {
				g.AddByteRange(id, e.Lo, e.Hi, e.Next)
			}

		case frontend.Dense:
			for b, next := range v.NextOrNegative {
				if next >= 0 {
					g.AddByteRange(id, byte(b), byte(b), next)
				}
			}

		case frontend.Union:
			for _, next := range v.Next {
				g.AddEpsilon(id, next)
			}

		case frontend.BinaryUnion:
			g.AddEpsilon(id, v.A)
			g.AddEpsilon(id, v.B)

		case frontend.Capture:
			g.AddCapture(id, v.Next, v.Group, v.IsStart())

		case frontend.Look:
			g.AddEpsilon(id, v.Next)

		case frontend.Fail:
			// No edges.

		default:
			return nil, zkerr.New(zkerr.ParseError, "unhandled primitive instruction type %T at state %d", inst, id)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
