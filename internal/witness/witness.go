// Package witness implements the witness generator (spec.md §4.7, C7): it
// turns an accepted internal/simulate.Run into the padded fixed-length
// arrays a generated circuit consumes as input, grounded on
// original_source/packages/apis/src/padding.rs's zero-padding convention
// and extract_substrs.rs's group-boundary extraction (reimplemented here
// directly against the run's own capture events rather than a second regex
// pass, since the run's events are exactly what the emitted circuit checks
// against — see VerifyAgainstReference for the independent cross-check
// spec.md §8's "capture preservation" property asks for).
package witness

import (
	"github.com/zkregex-go/compiler/internal/simulate"
	"github.com/zkregex-go/compiler/internal/zkerr"
)

// Witness holds every padded array a generated circuit's inputs expect.
type Witness struct {
	Haystack    []byte
	Curr        []int
	Next        []int
	MatchStart  int
	MatchLength int

	// Per-group arrays, indexed [group-1][step]; nil when NumCaptureGroups
	// (inferred from len(CaptureGroupID)) is zero.
	CaptureGroupID            [][]int
	CaptureGroupStart         [][]int8
	CaptureGroupStartIndices  []int
}

// Generate builds a Witness from an accepted run, padding the haystack to H
// bytes and the state/capture arrays to M steps. maxBytesPerGroup[g-1] is
// the caller-declared maximum byte length for public group g; Generate
// fails with InvalidCapture if a group's actual captured length exceeds its
// declared maximum, and with InvalidInput when the input or run exceeds H
// or M.
func Generate(run *simulate.Run, input []byte, h, m int, maxBytesPerGroup []int) (*Witness, error) {
	if len(input) > h {
		return nil, zkerr.New(zkerr.InvalidInput, "input length %d exceeds H=%d", len(input), h)
	}
	l := len(run.Steps)
	if l > m {
		return nil, zkerr.New(zkerr.InvalidInput, "run length %d exceeds M=%d", l, m)
	}

	w := &Witness{
		Haystack:    make([]byte, h),
		Curr:        make([]int, m),
		Next:        make([]int, m),
		MatchStart:  run.Span.Start,
		MatchLength: l,
	}
	copy(w.Haystack, input)

	for i, step := range run.Steps {
		w.Curr[i] = step.Curr
		w.Next[i] = step.Next
	}

	numGroups := len(maxBytesPerGroup)
	if numGroups == 0 {
		return w, nil
	}

	w.CaptureGroupID = make([][]int, numGroups)
	w.CaptureGroupStart = make([][]int8, numGroups)
	w.CaptureGroupStartIndices = make([]int, numGroups)

	for g := 1; g <= numGroups; g++ {
		ids := make([]int, m)
		starts := make([]int8, m)
		startIdx := -1
		endIdx := -1

		for i, step := range run.Steps {
			for _, ev := range step.Events {
				if ev.Group != g {
					continue
				}
				ids[i] = g
				if ev.IsStart {
					starts[i] = 1
					if startIdx == -1 {
						startIdx = i
					}
				} else if endIdx == -1 || i < endIdx {
					endIdx = i
				}
			}
		}

		w.CaptureGroupID[g-1] = ids
		w.CaptureGroupStart[g-1] = starts
		if startIdx >= 0 {
			w.CaptureGroupStartIndices[g-1] = startIdx
		}

		maxBytes := maxBytesPerGroup[g-1]
		if maxBytes <= 0 {
			return nil, zkerr.New(zkerr.InvalidCapture, "group %d has non-positive max bytes %d", g, maxBytes)
		}
		if startIdx >= 0 {
			capturedLen := capturedLength(startIdx, endIdx, l)
			if capturedLen > maxBytes {
				return nil, zkerr.New(zkerr.InvalidCapture, "group %d captured %d bytes, exceeds declared max %d", g, capturedLen, maxBytes)
			}
		}
	}

	return w, nil
}

// capturedLength returns the number of bytes between a group's open and
// close boundary. An open boundary fires on the first captured byte and a
// close boundary on the last captured byte (internal/elim's two-sided
// capture delivery), so both steps
// count; when no close fires before the run ends, the group's content runs
// to the end of the match.
func capturedLength(startIdx, endIdx, runLength int) int {
	if endIdx == -1 {
		return runLength - startIdx
	}
	return endIdx - startIdx + 1
}
