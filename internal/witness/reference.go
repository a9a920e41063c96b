package witness

import (
	"regexp"

	"github.com/zkregex-go/compiler/internal/zkerr"
)

// VerifyAgainstReference cross-checks a computed Witness's group g content
// against Go's stdlib regexp engine, the same role
// original_source/packages/apis/src/extract_substrs.rs's
// extract_substr_idxes plays against fancy_regex in the original
// implementation: compile the full composed pattern with one capture group
// per decomposed part, find the match, and compare the reference engine's
// group span to the span this package derived from the NFA run.
//
// This underlies spec.md §8's "capture preservation" testable property; it
// is not part of the production Generate path (the circuit only ever sees
// the NFA-derived values) and is meant to be called from tests.
func VerifyAgainstReference(w *Witness, input []byte, composedPattern string, group int) error {
	re, err := regexp.Compile(composedPattern)
	if err != nil {
		return zkerr.Wrap(zkerr.ParseError, err, "compiling reference pattern")
	}

	loc := re.FindSubmatchIndex(input)
	if loc == nil {
		return zkerr.New(zkerr.NoMatch, "reference engine found no match for %q", composedPattern)
	}

	groupStart, groupEnd := loc[2*group], loc[2*group+1]
	if groupStart < 0 {
		return zkerr.New(zkerr.InvalidCapture, "reference engine did not populate group %d", group)
	}

	gotStart := w.MatchStart + w.CaptureGroupStartIndices[group-1]
	gotLen := 0
	for _, id := range w.CaptureGroupID[group-1] {
		if id == group {
			gotLen++
		}
	}

	if gotStart != groupStart {
		return zkerr.New(zkerr.Verification, "group %d start mismatch: NFA=%d reference=%d", group, gotStart, groupStart)
	}
	if gotLen != groupEnd-groupStart {
		return zkerr.New(zkerr.Verification, "group %d length mismatch: NFA=%d reference=%d", group, gotLen, groupEnd-groupStart)
	}
	return nil
}
