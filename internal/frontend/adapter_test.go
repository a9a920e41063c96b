package frontend

import (
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProducesMatchState(t *testing.T) {
	prog, err := NewAdapter().Parse(`ab`)
	require.NoError(t, err)
	require.NotEmpty(t, prog.Insts)

	var sawMatch bool
	for _, inst := range prog.Insts {
		if _, ok := inst.(Match); ok {
			sawMatch = true
		}
	}
	require.True(t, sawMatch, "expected at least one Match instruction for a literal pattern")
}

func TestParseCountsCaptureGroups(t *testing.T) {
	prog, err := NewAdapter().Parse(`a(b)(c)d`)
	require.NoError(t, err)
	require.Equal(t, 2, prog.NumCaptureGroups)
}

func TestParseRejectsInvalidSyntax(t *testing.T) {
	_, err := NewAdapter().Parse(`a(`)
	require.Error(t, err)
}

func TestParseCharClassBecomesByteEdges(t *testing.T) {
	prog, err := NewAdapter().Parse(`[a-c]`)
	require.NoError(t, err)

	var sawRange bool
	for _, inst := range prog.Insts {
		switch v := inst.(type) {
		case ByteRange:
			if v.Lo == 'a' && v.Hi == 'c' {
				sawRange = true
			}
		case Sparse:
			for _, e := range v.Entries {
				if e.Lo == 'a' && e.Hi == 'c' {
					sawRange = true
				}
			}
		case Dense:
			if v.NextOrNegative['a'] >= 0 && v.NextOrNegative['c'] >= 0 {
				sawRange = true
			}
		}
	}
	require.True(t, sawRange, "expected a byte-consuming instruction covering a-c")
}

func TestRuneClassToInstAppliesOffset(t *testing.T) {
	inst := syntax.Inst{
		Op:   syntax.InstRune,
		Out:  uint32(42),
		Rune: []rune{'a', 'c'},
	}

	got := runeClassToInst(inst, 10)

	sparse, ok := got.(Sparse)
	require.True(t, ok, "expected a Sparse instruction for a narrow rune class, got %T", got)
	require.NotEmpty(t, sparse.Entries)
	for _, e := range sparse.Entries {
		require.Equal(t, 32, e.Next, "Next should be inst.Out - off (42 - 10)")
	}
}

func TestTranslateOffsetsRuneClassTargetsConsistentlyWithOtherBranches(t *testing.T) {
	a := &Adapter{StartOffset: 5}
	prog := &syntax.Prog{
		Start: 5,
		Inst: []syntax.Inst{
			{Op: syntax.InstFail},
			{Op: syntax.InstFail},
			{Op: syntax.InstFail},
			{Op: syntax.InstFail},
			{Op: syntax.InstFail},
			{Op: syntax.InstRune, Out: 6, Rune: []rune{'a', 'c'}},
			{Op: syntax.InstMatch},
		},
	}

	got, err := a.Translate(prog)
	require.NoError(t, err)
	require.Equal(t, 0, got.Start)

	sparse, ok := got.Insts[0].(Sparse)
	require.True(t, ok, "expected Sparse at logical id 0, got %T", got.Insts[0])
	for _, e := range sparse.Entries {
		require.Equal(t, 1, e.Next, "rune class target should be offset the same way every other instruction's Next is (6 - 5)")
	}
}
