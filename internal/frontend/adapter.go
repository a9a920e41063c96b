package frontend

import (
	"regexp/syntax"

	"github.com/zkregex-go/compiler/internal/zkerr"
)

// denseThreshold is the minimum number of expanded byte-range entries in a
// character class before the adapter flattens it into a Dense table instead
// of keeping it Sparse. Chosen generously since the alphabet is only 256
// bytes wide; see Sparse/Dense doc comments in inst.go.
const denseThreshold = 32

// Program is the adapter's output: one primitive Inst per logical state id,
// the logical start id, and the number of capture groups observed (derived
// from the highest capture slot, per spec.md §3 invariant that group ids
// run 1..=NumCaptureGroups).
type Program struct {
	Insts            []Inst
	Start            int
	NumCaptureGroups int
}

// Adapter translates a compiled regexp/syntax program into a Program of
// primitive Thompson states.
type Adapter struct {
	// StartOffset is subtracted from every regexp/syntax instruction id to
	// yield a contiguous logical id space, per spec.md §9's note about
	// external parsers reserving low ids for sentinel states. Go's
	// regexp/syntax never reserves a gap (inst[0] is a real Fail
	// instruction, and ids already run 0..len(Inst)-1 contiguously), so the
	// zero value is correct for this front end; the field exists so a
	// different backing parser can be adapted without changing callers.
	StartOffset int
}

// NewAdapter returns an Adapter configured for regexp/syntax's id scheme.
func NewAdapter() *Adapter {
	return &Adapter{StartOffset: 0}
}

// Parse parses pattern with Perl syntax, compiles it to a Thompson program,
// and translates every instruction into a primitive Inst.
func (a *Adapter) Parse(pattern string) (*Program, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, zkerr.Wrap(zkerr.ParseError, err, "parsing pattern %q", pattern)
	}
	re = re.Simplify()

	prog, err := syntax.Compile(re)
	if err != nil {
		return nil, zkerr.Wrap(zkerr.ParseError, err, "compiling pattern %q", pattern)
	}

	return a.Translate(prog)
}

// Translate converts an already-compiled syntax.Prog into a Program of
// primitive Inst values, applying StartOffset to every id.
func (a *Adapter) Translate(prog *syntax.Prog) (*Program, error) {
	if prog == nil || len(prog.Inst) == 0 {
		return nil, zkerr.New(zkerr.EmptyAutomaton, "compiled program has no instructions")
	}

	if a.StartOffset < 0 || a.StartOffset >= len(prog.Inst) {
		return nil, zkerr.New(zkerr.InvalidStateID, "start offset %d out of range [0,%d)", a.StartOffset, len(prog.Inst))
	}

	insts := make([]Inst, len(prog.Inst)-a.StartOffset)
	maxGroup := 0

	for id, inst := range prog.Inst {
		if id < a.StartOffset {
			continue
		}
		translated, group, err := a.translateOne(inst)
		if err != nil {
			return nil, err
		}
		insts[id-a.StartOffset] = translated
		if group > maxGroup {
			maxGroup = group
		}
	}

	start := prog.Start - a.StartOffset
	if start < 0 || start >= len(insts) {
		return nil, zkerr.New(zkerr.InvalidStateID, "start id %d out of range [0,%d) after offset %d", prog.Start, len(insts), a.StartOffset)
	}

	return &Program{
		Insts:            insts,
		Start:            start,
		NumCaptureGroups: maxGroup,
	}, nil
}

func (a *Adapter) translateOne(inst syntax.Inst) (Inst, int, error) {
	off := a.StartOffset
	switch inst.Op {
	case syntax.InstFail:
		return Fail{}, 0, nil

	case syntax.InstMatch:
		return Match{}, 0, nil

	case syntax.InstNop:
		return Look{Next: int(inst.Out) - off}, 0, nil

	case syntax.InstEmptyWidth:
		// Zero-width assertions (^, $, \b, \B, ...). The predicate (inst.Arg,
		// an syntax.EmptyOp bitmask) is intentionally discarded: spec.md
		// §4.1/§9 treat all lookaround/assertions as unconditional epsilon
		// edges, accepting a superset of the intended language.
		return Look{Next: int(inst.Out) - off}, 0, nil

	case syntax.InstCapture:
		slot := int(inst.Arg)
		return Capture{
			Next:  int(inst.Out) - off,
			Group: slot / 2,
			Slot:  slot,
		}, slot / 2, nil

	case syntax.InstAlt, syntax.InstAltMatch:
		return BinaryUnion{A: int(inst.Out) - off, B: int(inst.Arg) - off}, 0, nil

	case syntax.InstRune1:
		if len(inst.Rune) == 0 {
			return nil, 0, zkerr.New(zkerr.ParseError, "InstRune1 with no rune data")
		}
		b := runeToByte(inst.Rune[0])
		return ByteRange{Lo: b, Hi: b, Next: int(inst.Out) - off}, 0, nil

	case syntax.InstRuneAny:
		return ByteRange{Lo: 0, Hi: 255, Next: int(inst.Out) - off}, 0, nil

	case syntax.InstRuneAnyNotNL:
		// Any byte except '\n'; modeled as two contiguous sparse entries.
		next := int(inst.Out) - off
		return Sparse{Entries: []RangeEntry{
			{Lo: 0, Hi: '\n' - 1, Next: next},
			{Lo: '\n' + 1, Hi: 255, Next: next},
		}}, 0, nil

	case syntax.InstRune:
		return runeClassToInst(inst, off), 0, nil

	default:
		return nil, 0, zkerr.New(zkerr.ParseError, "unsupported instruction opcode %v", inst.Op)
	}
}

// runeToByte clamps a parsed rune into the byte alphabet this compiler
// operates over. spec.md's non-goals explicitly exclude Unicode semantics
// beyond byte-level matching; bytes above 0xFF (non-ASCII code points that
// regexp/syntax still represents as single runes before any case folding)
// are clamped to 0xFF so that a pattern using Unicode literals still
// compiles instead of panicking, at the cost of overmatching on the
// clamped byte — the same tradeoff KromDaniel-regengo's rune-condition
// generator makes for out-of-ASCII ranges.
func runeToByte(r rune) byte {
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return byte(r)
}

// runeClassToInst expands an InstRune's sorted rune-pair list into byte
// ranges, choosing Sparse or Dense based on the expanded entry count. off is
// subtracted from inst.Out the same way every other translateOne branch
// offsets its Next/target ids.
func runeClassToInst(inst syntax.Inst, off int) Inst {
	next := int(inst.Out) - off
	runes := inst.Rune

	foldCase := syntax.Flags(inst.Arg)&syntax.FoldCase != 0

	var entries []RangeEntry
	for i := 0; i+1 < len(runes); i += 2 {
		lo, hi := runeToByte(runes[i]), runeToByte(runes[i+1])
		entries = append(entries, RangeEntry{Lo: lo, Hi: hi, Next: next})
		if foldCase {
			entries = append(entries, foldedRanges(lo, hi, next)...)
		}
	}

	if len(entries) == 0 {
		return Fail{}
	}

	if len(entries) < denseThreshold {
		return Sparse{Entries: entries}
	}

	var table [256]int
	for i := range table {
		table[i] = -1
	}
	for _, e := range entries {
		for b := int(e.Lo); b <= int(e.Hi); b++ {
			table[b] = e.Next
		}
	}
	return Dense{NextOrNegative: table}
}

// foldedRanges returns the ASCII case-folded counterpart ranges for [lo,hi],
// if any bytes in range fall in 'A'-'Z' or 'a'-'z'. This only needs to cover
// ASCII because of the byte-level non-goal documented on runeToByte.
func foldedRanges(lo, hi byte, next int) []RangeEntry {
	var out []RangeEntry
	for b := int(lo); b <= int(hi); b++ {
		switch {
		case b >= 'A' && b <= 'Z':
			out = append(out, RangeEntry{Lo: byte(b + 32), Hi: byte(b + 32), Next: next})
		case b >= 'a' && b <= 'z':
			out = append(out, RangeEntry{Lo: byte(b - 32), Hi: byte(b - 32), Next: next})
		}
	}
	return out
}
