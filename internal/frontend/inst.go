// Package frontend turns a regex pattern string into Thompson-construction
// primitive states, reusing Go's regexp/syntax package as the "external
// parser" spec.md §4.1 and §9 describe: syntax.Parse + syntax.Compile give a
// byte-addressable syntax.Prog whose instructions this package translates,
// one-for-one, into the closed set of primitive state variants the rest of
// the pipeline (internal/ir) builds on.
package frontend

// Inst is the closed set of primitive Thompson states. Every regexp/syntax
// instruction maps onto exactly one of these — implementers of a different
// front end should exhaust this same set (spec.md §9).
type Inst interface {
	isInst()
}

// ByteRange matches a single contiguous byte range [Lo, Hi] and continues at
// Next.
type ByteRange struct {
	Lo, Hi byte
	Next   int
}

func (ByteRange) isInst() {}

// RangeEntry is one (possibly narrow) byte sub-range within a Sparse state.
type RangeEntry struct {
	Lo, Hi byte
	Next   int
}

// Sparse matches any of several byte ranges (a character class), each
// entry independently naming its own continuation state.
type Sparse struct {
	Entries []RangeEntry
}

func (Sparse) isInst() {}

// Dense is a fully expanded byte->next table. NextOrNegative[b] is -1 when
// byte b has no transition out of this state. The front end emits Dense
// instead of Sparse when a character class's expanded entry count makes a
// flat table cheaper to reason about downstream (see denseThreshold in
// adapter.go).
type Dense struct {
	NextOrNegative [256]int
}

func (Dense) isInst() {}

// Union is an n-ary epsilon branch to every state in Next. regexp/syntax
// never emits this directly (it always encodes multi-way alternation as a
// left-leaning chain of binary InstAlt), so the front end never produces a
// Union by itself; it is kept in the variant set for parsers that expose
// n-ary alternation natively. internal/ir.Build turns each entry into an
// epsilon edge.
type Union struct {
	Next []int
}

func (Union) isInst() {}

// BinaryUnion is an epsilon branch to exactly two states — the shape
// regexp/syntax's InstAlt always has.
type BinaryUnion struct {
	A, B int
}

func (BinaryUnion) isInst() {}

// Capture is an unconditional epsilon edge to Next that also marks a
// capture-group boundary. Slot parity determines IsStart: even -> open,
// odd -> close (spec.md §4.1); Group is Slot/2.
type Capture struct {
	Next  int
	Group int
	Slot  int
}

// IsStart reports whether this capture marks the open (true) or close
// (false) boundary of its group, per slot parity.
func (c Capture) IsStart() bool {
	return c.Slot%2 == 0
}

func (Capture) isInst() {}

// Look is an unconditional epsilon edge to Next standing in for a lookaround
// or zero-width assertion (^, $, \b, \B, lookahead/lookbehind if the front
// end ever supports them). The predicate itself is discarded — this
// over-matches, exactly as spec.md §4.1 and §9 document.
type Look struct {
	Next int
}

func (Look) isInst() {}

// Match marks an accepting state; it has no outgoing edges.
type Match struct{}

func (Match) isInst() {}

// Fail marks a dead state with no outgoing edges.
type Fail struct{}

func (Fail) isInst() {}
