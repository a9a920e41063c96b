// Package noir implements the Noir backend emitter (spec.md §4.9, C9): a
// global transition lookup table plus a regex_match function asserting a
// valid path through the table.
//
// Grounded on original_source/packages/compiler/src/noir/table.rs (simple
// vs. sparse table selection) and noir/common.rs (the Sequence helper type
// used for substring extraction), both read in full and adapted: this
// package builds the Noir source with fmt + strings.Builder the way the
// original builds it with format!, since jennifer (Go-AST only) cannot
// target a non-Go language (see DESIGN.md).
package noir

import "github.com/zkregex-go/compiler/internal/zkerr"

// TableKind selects the lookup-table encoding (supplemented feature, not in
// spec.md's distillation but present in the original implementation).
type TableKind int

const (
	// TableSimple emits a flat `[Field; N]` array literal.
	TableSimple TableKind = iota
	// TableSparse emits an array of the valid keys with a linear-scan
	// lookup function, used once the flat table would be too large.
	TableSparse
)

func (k TableKind) String() string {
	if k == TableSparse {
		return "sparse"
	}
	return "simple"
}

// tableRadix is R in spec.md §4.9's key scheme `src + byte·R + dst·R²`; 257
// exceeds the byte alphabet's 256 values so no (src, byte, dst) triple
// collides with another.
const tableRadix = 257

// defaultTableSizeLimit is the declared bound past which the emitter
// switches from TableSimple to TableSparse, matching spec.md §4.9's
// "declared bound" language.
const defaultTableSizeLimit = 1 << 20

// Options parameterizes Emit.
type Options struct {
	// FunctionName names the emitted regex_match function; must be a
	// valid Noir identifier (checked as non-empty here; full identifier
	// syntax is the caller's responsibility, matching spec.md's scope).
	FunctionName string

	// H and M bound the haystack and path-length arrays, as in the Circom
	// backend.
	H, M int

	// MaxBytesPerGroup holds each public group's declared maximum
	// capture length, index g-1.
	MaxBytesPerGroup []int

	// NoirTableSizeLimit overrides defaultTableSizeLimit when positive.
	NoirTableSizeLimit int
}

// Validate checks the options spec.md §4.9 requires.
func (o Options) Validate() error {
	if o.FunctionName == "" {
		return zkerr.New(zkerr.TemplateError, "noir: function name is empty")
	}
	if o.H <= 0 {
		return zkerr.New(zkerr.TemplateError, "noir: H must be positive, got %d", o.H)
	}
	if o.M <= 0 {
		return zkerr.New(zkerr.TemplateError, "noir: M must be positive, got %d", o.M)
	}
	for i, mb := range o.MaxBytesPerGroup {
		if mb <= 0 {
			return zkerr.New(zkerr.InvalidCapture, "noir: group %d has non-positive max_bytes %d", i+1, mb)
		}
	}
	return nil
}

func (o Options) sizeLimit() int {
	if o.NoirTableSizeLimit > 0 {
		return o.NoirTableSizeLimit
	}
	return defaultTableSizeLimit
}

// NumCaptureGroups reports how many public groups Options describes.
func (o Options) NumCaptureGroups() int {
	return len(o.MaxBytesPerGroup)
}
