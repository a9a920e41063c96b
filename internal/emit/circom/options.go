// Package circom implements the Circom backend emitter (spec.md §4.8, C8):
// given a final NFA, its coalesced transition tuples, and per-group maximum
// byte lengths, it produces a parameterized Circom template text.
//
// Grounded on original_source/compiler/src/nfa/codegen/circom.rs, which
// builds the same template by Rust string formatting over an identical
// tuple list; this package keeps that "string producer" shape but uses Go's
// text/template + strings.Builder, since no Go-AST codegen library applies
// to a non-Go target language (see DESIGN.md).
package circom

import (
	"github.com/zkregex-go/compiler/internal/zkerr"
)

// Options parameterizes Emit.
type Options struct {
	// TemplateName is the Circom template identifier; must be non-empty.
	TemplateName string

	// H and M are the haystack and path-length bounds the template is
	// parameterized over (spec.md §4.8).
	H, M int

	// MaxBytesPerGroup holds the declared maximum capture length for group
	// g at index g-1. Its length determines NumCaptureGroups. Every entry
	// must be positive (spec.md §4.8: "Fails at generation time with
	// InvalidCapture when max_bytes is missing or contains zero").
	MaxBytesPerGroup []int
}

// Validate checks the options spec.md §4.8 requires before code generation
// proceeds.
func (o Options) Validate() error {
	if o.TemplateName == "" {
		return zkerr.New(zkerr.TemplateError, "circom: template name is empty")
	}
	if o.H <= 0 {
		return zkerr.New(zkerr.TemplateError, "circom: H must be positive, got %d", o.H)
	}
	if o.M <= 0 {
		return zkerr.New(zkerr.TemplateError, "circom: M must be positive, got %d", o.M)
	}
	for i, mb := range o.MaxBytesPerGroup {
		if mb <= 0 {
			return zkerr.New(zkerr.InvalidCapture, "circom: group %d has non-positive max_bytes %d", i+1, mb)
		}
	}
	return nil
}

// NumCaptureGroups reports how many public groups Options describes.
func (o Options) NumCaptureGroups() int {
	return len(o.MaxBytesPerGroup)
}
