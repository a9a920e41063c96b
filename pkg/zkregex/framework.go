// Package zkregex is the public entry point (spec.md §6): Compile,
// CompileDecomposed, and GenerateWitness wire together internal/frontend,
// internal/ir, internal/elim, internal/nfa, internal/coalesce,
// internal/emit/circom, internal/emit/noir, internal/simulate,
// internal/witness, and internal/decompose into the three operations an
// external caller (CLI or host-language binding) needs.
package zkregex

import "github.com/zkregex-go/compiler/internal/zkerr"

// Framework is the target circuit proving system, spec.md §6's "framework
// tag".
type Framework string

const (
	Circom Framework = "circom"
	Noir   Framework = "noir"
)

// FileExtension returns the conventional file extension for generated
// source in this framework.
func (f Framework) FileExtension() string {
	switch f {
	case Circom:
		return "circom"
	case Noir:
		return "nr"
	default:
		return ""
	}
}

// Validate reports whether f is a known framework tag.
func (f Framework) Validate() error {
	switch f {
	case Circom, Noir:
		return nil
	default:
		return zkerr.New(zkerr.TemplateError, "unknown framework %q", f)
	}
}
