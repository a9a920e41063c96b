package zkregex

import (
	"context"

	"github.com/zkregex-go/compiler/internal/nfa"
	"github.com/zkregex-go/compiler/internal/simulate"
	"github.com/zkregex-go/compiler/internal/witness"
)

// GenerateWitness finds an accepting run of f over input and builds the
// padded witness record the generated circuit expects, matching spec.md
// §6's `generate_inputs(final_nfa, input, H, M, framework) → witness_record`.
// maxBytesPerGroup must be the same group->maxBytes declarations passed to
// Compile for this NFA (spec.md's illustrative signature omits it, but the
// witness's per-group arrays must be validated against the same bounds the
// circuit's capture{g} outputs were sized with, or InvalidCapture could
// never fire here). The framework argument only affects which JSON shape
// the caller should serialize the result into (see json.go); the witness
// values themselves do not depend on the target framework.
func GenerateWitness(ctx context.Context, f *nfa.NFA, input []byte, h, m int, maxBytesPerGroup map[int]int, fw Framework) (*witness.Witness, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := fw.Validate(); err != nil {
		return nil, err
	}

	run, err := simulate.Find(f, input)
	if err != nil {
		return nil, err
	}

	maxBytes := make([]int, f.NumCaptureGroups)
	for g, mb := range maxBytesPerGroup {
		if g >= 1 && g <= f.NumCaptureGroups {
			maxBytes[g-1] = mb
		}
	}

	return witness.Generate(run, input, h, m, maxBytes)
}
