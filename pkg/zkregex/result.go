package zkregex

import (
	"context"

	"github.com/zkregex-go/compiler/internal/nfa"
)

// CompileResult bundles a compilation's two return values, adapted from
// original_source/packages/compiler/src/types.rs's RegexOutput{graph, code}.
// Compile's positional two-value signature remains primary (it is the one
// spec.md §6 names); CompileResult is a convenience for callers that prefer
// a single named-field value.
type CompileResult struct {
	Graph *nfa.NFA
	Code  string
}

// CompileToResult calls Compile and wraps its two return values in a
// CompileResult.
func CompileToResult(ctx context.Context, pattern string, opts Options) (CompileResult, error) {
	graph, code, err := Compile(ctx, pattern, opts)
	if err != nil {
		return CompileResult{}, err
	}
	return CompileResult{Graph: graph, Code: code}, nil
}
