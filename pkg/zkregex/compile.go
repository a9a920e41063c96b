package zkregex

import (
	"context"

	"github.com/zkregex-go/compiler/internal/coalesce"
	"github.com/zkregex-go/compiler/internal/decompose"
	"github.com/zkregex-go/compiler/internal/elim"
	emitcircom "github.com/zkregex-go/compiler/internal/emit/circom"
	emitnoir "github.com/zkregex-go/compiler/internal/emit/noir"
	"github.com/zkregex-go/compiler/internal/frontend"
	"github.com/zkregex-go/compiler/internal/ir"
	"github.com/zkregex-go/compiler/internal/nfa"
	"github.com/zkregex-go/compiler/internal/zkerr"
	"github.com/zkregex-go/compiler/internal/zlog"
)

// Compile turns pattern into a final NFA and generated circuit source for
// opts.Framework, matching spec.md §6's
// `compile(pattern, framework, template_name, max_bytes_per_public_group?)`.
// Every capture group the pattern contains must have a positive entry in
// opts.MaxBytesPerGroup — this compiler only models "private" sub-patterns
// through internal/decompose's Private parts (which never produce a
// capture group at all); a raw pattern that has capture groups exposes all
// of them.
func Compile(ctx context.Context, pattern string, opts Options) (*nfa.NFA, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	log := zlog.New(opts.Verbose)

	log.Section("frontend")
	adapter := frontend.NewAdapter()
	prog, err := adapter.Parse(pattern)
	if err != nil {
		return nil, "", err
	}
	log.Log("parsed %q into %d primitive states, %d capture groups", pattern, len(prog.Insts), prog.NumCaptureGroups)

	if err := requireMaxBytesForEveryGroup(opts, prog.NumCaptureGroups); err != nil {
		return nil, "", err
	}

	log.Section("ir")
	graph, err := ir.Build(pattern, prog)
	if err != nil {
		return nil, "", err
	}

	log.Section("elim")
	final, err := elim.Eliminate(graph)
	if err != nil {
		return nil, "", err
	}
	log.Log("eliminated epsilons: %d states remain", final.StateCount())

	log.Section("coalesce")
	transitions := coalesce.Coalesce(final)
	log.Log("coalesced into %d transition tuples", len(transitions))

	log.Section("emit")
	code, err := emit(final, transitions, opts)
	if err != nil {
		return nil, "", err
	}

	return final, code, nil
}

// CompileDecomposed composes parts into a single pattern (internal/decompose,
// C10) and compiles it, matching spec.md §6's
// `compile_decomposed(parts, framework, template_name)`. Every Public part's
// declared max_bytes becomes the corresponding group's entry in
// Options.MaxBytesPerGroup automatically; Private parts never produce a
// capture group.
func CompileDecomposed(ctx context.Context, cfg decompose.Config, fw Framework, templateName string, h, m int) (*nfa.NFA, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := decompose.ValidateTemplateName(templateName); err != nil {
		return nil, "", err
	}

	pattern, maxBytes, err := cfg.Compose()
	if err != nil {
		return nil, "", err
	}

	maxBytesMap := make(map[int]int, len(maxBytes))
	for i, mb := range maxBytes {
		maxBytesMap[i+1] = mb
	}

	return Compile(ctx, pattern, Options{
		Framework:        fw,
		TemplateName:     templateName,
		MaxBytesPerGroup: maxBytesMap,
		H:                h,
		M:                m,
	})
}

func requireMaxBytesForEveryGroup(opts Options, numGroups int) error {
	for g := 1; g <= numGroups; g++ {
		if mb, ok := opts.MaxBytesPerGroup[g]; !ok || mb <= 0 {
			return zkerr.New(zkerr.InvalidCapture, "capture group %d has no positive max_bytes declared", g)
		}
	}
	return nil
}

func emit(final *nfa.NFA, transitions []coalesce.Transition, opts Options) (string, error) {
	maxBytes := opts.maxBytesSlice(final.NumCaptureGroups)

	switch opts.Framework {
	case Circom:
		return emitcircom.Emit(final, transitions, emitcircom.Options{
			TemplateName:     opts.TemplateName,
			H:                opts.H,
			M:                opts.M,
			MaxBytesPerGroup: maxBytes,
		})
	case Noir:
		return emitnoir.Emit(final, transitions, emitnoir.Options{
			FunctionName:     opts.TemplateName,
			H:                opts.H,
			M:                opts.M,
			MaxBytesPerGroup: maxBytes,
		})
	default:
		return "", zkerr.New(zkerr.TemplateError, "unknown framework %q", opts.Framework)
	}
}
