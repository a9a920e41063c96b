package zkregex

import "github.com/zkregex-go/compiler/internal/zkerr"

// Options configures a Compile or CompileDecomposed call: target framework,
// emitted template/function name, per-group capture bounds, and the
// haystack/path-length bounds the generated circuit is sized for. This
// mirrors the teacher's config-struct-with-Validate convention
// (KromDaniel-regengo's regengo.Options) rather than a long positional
// parameter list.
type Options struct {
	Framework Framework

	// TemplateName becomes the Circom template identifier or the Noir
	// function name, depending on Framework. Must be PascalCase for
	// Circom (spec.md §4.10's rule, reused here for consistency) and a
	// valid Noir identifier for Noir.
	TemplateName string

	// MaxBytesPerGroup declares, for each capture group (1-indexed keys),
	// the maximum number of bytes its captured substring may span. Every
	// capture group in the pattern needs a positive entry: Compile fails
	// with InvalidCapture for a group that has none.
	MaxBytesPerGroup map[int]int

	// H and M bound the haystack array length and path length the
	// generated circuit is sized for (spec.md §4.8's "parameterized by
	// (H, M)"); both must be positive.
	H, M int

	// Verbose enables internal/zlog phase tracing during compilation.
	Verbose bool
}

// Validate checks the options before compilation begins.
func (o Options) Validate() error {
	if err := o.Framework.Validate(); err != nil {
		return err
	}
	if o.TemplateName == "" {
		return zkerr.New(zkerr.TemplateError, "options: template name is empty")
	}
	if o.H <= 0 {
		return zkerr.New(zkerr.TemplateError, "options: H must be positive, got %d", o.H)
	}
	if o.M <= 0 {
		return zkerr.New(zkerr.TemplateError, "options: M must be positive, got %d", o.M)
	}
	for g, mb := range o.MaxBytesPerGroup {
		if g <= 0 {
			return zkerr.New(zkerr.InvalidCapture, "options: group id %d must be >= 1", g)
		}
		if mb <= 0 {
			return zkerr.New(zkerr.InvalidCapture, "options: group %d has non-positive max_bytes %d", g, mb)
		}
	}
	return nil
}

// maxBytesSlice converts the sparse group->maxBytes map into a dense
// 0-indexed slice of length numGroups, as internal/emit/circom and
// internal/emit/noir expect. Compile already rejects any pattern whose
// capture groups aren't all present in MaxBytesPerGroup (see
// requireMaxBytesForEveryGroup), so every entry this produces is positive
// by the time an emitter sees it.
func (o Options) maxBytesSlice(numGroups int) []int {
	out := make([]int, numGroups)
	for g, mb := range o.MaxBytesPerGroup {
		if g >= 1 && g <= numGroups {
			out[g-1] = mb
		}
	}
	return out
}
