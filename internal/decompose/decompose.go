// Package decompose implements the decomposed-pattern composer (spec.md
// §4.10, C10): it concatenates an ordered list of Private/Public parts into
// one pattern string, wrapping each Public part's body in a capture group,
// and returns the per-capture maximum byte vector in public-part order.
//
// Grounded on original_source/packages/apis/src/extract_substrs.rs's
// RegexPartConfig/DecomposedRegexConfig (is_public + regex_def) and on
// original_source/packages/compiler/src/js_caller.rs's validation of parts
// lists and template names.
package decompose

import (
	"regexp"

	"github.com/zkregex-go/compiler/internal/zkerr"
)

// Part is one segment of a decomposed pattern: either Private (not exposed
// as a capture group) or Public (wrapped in a capture group with a declared
// maximum byte length).
type Part struct {
	Regex    string
	IsPublic bool
	MaxBytes int // only meaningful when IsPublic
}

// Private constructs a non-revealed part.
func Private(regex string) Part {
	return Part{Regex: regex, IsPublic: false}
}

// Public constructs a publicly revealed part with a declared maximum byte
// length for its captured substring.
func Public(regex string, maxBytes int) Part {
	return Part{Regex: regex, IsPublic: true, MaxBytes: maxBytes}
}

// Config is an ordered decomposed-pattern configuration, spec.md §3's
// "Decomposed configuration".
type Config struct {
	Parts []Part
}

var templateNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// ValidateTemplateName reports whether name is PascalCase, as spec.md §4.10
// requires.
func ValidateTemplateName(name string) error {
	if !templateNamePattern.MatchString(name) {
		return zkerr.New(zkerr.TemplateError, "template name %q is not PascalCase", name)
	}
	return nil
}

// Validate checks the config is non-empty, no part has an empty regex body
// (it can only ever match the empty string and signals a caller mistake),
// and every Public part declares a positive MaxBytes. Parts carry no group
// names, so no duplicate-name check is made.
func (c Config) Validate() error {
	if len(c.Parts) == 0 {
		return zkerr.New(zkerr.ParseError, "decomposed config has no parts")
	}
	for i, p := range c.Parts {
		if p.Regex == "" {
			return zkerr.New(zkerr.ParseError, "part %d has an empty regex body", i)
		}
		if p.IsPublic && p.MaxBytes <= 0 {
			return zkerr.New(zkerr.InvalidCapture, "public part %d (%q) has non-positive max_bytes %d", i, p.Regex, p.MaxBytes)
		}
	}
	return nil
}

// Compose concatenates c's parts into one pattern, wrapping each Public
// part's body in a capturing group `(...)`. No other escaping is
// performed: part authors are trusted to provide non-capturing inner
// parentheses `(?:...)` where needed, per spec.md §4.10. It returns the
// composed pattern and the max-bytes vector in public-part order.
func (c Config) Compose() (pattern string, maxBytes []int, err error) {
	if err := c.Validate(); err != nil {
		return "", nil, err
	}

	for _, p := range c.Parts {
		if p.IsPublic {
			pattern += "(" + p.Regex + ")"
			maxBytes = append(maxBytes, p.MaxBytes)
		} else {
			pattern += p.Regex
		}
	}

	return pattern, maxBytes, nil
}

// NumPublicParts returns the number of Public parts, i.e. the number of
// capture groups the composed pattern will contain.
func (c Config) NumPublicParts() int {
	n := 0
	for _, p := range c.Parts {
		if p.IsPublic {
			n++
		}
	}
	return n
}
