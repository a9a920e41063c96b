package zkregex

import (
	"encoding/json"

	"github.com/zkregex-go/compiler/internal/decompose"
	"github.com/zkregex-go/compiler/internal/nfa"
	"github.com/zkregex-go/compiler/internal/witness"
	"github.com/zkregex-go/compiler/internal/zkerr"
)

// witnessJSON is the wire shape spec.md §6 names for a generated witness.
// encoding/json is used rather than an ecosystem library: the schema is
// small and flat, and the struct tags already give exact control over the
// camelCase field names the schema requires (see DESIGN.md).
type witnessJSON struct {
	Type                     string   `json:"type"`
	InHaystack               []byte   `json:"inHaystack"`
	MatchStart               int      `json:"matchStart"`
	MatchLength              int      `json:"matchLength"`
	CurrStates               []int    `json:"currStates"`
	NextStates               []int    `json:"nextStates"`
	CaptureGroupIds          [][]int  `json:"captureGroupIds,omitempty"`
	CaptureGroupStarts       [][]int8 `json:"captureGroupStarts,omitempty"`
	CaptureGroupStartIndices []int    `json:"captureGroupStartIndices,omitempty"`
}

// MarshalWitnessJSON renders w into spec.md §6's witness JSON schema for
// framework fw.
func MarshalWitnessJSON(w *witness.Witness, fw Framework) ([]byte, error) {
	if err := fw.Validate(); err != nil {
		return nil, err
	}

	out := witnessJSON{
		Type:        string(fw),
		InHaystack:  w.Haystack,
		MatchStart:  w.MatchStart,
		MatchLength: w.MatchLength,
		CurrStates:  w.Curr,
		NextStates:  w.Next,
	}
	if len(w.CaptureGroupID) > 0 {
		out.CaptureGroupIds = w.CaptureGroupID
		out.CaptureGroupStarts = w.CaptureGroupStart
		out.CaptureGroupStartIndices = w.CaptureGroupStartIndices
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, zkerr.Wrap(zkerr.Serialization, err, "marshaling witness JSON")
	}
	return data, nil
}

// decomposedPartJSON mirrors spec.md §6's decomposed config part union:
// either {Pattern: string} for a Private part, or
// {PublicPattern: [string, int>0]} for a Public part.
type decomposedPartJSON struct {
	Pattern       string        `json:"Pattern,omitempty"`
	PublicPattern []interface{} `json:"PublicPattern,omitempty"`
}

type decomposedConfigJSON struct {
	Parts []decomposedPartJSON `json:"parts"`
}

// ParseDecomposedConfig decodes spec.md §6's `{ parts: [...] }` schema into
// a decompose.Config.
func ParseDecomposedConfig(data []byte) (decompose.Config, error) {
	var raw decomposedConfigJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return decompose.Config{}, zkerr.Wrap(zkerr.Deserialization, err, "parsing decomposed config JSON")
	}

	cfg := decompose.Config{}
	for i, p := range raw.Parts {
		switch {
		case p.Pattern != "":
			cfg.Parts = append(cfg.Parts, decompose.Private(p.Pattern))
		case len(p.PublicPattern) == 2:
			regex, ok := p.PublicPattern[0].(string)
			if !ok {
				return decompose.Config{}, zkerr.New(zkerr.Deserialization, "part %d: PublicPattern[0] is not a string", i)
			}
			maxBytesF, ok := p.PublicPattern[1].(float64)
			if !ok {
				return decompose.Config{}, zkerr.New(zkerr.Deserialization, "part %d: PublicPattern[1] is not a number", i)
			}
			cfg.Parts = append(cfg.Parts, decompose.Public(regex, int(maxBytesF)))
		default:
			return decompose.Config{}, zkerr.New(zkerr.Deserialization, "part %d: neither Pattern nor PublicPattern is well-formed", i)
		}
	}
	return cfg, nil
}

// MarshalNFAJSON is a thin re-export of (*nfa.NFA).ToJSON for callers that
// only import pkg/zkregex.
func MarshalNFAJSON(f *nfa.NFA) ([]byte, error) {
	return f.ToJSON()
}

// UnmarshalNFA parses data into a final NFA, matching spec.md §6's
// `final_nfa ↔ JSON`.
func UnmarshalNFA(data []byte) (*nfa.NFA, error) {
	return nfa.FromJSON(data)
}
