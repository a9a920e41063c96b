package noir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zkregex-go/compiler/internal/coalesce"
	"github.com/zkregex-go/compiler/internal/nfa"
)

// Emit produces the Noir source for f: a transition lookup table (simple
// or sparse, chosen per opts.NoirTableSizeLimit), the shared Sequence
// helper, a regex_match function asserting the four conditions of spec.md
// §4.9, and one extract_capture{g} function per declared group.
func Emit(f *nfa.NFA, transitions []coalesce.Transition, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if err := f.Verify(); err != nil {
		return "", err
	}

	rows := expandRows(transitions)
	kind := chooseTableKind(f.StateCount(), opts.sizeLimit())
	if err := checkTableSize(rows, kind); err != nil {
		return "", err
	}

	var out strings.Builder

	fmt.Fprintf(&out, "// Generated Noir source for pattern %q (%d states, %d coalesced transitions).\n\n", f.Pattern, f.StateCount(), len(transitions))
	out.WriteString(sequenceHelper)
	out.WriteString("\n")
	out.WriteString(makeLookupTable(rows, f.StateCount(), kind))
	out.WriteString("\n")

	fmt.Fprintf(&out, "global START_STATES: [Field; %d] = [%s];\n", len(f.StartStates), joinInts(f.StartStates))
	fmt.Fprintf(&out, "global ACCEPT_STATES: [Field; %d] = [%s];\n\n", len(f.AcceptStates), joinInts(f.AcceptStates))

	out.WriteString(regexMatchFn(opts, kind))

	for g := 1; g <= opts.NumCaptureGroups(); g++ {
		fmt.Fprintf(&out, "\n%s", extractCaptureFn(g, opts.MaxBytesPerGroup[g-1]))
	}

	return out.String(), nil
}

func regexMatchFn(opts Options, kind TableKind) string {
	keyExpr := fmt.Sprintf("current_states[i] + (haystack[i] as Field) * %d + next_states[i] * %d", tableRadix, tableRadix*tableRadix)

	return fmt.Sprintf(`fn %s<let H: u32, let M: u32>(
    haystack: [u8; H],
    current_states: [Field; M],
    next_states: [Field; M],
    transition_length: u32,
) -> bool {
    // (a) current_states[0] satisfies the start predicate.
    let mut start_prod: Field = 1;
    for i in 0..START_STATES.len() {
        start_prod *= current_states[0] - START_STATES[i];
    }
    assert(start_prod == 0, "invalid start state");

    for i in 0..M {
        let in_range = i < transition_length;

        // (b) linkage: next_states[i] feeds current_states[i + 1].
        if (i + 1 < M) {
            let link_in_range = (i + 1) < transition_length;
            assert((link_in_range as Field) * (current_states[i + 1] - next_states[i]) == 0, "broken transition linkage");
        }

        // (c) the transition table confirms (current, byte, next) is valid,
        // or this step is past the end of the run.
        let key: Field = %s;
        let valid = %s;
        assert((in_range as Field) * (1 - valid) == 0, "invalid byte transition");
    }

    // (d) the run ends in an accept state.
    let mut accept_prod: Field = 1;
    for i in 0..ACCEPT_STATES.len() {
        accept_prod *= next_states[transition_length - 1] - ACCEPT_STATES[i];
    }
    accept_prod == 0
}
`, opts.FunctionName, keyExpr, accessTable("key", kind))
}

func extractCaptureFn(group, maxBytes int) string {
	return fmt.Sprintf(`fn extract_capture%d<let H: u32>(
    haystack: [u8; H],
    start_index: u32,
) -> [u8; %d] {
    let seq = Sequence::new(start_index, %d);
    let mut out: [u8; %d] = [0; %d];
    for i in 0..%d {
        let idx = seq.index + i;
        let active = seq.in_range(idx);
        let safe_idx = if idx < H { idx } else { 0 };
        out[i] = haystack[safe_idx] * (active as u8);
    }
    out
}
`, group, maxBytes, maxBytes, maxBytes, maxBytes, maxBytes)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
