package noir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zkregex-go/compiler/internal/coalesce"
	"github.com/zkregex-go/compiler/internal/zkerr"
)

// maxSparseTableRows bounds the sparse encoding's own key/value array size.
// Falling back to TableSparse only caps the *flat* table's size
// (numStates*R²); the sparse table's size is len(rows), which grows with
// the coalesced transition count instead and has no other ceiling. Past
// this many rows, spec.md §4.9/§7's "fails code-gen with TemplateError when
// the target table size exceeds the declared bound" applies to the sparse
// encoding too, not just the flat one.
const maxSparseTableRows = 1 << 16

// tableRow is one (current state, byte, next state) triple the lookup
// table must map to 1, expanded from a coalesced byte range.
type tableRow struct {
	Src, Byte, Dst int
}

// expandRows flattens each coalesced transition's [lo, hi] byte range into
// one row per byte, mirroring table.rs's row iterator (there, rows come
// directly from per-byte DFA transitions; here they come from coalesced
// NFA ranges, so this expansion step is the Go-side equivalent).
func expandRows(transitions []coalesce.Transition) []tableRow {
	var rows []tableRow
	for _, t := range transitions {
		for b := int(t.Lo); b <= int(t.Hi); b++ {
			rows = append(rows, tableRow{Src: t.Src, Byte: b, Dst: t.Dst})
		}
	}
	return rows
}

func tableKey(r tableRow) int {
	return r.Src + r.Byte*tableRadix + r.Dst*tableRadix*tableRadix
}

// chooseTableKind picks Simple when the full key space `numStates * R²`
// fits under limit, Sparse otherwise — table.rs's sparse_array boolean,
// generalized from a caller-visible size bound instead of a hardcoded
// threshold.
func chooseTableKind(numStates, limit int) TableKind {
	size := numStates * tableRadix * tableRadix
	if size <= limit {
		return TableSimple
	}
	return TableSparse
}

// checkTableSize enforces the hard ceiling spec.md §4.9/§7 requires: even
// after falling back to the sparse encoding, a table that still exceeds
// maxSparseTableRows fails code generation outright instead of emitting an
// arbitrarily large Noir source file.
func checkTableSize(rows []tableRow, kind TableKind) error {
	if kind == TableSparse && len(rows) > maxSparseTableRows {
		return zkerr.New(zkerr.TemplateError, "noir: sparse transition table has %d rows, exceeds declared bound %d", len(rows), maxSparseTableRows)
	}
	return nil
}

// makeLookupTable renders the Noir source for the global transition table,
// dispatching on kind the way table.rs's make_lookup_table does.
func makeLookupTable(rows []tableRow, numStates int, kind TableKind) string {
	if kind == TableSparse {
		return makeSparseTable(rows)
	}
	return makeSimpleTable(rows, numStates)
}

func makeSimpleTable(rows []tableRow, numStates int) string {
	size := numStates * tableRadix * tableRadix

	var body strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&body, "    table[%d] = 1;\n", tableKey(r))
	}

	return fmt.Sprintf(`global TABLE_SIZE: u32 = %d;

comptime fn make_lookup_table() -> [Field; %d] {
    let mut table = [0; %d];
%s    table
}

global TRANSITION_TABLE: [Field; %d] = comptime { make_lookup_table() };
`, size, size, size, body.String(), size)
}

func makeSparseTable(rows []tableRow) string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = strconv.Itoa(tableKey(r))
	}

	return fmt.Sprintf(`global TRANSITION_KEYS: [Field; %d] = [%s];

fn lookup_transition(key: Field) -> Field {
    let mut found: Field = 0;
    for i in 0..%d {
        let is_match = TRANSITION_KEYS[i] == key;
        found = found + (is_match as Field);
    }
    (found != 0) as Field
}
`, len(keys), strings.Join(keys, ", "), len(keys))
}

// accessTable renders the expression reading the table at key expression
// keyExpr, matching table.rs's access_table dispatch.
func accessTable(keyExpr string, kind TableKind) string {
	if kind == TableSparse {
		return fmt.Sprintf("lookup_transition(%s)", keyExpr)
	}
	return fmt.Sprintf("TRANSITION_TABLE[%s]", keyExpr)
}
