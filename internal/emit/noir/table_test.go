package noir

import (
	"strings"
	"testing"

	"github.com/zkregex-go/compiler/internal/coalesce"
	"github.com/zkregex-go/compiler/internal/zkerr"
)

func TestExpandRowsCoversFullByteRange(t *testing.T) {
	transitions := []coalesce.Transition{
		{Src: 0, Lo: 'a', Hi: 'c', Dst: 1},
	}
	rows := expandRows(transitions)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, want := range []int{'a', 'b', 'c'} {
		if rows[i].Byte != want {
			t.Errorf("row %d byte = %d, want %d", i, rows[i].Byte, want)
		}
	}
}

func TestTableKeyIsInjectiveOverRadix(t *testing.T) {
	a := tableKey(tableRow{Src: 1, Byte: 2, Dst: 3})
	b := tableKey(tableRow{Src: 1, Byte: 2, Dst: 4})
	if a == b {
		t.Errorf("distinct destinations produced the same key: %d", a)
	}
}

func TestMakeSimpleTableMarksEachRow(t *testing.T) {
	rows := []tableRow{{Src: 0, Byte: 'a', Dst: 1}}
	out := makeSimpleTable(rows, 2)
	if !strings.Contains(out, "table[") {
		t.Fatalf("expected table assignment in output, got:\n%s", out)
	}
}

func TestMakeSparseTableListsKeys(t *testing.T) {
	rows := []tableRow{{Src: 0, Byte: 'a', Dst: 1}, {Src: 1, Byte: 'b', Dst: 2}}
	out := makeSparseTable(rows)
	if !strings.Contains(out, "TRANSITION_KEYS") || !strings.Contains(out, "lookup_transition") {
		t.Fatalf("sparse table missing expected identifiers:\n%s", out)
	}
}

func TestCheckTableSizeAcceptsSimpleRegardlessOfRowCount(t *testing.T) {
	rows := make([]tableRow, maxSparseTableRows+1)
	if err := checkTableSize(rows, TableSimple); err != nil {
		t.Fatalf("checkTableSize: unexpected error for TableSimple: %v", err)
	}
}

func TestCheckTableSizeRejectsOversizedSparseTable(t *testing.T) {
	rows := make([]tableRow, maxSparseTableRows+1)
	err := checkTableSize(rows, TableSparse)
	if err == nil {
		t.Fatal("expected TemplateError for a sparse table past the row ceiling")
	}
	ze, ok := err.(*zkerr.Error)
	if !ok {
		t.Fatalf("expected *zkerr.Error, got %T", err)
	}
	if ze.Kind != zkerr.TemplateError {
		t.Fatalf("got kind %v, want TemplateError", ze.Kind)
	}
}
