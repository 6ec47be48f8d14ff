package sink

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/Ubehebe/rowset/internal/dataset"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestColumnKind(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"big", "small", "f", "b", "d", "s", "inf_only", "empty"},
		Rows: []dataset.Record{
			{
				"big":      big.NewInt(42),
				"small":    int64(7),
				"f":        1.5,
				"b":        true,
				"d":        "2024-03-05T00:00:00Z",
				"s":        "hello",
				"inf_only": "inf",
				"empty":    nil,
			},
		},
	}

	tests := []struct {
		col  string
		want dataset.Kind
	}{
		{"big", dataset.KindInteger},
		{"small", dataset.KindInteger},
		{"f", dataset.KindNumber},
		{"b", dataset.KindBoolean},
		{"d", dataset.KindDate},
		{"s", dataset.KindString},
		{"inf_only", dataset.KindNumber},
		{"empty", dataset.KindString},
	}
	for _, tt := range tests {
		if got := columnKind(table, tt.col); got != tt.want {
			t.Errorf("columnKind(%q) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestCellValueInteger(t *testing.T) {
	v, err := cellValue(big.NewInt(42), dataset.KindInteger)
	if err != nil {
		t.Fatal(err)
	}
	num, ok := v.(pgtype.Numeric)
	if !ok || !num.Valid || num.Int.Int64() != 42 {
		t.Errorf("big int cell = %+v", v)
	}

	v, err = cellValue("inf", dataset.KindInteger)
	if err != nil {
		t.Fatal(err)
	}
	num, ok = v.(pgtype.Numeric)
	if !ok || num.InfinityModifier != pgtype.Infinity {
		t.Errorf("inf cell = %+v", v)
	}
}

func TestCellValueNumber(t *testing.T) {
	v, err := cellValue("-inf", dataset.KindNumber)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := v.(pgtype.Float8)
	if !ok || !math.IsInf(f.Float64, -1) {
		t.Errorf("-inf cell = %+v", v)
	}

	v, err = cellValue(3.14, dataset.KindNumber)
	if err != nil {
		t.Fatal(err)
	}
	f, ok = v.(pgtype.Float8)
	if !ok || f.Float64 != 3.14 {
		t.Errorf("number cell = %+v", v)
	}
}

func TestCellValueDate(t *testing.T) {
	v, err := cellValue("2024-03-05T13:45:00Z", dataset.KindDate)
	if err != nil {
		t.Fatal(err)
	}
	ts, ok := v.(pgtype.Timestamptz)
	if !ok || !ts.Valid || ts.Time.Hour() != 13 {
		t.Errorf("date cell = %+v", v)
	}
}

func TestCellValueNulls(t *testing.T) {
	// nil cells and type mismatches become NULL, never errors.
	cases := []struct {
		v    any
		kind dataset.Kind
	}{
		{nil, dataset.KindInteger},
		{"not a bool", dataset.KindBoolean},
		{"not a date", dataset.KindDate},
		{"neither", dataset.KindNumber},
	}
	for _, c := range cases {
		v, err := cellValue(c.v, c.kind)
		if err != nil {
			t.Errorf("cellValue(%v, %v) error: %v", c.v, c.kind, err)
		}
		if c.v == nil && v != nil {
			t.Errorf("nil cell should stay nil, got %+v", v)
		}
	}
}

func TestCreateTableSQL(t *testing.T) {
	sql := createTableSQL("imports", []string{"a", "a\u200b"}, []dataset.Kind{dataset.KindInteger, dataset.KindNumber})
	if !strings.Contains(sql, `CREATE TABLE IF NOT EXISTS "imports"`) {
		t.Errorf("sql = %s", sql)
	}
	if !strings.Contains(sql, "numeric") || !strings.Contains(sql, "double precision") {
		t.Errorf("sql missing column types: %s", sql)
	}
}
