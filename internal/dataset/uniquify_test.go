package dataset

import (
	"strings"
	"testing"
)

func TestUniquifyColumnNames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input unchanged",
			in:   "",
			want: "",
		},
		{
			name: "no separator unchanged",
			in:   "singlecolumn\nrow1",
			want: "singlecolumn\nrow1",
		},
		{
			name: "no duplicates is identity",
			in:   "a,b,c\n1,2,3",
			want: "a,b,c\n1,2,3",
		},
		{
			name: "single duplicate gets one marker",
			in:   "a,a\n1,2",
			want: "a,a\u200b\n1,2",
		},
		{
			name: "triple duplicate gets increasing markers",
			in:   "a,a,a\n1,2,3",
			want: "a,a\u200b,a\u200b\u200b\n1,2,3",
		},
		{
			name: "duplicates interleaved with unique names",
			in:   "id,name,id,value\n1,x,2,y",
			want: "id,name,id\u200b,value\n1,x,2,y",
		},
		{
			name: "empty names deduplicated like any string",
			in:   ",,\n1,2,3",
			want: ",\u200b,\u200b\u200b\n1,2,3",
		},
		{
			name: "header only",
			in:   "a,b,a",
			want: "a,b,a\u200b",
		},
		{
			name: "rows never touched",
			in:   "a,a\nfoo,foo\nbar,bar",
			want: "a,a\u200b\nfoo,foo\nbar,bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniquifyColumnNames(tt.in, ',')
			if got != tt.want {
				t.Errorf("UniquifyColumnNames(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUniquifyColumnNamesCustomSeparator(t *testing.T) {
	got := UniquifyColumnNames("a\ta\n1\t2", '\t')
	want := "a\ta\u200b\n1\t2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Comma-free text with a tab separator declared: the commas are data.
	in := "a,b\nrow"
	if got := UniquifyColumnNames(in, '\t'); got != in {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestUniquifyColumnNamesProperties(t *testing.T) {
	in := "a,b,a,b,a\n1,2,3,4,5\n6,7,8,9,10"
	out := UniquifyColumnNames(in, ',')

	inLines := strings.Split(in, "\n")
	outLines := strings.Split(out, "\n")
	if len(outLines) != len(inLines) {
		t.Fatalf("line count changed: got %d, want %d", len(outLines), len(inLines))
	}
	for i := 1; i < len(inLines); i++ {
		if outLines[i] != inLines[i] {
			t.Errorf("line %d changed: got %q, want %q", i, outLines[i], inLines[i])
		}
	}

	names := strings.Split(outLines[0], ",")
	if len(names) != 5 {
		t.Fatalf("column count changed: got %d, want 5", len(names))
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate name %q survived deduplication", n)
		}
		seen[n] = true
	}

	// Markers are invisible: stripping them must recover the original header.
	stripped := strings.ReplaceAll(outLines[0], zeroWidthSpace, "")
	if stripped != inLines[0] {
		t.Errorf("stripped header = %q, want %q", stripped, inLines[0])
	}
}
