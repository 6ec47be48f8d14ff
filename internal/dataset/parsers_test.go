package dataset

import (
	"testing"
)

func TestParseDateNormalizesToISO(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{
			name:  "iso date",
			input: "2024-03-05",
			want:  "2024-03-05T00:00:00Z",
		},
		{
			name:  "us slash date",
			input: "3/5/2024",
			want:  "2024-03-05T00:00:00Z",
		},
		{
			name:  "datetime with space",
			input: "2024-03-05 13:45:00",
			want:  "2024-03-05T13:45:00Z",
		},
		{
			name:  "rfc3339 with offset converted to utc",
			input: "2024-03-05T13:45:00+02:00",
			want:  "2024-03-05T11:45:00Z",
		},
		{
			name:  "not a date",
			input: "yesterday",
			want:  nil,
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.input)
			if got != tt.want {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"+3", int64(3)},
		{"2.0", int64(2)},   // truncating parse
		{"42mm", int64(42)}, // trailing junk ignored
		{" 15 ", int64(15)},
		{"abc", nil},
		{"", nil},
		{".5", nil},
	}

	for _, tt := range tests {
		got := parseInteger(tt.input)
		if got != tt.want {
			t.Errorf("parseInteger(%q) = %v (%T), want %v", tt.input, got, got, tt.want)
		}
	}
}

func TestParseIntegerOverflowDegradesToFloat(t *testing.T) {
	got := parseInteger("99999999999999999999")
	if _, ok := got.(float64); !ok {
		t.Errorf("parseInteger(overflow) = %v (%T), want float64", got, got)
	}
}

func TestParseBoolean(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"TRUE", true},
		{"False", false},
		{"yes", nil}, // only true/false spellings, inference relies on this
		{"1", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := parseBoolean(tt.input); got != tt.want {
			t.Errorf("parseBoolean(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   Kind
	}{
		{"integers", []string{"1", "-2", "30"}, KindInteger},
		{"integers with empties", []string{"1", "", "3"}, KindInteger},
		{"decimal forces number", []string{"1", "2.5"}, KindNumber},
		{"infinity is numeric", []string{"1.5", "inf", "-inf"}, KindNumber},
		{"booleans", []string{"true", "false"}, KindBoolean},
		{"dates", []string{"2024-01-01", "3/5/2024"}, KindDate},
		{"compact digits stay integer", []string{"20060102"}, KindInteger},
		{"mixed is string", []string{"1", "x"}, KindString},
		{"all empty is string", []string{"", ""}, KindString},
		{"no values is string", nil, KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferKind(tt.values); got != tt.want {
				t.Errorf("inferKind(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindString, KindBoolean, KindInteger, KindNumber, KindDate} {
		if got := KindFromString(k.String()); got != k {
			t.Errorf("KindFromString(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := KindFromString("bignum"); got != KindString {
		t.Errorf("unknown kind should map to string, got %v", got)
	}
}
