package dataset

// parsers.go provides the default scalar parsers and per-column kind
// inference. These handle the messy reality of user-provided delimited data:
// multiple date formats, truncated integers, and values that only look
// numeric. All parsers return nil for input they cannot handle, letting the
// caller keep the raw string or emit a null.

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// leadingIntRegex matches an optionally signed run of digits at the start of
// a string, the loosest sense in which a cell "parses as an integer".
var leadingIntRegex = regexp.MustCompile(`^[+-]?\d+`)

// fullIntRegex matches a string that is nothing but an optionally signed
// integer. Used during inference so "2.0" lands in a number column.
var fullIntRegex = regexp.MustCompile(`^[+-]?\d+$`)

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
	}
)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in
// the previous century.
var TwoDigitYearPivot = 20

// defaultTable is the base parser set. It is never handed out directly;
// DefaultParsers clones it so every parse call owns its table.
var defaultTable = ParserTable{
	KindString:  parseString,
	KindBoolean: parseBoolean,
	KindInteger: parseInteger,
	KindNumber:  parseNumber,
	KindDate:    parseDate,
}

// DefaultParsers returns a fresh copy of the default scalar parser table.
func DefaultParsers() ParserTable {
	return defaultTable.Clone()
}

func parseString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseBoolean(s string) any {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return nil
	}
}

// parseInteger is the default integer parser: a truncating parse that reads
// the longest signed-digit prefix, so "2.0" yields 2 and "42mm" yields 42.
// Values beyond int64 range degrade to float64 rather than failing; callers
// that need exact large integers opt into the coercion policy instead.
func parseInteger(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	m := leadingIntRegex.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err == nil {
		return n
	}
	// Out of int64 range: lossy but better than dropping the cell.
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return f
}

func parseNumber(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return f
}

// parseDate parses a cell as a date and re-emits it as a canonical RFC 3339
// UTC string. This normalization is always applied; the downstream renderer
// consumes ISO-8601 strings, never native time values.
func parseDate(s string) any {
	t, ok := parseTime(s)
	if !ok {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime tries the known layouts, 4-digit years first (unambiguous), then
// 2-digit years with pivot adjustment.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// inferKind determines a column's kind by sampling its non-empty values.
// The narrowest kind that parses every sample wins; the order matters so
// that "20060102" is an integer, not a date, and "2.0" is a number, not a
// date fragment. A column with no non-empty values is a string column.
func inferKind(values []string) Kind {
	samples := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			samples = append(samples, v)
		}
	}
	if len(samples) == 0 {
		return KindString
	}

	if all(samples, func(v string) bool { return parseBoolean(v) != nil }) {
		return KindBoolean
	}
	if all(samples, func(v string) bool { return fullIntRegex.MatchString(strings.TrimSpace(v)) }) {
		return KindInteger
	}
	if all(samples, func(v string) bool { return parseNumber(v) != nil }) {
		return KindNumber
	}
	if all(samples, func(v string) bool {
		_, ok := parseTime(v)
		return ok
	}) {
		return KindDate
	}
	return KindString
}

func all(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}
