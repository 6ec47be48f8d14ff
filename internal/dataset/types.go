package dataset

// Kind identifies the logical scalar type of a column.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindInteger
	KindNumber
	KindDate
)

// String returns the lowercase name used in format declarations and JSON.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "string"
	}
}

// KindFromString parses a kind name. Unknown names map to KindString.
func KindFromString(s string) Kind {
	switch s {
	case "boolean":
		return KindBoolean
	case "integer":
		return KindInteger
	case "number":
		return KindNumber
	case "date":
		return KindDate
	default:
		return KindString
	}
}

// ParseFunc converts one raw cell into a typed scalar value.
// A nil result means the cell could not be parsed as this kind.
type ParseFunc func(string) any

// ParserTable maps each scalar kind to its parser. Tables are derived per
// parse call; callers own their copy and mutating it affects nobody else.
type ParserTable map[Kind]ParseFunc

// Clone returns an independent copy of the table.
func (t ParserTable) Clone() ParserTable {
	out := make(ParserTable, len(t))
	for k, fn := range t {
		out[k] = fn
	}
	return out
}

// FormatKind discriminates the payload format.
type FormatKind string

const (
	// FormatDelimited is row-oriented text: records separated by line breaks,
	// fields by a fixed separator character.
	FormatDelimited FormatKind = "delimited"

	// FormatJSON is a JSON array of objects, one object per record.
	FormatJSON FormatKind = "json"
)

// Detection selects how column types are assigned for delimited input.
type Detection int

const (
	// DetectAuto infers each column's kind by sampling its values.
	DetectAuto Detection = iota

	// DetectExplicit uses the caller-declared FormatSpec.Types, leaving
	// undeclared columns as strings.
	DetectExplicit
)

// FormatSpec declares the payload format and format-specific parse options.
// A nil spec means "detect the format from content".
type FormatSpec struct {
	Kind FormatKind

	// Separator is the field separator for delimited input. Zero means comma.
	Separator rune

	// Detection selects automatic or explicit column typing. Materialize
	// forces this to DetectAuto for delimited input.
	Detection Detection

	// Types maps column names to kinds when Detection is DetectExplicit.
	Types map[string]Kind
}

// separator returns the effective field separator.
func (s *FormatSpec) separator() rune {
	if s == nil || s.Separator == 0 {
		return ','
	}
	return s.Separator
}

// Options controls per-call parse behavior.
type Options struct {
	// Coerce enables the integer/number coercion policy: arbitrary-precision
	// integers and the "inf"/"-inf" sentinel strings.
	Coerce bool
}

// Record is one row, keyed by column name. Key uniqueness is guaranteed by
// the header deduplicator, so no cell is silently dropped on insertion.
type Record map[string]any

// Table is an ordered sequence of keyed records. Columns preserves the
// original column order, which Record (a map) cannot carry.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}
