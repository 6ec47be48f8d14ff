package dataset

import (
	"fmt"
	"strings"
)

// Read is the main entry point: it normalizes the payload (header
// deduplication for delimited text), derives the parser table for this call,
// and materializes the records. Raw payloads may be string or []byte;
// anything else is rejected.
func Read(payload any, spec *FormatSpec, opts Options) (*Table, error) {
	text, err := payloadText(payload)
	if err != nil {
		return nil, err
	}

	if spec == nil {
		spec = detectFormat(text)
	}
	if spec.Kind == FormatDelimited {
		text = UniquifyColumnNames(text, spec.Separator)
	}

	return Materialize(text, spec, opts)
}

// Materialize invokes the parse engine exactly once and returns its result
// or failure unchanged. Delimited text is expected to have passed through
// UniquifyColumnNames already.
//
// A delimited spec always has its type detection forced to automatic; all
// other caller-supplied options are preserved. Any other format passes
// through unmodified, and a nil spec means "detect the format from content".
func Materialize(text string, spec *FormatSpec, opts Options) (*Table, error) {
	if spec == nil {
		spec = detectFormat(text)
	}

	switch spec.Kind {
	case FormatDelimited:
		forced := *spec
		forced.Detection = DetectAuto
		return parseDelimitedText(text, &forced, tableFor(opts))
	case FormatJSON:
		return parseJSONText(text)
	default:
		return nil, fmt.Errorf("unsupported format %q", spec.Kind)
	}
}

// ParseDelimited parses text that the caller already knows is delimited,
// with automatic type detection and the coercion policy enabled by default.
func ParseDelimited(text string) (*Table, error) {
	return Read(text, &FormatSpec{Kind: FormatDelimited}, Options{Coerce: true})
}

// payloadText extracts raw text from the supported payload types.
func payloadText(payload any) (string, error) {
	switch p := payload.(type) {
	case string:
		return p, nil
	case []byte:
		return string(p), nil
	default:
		return "", fmt.Errorf("unsupported payload type %T", payload)
	}
}

// detectFormat guesses the payload format from content: documents that open
// with a JSON array or object are JSON, everything else is delimited text.
func detectFormat(text string) *FormatSpec {
	trimmed := strings.TrimLeft(text, " \t\r\n\uFEFF")
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return &FormatSpec{Kind: FormatJSON}
	}
	return &FormatSpec{Kind: FormatDelimited}
}
