package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// parseDelimitedText turns delimited text into a Table using the given
// parser table. The first line is the header; its names are assumed unique
// (see UniquifyColumnNames). Rows shorter than the header get nil cells for
// the missing columns.
func parseDelimitedText(text string, spec *FormatSpec, table ParserTable) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = spec.separator()
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return &Table{Columns: []string{}, Rows: []Record{}}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	copy(columns, header)

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}

	kinds := columnKinds(columns, rows, spec)

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(columns))
		for i, col := range columns {
			if i >= len(row) {
				rec[col] = nil
				continue
			}
			rec[col] = parseCell(row[i], kinds[i], table)
		}
		out = append(out, rec)
	}

	return &Table{Columns: columns, Rows: out}, nil
}

// columnKinds assigns a kind to every column, either by inference or from
// the caller's declared types.
func columnKinds(columns []string, rows [][]string, spec *FormatSpec) []Kind {
	kinds := make([]Kind, len(columns))
	for i, col := range columns {
		if spec.Detection == DetectExplicit {
			kinds[i] = spec.Types[col] // zero value is KindString
			continue
		}
		samples := make([]string, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				samples = append(samples, row[i])
			}
		}
		kinds[i] = inferKind(samples)
	}
	return kinds
}

// parseCell applies the kind's parser to one raw cell. A missing parser or
// an unparseable value leaves the raw string in place, so data is never
// silently discarded.
func parseCell(raw string, kind Kind, table ParserTable) any {
	fn := table[kind]
	if fn == nil {
		return raw
	}
	v := fn(raw)
	if v == nil && kind != KindString {
		if raw == "" {
			return nil
		}
		return raw
	}
	return v
}

// parseJSONText decodes a JSON array of objects into a Table. Scalar values
// arrive already typed from the decoder, so no parser table is consulted.
// Column order follows first appearance across records.
func parseJSONText(text string) (*Table, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	var columns []string
	seen := make(map[string]struct{})
	rows := make([]Record, 0, len(raw))

	for i, msg := range raw {
		keys, obj, err := decodeObject(msg)
		if err != nil {
			return nil, fmt.Errorf("decode json record %d: %w", i, err)
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
		rows = append(rows, obj)
	}

	if columns == nil {
		columns = []string{}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

// decodeObject unmarshals one JSON object into a Record while also
// capturing its key order, which a plain map unmarshal would lose.
func decodeObject(msg json.RawMessage) ([]string, Record, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if tok != json.Delim('{') {
		return nil, nil, fmt.Errorf("record is not an object")
	}

	var keys []string
	rec := make(Record)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", keyTok)
		}

		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = normalizeJSONValue(val)
	}

	return keys, rec, nil
}

// normalizeJSONValue converts decoder output into the scalar set the Table
// carries: json.Number becomes int64 or float64. Nested structures are left
// as-is for the caller to flatten or reject.
func normalizeJSONValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
