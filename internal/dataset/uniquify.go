package dataset

import "strings"

// zeroWidthSpace disambiguates duplicate column names without visibly
// altering them when rendered.
const zeroWidthSpace = "\u200b"

// UniquifyColumnNames rewrites the header line of delimited text so that
// every column name is distinct. A colliding name gets the zero-width space
// marker appended, repeated as many times as needed (1, 2, 3, ...) until the
// result is unused within the header. All non-header lines are returned
// byte-identical; column count and order are preserved.
//
// Input that is empty or contains no separator is returned unchanged: it is
// either not delimited data or a single column, and there is nothing to
// deduplicate. A zero sep means comma.
func UniquifyColumnNames(text string, sep rune) string {
	if sep == 0 {
		sep = ','
	}
	if text == "" || !strings.ContainsRune(text, sep) {
		return text
	}

	lines := strings.Split(text, "\n")
	names := strings.Split(lines[0], string(sep))

	// Names already assigned for this header. An empty candidate is treated
	// like any other string: the second empty column becomes "" + marker.
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		unique := name
		for n := 1; ; n++ {
			if _, taken := seen[unique]; !taken {
				break
			}
			unique = name + strings.Repeat(zeroWidthSpace, n)
		}
		seen[unique] = struct{}{}
		names[i] = unique
	}

	lines[0] = strings.Join(names, string(sep))
	return strings.Join(lines, "\n")
}
