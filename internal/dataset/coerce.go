package dataset

// coerce.go implements the opt-in coercion policy. Historically this kind of
// override is done by swapping entries in a process-global parser table
// around the parse call; here the augmented table is derived per call, so
// there is no global state to restore and no way for two overlapping parses
// to observe each other's policy.

import (
	"math/big"
	"strings"
)

// Infinity sentinels. The target row format cannot represent mathematical
// infinity as a number, so these exact literal strings are the documented
// wire convention the downstream renderer recognizes.
const (
	PosInf = "inf"
	NegInf = "-inf"
)

// CoerceParsers derives a parser table with the coercion policy applied on
// top of base: the integer and number entries are replaced by augmented
// parsers that close over the originals. The base table is not modified.
func CoerceParsers(base ParserTable) ParserTable {
	table := base.Clone()
	prevInt := base[KindInteger]
	prevNum := base[KindNumber]

	table[KindInteger] = func(v string) any {
		if v == "" {
			// Empty stays empty; never coerced to zero.
			return ""
		}
		if v == PosInf || v == NegInf {
			return v
		}
		if leadingIntRegex.MatchString(strings.TrimSpace(v)) {
			if n, ok := new(big.Int).SetString(v, 10); ok {
				return n
			}
			// Integer-looking but not a strict base-10 integer, e.g. "2.0".
			// Fall back to the previous parser rather than failing the parse.
			return prevInt(v)
		}
		return ""
	}

	table[KindNumber] = func(v string) any {
		if v == PosInf || v == NegInf {
			return v
		}
		return prevNum(v)
	}

	return table
}

// tableFor selects the parser table for one parse call.
func tableFor(opts Options) ParserTable {
	base := DefaultParsers()
	if opts.Coerce {
		return CoerceParsers(base)
	}
	return base
}
