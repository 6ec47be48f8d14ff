package sink

// convert.go maps materialized cell values to pgtype values for insertion.
//
// The materializer produces a small scalar set: string, bool, int64,
// float64, *big.Int, ISO-8601 date strings, and the "inf"/"-inf" sentinel
// strings. Postgres can represent all of them, including the infinities,
// so the sentinels are decoded back into real infinity values here.

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/Ubehebe/rowset/internal/dataset"
	"github.com/jackc/pgx/v5/pgtype"
)

// columnType returns the Postgres column type for a scalar kind.
func columnType(kind dataset.Kind) string {
	switch kind {
	case dataset.KindBoolean:
		return "boolean"
	case dataset.KindInteger:
		return "numeric"
	case dataset.KindNumber:
		return "double precision"
	case dataset.KindDate:
		return "timestamptz"
	default:
		return "text"
	}
}

// columnKind derives a column's kind from the values it actually holds,
// since a materialized Table does not carry its inference result. The first
// typed value decides; sentinel strings alone make a numeric column.
func columnKind(t *dataset.Table, col string) dataset.Kind {
	sawSentinel := false
	for _, row := range t.Rows {
		switch v := row[col].(type) {
		case nil:
			continue
		case bool:
			return dataset.KindBoolean
		case *big.Int:
			return dataset.KindInteger
		case int64:
			return dataset.KindInteger
		case float64:
			return dataset.KindNumber
		case string:
			if v == dataset.PosInf || v == dataset.NegInf {
				sawSentinel = true
				continue
			}
			if looksLikeISODate(v) {
				return dataset.KindDate
			}
			return dataset.KindString
		default:
			return dataset.KindString
		}
	}
	if sawSentinel {
		return dataset.KindNumber
	}
	return dataset.KindString
}

func looksLikeISODate(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// cellValue converts one materialized cell into the pgtype value for its
// column kind. Unconvertible cells become NULL rather than failing the
// whole copy.
func cellValue(v any, kind dataset.Kind) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch kind {
	case dataset.KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, nil
		}
		return pgtype.Bool{Bool: b, Valid: true}, nil

	case dataset.KindInteger:
		switch n := v.(type) {
		case *big.Int:
			return pgtype.Numeric{Int: n, Valid: true}, nil
		case int64:
			return pgtype.Numeric{Int: big.NewInt(n), Valid: true}, nil
		case string:
			switch n {
			case dataset.PosInf:
				return pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}, nil
			case dataset.NegInf:
				return pgtype.Numeric{InfinityModifier: pgtype.NegativeInfinity, Valid: true}, nil
			}
			return nil, nil
		case float64:
			var num pgtype.Numeric
			if err := num.Scan(strings.TrimSpace(fmt.Sprintf("%f", n))); err != nil {
				return nil, nil
			}
			return num, nil
		}
		return nil, nil

	case dataset.KindNumber:
		switch n := v.(type) {
		case float64:
			return pgtype.Float8{Float64: n, Valid: true}, nil
		case int64:
			return pgtype.Float8{Float64: float64(n), Valid: true}, nil
		case string:
			switch n {
			case dataset.PosInf:
				return pgtype.Float8{Float64: math.Inf(1), Valid: true}, nil
			case dataset.NegInf:
				return pgtype.Float8{Float64: math.Inf(-1), Valid: true}, nil
			}
			return nil, nil
		}
		return nil, nil

	case dataset.KindDate:
		s, ok := v.(string)
		if !ok {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil
		}
		return pgtype.Timestamptz{Time: t, Valid: true}, nil

	default:
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		if s == "" {
			return pgtype.Text{Valid: false}, nil
		}
		return pgtype.Text{String: s, Valid: true}, nil
	}
}
