package coerce

import (
	"strings"

	"godbtypes/internal/sql"
)

// Normalize returns the external form of a stored value:
//
//	smallint  int16
//	integer   int32
//	bigint    int64
//	char      string without trailing spaces
//	varchar   string as stored
//	boolean   bool
func Normalize(stored sql.Value) any {
	switch stored.Type {
	case sql.TypeSmallInt:
		return int16(stored.I64)
	case sql.TypeInteger:
		return int32(stored.I64)
	case sql.TypeBigInt:
		return stored.I64
	case sql.TypeChar:
		return strings.TrimRight(stored.S, " ")
	case sql.TypeVarChar:
		return stored.S
	case sql.TypeBool:
		return stored.B
	default:
		return nil
	}
}

// NormalizeRow applies Normalize to every value of row.
func NormalizeRow(row sql.Row) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = Normalize(v)
	}
	return out
}
