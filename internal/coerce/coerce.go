// Package coerce turns classified literals and arithmetic expressions into
// validated stored values for a declared column type, and turns stored values
// back into their external form.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
)

// Boolean truth tables, keyed by the case-folded spelling. These are the only
// accepted spellings.
var (
	keywordTruth = map[string]bool{
		"true":  true,
		"false": false,
	}
	quotedTruth = map[string]bool{
		"true":  true,
		"t":     true,
		"false": false,
		"f":     false,
	}
)

// CoerceValue converts one value position into a stored value of type dest.
// Arithmetic is evaluated first; literals go straight to Coerce.
func CoerceValue(expr sql.Expression, dest sql.ColumnType) (sql.Value, error) {
	switch e := expr.(type) {
	case *sql.BinaryOp:
		v, err := Evaluate(e, dest)
		if err != nil {
			return sql.Value{}, err
		}
		return integerValue(v, dest)
	case sql.Literal:
		return Coerce(e, dest)
	default:
		return sql.Value{}, fmt.Errorf("unexpected expression %T", expr)
	}
}

// Coerce validates lit against dest and returns its canonical stored form.
func Coerce(lit sql.Literal, dest sql.ColumnType) (sql.Value, error) {
	if err := dest.Validate(); err != nil {
		return sql.Value{}, err
	}

	switch {
	case dest.Kind.IsInteger():
		return coerceInteger(lit, dest)
	case dest.Kind == sql.TypeChar:
		return coerceChar(lit, dest)
	case dest.Kind == sql.TypeVarChar:
		return coerceVarChar(lit, dest)
	case dest.Kind == sql.TypeBool:
		b, err := resolveBoolean(lit)
		if err != nil {
			return sql.Value{}, err
		}
		return sql.BoolValue(b), nil
	default:
		return sql.Value{}, fmt.Errorf("unknown column type %v", dest.Kind)
	}
}

func coerceInteger(lit sql.Literal, dest sql.ColumnType) (sql.Value, error) {
	intLit, ok := lit.(*sql.IntegerLiteral)
	if !ok {
		return sql.Value{}, sqlerr.NewTypeMismatchError(lit.String(), dest.String())
	}

	v, err := strconv.ParseInt(intLit.Text, 10, 64)
	if err != nil {
		// Only range errors are possible: the classifier guarantees digits.
		return sql.Value{}, sqlerr.NewNumericOverflowError(dest.String(), intLit.Text)
	}
	return integerValue(v, dest)
}

func integerValue(v int64, dest sql.ColumnType) (sql.Value, error) {
	switch dest.Kind {
	case sql.TypeSmallInt:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return sql.Value{}, sqlerr.NewNumericOverflowError(dest.String(), strconv.FormatInt(v, 10))
		}
		return sql.SmallIntValue(int16(v)), nil
	case sql.TypeInteger:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return sql.Value{}, sqlerr.NewNumericOverflowError(dest.String(), strconv.FormatInt(v, 10))
		}
		return sql.IntegerValue(int32(v)), nil
	case sql.TypeBigInt:
		return sql.BigIntValue(v), nil
	default:
		return sql.Value{}, sqlerr.NewTypeMismatchError(strconv.FormatInt(v, 10), dest.String())
	}
}

func coerceChar(lit sql.Literal, dest sql.ColumnType) (sql.Value, error) {
	s, ok := lit.(*sql.StringLiteral)
	if !ok {
		return sql.Value{}, sqlerr.NewTypeMismatchError(lit.String(), dest.String())
	}

	n := utf8.RuneCountInString(s.Content)
	if n > int(dest.Length) {
		return sql.Value{}, sqlerr.NewStringTooLongError(dest.String(), n)
	}
	return sql.CharValue(s.Content, dest.Length), nil
}

func coerceVarChar(lit sql.Literal, dest sql.ColumnType) (sql.Value, error) {
	s, ok := lit.(*sql.StringLiteral)
	if !ok {
		return sql.Value{}, sqlerr.NewTypeMismatchError(lit.String(), dest.String())
	}

	n := utf8.RuneCountInString(s.Content)
	if n > int(dest.Length) {
		return sql.Value{}, sqlerr.NewStringTooLongError(dest.String(), n)
	}
	return sql.VarCharValue(s.Content), nil
}

// resolveBoolean maps a literal through the truth tables. A cast resolves
// exactly like its inner literal.
func resolveBoolean(lit sql.Literal) (bool, error) {
	switch l := lit.(type) {
	case *sql.BareKeyword:
		if b, ok := keywordTruth[sql.Fold(l.Text)]; ok {
			return b, nil
		}
		return false, sqlerr.NewInvalidBooleanLiteralError(l.String())
	case *sql.StringLiteral:
		if b, ok := quotedTruth[sql.Fold(l.Content)]; ok {
			return b, nil
		}
		return false, sqlerr.NewInvalidBooleanLiteralError(l.String())
	case *sql.CastExpression:
		if l.Target.Kind != sql.TypeBool {
			return false, sqlerr.NewTypeMismatchError(l.String(), sql.Boolean().String())
		}
		if _, ok := l.Inner.(*sql.IntegerLiteral); ok {
			return false, sqlerr.NewInvalidBooleanLiteralError(l.String())
		}
		return resolveBoolean(l.Inner)
	case *sql.IntegerLiteral:
		return false, sqlerr.NewTypeMismatchError(l.String(), sql.Boolean().String())
	default:
		return false, fmt.Errorf("unexpected literal %T", lit)
	}
}
