package coerce

import (
	"fmt"
	"math/big"

	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
)

// computeBits bounds the magnitude of intermediate results. It leaves far more
// than one bit of headroom over the widest destination (bigint, 64 bits).
const computeBits = 127

// Evaluate reduces an arithmetic expression over integer literals to a single
// value and range checks it against dest, which must be an integer type.
func Evaluate(expr sql.Expression, dest sql.ColumnType) (int64, error) {
	lo, hi, ok := dest.Bounds()
	if !ok {
		return 0, sqlerr.NewTypeMismatchError(expr.String(), dest.String())
	}

	v, err := evaluate(expr, dest)
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() || v.Int64() < lo || v.Int64() > hi {
		return 0, sqlerr.NewNumericOverflowError(dest.String(), v.String())
	}
	return v.Int64(), nil
}

func evaluate(expr sql.Expression, dest sql.ColumnType) (*big.Int, error) {
	switch e := expr.(type) {
	case *sql.IntegerLiteral:
		v, ok := new(big.Int).SetString(e.Text, 10)
		if !ok {
			return nil, sqlerr.NewMalformedLiteralError(e.Text, fmt.Errorf("not a decimal integer"))
		}
		if v.BitLen() > computeBits {
			return nil, sqlerr.NewNumericOverflowError(dest.String(), e.Text)
		}
		return v, nil

	case *sql.BinaryOp:
		left, err := evaluate(e.Left, dest)
		if err != nil {
			return nil, err
		}
		right, err := evaluate(e.Right, dest)
		if err != nil {
			return nil, err
		}

		out := new(big.Int)
		switch e.Op {
		case sql.OpAdd:
			out.Add(left, right)
		case sql.OpSub:
			out.Sub(left, right)
		case sql.OpMul:
			out.Mul(left, right)
		case sql.OpDiv:
			if right.Sign() == 0 {
				return nil, sqlerr.NewDivisionByZeroError()
			}
			// Quo truncates toward zero.
			out.Quo(left, right)
		default:
			return nil, fmt.Errorf("unknown arithmetic operator %v", e.Op)
		}
		if out.BitLen() > computeBits {
			return nil, sqlerr.NewNumericOverflowError(dest.String(), "")
		}
		return out, nil

	case *sql.StringLiteral, *sql.BareKeyword, *sql.CastExpression:
		return nil, sqlerr.NewTypeMismatchError(e.String(), dest.String())

	default:
		return nil, fmt.Errorf("unexpected expression %T", expr)
	}
}
