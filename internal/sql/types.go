package sql

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// TypeKind identifies one of the built-in column types.
type TypeKind int

const (
	TypeSmallInt TypeKind = iota
	TypeInteger
	TypeBigInt
	TypeChar
	TypeVarChar
	TypeBool
)

func (k TypeKind) String() string {
	switch k {
	case TypeSmallInt:
		return "smallint"
	case TypeInteger:
		return "integer"
	case TypeBigInt:
		return "bigint"
	case TypeChar:
		return "character"
	case TypeVarChar:
		return "character varying"
	case TypeBool:
		return "boolean"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// IsInteger reports whether k is one of the fixed-width integer kinds.
func (k TypeKind) IsInteger() bool {
	return k == TypeSmallInt || k == TypeInteger || k == TypeBigInt
}

// ColumnType is the declared type of a column. Length is only meaningful for
// TypeChar (exact width) and TypeVarChar (maximum length).
type ColumnType struct {
	Kind   TypeKind
	Length uint32
}

func SmallInt() ColumnType { return ColumnType{Kind: TypeSmallInt} }
func Integer() ColumnType  { return ColumnType{Kind: TypeInteger} }
func BigInt() ColumnType   { return ColumnType{Kind: TypeBigInt} }
func Boolean() ColumnType  { return ColumnType{Kind: TypeBool} }

// FixedChar returns CHAR(width). Width must be positive.
func FixedChar(width uint32) ColumnType {
	return ColumnType{Kind: TypeChar, Length: width}
}

// VarChar returns VARCHAR(maxLength). maxLength must be positive.
func VarChar(maxLength uint32) ColumnType {
	return ColumnType{Kind: TypeVarChar, Length: maxLength}
}

// Validate checks the type parameters.
func (t ColumnType) Validate() error {
	switch t.Kind {
	case TypeSmallInt, TypeInteger, TypeBigInt, TypeBool:
		return nil
	case TypeChar, TypeVarChar:
		if t.Length == 0 {
			return fmt.Errorf("length for type %s must be at least 1", t.Kind)
		}
		return nil
	default:
		return fmt.Errorf("unknown column type %v", t.Kind)
	}
}

// Bounds returns the inclusive range of an integer type.
// ok is false for non-integer types.
func (t ColumnType) Bounds() (lo, hi int64, ok bool) {
	switch t.Kind {
	case TypeSmallInt:
		return math.MinInt16, math.MaxInt16, true
	case TypeInteger:
		return math.MinInt32, math.MaxInt32, true
	case TypeBigInt:
		return math.MinInt64, math.MaxInt64, true
	default:
		return 0, 0, false
	}
}

// String renders the type the way Postgres names it in error messages.
func (t ColumnType) String() string {
	switch t.Kind {
	case TypeChar, TypeVarChar:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Length)
	default:
		return t.Kind.String()
	}
}

// Value represents a single stored cell (one column in one row).
// Only the fields matching Type are meaningful:
//
//	TypeSmallInt, TypeInteger, TypeBigInt: I64 (always within the type range)
//	TypeChar:    S padded to exactly Width characters
//	TypeVarChar: S verbatim
//	TypeBool:    B
//
// Values are built by the coercion engine and never mutated afterwards.
type Value struct {
	Type TypeKind

	I64   int64
	S     string
	B     bool
	Width uint32
}

func SmallIntValue(v int16) Value { return Value{Type: TypeSmallInt, I64: int64(v)} }
func IntegerValue(v int32) Value  { return Value{Type: TypeInteger, I64: int64(v)} }
func BigIntValue(v int64) Value   { return Value{Type: TypeBigInt, I64: v} }
func VarCharValue(s string) Value { return Value{Type: TypeVarChar, S: s} }
func BoolValue(b bool) Value      { return Value{Type: TypeBool, B: b} }

// CharValue pads content with trailing spaces up to width.
// Content longer than width is returned unchanged; callers check length first.
func CharValue(content string, width uint32) Value {
	if n := utf8.RuneCountInString(content); n < int(width) {
		content += strings.Repeat(" ", int(width)-n)
	}
	return Value{Type: TypeChar, S: content, Width: width}
}

// Equal compares two values including their type.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeSmallInt, TypeInteger, TypeBigInt:
		return v.I64 == o.I64
	case TypeChar:
		return v.S == o.S && v.Width == o.Width
	case TypeVarChar:
		return v.S == o.S
	case TypeBool:
		return v.B == o.B
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Type {
	case TypeSmallInt, TypeInteger, TypeBigInt:
		return fmt.Sprintf("%d", v.I64)
	case TypeChar, TypeVarChar:
		return v.S
	case TypeBool:
		if v.B {
			return "true"
		}
		return "false"
	default:
		return "?"
	}
}

// Row represents one record in a table: a slice of Values, one per column.
type Row []Value

// Column describes metadata for a single column in a table.
type Column struct {
	Name string
	Type ColumnType
}

// DefaultSchema is used for unqualified table names.
const DefaultSchema = "public"

// TableName is a schema-qualified table name.
type TableName struct {
	Schema string
	Name   string
}

func (t TableName) String() string {
	return t.Schema + "." + t.Name
}
