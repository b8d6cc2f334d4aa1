package coerce

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
)

func coerceText(t *testing.T, text string, dest sql.ColumnType) (sql.Value, error) {
	t.Helper()
	expr, err := sql.ParseExpression(text)
	require.NoError(t, err, "parse %q", text)
	return CoerceValue(expr, dest)
}

func TestCoerce_IntegerBoundaries(t *testing.T) {
	tests := []struct {
		dest     sql.ColumnType
		min, max string
		belowMin string
		aboveMax string
		wantMin  any
		wantMax  any
	}{
		{sql.SmallInt(), "-32768", "32767", "-32769", "32768", int16(-32768), int16(32767)},
		{sql.Integer(), "-2147483648", "2147483647", "-2147483649", "2147483648", int32(-2147483648), int32(2147483647)},
		{sql.BigInt(), "-9223372036854775808", "9223372036854775807", "-9223372036854775809", "9223372036854775808", int64(-9223372036854775808), int64(9223372036854775807)},
	}

	for _, tt := range tests {
		t.Run(tt.dest.String(), func(t *testing.T) {
			v, err := coerceText(t, tt.min, tt.dest)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, Normalize(v))

			v, err = coerceText(t, tt.max, tt.dest)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMax, Normalize(v))

			for _, out := range []string{tt.belowMin, tt.aboveMax} {
				_, err = coerceText(t, out, tt.dest)
				var overflow *sqlerr.NumericOverflowError
				require.ErrorAs(t, err, &overflow, "value %s", out)
				assert.Equal(t, sqlerr.CodeNumericValueOutOfRange, sqlerr.Code(err))
			}
		})
	}
}

func TestCoerce_IntegerTypeMismatch(t *testing.T) {
	for _, text := range []string{"'42'", "TRUE", "TRUE::boolean", "'t'::boolean"} {
		_, err := coerceText(t, text, sql.Integer())
		var mismatch *sqlerr.TypeMismatchError
		assert.ErrorAs(t, err, &mismatch, "value %s", text)
	}
}

func TestCoerce_FixedChar(t *testing.T) {
	dest := sql.FixedChar(10)

	v, err := coerceText(t, "'1234567   '", dest)
	require.NoError(t, err)
	assert.Equal(t, "1234567   ", v.S)
	assert.Equal(t, uint32(10), v.Width)
	assert.Equal(t, "1234567", Normalize(v))

	v, err = coerceText(t, "'abc'", dest)
	require.NoError(t, err)
	assert.Equal(t, "abc       ", v.S)
	assert.Equal(t, "abc", Normalize(v))

	v, err = coerceText(t, "'1234567890'", dest)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", Normalize(v))

	v, err = coerceText(t, "'   '", dest)
	require.NoError(t, err)
	assert.Equal(t, "", Normalize(v))

	v, err = coerceText(t, "''", dest)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat(" ", 10), v.S)

	v, err = coerceText(t, "'héllo'", dest)
	require.NoError(t, err)
	assert.Equal(t, "héllo     ", v.S)

	_, err = coerceText(t, "'12345678901'", dest)
	var tooLong *sqlerr.StringTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, sqlerr.CodeStringDataRightTruncation, sqlerr.Code(err))

	_, err = coerceText(t, "1", dest)
	var mismatch *sqlerr.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestCoerce_CharWithoutLength(t *testing.T) {
	v, err := coerceText(t, "'c'", sql.FixedChar(1))
	require.NoError(t, err)
	assert.Equal(t, "c", Normalize(v))

	_, err = coerceText(t, "'cc'", sql.FixedChar(1))
	var tooLong *sqlerr.StringTooLongError
	assert.ErrorAs(t, err, &tooLong)
}

func TestCoerce_VarChar(t *testing.T) {
	for _, content := range []string{"", "c", "1234567890", "12345678901234567890", "a b  ", "  lead", "trail   "} {
		v, err := coerceText(t, "'"+content+"'", sql.VarChar(20))
		require.NoError(t, err)
		assert.Equal(t, content, Normalize(v))
	}

	_, err := coerceText(t, "'123456789012345678901'", sql.VarChar(20))
	var tooLong *sqlerr.StringTooLongError
	assert.ErrorAs(t, err, &tooLong)

	_, err = coerceText(t, "'cc'", sql.VarChar(1))
	assert.ErrorAs(t, err, &tooLong)
}

func randomCase(r *rand.Rand, s string) string {
	var b strings.Builder
	for _, c := range s {
		if r.Intn(2) == 0 {
			b.WriteString(strings.ToUpper(string(c)))
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func TestCoerce_BooleanTruthTable(t *testing.T) {
	wordToValue := map[string]bool{
		"TRUE":           true,
		"FALSE":          false,
		"'true'":         true,
		"'false'":        false,
		"'t'":            true,
		"'f'":            false,
		"TRUE::boolean":  true,
		"FALSE::boolean": false,
		"'t'::boolean":   true,
		"'false'::bool":  false,
	}

	r := rand.New(rand.NewSource(1))
	for word, want := range wordToValue {
		for _, spelling := range []string{word, strings.ToLower(word), strings.ToUpper(word), randomCase(r, word)} {
			v, err := coerceText(t, spelling, sql.Boolean())
			require.NoError(t, err, "value %s", spelling)
			assert.Equal(t, want, Normalize(v), "value %s", spelling)
		}
	}
}

func TestCoerce_BooleanCastIsIdempotent(t *testing.T) {
	for _, s := range []string{"TRUE", "false", "'t'", "'F'", "'true'", "'FALSE'"} {
		plain, err := coerceText(t, s, sql.Boolean())
		require.NoError(t, err)
		upper, err := coerceText(t, strings.ToUpper(s), sql.Boolean())
		require.NoError(t, err)
		cast, err := coerceText(t, s+"::boolean", sql.Boolean())
		require.NoError(t, err)

		assert.True(t, plain.Equal(upper), s)
		assert.True(t, plain.Equal(cast), s)
	}
}

func TestCoerce_BooleanRejected(t *testing.T) {
	invalid := []string{"'yes'", "'no'", "'y'", "'n'", "'on'", "'off'", "'1'", "'0'", "''", "maybe", "'yes'::boolean", "1::boolean", "'tru'",
		"'falſe'", "'FALſE'", "'ẗ'", "'falſe'::boolean"}
	for _, text := range invalid {
		_, err := coerceText(t, text, sql.Boolean())
		var invalidBool *sqlerr.InvalidBooleanLiteralError
		assert.ErrorAs(t, err, &invalidBool, "value %s", text)
	}

	_, err := coerceText(t, "1", sql.Boolean())
	var mismatch *sqlerr.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestCoerce_Arithmetic(t *testing.T) {
	tests := []struct {
		text string
		want int16
	}{
		{"3 + 5", 8},
		{"3 - 5", -2},
		{"3 * 5", 15},
		{"15 / 5", 3},
		{"7 / 2", 3},
		{"-7 / 2", -3},
		{"7 / -2", -3},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"32767 + 1 - 1", 32767},
	}

	for _, tt := range tests {
		v, err := coerceText(t, tt.text, sql.SmallInt())
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, Normalize(v), tt.text)
	}
}

func TestCoerce_ArithmeticErrors(t *testing.T) {
	for _, text := range []string{"1 / 0", "-5 / 0", "0 / 0", "1 / (3 - 3)"} {
		_, err := coerceText(t, text, sql.Integer())
		var divZero *sqlerr.DivisionByZeroError
		require.ErrorAs(t, err, &divZero, text)
		assert.Equal(t, sqlerr.CodeDivisionByZero, sqlerr.Code(err))
	}

	var overflow *sqlerr.NumericOverflowError
	_, err := coerceText(t, "32767 + 1", sql.SmallInt())
	assert.ErrorAs(t, err, &overflow)

	_, err = coerceText(t, "9223372036854775807 + 1", sql.BigInt())
	assert.ErrorAs(t, err, &overflow)

	_, err = coerceText(t, "9223372036854775807 * 9223372036854775807 * 9223372036854775807", sql.BigInt())
	assert.ErrorAs(t, err, &overflow)

	v, err := coerceText(t, "9223372036854775807 + 1 - 1", sql.BigInt())
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), Normalize(v))

	var mismatch *sqlerr.TypeMismatchError
	_, err = coerceText(t, "3 + 'a'", sql.Integer())
	assert.ErrorAs(t, err, &mismatch)

	_, err = coerceText(t, "3 + 5", sql.VarChar(10))
	assert.ErrorAs(t, err, &mismatch)

	_, err = coerceText(t, "TRUE + 1", sql.Boolean())
	assert.ErrorAs(t, err, &mismatch)
}

func TestCoerce_InvalidDestination(t *testing.T) {
	_, err := Coerce(&sql.StringLiteral{Content: "x"}, sql.ColumnType{Kind: sql.TypeChar})
	assert.Error(t, err)
}
