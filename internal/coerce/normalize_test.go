package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"godbtypes/internal/sql"
)

func TestNormalize_PassThrough(t *testing.T) {
	assert.Equal(t, int16(-32768), Normalize(sql.SmallIntValue(-32768)))
	assert.Equal(t, int32(2147483647), Normalize(sql.IntegerValue(2147483647)))
	assert.Equal(t, int64(-9223372036854775808), Normalize(sql.BigIntValue(-9223372036854775808)))
	assert.Equal(t, "trail   ", Normalize(sql.VarCharValue("trail   ")))
	assert.Equal(t, true, Normalize(sql.BoolValue(true)))
	assert.Equal(t, false, Normalize(sql.BoolValue(false)))
}

func TestNormalize_CharIsIdempotent(t *testing.T) {
	for _, content := range []string{"", " ", "a", "a  ", "  a", "a b ", "1234567   "} {
		once := Normalize(sql.CharValue(content, 12)).(string)
		twice := Normalize(sql.CharValue(once, 12)).(string)
		assert.Equal(t, once, twice, "content %q", content)
	}
	assert.Equal(t, "", Normalize(sql.CharValue("     ", 5)))
	assert.Equal(t, "  a", Normalize(sql.CharValue("  a", 5)))
}

func TestNormalizeRow(t *testing.T) {
	row := sql.Row{sql.SmallIntValue(8), sql.CharValue("c", 3), sql.BoolValue(true)}
	assert.Equal(t, []any{int16(8), "c", true}, NormalizeRow(row))
}
