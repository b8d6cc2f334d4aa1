package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godbtypes/internal/catalog"
	"godbtypes/internal/sql"
	"godbtypes/internal/storage/memstore"
)

func TestColumnTypes(t *testing.T) {
	store := memstore.New()
	table := sql.TableName{Schema: sql.DefaultSchema, Name: "items"}
	require.NoError(t, store.CreateTable(table, []sql.Column{
		{Name: "id", Type: sql.BigInt()},
		{Name: "code", Type: sql.FixedChar(4)},
		{Name: "ok", Type: sql.Boolean()},
	}))

	types, err := catalog.ColumnTypes(store, table, []string{"ok", "id"})
	require.NoError(t, err)
	assert.Equal(t, []sql.ColumnType{sql.Boolean(), sql.BigInt()}, types)

	types, err = catalog.ColumnTypes(store, table, nil)
	require.NoError(t, err)
	assert.Empty(t, types)

	_, err = catalog.ColumnTypes(store, table, []string{"id", "missing"})
	assert.Error(t, err)
}
