// Package storagetest holds behaviour checks shared by every storage.Engine
// implementation.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
	"godbtypes/internal/storage"
)

var (
	accounts = sql.TableName{Schema: sql.DefaultSchema, Name: "accounts"}
	events   = sql.TableName{Schema: "audit", Name: "events"}
)

var accountColumns = []sql.Column{
	{Name: "id", Type: sql.BigInt()},
	{Name: "age", Type: sql.SmallInt()},
	{Name: "score", Type: sql.Integer()},
	{Name: "code", Type: sql.FixedChar(4)},
	{Name: "name", Type: sql.VarChar(16)},
	{Name: "active", Type: sql.Boolean()},
}

func accountRow(id int64, name string, active bool) sql.Row {
	return sql.Row{
		sql.BigIntValue(id),
		sql.SmallIntValue(int16(id % 100)),
		sql.IntegerValue(int32(id * 10)),
		sql.CharValue("c", 4),
		sql.VarCharValue(name),
		sql.BoolValue(active),
	}
}

// Run exercises newEngine against the storage.Engine contract. Each subtest
// gets a fresh engine.
func Run(t *testing.T, newEngine func(t *testing.T) storage.Engine) {
	fresh := func(t *testing.T) storage.Engine {
		e := newEngine(t)
		t.Cleanup(func() { _ = e.Close() })
		return e
	}

	t.Run("DefaultSchemaExists", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		var exists *sqlerr.SchemaAlreadyExistsError
		assert.ErrorAs(t, e.CreateSchema(sql.DefaultSchema), &exists)
	})

	t.Run("SchemaLifecycle", func(t *testing.T) {
		e := fresh(t)

		var notFound *sqlerr.SchemaNotFoundError
		assert.ErrorAs(t, e.CreateTable(events, accountColumns), &notFound)

		require.NoError(t, e.CreateSchema("audit"))
		var exists *sqlerr.SchemaAlreadyExistsError
		assert.ErrorAs(t, e.CreateSchema("audit"), &exists)

		require.NoError(t, e.CreateTable(events, accountColumns))

		var notEmpty *sqlerr.SchemaNotEmptyError
		assert.ErrorAs(t, e.DropSchema("audit", false), &notEmpty)

		require.NoError(t, e.DropSchema("audit", true))
		assert.ErrorAs(t, e.DropSchema("audit", true), &notFound)

		_, err := e.TableColumns("audit", "events")
		assert.ErrorAs(t, err, &notFound)

		// Recreating the schema must not resurrect dropped tables.
		require.NoError(t, e.CreateSchema("audit"))
		var tableNotFound *sqlerr.TableNotFoundError
		_, err = e.TableColumns("audit", "events")
		assert.ErrorAs(t, err, &tableNotFound)
	})

	t.Run("TableLifecycle", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateSchema("audit"))
		require.NoError(t, e.CreateTable(accounts, accountColumns))
		require.NoError(t, e.CreateTable(events, accountColumns[:2]))

		var exists *sqlerr.TableAlreadyExistsError
		assert.ErrorAs(t, e.CreateTable(accounts, accountColumns), &exists)

		assert.Error(t, e.CreateTable(sql.TableName{Schema: sql.DefaultSchema, Name: "bad"}, []sql.Column{
			{Name: "v", Type: sql.ColumnType{Kind: sql.TypeVarChar}},
		}))

		tables, err := e.ListTables()
		require.NoError(t, err)
		assert.Equal(t, []sql.TableName{events, accounts}, tables)

		require.NoError(t, e.DropTable(events))
		var notFound *sqlerr.TableNotFoundError
		assert.ErrorAs(t, e.DropTable(events), &notFound)

		tables, err = e.ListTables()
		require.NoError(t, err)
		assert.Equal(t, []sql.TableName{accounts}, tables)
	})

	t.Run("CatalogLookups", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		for _, c := range accountColumns {
			ct, err := e.LookupColumnType(accounts.Schema, accounts.Name, c.Name)
			require.NoError(t, err, c.Name)
			assert.Equal(t, c.Type, ct, c.Name)
		}

		cols, err := e.TableColumns(accounts.Schema, accounts.Name)
		require.NoError(t, err)
		assert.Equal(t, accountColumns, cols)

		var colNotFound *sqlerr.ColumnNotFoundError
		_, err = e.LookupColumnType(accounts.Schema, accounts.Name, "missing")
		assert.ErrorAs(t, err, &colNotFound)

		var tableNotFound *sqlerr.TableNotFoundError
		_, err = e.LookupColumnType(accounts.Schema, "missing", "id")
		assert.ErrorAs(t, err, &tableNotFound)

		var schemaNotFound *sqlerr.SchemaNotFoundError
		_, err = e.LookupColumnType("missing", accounts.Name, "id")
		assert.ErrorAs(t, err, &schemaNotFound)
	})

	t.Run("InsertScanRoundTrip", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		want := []sql.Row{
			accountRow(1, "alice", true),
			accountRow(-9223372036854775808, "", false),
			accountRow(9223372036854775807, "héllo wörld", true),
		}

		tx, err := e.Begin(false)
		require.NoError(t, err)
		require.NoError(t, tx.Insert(accounts, want[0]))
		require.NoError(t, tx.Insert(accounts, want[1:]...))
		require.NoError(t, e.Commit(tx))

		read, err := e.Begin(true)
		require.NoError(t, err)
		cols, rows, err := read.Scan(accounts)
		require.NoError(t, err)
		require.NoError(t, e.Commit(read))

		assert.Equal(t, accountColumns, cols)
		require.Len(t, rows, len(want))
		for i := range want {
			for j := range want[i] {
				assert.True(t, want[i][j].Equal(rows[i][j]), "row %d col %d: %v != %v", i, j, want[i][j], rows[i][j])
			}
		}
	})

	t.Run("InsertRejectsWrongShape", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		tx, err := e.Begin(false)
		require.NoError(t, err)

		assert.Error(t, tx.Insert(accounts, accountRow(1, "a", true)[:3]))

		wrongWidth := accountRow(1, "a", true)
		wrongWidth[3] = sql.CharValue("c", 5)
		assert.Error(t, tx.Insert(accounts, wrongWidth))

		wrongKind := accountRow(1, "a", true)
		wrongKind[1] = sql.IntegerValue(1)
		assert.Error(t, tx.Insert(accounts, accountRow(2, "b", true), wrongKind))

		var notFound *sqlerr.TableNotFoundError
		assert.ErrorAs(t, tx.Insert(sql.TableName{Schema: sql.DefaultSchema, Name: "nope"}, accountRow(1, "a", true)), &notFound)

		require.NoError(t, e.Commit(tx))

		read, err := e.Begin(true)
		require.NoError(t, err)
		_, rows, err := read.Scan(accounts)
		require.NoError(t, err)
		assert.Empty(t, rows, "a rejected batch must not leave partial rows")
		require.NoError(t, e.Rollback(read))
	})

	t.Run("ReadOnlyRejectsWrites", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		tx, err := e.Begin(true)
		require.NoError(t, err)
		assert.Error(t, tx.Insert(accounts, accountRow(1, "a", true)))
		assert.Error(t, tx.ReplaceAll(accounts, nil))
		require.NoError(t, e.Rollback(tx))
	})

	t.Run("RollbackDiscardsWrites", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		tx, err := e.Begin(false)
		require.NoError(t, err)
		require.NoError(t, tx.Insert(accounts, accountRow(1, "a", true)))
		require.NoError(t, e.Rollback(tx))

		read, err := e.Begin(true)
		require.NoError(t, err)
		_, rows, err := read.Scan(accounts)
		require.NoError(t, err)
		assert.Empty(t, rows)
		require.NoError(t, e.Commit(read))
	})

	t.Run("ReplaceAll", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		tx, err := e.Begin(false)
		require.NoError(t, err)
		require.NoError(t, tx.Insert(accounts, accountRow(1, "a", true), accountRow(2, "b", false)))
		require.NoError(t, e.Commit(tx))

		tx, err = e.Begin(false)
		require.NoError(t, err)
		require.NoError(t, tx.ReplaceAll(accounts, []sql.Row{accountRow(3, "c", true)}))
		require.NoError(t, tx.Insert(accounts, accountRow(4, "d", false)))

		_, rows, err := tx.Scan(accounts)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "c", rows[0][4].S)
		assert.Equal(t, "d", rows[1][4].S)
		require.NoError(t, e.Commit(tx))

		tx, err = e.Begin(false)
		require.NoError(t, err)
		require.NoError(t, tx.ReplaceAll(accounts, nil))
		require.NoError(t, e.Commit(tx))

		read, err := e.Begin(true)
		require.NoError(t, err)
		_, rows, err = read.Scan(accounts)
		require.NoError(t, err)
		assert.Empty(t, rows)
		require.NoError(t, e.Commit(read))
	})

	t.Run("FinishedTransaction", func(t *testing.T) {
		e := fresh(t)
		require.NoError(t, e.CreateTable(accounts, accountColumns))

		tx, err := e.Begin(false)
		require.NoError(t, err)
		require.NoError(t, e.Commit(tx))

		assert.Error(t, e.Commit(tx))
		assert.Error(t, tx.Insert(accounts, accountRow(1, "a", true)))
	})
}
