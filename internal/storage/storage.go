package storage

import (
	"fmt"

	"godbtypes/internal/catalog"
	"godbtypes/internal/sql"
)

// Tx represents a storage-level transaction. Rows handed to Tx are already
// coerced; storage only checks that they match the table shape.
type Tx interface {
	// Insert appends rows to a table. Either all rows are inserted or none.
	Insert(table sql.TableName, rows ...sql.Row) error

	// Scan returns the table columns and all rows in insertion order.
	Scan(table sql.TableName) (cols []sql.Column, rows []sql.Row, err error)

	// ReplaceAll swaps the table contents for rows.
	ReplaceAll(table sql.TableName, rows []sql.Row) error
}

// Engine is a storage engine that can create and manage transactions.
//
// Implementations:
//   - memstore: in-memory (for learning & tests)
//   - sqlitestore: on-disk on top of SQLite
type Engine interface {
	catalog.Catalog

	// Begin starts a new transaction.
	// readOnly = true means the transaction must not perform writes.
	Begin(readOnly bool) (Tx, error)

	// Commit finishes a transaction and makes changes durable/visible.
	Commit(tx Tx) error

	// Rollback aborts a transaction and discards its changes.
	Rollback(tx Tx) error

	CreateSchema(name string) error
	// DropSchema removes a schema. Without cascade the schema must be empty.
	DropSchema(name string, cascade bool) error

	CreateTable(table sql.TableName, cols []sql.Column) error
	DropTable(table sql.TableName) error
	ListTables() ([]sql.TableName, error)

	Close() error
}

// CheckRow verifies that row has one value per column and that each value
// has the column's type.
func CheckRow(cols []sql.Column, row sql.Row) error {
	if len(row) != len(cols) {
		return fmt.Errorf("column count mismatch: expected %d, got %d", len(cols), len(row))
	}
	for i, col := range cols {
		val := row[i]
		if val.Type != col.Type.Kind {
			return fmt.Errorf("type mismatch for column %q: expected %v, got %v", col.Name, col.Type.Kind, val.Type)
		}
		if col.Type.Kind == sql.TypeChar && val.Width != col.Type.Length {
			return fmt.Errorf("width mismatch for column %q: expected %d, got %d", col.Name, col.Type.Length, val.Width)
		}
	}
	return nil
}
