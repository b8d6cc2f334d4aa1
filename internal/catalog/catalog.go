// Package catalog describes read access to table metadata.
package catalog

import "godbtypes/internal/sql"

// Catalog resolves declared column types. Implementations answer from their
// current state on every call; callers must not cache results across
// statements.
type Catalog interface {
	// LookupColumnType returns the declared type of schema.table.column.
	LookupColumnType(schema, table, column string) (sql.ColumnType, error)

	// TableColumns returns all columns of schema.table in declaration order.
	TableColumns(schema, table string) ([]sql.Column, error)
}

// ColumnTypes looks up the declared type of each named column of table, in
// the order given.
func ColumnTypes(c Catalog, table sql.TableName, columns []string) ([]sql.ColumnType, error) {
	out := make([]sql.ColumnType, len(columns))
	for i, name := range columns {
		ct, err := c.LookupColumnType(table.Schema, table.Name, name)
		if err != nil {
			return nil, err
		}
		out[i] = ct
	}
	return out, nil
}
