package engine

import (
	"fmt"

	"godbtypes/internal/coerce"
	"godbtypes/internal/sql"
	"godbtypes/internal/storage"
)

// executeSelect scans the table in a read-only transaction, then filters,
// projects and normalizes the rows.
func (e *DBEngine) executeSelect(stmt *sql.SelectStmt) (*Result, error) {
	cols, err := e.store.TableColumns(stmt.Table.Schema, stmt.Table.Name)
	if err != nil {
		return nil, err
	}
	filter, err := resolveWhere(stmt.Table, cols, stmt.Where)
	if err != nil {
		return nil, err
	}

	var rows []sql.Row
	err = e.inTx(true, func(tx storage.Tx) error {
		var scanErr error
		cols, rows, scanErr = tx.Scan(stmt.Table)
		if scanErr != nil {
			return fmt.Errorf("scan: %w", scanErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows = filterRows(rows, filter)
	projCols, projRows, err := projectColumns(stmt.Table, cols, rows, stmt.Columns)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Columns:      make([]string, len(projCols)),
		Types:        make([]sql.ColumnType, len(projCols)),
		Rows:         make([][]any, len(projRows)),
		RowsAffected: len(projRows),
		Tag:          fmt.Sprintf("SELECT %d", len(projRows)),
	}
	for i, c := range projCols {
		res.Columns[i] = c.Name
		res.Types[i] = c.Type
	}
	for i, r := range projRows {
		res.Rows[i] = coerce.NormalizeRow(r)
	}
	e.metrics.ObserveRows("SELECT", len(projRows))
	return res, nil
}
