package engine

import (
	"fmt"

	"godbtypes/internal/sql"
	"godbtypes/internal/storage"
)

func (e *DBEngine) executeDelete(stmt *sql.DeleteStmt) (*Result, error) {
	cols, err := e.store.TableColumns(stmt.Table.Schema, stmt.Table.Name)
	if err != nil {
		return nil, err
	}
	filter, err := resolveWhere(stmt.Table, cols, stmt.Where)
	if err != nil {
		return nil, err
	}

	var deleted int
	err = e.inTx(false, func(tx storage.Tx) error {
		_, rows, err := tx.Scan(stmt.Table)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}

		var kept []sql.Row
		kept, deleted = applyDelete(rows, filter)
		if deleted == 0 {
			return nil
		}
		if err := tx.ReplaceAll(stmt.Table, kept); err != nil {
			return fmt.Errorf("replaceAll: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveRows("DELETE", deleted)
	return &Result{
		RowsAffected: deleted,
		Tag:          fmt.Sprintf("DELETE %d", deleted),
	}, nil
}
