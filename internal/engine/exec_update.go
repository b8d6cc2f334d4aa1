package engine

import (
	"fmt"

	"godbtypes/internal/coerce"
	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
	"godbtypes/internal/storage"
)

// executeUpdate coerces every SET expression to its column type once, then
// rewrites the matching rows in a single transaction.
func (e *DBEngine) executeUpdate(stmt *sql.UpdateStmt) (*Result, error) {
	cols, err := e.store.TableColumns(stmt.Table.Schema, stmt.Table.Name)
	if err != nil {
		return nil, err
	}
	filter, err := resolveWhere(stmt.Table, cols, stmt.Where)
	if err != nil {
		return nil, err
	}

	indexes := make([]int, len(stmt.Assignments))
	values := make([]sql.Value, len(stmt.Assignments))
	for i, a := range stmt.Assignments {
		idx := columnIndex(cols, a.Column)
		if idx == -1 {
			return nil, sqlerr.NewColumnNotFoundError(a.Column, stmt.Table.String())
		}
		v, err := coerce.CoerceValue(a.Value, cols[idx].Type)
		if err != nil {
			e.metrics.ObserveCoercionFailure(cols[idx].Type.Kind.String(), sqlerr.Kind(err))
			return nil, sqlerr.WithColumn(err, a.Column, i+1)
		}
		indexes[i] = idx
		values[i] = v
	}

	var affected int
	err = e.inTx(false, func(tx storage.Tx) error {
		_, rows, err := tx.Scan(stmt.Table)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}

		var newRows []sql.Row
		newRows, affected = applyUpdate(rows, filter, indexes, values)
		if affected == 0 {
			return nil
		}
		if err := tx.ReplaceAll(stmt.Table, newRows); err != nil {
			return fmt.Errorf("replaceAll: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveRows("UPDATE", affected)
	return &Result{
		RowsAffected: affected,
		Tag:          fmt.Sprintf("UPDATE %d", affected),
	}, nil
}
