package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"godbtypes/internal/catalog"
	"godbtypes/internal/coerce"
	"godbtypes/internal/logging"
	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
	"godbtypes/internal/storage"
)

// insertTarget maps the value positions of an INSERT onto table columns.
type insertTarget struct {
	width     int              // number of table columns
	names     []string         // column name per value position
	positions []int            // table column index per value position
	types     []sql.ColumnType // declared type per value position
}

func (e *DBEngine) resolveInsertTarget(stmt *sql.InsertStmt) (*insertTarget, error) {
	cols, err := e.store.TableColumns(stmt.Table.Schema, stmt.Table.Name)
	if err != nil {
		return nil, err
	}

	names := stmt.Columns
	if len(names) == 0 {
		names = make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.Name
		}
	}

	colIndex := make(map[string]int, len(cols))
	for i, c := range cols {
		colIndex[c.Name] = i
	}

	positions := make([]int, len(names))
	seen := make([]bool, len(cols))
	for i, name := range names {
		pos, ok := colIndex[name]
		if !ok {
			return nil, sqlerr.NewColumnNotFoundError(name, stmt.Table.String())
		}
		if seen[pos] {
			return nil, sqlerr.NewDuplicateColumnError(name)
		}
		positions[i] = pos
		seen[pos] = true
	}

	// Expression count is checked before column coverage.
	for _, exprs := range stmt.Rows {
		if len(exprs) > len(names) {
			return nil, sqlerr.NewTooManyInsertExpressionsError(len(exprs), len(names))
		}
		if len(exprs) < len(names) {
			return nil, sqlerr.NewMissingColumnValueError(names[len(exprs)], stmt.Table.String())
		}
	}
	for i, s := range seen {
		if !s {
			return nil, sqlerr.NewMissingColumnValueError(cols[i].Name, stmt.Table.String())
		}
	}

	types, err := catalog.ColumnTypes(e.store, stmt.Table, names)
	if err != nil {
		return nil, err
	}

	return &insertTarget{
		width:     len(cols),
		names:     names,
		positions: positions,
		types:     types,
	}, nil
}

// coerceRows turns every row of expressions into a stored row. Rows are
// coerced concurrently and every row is tried, so when several fail the
// error of the first failing row is returned.
func (e *DBEngine) coerceRows(ctx context.Context, target *insertTarget, rows [][]sql.Expression) ([]sql.Row, error) {
	out := make([]sql.Row, len(rows))
	errs := make([]error, len(rows))
	failedPos := make([]int, len(rows))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r, exprs := range rows {
		r, exprs := r, exprs
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make(sql.Row, target.width)
			for i, expr := range exprs {
				v, err := coerce.CoerceValue(expr, target.types[i])
				if err != nil {
					errs[r] = err
					failedPos[r] = i
					return err
				}
				row[target.positions[i]] = v
			}
			out[r] = row
			return nil
		})
	}
	waitErr := g.Wait()

	for r, err := range errs {
		if err == nil {
			continue
		}
		i := failedPos[r]
		err = sqlerr.WithColumn(err, target.names[i], i+1)
		if len(rows) > 1 {
			var sqlErr sqlerr.SQLError
			if errors.As(err, &sqlErr) {
				sqlErr.AddDetail("row", strconv.Itoa(r+1))
			}
		}
		e.metrics.ObserveCoercionFailure(target.types[i].Kind.String(), sqlerr.Kind(err))
		logging.GetLoggerFromContext(ctx).Debugw("value rejected",
			"column", target.names[i], "position", i+1, "row", r+1,
			"type", target.types[i].String(), "error-kind", sqlerr.Kind(err))
		return nil, err
	}
	if waitErr != nil {
		return nil, waitErr
	}
	return out, nil
}

// executeInsert coerces every value before it opens the write transaction,
// so a rejected value leaves the table untouched.
func (e *DBEngine) executeInsert(ctx context.Context, stmt *sql.InsertStmt) (*Result, error) {
	target, err := e.resolveInsertTarget(stmt)
	if err != nil {
		return nil, err
	}
	ctx = logging.AttachLogger(ctx, logging.GetLoggerFromContext(ctx).WithTable(stmt.Table.Schema, stmt.Table.Name))

	rows, err := e.coerceRows(ctx, target, stmt.Rows)
	if err != nil {
		return nil, err
	}

	err = e.inTx(false, func(tx storage.Tx) error {
		if err := tx.Insert(stmt.Table, rows...); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveRows("INSERT", len(rows))
	return &Result{
		RowsAffected: len(rows),
		Tag:          fmt.Sprintf("INSERT 0 %d", len(rows)),
	}, nil
}
