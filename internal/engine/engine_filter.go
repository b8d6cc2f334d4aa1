package engine

import (
	"errors"

	"godbtypes/internal/coerce"
	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
)

// rowFilter is a resolved "column = literal" predicate. A nil filter
// matches every row.
type rowFilter struct {
	index int
	value sql.Value
	// never is set when the literal is out of range for the column, so no
	// stored value can equal it.
	never bool
}

func columnIndex(cols []sql.Column, name string) int {
	for i, c := range cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// resolveWhere coerces the WHERE literal to the type of its column so that
// comparison happens between stored values.
func resolveWhere(table sql.TableName, cols []sql.Column, where *sql.WhereExpr) (*rowFilter, error) {
	if where == nil {
		return nil, nil
	}

	idx := columnIndex(cols, where.Column)
	if idx == -1 {
		return nil, sqlerr.NewColumnNotFoundError(where.Column, table.String())
	}

	v, err := coerce.Coerce(where.Value, cols[idx].Type)
	if err != nil {
		var tooLong *sqlerr.StringTooLongError
		var overflow *sqlerr.NumericOverflowError
		if errors.As(err, &tooLong) || errors.As(err, &overflow) {
			return &rowFilter{index: idx, never: true}, nil
		}
		return nil, sqlerr.WithColumn(err, where.Column, 1)
	}
	return &rowFilter{index: idx, value: v}, nil
}

func (f *rowFilter) matches(row sql.Row) bool {
	if f == nil {
		return true
	}
	if f.never || f.index >= len(row) {
		return false
	}
	return row[f.index].Equal(f.value)
}

// filterRows returns the rows matching f.
func filterRows(rows []sql.Row, f *rowFilter) []sql.Row {
	if f == nil {
		return rows
	}
	var out []sql.Row
	for _, row := range rows {
		if f.matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// projectColumns returns the requested columns (in that order) of every row.
// An empty request selects all columns.
func projectColumns(table sql.TableName, allCols []sql.Column, rows []sql.Row, requested []string) ([]sql.Column, []sql.Row, error) {
	if len(requested) == 0 {
		return allCols, rows, nil
	}

	indexes := make([]int, len(requested))
	outCols := make([]sql.Column, len(requested))
	for i, name := range requested {
		idx := columnIndex(allCols, name)
		if idx == -1 {
			return nil, nil, sqlerr.NewColumnNotFoundError(name, table.String())
		}
		indexes[i] = idx
		outCols[i] = allCols[idx]
	}

	outRows := make([]sql.Row, 0, len(rows))
	for _, r := range rows {
		proj := make(sql.Row, len(indexes))
		for i, idx := range indexes {
			proj[i] = r[idx]
		}
		outRows = append(outRows, proj)
	}
	return outCols, outRows, nil
}

// applyUpdate returns a copy of rows where every row matching f has the
// columns at indexes set to values, plus the number of rows changed.
func applyUpdate(rows []sql.Row, f *rowFilter, indexes []int, values []sql.Value) ([]sql.Row, int) {
	newRows := make([]sql.Row, len(rows))
	affected := 0

	for i, r := range rows {
		newRow := make(sql.Row, len(r))
		copy(newRow, r)

		if f.matches(newRow) {
			for j, idx := range indexes {
				newRow[idx] = values[j]
			}
			affected++
		}
		newRows[i] = newRow
	}
	return newRows, affected
}

// applyDelete returns the rows not matching f and the number removed.
func applyDelete(rows []sql.Row, f *rowFilter) ([]sql.Row, int) {
	out := make([]sql.Row, 0, len(rows))
	deleted := 0

	for _, r := range rows {
		if f.matches(r) {
			deleted++
			continue
		}
		out = append(out, r)
	}
	return out, deleted
}
