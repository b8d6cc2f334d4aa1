package sqlitestore

import (
	dbsql "database/sql"
	"fmt"

	"github.com/rotisserie/eris"

	"godbtypes/internal/sql"
	"godbtypes/internal/storage"
	"godbtypes/internal/storage/rowcodec"
)

type sqliteTx struct {
	store    *Store
	tx       *dbsql.Tx
	readOnly bool
	done     bool
}

func (t *sqliteTx) writable(op string) error {
	if t.done {
		return fmt.Errorf("sqlitestore: transaction already finished")
	}
	if t.readOnly {
		return fmt.Errorf("cannot %s in a read-only transaction", op)
	}
	return nil
}

// encodeRows checks every row against cols before anything is written.
func encodeRows(cols []sql.Column, rows []sql.Row) ([][]byte, error) {
	out := make([][]byte, len(rows))
	for i, row := range rows {
		if err := storage.CheckRow(cols, row); err != nil {
			return nil, err
		}
		data, err := rowcodec.EncodeRow(row)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func (t *sqliteTx) appendRows(name sql.TableName, encoded [][]byte) error {
	for _, data := range encoded {
		if _, err := t.tx.Exec(
			`INSERT INTO godb_rows (schema_name, table_name, data) VALUES (?, ?, ?)`,
			name.Schema, name.Name, data); err != nil {
			return eris.Wrapf(err, "sqlitestore: insert into %s", name)
		}
	}
	return nil
}

func (t *sqliteTx) Insert(name sql.TableName, rows ...sql.Row) error {
	if err := t.writable("insert"); err != nil {
		return err
	}
	cols, err := tableColumns(t.tx, name)
	if err != nil {
		return err
	}
	encoded, err := encodeRows(cols, rows)
	if err != nil {
		return err
	}
	return t.appendRows(name, encoded)
}

func (t *sqliteTx) ReplaceAll(name sql.TableName, rows []sql.Row) error {
	if err := t.writable("replace"); err != nil {
		return err
	}
	cols, err := tableColumns(t.tx, name)
	if err != nil {
		return err
	}
	encoded, err := encodeRows(cols, rows)
	if err != nil {
		return fmt.Errorf("ReplaceAll: %w", err)
	}
	if _, err := t.tx.Exec(
		`DELETE FROM godb_rows WHERE schema_name = ? AND table_name = ?`,
		name.Schema, name.Name); err != nil {
		return eris.Wrapf(err, "sqlitestore: clear %s", name)
	}
	return t.appendRows(name, encoded)
}

// Scan returns rows in insertion order, including this transaction's writes.
func (t *sqliteTx) Scan(name sql.TableName) ([]sql.Column, []sql.Row, error) {
	if t.done {
		return nil, nil, fmt.Errorf("sqlitestore: transaction already finished")
	}
	cols, err := tableColumns(t.tx, name)
	if err != nil {
		return nil, nil, err
	}

	rows, err := t.tx.Query(
		`SELECT data FROM godb_rows WHERE schema_name = ? AND table_name = ? ORDER BY row_id`,
		name.Schema, name.Name)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "sqlitestore: scan %s", name)
	}
	defer rows.Close()

	var out []sql.Row
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, nil, eris.Wrapf(err, "sqlitestore: scan %s", name)
		}
		row, err := rowcodec.DecodeRow(data, len(cols))
		if err != nil {
			return nil, nil, eris.Wrapf(err, "sqlitestore: decode row of %s", name)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, eris.Wrapf(err, "sqlitestore: scan %s", name)
	}
	return cols, out, nil
}
