// Package sqlitestore keeps schemas, tables and rows in a single SQLite
// database file. Table metadata lives in catalog tables; every user row is
// one rowcodec-encoded blob in godb_rows.
package sqlitestore

import (
	dbsql "database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
	"godbtypes/internal/storage"
)

var bootstrap = []string{
	`CREATE TABLE IF NOT EXISTS godb_schemas (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS godb_tables (
		schema_name TEXT NOT NULL,
		table_name  TEXT NOT NULL,
		PRIMARY KEY (schema_name, table_name)
	)`,
	`CREATE TABLE IF NOT EXISTS godb_columns (
		schema_name TEXT NOT NULL,
		table_name  TEXT NOT NULL,
		ordinal     INTEGER NOT NULL,
		column_name TEXT NOT NULL,
		column_type TEXT NOT NULL,
		PRIMARY KEY (schema_name, table_name, ordinal)
	)`,
	`CREATE TABLE IF NOT EXISTS godb_rows (
		row_id      INTEGER PRIMARY KEY AUTOINCREMENT,
		schema_name TEXT NOT NULL,
		table_name  TEXT NOT NULL,
		data        BLOB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS godb_rows_by_table ON godb_rows (schema_name, table_name, row_id)`,
	`INSERT OR IGNORE INTO godb_schemas (name) VALUES ('` + sql.DefaultSchema + `')`,
}

// Store is a storage.Engine backed by SQLite.
type Store struct {
	db *dbsql.DB
}

var _ storage.Engine = (*Store)(nil)

// Open opens (or creates) the database at path. Use ":memory:" for a
// throwaway store.
func Open(path string) (*Store, error) {
	db, err := dbsql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlitestore: open %s", path)
	}
	// A single connection serialises transactions and keeps ":memory:"
	// databases alive between calls.
	db.SetMaxOpenConns(1)

	for _, stmt := range bootstrap {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, eris.Wrap(err, "sqlitestore: bootstrap")
		}
	}
	return &Store{db: db}, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (dbsql.Result, error)
	Query(query string, args ...any) (*dbsql.Rows, error)
	QueryRow(query string, args ...any) *dbsql.Row
}

func exists(q querier, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRow(query, args...).Scan(&one)
	if errors.Is(err, dbsql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrap(err, "sqlitestore: lookup")
	}
	return true, nil
}

func schemaExists(q querier, schema string) (bool, error) {
	return exists(q, `SELECT 1 FROM godb_schemas WHERE name = ?`, schema)
}

// checkTable returns a typed error unless both the schema and the table exist.
func checkTable(q querier, name sql.TableName) error {
	ok, err := schemaExists(q, name.Schema)
	if err != nil {
		return err
	}
	if !ok {
		return sqlerr.NewSchemaNotFoundError(name.Schema)
	}
	ok, err = exists(q, `SELECT 1 FROM godb_tables WHERE schema_name = ? AND table_name = ?`, name.Schema, name.Name)
	if err != nil {
		return err
	}
	if !ok {
		return sqlerr.NewTableNotFoundError(name.String())
	}
	return nil
}

func tableColumns(q querier, name sql.TableName) ([]sql.Column, error) {
	if err := checkTable(q, name); err != nil {
		return nil, err
	}

	rows, err := q.Query(
		`SELECT column_name, column_type FROM godb_columns
		 WHERE schema_name = ? AND table_name = ? ORDER BY ordinal`,
		name.Schema, name.Name)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlitestore: columns of %s", name)
	}
	defer rows.Close()

	var cols []sql.Column
	for rows.Next() {
		var colName, typeName string
		if err := rows.Scan(&colName, &typeName); err != nil {
			return nil, eris.Wrap(err, "sqlitestore: scan column")
		}
		ct, err := sql.ParseColumnType(typeName)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlitestore: column %s of %s", colName, name)
		}
		cols = append(cols, sql.Column{Name: colName, Type: ct})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlitestore: columns")
	}
	return cols, nil
}

// Begin starts a transaction. Only one transaction can be open at a time;
// catalog methods called while it is open wait for it to finish.
func (s *Store) Begin(readOnly bool) (storage.Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, eris.Wrap(err, "sqlitestore: begin")
	}
	return &sqliteTx{store: s, tx: tx, readOnly: readOnly}, nil
}

func (s *Store) ownTx(tx storage.Tx) (*sqliteTx, error) {
	stx, ok := tx.(*sqliteTx)
	if !ok || stx.store != s {
		return nil, fmt.Errorf("sqlitestore: foreign transaction %T", tx)
	}
	return stx, nil
}

func (s *Store) Commit(tx storage.Tx) error {
	stx, err := s.ownTx(tx)
	if err != nil {
		return err
	}
	if stx.done {
		return fmt.Errorf("sqlitestore: transaction already finished")
	}
	stx.done = true
	return eris.Wrap(stx.tx.Commit(), "sqlitestore: commit")
}

func (s *Store) Rollback(tx storage.Tx) error {
	stx, err := s.ownTx(tx)
	if err != nil {
		return err
	}
	if stx.done {
		return nil
	}
	stx.done = true
	return eris.Wrap(stx.tx.Rollback(), "sqlitestore: rollback")
}

// inTx runs fn inside its own short transaction.
func (s *Store) inTx(fn func(tx *dbsql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return eris.Wrap(err, "sqlitestore: begin")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlitestore: commit")
}

func (s *Store) CreateSchema(name string) error {
	return s.inTx(func(tx *dbsql.Tx) error {
		ok, err := schemaExists(tx, name)
		if err != nil {
			return err
		}
		if ok {
			return sqlerr.NewSchemaAlreadyExistsError(name)
		}
		_, err = tx.Exec(`INSERT INTO godb_schemas (name) VALUES (?)`, name)
		return eris.Wrapf(err, "sqlitestore: create schema %s", name)
	})
}

func (s *Store) DropSchema(name string, cascade bool) error {
	return s.inTx(func(tx *dbsql.Tx) error {
		ok, err := schemaExists(tx, name)
		if err != nil {
			return err
		}
		if !ok {
			return sqlerr.NewSchemaNotFoundError(name)
		}
		hasTables, err := exists(tx, `SELECT 1 FROM godb_tables WHERE schema_name = ? LIMIT 1`, name)
		if err != nil {
			return err
		}
		if hasTables && !cascade {
			return sqlerr.NewSchemaNotEmptyError(name)
		}

		for _, stmt := range []string{
			`DELETE FROM godb_rows WHERE schema_name = ?`,
			`DELETE FROM godb_columns WHERE schema_name = ?`,
			`DELETE FROM godb_tables WHERE schema_name = ?`,
			`DELETE FROM godb_schemas WHERE name = ?`,
		} {
			if _, err := tx.Exec(stmt, name); err != nil {
				return eris.Wrapf(err, "sqlitestore: drop schema %s", name)
			}
		}
		return nil
	})
}

func (s *Store) CreateTable(name sql.TableName, cols []sql.Column) error {
	for _, c := range cols {
		if err := c.Type.Validate(); err != nil {
			return fmt.Errorf("column %q: %w", c.Name, err)
		}
	}

	return s.inTx(func(tx *dbsql.Tx) error {
		err := checkTable(tx, name)
		var notFound *sqlerr.TableNotFoundError
		switch {
		case err == nil:
			return sqlerr.NewTableAlreadyExistsError(name.String())
		case !errors.As(err, &notFound):
			return err
		}

		if _, err := tx.Exec(`INSERT INTO godb_tables (schema_name, table_name) VALUES (?, ?)`, name.Schema, name.Name); err != nil {
			return eris.Wrapf(err, "sqlitestore: create table %s", name)
		}
		for i, c := range cols {
			if _, err := tx.Exec(
				`INSERT INTO godb_columns (schema_name, table_name, ordinal, column_name, column_type) VALUES (?, ?, ?, ?, ?)`,
				name.Schema, name.Name, i, c.Name, c.Type.String()); err != nil {
				return eris.Wrapf(err, "sqlitestore: create column %s", c.Name)
			}
		}
		return nil
	})
}

func (s *Store) DropTable(name sql.TableName) error {
	return s.inTx(func(tx *dbsql.Tx) error {
		if err := checkTable(tx, name); err != nil {
			return err
		}
		for _, stmt := range []string{
			`DELETE FROM godb_rows WHERE schema_name = ? AND table_name = ?`,
			`DELETE FROM godb_columns WHERE schema_name = ? AND table_name = ?`,
			`DELETE FROM godb_tables WHERE schema_name = ? AND table_name = ?`,
		} {
			if _, err := tx.Exec(stmt, name.Schema, name.Name); err != nil {
				return eris.Wrapf(err, "sqlitestore: drop table %s", name)
			}
		}
		return nil
	})
}

// ListTables returns all tables sorted by schema and name.
func (s *Store) ListTables() ([]sql.TableName, error) {
	rows, err := s.db.Query(`SELECT schema_name, table_name FROM godb_tables`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlitestore: list tables")
	}
	defer rows.Close()

	var out []sql.TableName
	for rows.Next() {
		var t sql.TableName
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, eris.Wrap(err, "sqlitestore: list tables")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlitestore: list tables")
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}

func (s *Store) LookupColumnType(schema, table, column string) (sql.ColumnType, error) {
	name := sql.TableName{Schema: schema, Name: table}
	if err := checkTable(s.db, name); err != nil {
		return sql.ColumnType{}, err
	}

	var typeName string
	err := s.db.QueryRow(
		`SELECT column_type FROM godb_columns WHERE schema_name = ? AND table_name = ? AND column_name = ?`,
		schema, table, column).Scan(&typeName)
	if errors.Is(err, dbsql.ErrNoRows) {
		return sql.ColumnType{}, sqlerr.NewColumnNotFoundError(column, name.String())
	}
	if err != nil {
		return sql.ColumnType{}, eris.Wrapf(err, "sqlitestore: column %s of %s", column, name)
	}
	return sql.ParseColumnType(typeName)
}

func (s *Store) TableColumns(schema, table string) ([]sql.Column, error) {
	return tableColumns(s.db, sql.TableName{Schema: schema, Name: table})
}

func (s *Store) Close() error {
	return s.db.Close()
}
