package engine

import (
	"godbtypes/internal/sql"
)

func (e *DBEngine) executeCreateSchema(stmt *sql.CreateSchemaStmt) (*Result, error) {
	if err := e.store.CreateSchema(stmt.Name); err != nil {
		return nil, err
	}
	return &Result{Tag: "CREATE SCHEMA"}, nil
}

// executeDropSchema drops schemas in order and stops at the first failure.
func (e *DBEngine) executeDropSchema(stmt *sql.DropSchemaStmt) (*Result, error) {
	for _, name := range stmt.Names {
		if err := e.store.DropSchema(name, stmt.Cascade); err != nil {
			return nil, err
		}
	}
	return &Result{Tag: "DROP SCHEMA"}, nil
}

func (e *DBEngine) executeCreateTable(stmt *sql.CreateTableStmt) (*Result, error) {
	if err := e.store.CreateTable(stmt.Table, stmt.Columns); err != nil {
		return nil, err
	}
	return &Result{Tag: "CREATE TABLE"}, nil
}

func (e *DBEngine) executeDropTable(stmt *sql.DropTableStmt) (*Result, error) {
	for _, table := range stmt.Tables {
		if err := e.store.DropTable(table); err != nil {
			return nil, err
		}
	}
	return &Result{Tag: "DROP TABLE"}, nil
}
