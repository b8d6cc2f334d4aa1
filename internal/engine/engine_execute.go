package engine

import (
	"context"
	"errors"
	"fmt"

	"godbtypes/internal/logging"
	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
	"godbtypes/internal/storage"
)

// Execute runs one parsed statement.
func (e *DBEngine) Execute(stmt sql.Statement) (*Result, error) {
	return e.ExecuteContext(context.Background(), stmt)
}

// ExecuteSQL parses query and runs it.
func (e *DBEngine) ExecuteSQL(query string) (*Result, error) {
	return e.ExecuteSQLContext(context.Background(), query)
}

func (e *DBEngine) ExecuteSQLContext(ctx context.Context, query string) (*Result, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}
	stmt, err := sql.Parse(query)
	if err != nil {
		e.metrics.ObserveStatement("PARSE", err)
		e.logger.Debugw("parse failed", "error-kind", sqlerr.Kind(err), "error", err)
		return nil, err
	}
	return e.ExecuteContext(ctx, stmt)
}

// ExecuteContext runs one parsed statement. Each call gets its own
// statement id, which is attached to every log line it produces.
func (e *DBEngine) ExecuteContext(ctx context.Context, stmt sql.Statement) (*Result, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}

	kind := statementKind(stmt)
	logger := e.logger.WithStatementID(logging.NewStatementID())
	ctx = logging.AttachLogger(ctx, logger)

	logger.Debugw("executing statement", "kind", kind)
	res, err := e.dispatch(ctx, stmt)
	e.metrics.ObserveStatement(kind, err)
	if err != nil {
		logger.Debugw("statement failed", "kind", kind, "error-kind", sqlerr.Kind(err), "code", sqlerr.Code(err), "error", err)
		return nil, err
	}
	logger.Debugw("statement done", "kind", kind, "tag", res.Tag)
	return res, nil
}

func (e *DBEngine) dispatch(ctx context.Context, stmt sql.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *sql.CreateSchemaStmt:
		return e.executeCreateSchema(s)
	case *sql.DropSchemaStmt:
		return e.executeDropSchema(s)
	case *sql.CreateTableStmt:
		return e.executeCreateTable(s)
	case *sql.DropTableStmt:
		return e.executeDropTable(s)
	case *sql.InsertStmt:
		return e.executeInsert(ctx, s)
	case *sql.SelectStmt:
		return e.executeSelect(s)
	case *sql.UpdateStmt:
		return e.executeUpdate(s)
	case *sql.DeleteStmt:
		return e.executeDelete(s)
	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}

func statementKind(stmt sql.Statement) string {
	switch stmt.(type) {
	case *sql.CreateSchemaStmt:
		return "CREATE SCHEMA"
	case *sql.DropSchemaStmt:
		return "DROP SCHEMA"
	case *sql.CreateTableStmt:
		return "CREATE TABLE"
	case *sql.DropTableStmt:
		return "DROP TABLE"
	case *sql.InsertStmt:
		return "INSERT"
	case *sql.SelectStmt:
		return "SELECT"
	case *sql.UpdateStmt:
		return "UPDATE"
	case *sql.DeleteStmt:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// inTx runs fn in a transaction, committing on success and rolling back
// on error.
func (e *DBEngine) inTx(readOnly bool, fn func(tx storage.Tx) error) error {
	tx, err := e.store.Begin(readOnly)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := e.store.Rollback(tx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := e.store.Commit(tx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
