package engine

import (
	"fmt"

	"godbtypes/internal/logging"
	"godbtypes/internal/metrics"
	"godbtypes/internal/sql"
	"godbtypes/internal/storage"
)

// DBEngine is the main database engine struct. It turns parsed statements
// into catalog lookups, value coercion and storage transactions.
type DBEngine struct {
	started bool
	store   storage.Engine
	logger  logging.Logger
	metrics *metrics.Collector
}

type Option func(*DBEngine)

func WithLogger(logger logging.Logger) Option {
	return func(e *DBEngine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(e *DBEngine) {
		e.metrics = m
	}
}

// New creates a new DBEngine on top of store. Without options it logs
// nowhere and keeps its own metrics registry.
func New(store storage.Engine, opts ...Option) *DBEngine {
	e := &DBEngine{
		started: false,
		store:   store,
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.NewCollector("godb")
	}
	return e
}

// Start runs initialization steps for the engine.
func (e *DBEngine) Start() error {
	if e.started {
		return fmt.Errorf("engine already started")
	}
	e.started = true
	e.logger.Debug("engine started")
	return nil
}

// Close closes the underlying storage engine.
func (e *DBEngine) Close() error {
	e.started = false
	return e.store.Close()
}

func (e *DBEngine) Metrics() *metrics.Collector {
	return e.metrics
}

// ListTables returns the names of all tables in the storage engine.
func (e *DBEngine) ListTables() ([]sql.TableName, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}
	return e.store.ListTables()
}

// TableColumns returns the column definitions for a table.
func (e *DBEngine) TableColumns(table sql.TableName) ([]sql.Column, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}
	return e.store.TableColumns(table.Schema, table.Name)
}

// Result is the outcome of one statement. Rows hold normalized values
// (see coerce.Normalize) and are only set for SELECT.
type Result struct {
	Columns      []string
	Types        []sql.ColumnType
	Rows         [][]any
	RowsAffected int
	Tag          string
}
