package memstore

import (
	"fmt"
	"sort"
	"sync"

	"godbtypes/internal/sql"
	"godbtypes/internal/sqlerr"
	"godbtypes/internal/storage"
)

type table struct {
	name sql.TableName
	cols []sql.Column // column definitions
	rows []sql.Row    // stored rows
}

type memEngine struct {
	mu      sync.RWMutex
	schemas map[string]map[string]*table
}

// New creates a new in-memory storage engine with the default schema.
func New() storage.Engine {
	return &memEngine{
		schemas: map[string]map[string]*table{
			sql.DefaultSchema: {},
		},
	}
}

// memTx represents a transaction on top of memEngine.
// Writes are staged and only applied on Commit.
type memTx struct {
	eng      *memEngine
	readOnly bool
	done     bool

	inserts  map[sql.TableName][]sql.Row
	replaced map[sql.TableName][]sql.Row
}

// lookup returns the table; callers hold e.mu.
func (e *memEngine) lookup(name sql.TableName) (*table, error) {
	tables, ok := e.schemas[name.Schema]
	if !ok {
		return nil, sqlerr.NewSchemaNotFoundError(name.Schema)
	}
	t, ok := tables[name.Name]
	if !ok {
		return nil, sqlerr.NewTableNotFoundError(name.String())
	}
	return t, nil
}

func copyRows(rows []sql.Row) []sql.Row {
	out := make([]sql.Row, len(rows))
	for i, r := range rows {
		rowCopy := make(sql.Row, len(r))
		copy(rowCopy, r)
		out[i] = rowCopy
	}
	return out
}

// Begin starts a new transaction.
func (e *memEngine) Begin(readOnly bool) (storage.Tx, error) {
	return &memTx{
		eng:      e,
		readOnly: readOnly,
		inserts:  make(map[sql.TableName][]sql.Row),
		replaced: make(map[sql.TableName][]sql.Row),
	}, nil
}

// Commit applies the staged writes of tx atomically.
func (e *memEngine) Commit(tx storage.Tx) error {
	mtx, ok := tx.(*memTx)
	if !ok || mtx.eng != e {
		return fmt.Errorf("memstore: foreign transaction %T", tx)
	}
	if mtx.done {
		return fmt.Errorf("memstore: transaction already finished")
	}
	mtx.done = true

	e.mu.Lock()
	defer e.mu.Unlock()

	// Validate everything before touching any table.
	for name := range mtx.replaced {
		if _, err := e.lookup(name); err != nil {
			return err
		}
	}
	for name := range mtx.inserts {
		if _, err := e.lookup(name); err != nil {
			return err
		}
	}

	for name, rows := range mtx.replaced {
		t, _ := e.lookup(name)
		t.rows = rows
	}
	for name, rows := range mtx.inserts {
		t, _ := e.lookup(name)
		t.rows = append(t.rows, rows...)
	}
	return nil
}

// Rollback discards the staged writes of tx.
func (e *memEngine) Rollback(tx storage.Tx) error {
	mtx, ok := tx.(*memTx)
	if !ok || mtx.eng != e {
		return fmt.Errorf("memstore: foreign transaction %T", tx)
	}
	mtx.done = true
	mtx.inserts = nil
	mtx.replaced = nil
	return nil
}

// Insert stages rows for a table inside this transaction.
func (tx *memTx) Insert(tableName sql.TableName, rows ...sql.Row) error {
	if tx.readOnly {
		return fmt.Errorf("cannot insert in a read-only transaction")
	}
	if tx.done {
		return fmt.Errorf("memstore: transaction already finished")
	}

	tx.eng.mu.RLock()
	t, err := tx.eng.lookup(tableName)
	tx.eng.mu.RUnlock()
	if err != nil {
		return err
	}

	// Type check each row against the column definitions.
	for _, row := range rows {
		if err := storage.CheckRow(t.cols, row); err != nil {
			return err
		}
	}

	tx.inserts[tableName] = append(tx.inserts[tableName], copyRows(rows)...)
	return nil
}

// Scan sees committed rows plus this transaction's own staged writes.
func (tx *memTx) Scan(tableName sql.TableName) ([]sql.Column, []sql.Row, error) {
	if tx.done {
		return nil, nil, fmt.Errorf("memstore: transaction already finished")
	}

	tx.eng.mu.RLock()
	defer tx.eng.mu.RUnlock()

	t, err := tx.eng.lookup(tableName)
	if err != nil {
		return nil, nil, err
	}

	base := t.rows
	if replaced, ok := tx.replaced[tableName]; ok {
		base = replaced
	}

	// Return a deep copy to prevent callers from mutating stored data.
	rows := copyRows(append(append([]sql.Row{}, base...), tx.inserts[tableName]...))

	cols := make([]sql.Column, len(t.cols))
	copy(cols, t.cols)
	return cols, rows, nil
}

func (tx *memTx) ReplaceAll(tableName sql.TableName, rows []sql.Row) error {
	if tx.readOnly {
		return fmt.Errorf("cannot replace in a read-only transaction")
	}
	if tx.done {
		return fmt.Errorf("memstore: transaction already finished")
	}

	tx.eng.mu.RLock()
	t, err := tx.eng.lookup(tableName)
	tx.eng.mu.RUnlock()
	if err != nil {
		return err
	}

	for _, r := range rows {
		if err := storage.CheckRow(t.cols, r); err != nil {
			return fmt.Errorf("ReplaceAll: %w", err)
		}
	}

	tx.replaced[tableName] = copyRows(rows)
	delete(tx.inserts, tableName)
	return nil
}

func (e *memEngine) CreateSchema(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.schemas[name]; exists {
		return sqlerr.NewSchemaAlreadyExistsError(name)
	}
	e.schemas[name] = map[string]*table{}
	return nil
}

func (e *memEngine) DropSchema(name string, cascade bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tables, exists := e.schemas[name]
	if !exists {
		return sqlerr.NewSchemaNotFoundError(name)
	}
	if len(tables) > 0 && !cascade {
		return sqlerr.NewSchemaNotEmptyError(name)
	}
	delete(e.schemas, name)
	return nil
}

// CreateTable creates a new empty table in an existing schema.
func (e *memEngine) CreateTable(name sql.TableName, cols []sql.Column) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tables, ok := e.schemas[name.Schema]
	if !ok {
		return sqlerr.NewSchemaNotFoundError(name.Schema)
	}
	if _, exists := tables[name.Name]; exists {
		return sqlerr.NewTableAlreadyExistsError(name.String())
	}
	for _, c := range cols {
		if err := c.Type.Validate(); err != nil {
			return fmt.Errorf("column %q: %w", c.Name, err)
		}
	}

	colsCopy := make([]sql.Column, len(cols))
	copy(colsCopy, cols)
	tables[name.Name] = &table{
		name: name,
		cols: colsCopy,
		rows: make([]sql.Row, 0),
	}
	return nil
}

func (e *memEngine) DropTable(name sql.TableName) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.lookup(name); err != nil {
		return err
	}
	delete(e.schemas[name.Schema], name.Name)
	return nil
}

// ListTables returns all tables sorted by schema and name.
func (e *memEngine) ListTables() ([]sql.TableName, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []sql.TableName
	for _, tables := range e.schemas {
		for _, t := range tables {
			out = append(out, t.name)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}

func (e *memEngine) LookupColumnType(schema, tableName, column string) (sql.ColumnType, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	name := sql.TableName{Schema: schema, Name: tableName}
	t, err := e.lookup(name)
	if err != nil {
		return sql.ColumnType{}, err
	}
	for _, c := range t.cols {
		if c.Name == column {
			return c.Type, nil
		}
	}
	return sql.ColumnType{}, sqlerr.NewColumnNotFoundError(column, name.String())
}

func (e *memEngine) TableColumns(schema, tableName string) ([]sql.Column, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, err := e.lookup(sql.TableName{Schema: schema, Name: tableName})
	if err != nil {
		return nil, err
	}
	cols := make([]sql.Column, len(t.cols))
	copy(cols, t.cols)
	return cols, nil
}

func (e *memEngine) Close() error {
	return nil
}
