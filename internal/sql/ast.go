package sql

// Statement is the common interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// CreateSchemaStmt represents CREATE SCHEMA name.
type CreateSchemaStmt struct {
	Name string
}

// DropSchemaStmt represents DROP SCHEMA name[, ...] [CASCADE].
type DropSchemaStmt struct {
	Names   []string
	Cascade bool
}

// CreateTableStmt represents a parsed CREATE TABLE statement.
type CreateTableStmt struct {
	Table   TableName
	Columns []Column
}

// DropTableStmt represents DROP TABLE name[, ...].
type DropTableStmt struct {
	Tables []TableName
}

// InsertStmt represents INSERT INTO table [(cols)] VALUES (...)[, (...)].
// Each row holds one expression per value position; nothing is typed yet.
type InsertStmt struct {
	Table   TableName
	Columns []string
	Rows    [][]Expression
}

// SelectStmt represents SELECT * | cols FROM table [WHERE col = literal].
type SelectStmt struct {
	Table   TableName
	Columns []string // empty means *
	Where   *WhereExpr
}

// DeleteStmt represents DELETE FROM table [WHERE col = literal].
type DeleteStmt struct {
	Table TableName
	Where *WhereExpr
}

// UpdateStmt represents UPDATE table SET col = expr[, ...] [WHERE col = literal].
type UpdateStmt struct {
	Table       TableName
	Assignments []Assignment
	Where       *WhereExpr
}

// Assignment is one "col = expr" item of an UPDATE.
type Assignment struct {
	Column string
	Value  Expression
}

// WhereExpr is a simple "column = literal" predicate.
type WhereExpr struct {
	Column string
	Op     string
	Value  Literal
}

func (*CreateSchemaStmt) stmtNode() {}
func (*DropSchemaStmt) stmtNode()   {}
func (*CreateTableStmt) stmtNode()  {}
func (*DropTableStmt) stmtNode()    {}
func (*InsertStmt) stmtNode()       {}
func (*SelectStmt) stmtNode()       {}
func (*DeleteStmt) stmtNode()       {}
func (*UpdateStmt) stmtNode()       {}
