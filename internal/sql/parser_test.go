package sql

import "testing"

func TestParseCreateTable_Basic(t *testing.T) {
	query := "CREATE TABLE schema_name.table_name (si_col smallint, i_col integer, bi_col bigint);"

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ct, ok := stmt.(*CreateTableStmt)
	if !ok {
		t.Fatalf("expected *CreateTableStmt, got %T", stmt)
	}

	want := TableName{Schema: "schema_name", Name: "table_name"}
	if ct.Table != want {
		t.Fatalf("expected table %v, got %v", want, ct.Table)
	}

	if len(ct.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(ct.Columns))
	}

	assertCol := func(idx int, name string, typ ColumnType) {
		if ct.Columns[idx].Name != name {
			t.Fatalf("column %d: expected name %q, got %q", idx, name, ct.Columns[idx].Name)
		}
		if ct.Columns[idx].Type != typ {
			t.Fatalf("column %d: expected type %v, got %v", idx, typ, ct.Columns[idx].Type)
		}
	}

	assertCol(0, "si_col", SmallInt())
	assertCol(1, "i_col", Integer())
	assertCol(2, "bi_col", BigInt())
}

func TestParseCreateTable_CharacterTypes(t *testing.T) {
	query := `create table schema_name.table_name(
            col_no_len_chars char,
            col_with_len_chars char(10),
            col_var_char_smallest varchar(1),
            col_var_char_large    character varying(20)
            );`

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ct := stmt.(*CreateTableStmt)
	want := []ColumnType{FixedChar(1), FixedChar(10), VarChar(1), VarChar(20)}
	if len(ct.Columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(ct.Columns))
	}
	for i, w := range want {
		if ct.Columns[i].Type != w {
			t.Fatalf("column %d: expected type %v, got %v", i, w, ct.Columns[i].Type)
		}
	}
}

func TestParseCreateTable_CaseAndSpaces(t *testing.T) {
	query := "  create   table   Accounts  (  balance   BIGINT ,  active  bool );  "

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ct, ok := stmt.(*CreateTableStmt)
	if !ok {
		t.Fatalf("expected *CreateTableStmt, got %T", stmt)
	}

	if ct.Table.Schema != DefaultSchema || ct.Table.Name != "accounts" {
		t.Fatalf("expected table %s.accounts, got %v", DefaultSchema, ct.Table)
	}
	if ct.Columns[0].Name != "balance" || ct.Columns[0].Type != BigInt() {
		t.Fatalf("unexpected first column: %+v", ct.Columns[0])
	}
	if ct.Columns[1].Name != "active" || ct.Columns[1].Type != Boolean() {
		t.Fatalf("unexpected second column: %+v", ct.Columns[1])
	}
}

func TestParseCreateTable_Errors(t *testing.T) {
	queries := []string{
		"CREATE TABLE t (c float);",
		"CREATE TABLE t (c varchar);",
		"CREATE TABLE t (c char(0));",
		"CREATE TABLE t (c smallint(3));",
		"CREATE TABLE t (c smallint, c integer);",
		"CREATE TABLE t ();",
		"CREATE TABLE (c smallint);",
	}
	for _, q := range queries {
		if _, err := Parse(q); err == nil {
			t.Fatalf("expected error for %q", q)
		}
	}
}

func TestParseInsert_Basic(t *testing.T) {
	query := "INSERT INTO users VALUES (1, 'Alice', true);"

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ins, ok := stmt.(*InsertStmt)
	if !ok {
		t.Fatalf("expected *InsertStmt, got %T", stmt)
	}

	if ins.Table.Name != "users" {
		t.Fatalf("expected table name %q, got %q", "users", ins.Table.Name)
	}
	if len(ins.Rows) != 1 || len(ins.Rows[0]) != 3 {
		t.Fatalf("expected 1 row of 3 values, got %+v", ins.Rows)
	}

	row := ins.Rows[0]
	if lit, ok := row[0].(*IntegerLiteral); !ok || lit.Text != "1" {
		t.Fatalf("unexpected first value: %#v", row[0])
	}
	if lit, ok := row[1].(*StringLiteral); !ok || lit.Content != "Alice" {
		t.Fatalf("unexpected second value: %#v", row[1])
	}
	if lit, ok := row[2].(*BareKeyword); !ok || lit.Text != "true" {
		t.Fatalf("unexpected third value: %#v", row[2])
	}
}

func TestParseInsert_CommasInsideStrings(t *testing.T) {
	query := "  insert  into   schema_name.Accounts   values  (  -100 ,  'Doe, John' , FALSE ); "

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ins := stmt.(*InsertStmt)
	if ins.Table.Schema != "schema_name" || ins.Table.Name != "accounts" {
		t.Fatalf("unexpected table: %v", ins.Table)
	}
	row := ins.Rows[0]
	if lit, ok := row[0].(*IntegerLiteral); !ok || !lit.Negative || lit.Digits != "100" {
		t.Fatalf("unexpected first value: %#v", row[0])
	}
	if lit, ok := row[1].(*StringLiteral); !ok || lit.Content != "Doe, John" {
		t.Fatalf("unexpected second value: %#v", row[1])
	}
}

func TestParseInsert_MultipleRowsAndColumns(t *testing.T) {
	query := "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y');"

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ins := stmt.(*InsertStmt)
	if len(ins.Columns) != 2 || ins.Columns[0] != "a" || ins.Columns[1] != "b" {
		t.Fatalf("unexpected Columns: %#v", ins.Columns)
	}
	if len(ins.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ins.Rows))
	}
}

func TestParseInsert_Expression(t *testing.T) {
	stmt, err := Parse("insert into schema_name.table_name values (3 + 5)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ins := stmt.(*InsertStmt)
	op, ok := ins.Rows[0][0].(*BinaryOp)
	if !ok {
		t.Fatalf("expected *BinaryOp, got %T", ins.Rows[0][0])
	}
	if op.Op != OpAdd {
		t.Fatalf("expected +, got %v", op.Op)
	}
}

func TestParseInsert_Errors(t *testing.T) {
	queries := []string{
		"INSERT INTO t VALUES ('unterminated);",
		"INSERT INTO t VALUES ();",
		"INSERT INTO t VALUES (1), (1, 2);",
		"INSERT INTO t VALUES 1;",
		"INSERT INTO VALUES (1);",
		"INSERT INTO t (1);",
	}
	for _, q := range queries {
		if _, err := Parse(q); err == nil {
			t.Fatalf("expected error for %q", q)
		}
	}
}

func TestParseSelect_Basic(t *testing.T) {
	query := "SELECT * FROM schema_name.users;"

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sel, ok := stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("expected *SelectStmt, got %T", stmt)
	}

	if sel.Table.Schema != "schema_name" || sel.Table.Name != "users" {
		t.Fatalf("unexpected table: %v", sel.Table)
	}
	if len(sel.Columns) != 0 {
		t.Fatalf("expected *, got %#v", sel.Columns)
	}
}

func TestParseSelect_WithWhereString(t *testing.T) {
	query := "  select * from  users  where  name = 'Alice where Smith' ; "

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sel, ok := stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("expected *SelectStmt, got %T", stmt)
	}

	if sel.Table.Name != "users" {
		t.Fatalf("expected table name %q, got %q", "users", sel.Table.Name)
	}
	if sel.Where == nil {
		t.Fatalf("expected WHERE clause, got nil")
	}
	if sel.Where.Column != "name" || sel.Where.Op != "=" {
		t.Fatalf("unexpected WHERE expr: %+v", sel.Where)
	}
	if lit, ok := sel.Where.Value.(*StringLiteral); !ok || lit.Content != "Alice where Smith" {
		t.Fatalf("unexpected WHERE value: %#v", sel.Where.Value)
	}
}

func TestParseSelect_ColumnListWithWhere(t *testing.T) {
	query := "SELECT id, name FROM users WHERE active = true;"

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sel, ok := stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("expected *SelectStmt, got %T", stmt)
	}

	if sel.Where == nil {
		t.Fatalf("expected WHERE clause, got nil")
	}
	if len(sel.Columns) != 2 || sel.Columns[0] != "id" || sel.Columns[1] != "name" {
		t.Fatalf("unexpected Columns: %#v", sel.Columns)
	}
}

func TestParseUpdate_MultiAssignmentWithSpaces(t *testing.T) {
	query := "  update   users   set   name = 'Alice',  score = 2 * 21   where   id = 42 ;"

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	upd, ok := stmt.(*UpdateStmt)
	if !ok {
		t.Fatalf("expected *UpdateStmt, got %T", stmt)
	}

	if upd.Table.Name != "users" {
		t.Fatalf("expected table name %q, got %q", "users", upd.Table.Name)
	}
	if upd.Where == nil || upd.Where.Column != "id" {
		t.Fatalf("unexpected WHERE: %+v", upd.Where)
	}

	if len(upd.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(upd.Assignments))
	}

	a0, a1 := upd.Assignments[0], upd.Assignments[1]
	if lit, ok := a0.Value.(*StringLiteral); a0.Column != "name" || !ok || lit.Content != "Alice" {
		t.Fatalf("unexpected first assignment: %+v", a0)
	}
	if _, ok := a1.Value.(*BinaryOp); a1.Column != "score" || !ok {
		t.Fatalf("unexpected second assignment: %+v", a1)
	}
}

func TestParseDelete_WithoutWhere(t *testing.T) {
	stmt, err := Parse("DELETE FROM schema_name.table_name;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	del, ok := stmt.(*DeleteStmt)
	if !ok {
		t.Fatalf("expected *DeleteStmt, got %T", stmt)
	}
	if del.Table.Name != "table_name" || del.Where != nil {
		t.Fatalf("unexpected DELETE: %+v", del)
	}
}

func TestParseDelete_WithSpaces(t *testing.T) {
	query := "  delete   from   Accounts   where   active = false ; "

	stmt, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	del, ok := stmt.(*DeleteStmt)
	if !ok {
		t.Fatalf("expected *DeleteStmt, got %T", stmt)
	}

	if del.Table.Name != "accounts" {
		t.Fatalf("expected table name %q, got %q", "accounts", del.Table.Name)
	}
	if del.Where == nil || del.Where.Column != "active" {
		t.Fatalf("unexpected WHERE: %+v", del.Where)
	}
	if lit, ok := del.Where.Value.(*BareKeyword); !ok || lit.Text != "false" {
		t.Fatalf("unexpected WHERE value: %#v", del.Where.Value)
	}
}

func TestParseSchemaStatements(t *testing.T) {
	stmt, err := Parse("create schema schema_name;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cs, ok := stmt.(*CreateSchemaStmt); !ok || cs.Name != "schema_name" {
		t.Fatalf("unexpected statement: %#v", stmt)
	}

	stmt, err = Parse("DROP SCHEMA schema_name CASCADE;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ds, ok := stmt.(*DropSchemaStmt)
	if !ok || !ds.Cascade || len(ds.Names) != 1 || ds.Names[0] != "schema_name" {
		t.Fatalf("unexpected statement: %#v", stmt)
	}

	stmt, err = Parse("DROP TABLE a.t1, t2;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	dt, ok := stmt.(*DropTableStmt)
	if !ok || len(dt.Tables) != 2 || dt.Tables[1].Schema != DefaultSchema {
		t.Fatalf("unexpected statement: %#v", stmt)
	}
}

func TestParse_Unsupported(t *testing.T) {
	for _, q := range []string{"", "   ;", "BEGIN;", "CREATE INDEX i ON t (c);", "SELECT * FROM a.b.c;"} {
		if _, err := Parse(q); err == nil {
			t.Fatalf("expected error for %q", q)
		}
	}
}

func TestParse_IdentifiersFoldToLowerCase(t *testing.T) {
	stmt, err := Parse("INSERT INTO Shop.Items (ID, Name) VALUES (1, 'Mixed Case');")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ins := stmt.(*InsertStmt)
	if ins.Table != (TableName{Schema: "shop", Name: "items"}) {
		t.Fatalf("unexpected table: %v", ins.Table)
	}
	if len(ins.Columns) != 2 || ins.Columns[0] != "id" || ins.Columns[1] != "name" {
		t.Fatalf("unexpected Columns: %#v", ins.Columns)
	}
	if lit, ok := ins.Rows[0][1].(*StringLiteral); !ok || lit.Content != "Mixed Case" {
		t.Fatalf("string literal content must keep its case, got %#v", ins.Rows[0][1])
	}

	stmt, err = Parse("UPDATE Items SET Score = 2 WHERE ID = 1;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	upd := stmt.(*UpdateStmt)
	if upd.Assignments[0].Column != "score" || upd.Where.Column != "id" {
		t.Fatalf("unexpected update: %+v", upd)
	}

	stmt, err = Parse("CREATE SCHEMA Shop;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cs := stmt.(*CreateSchemaStmt); cs.Name != "shop" {
		t.Fatalf("expected schema shop, got %q", cs.Name)
	}
}
