package sql

import (
	"fmt"
	"strconv"
	"strings"
)

func parseCreateTable(query string) (Statement, error) {
	// At this point:
	// - query has been trimmed
	// - trailing ';' removed
	// - we already know it's some form of CREATE TABLE

	// Find the opening parenthesis for column list.
	openIdx := strings.Index(query, "(")
	if openIdx == -1 {
		return nil, fmt.Errorf("CREATE TABLE: missing '('")
	}

	// Find the closing parenthesis.
	closeIdx := strings.LastIndex(query, ")")
	if closeIdx == -1 || closeIdx <= openIdx {
		return nil, fmt.Errorf("CREATE TABLE: missing or misplaced ')'")
	}
	if strings.TrimSpace(query[closeIdx+1:]) != "" {
		return nil, fmt.Errorf("CREATE TABLE: unexpected text after column list")
	}

	// "head" contains: CREATE   TABLE   schema_name.table_name
	head := strings.TrimSpace(query[:openIdx])
	colsPart := strings.TrimSpace(query[openIdx+1 : closeIdx])
	if colsPart == "" {
		return nil, fmt.Errorf("CREATE TABLE: no column definitions")
	}

	headTokens := strings.Fields(head)
	if len(headTokens) != 3 {
		return nil, fmt.Errorf("CREATE TABLE: missing table name")
	}
	if strings.ToUpper(headTokens[0]) != "CREATE" || strings.ToUpper(headTokens[1]) != "TABLE" {
		return nil, fmt.Errorf("CREATE TABLE: invalid syntax")
	}

	table, err := parseTableName(headTokens[2])
	if err != nil {
		return nil, fmt.Errorf("CREATE TABLE: %w", err)
	}

	colDefs := splitCommaSeparated(colsPart)
	columns := make([]Column, 0, len(colDefs))
	seen := make(map[string]bool, len(colDefs))
	for _, def := range colDefs {
		parts := strings.Fields(def)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid column definition: %q", def)
		}

		colName := foldIdent(parts[0])
		if seen[colName] {
			return nil, fmt.Errorf("CREATE TABLE: column %q specified more than once", colName)
		}
		seen[colName] = true

		ct, err := ParseColumnType(strings.Join(parts[1:], " "))
		if err != nil {
			return nil, fmt.Errorf("CREATE TABLE: column %q: %w", colName, err)
		}

		columns = append(columns, Column{
			Name: colName,
			Type: ct,
		})
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("CREATE TABLE: no valid columns")
	}

	return &CreateTableStmt{
		Table:   table,
		Columns: columns,
	}, nil
}

// ParseColumnType parses a type name such as "smallint", "char(10)" or
// "character varying(20)". CHAR without a length has width 1.
func ParseColumnType(s string) (ColumnType, error) {
	base := s
	var args string
	hasArgs := false
	if open := strings.Index(s, "("); open != -1 {
		if !strings.HasSuffix(strings.TrimSpace(s), ")") {
			return ColumnType{}, fmt.Errorf("unknown column type %q", s)
		}
		base = s[:open]
		args = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s[open+1:]), ")"))
		hasArgs = true
	}
	name := strings.ToUpper(strings.Join(strings.Fields(base), " "))

	length := func() (uint32, error) {
		n, err := strconv.ParseUint(args, 10, 32)
		if err != nil || n == 0 {
			return 0, fmt.Errorf("invalid length %q for type %s", args, strings.ToLower(name))
		}
		return uint32(n), nil
	}

	var ct ColumnType
	switch name {
	case "SMALLINT", "INT2":
		ct = SmallInt()
	case "INTEGER", "INT", "INT4":
		ct = Integer()
	case "BIGINT", "INT8":
		ct = BigInt()
	case "BOOLEAN", "BOOL":
		ct = Boolean()
	case "CHAR", "CHARACTER":
		ct = FixedChar(1)
		if hasArgs {
			n, err := length()
			if err != nil {
				return ColumnType{}, err
			}
			ct = FixedChar(n)
		}
		return ct, nil
	case "VARCHAR", "CHARACTER VARYING":
		if !hasArgs {
			return ColumnType{}, fmt.Errorf("type %s requires a length", strings.ToLower(name))
		}
		n, err := length()
		if err != nil {
			return ColumnType{}, err
		}
		return VarChar(n), nil
	default:
		return ColumnType{}, fmt.Errorf("unknown column type %q", s)
	}

	if hasArgs {
		return ColumnType{}, fmt.Errorf("type %s does not take a length", strings.ToLower(name))
	}
	return ct, nil
}
