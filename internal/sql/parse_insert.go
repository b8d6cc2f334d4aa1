package sql

import (
	"fmt"
	"strings"
)

// parseInsert parses an INSERT INTO ... VALUES (...) statement.
// Example supported syntax:
//
//	INSERT INTO schema_name.users VALUES (1, 'Alice', true);
//	INSERT INTO users (id, name) VALUES (1, 'Alice'), (2, 'Bob');
//	INSERT INTO totals VALUES (3 + 5);
func parseInsert(query string) (Statement, error) {
	// At this point:
	// - query is trimmed
	// - trailing ';' removed

	idxInto := indexKeyword(query, "INTO")
	if idxInto == -1 {
		return nil, fmt.Errorf("INSERT: missing INTO")
	}
	afterInto := strings.TrimSpace(query[idxInto+len("INTO"):])

	idxValues := indexKeyword(afterInto, "VALUES")
	if idxValues == -1 {
		return nil, fmt.Errorf("INSERT: missing VALUES")
	}

	targetPart := strings.TrimSpace(afterInto[:idxValues])
	if targetPart == "" {
		return nil, fmt.Errorf("INSERT: missing table name")
	}

	// Optional column list: "users (id, name)".
	tableNamePart := targetPart
	var columns []string
	if open := strings.Index(targetPart, "("); open != -1 {
		tableNamePart = strings.TrimSpace(targetPart[:open])
		inner, ok := unwrapParens(targetPart[open:])
		if !ok {
			return nil, fmt.Errorf("INSERT: malformed column list")
		}
		cols, err := parseIdentList(inner)
		if err != nil {
			return nil, fmt.Errorf("INSERT: %w", err)
		}
		columns = cols
	}

	table, err := parseTableName(tableNamePart)
	if err != nil {
		return nil, fmt.Errorf("INSERT: %w", err)
	}

	rest := strings.TrimSpace(afterInto[idxValues+len("VALUES"):])
	if rest == "" {
		return nil, fmt.Errorf("INSERT: missing VALUES list")
	}

	// rest should start with '(' and contain ')'
	if !strings.HasPrefix(rest, "(") {
		return nil, fmt.Errorf("INSERT: expected '(' after VALUES")
	}

	groups := splitCommaSeparated(rest)
	rows := make([][]Expression, 0, len(groups))
	for r, group := range groups {
		valuesPart, ok := unwrapParens(group)
		if !ok {
			return nil, fmt.Errorf("INSERT: row %d: expected parenthesized value list, got %q", r+1, group)
		}
		if valuesPart == "" {
			return nil, fmt.Errorf("INSERT: row %d: empty VALUES list", r+1)
		}

		// Split value expressions by comma.
		rawVals := splitCommaSeparated(valuesPart)
		exprs := make([]Expression, 0, len(rawVals))
		for i, rv := range rawVals {
			e, err := ParseExpression(rv)
			if err != nil {
				return nil, fmt.Errorf("INSERT: row %d, value %d: %w", r+1, i+1, err)
			}
			exprs = append(exprs, e)
		}
		if len(rows) > 0 && len(exprs) != len(rows[0]) {
			return nil, fmt.Errorf("INSERT: VALUES lists must all be the same length")
		}
		rows = append(rows, exprs)
	}

	return &InsertStmt{
		Table:   table,
		Columns: columns,
		Rows:    rows,
	}, nil
}
