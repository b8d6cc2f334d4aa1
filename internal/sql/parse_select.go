package sql

import (
	"fmt"
	"strings"
)

// parseSelect parses a simple SELECT statement.
// Supported forms (case-insensitive, flexible spaces):
//
//	SELECT * FROM schema_name.users;
//	SELECT id, name FROM users WHERE id = 1;
//	SELECT * FROM users WHERE name = 'Alice';
func parseSelect(query string) (Statement, error) {
	// query is trimmed and has no trailing semicolon here.
	idxFrom := indexKeyword(query, "FROM")
	if idxFrom == -1 {
		return nil, fmt.Errorf("SELECT: FROM not found")
	}

	projection := strings.TrimSpace(query[len("SELECT"):idxFrom])
	if projection == "" {
		return nil, fmt.Errorf("SELECT: missing column list")
	}

	var columns []string
	if projection != "*" {
		cols, err := parseIdentList(projection)
		if err != nil {
			return nil, fmt.Errorf("SELECT: %w", err)
		}
		columns = cols
	}

	afterFrom := strings.TrimSpace(query[idxFrom+len("FROM"):])
	if afterFrom == "" {
		return nil, fmt.Errorf("SELECT: missing table name")
	}

	tablePart, where, err := splitWhere(afterFrom)
	if err != nil {
		return nil, fmt.Errorf("SELECT: %w", err)
	}

	table, err := parseTableName(tablePart)
	if err != nil {
		return nil, fmt.Errorf("SELECT: %w", err)
	}

	return &SelectStmt{
		Table:   table,
		Columns: columns,
		Where:   where,
	}, nil
}

// splitWhere separates "target [WHERE predicate]" into the target text and
// the parsed predicate (nil when there is no WHERE).
func splitWhere(s string) (string, *WhereExpr, error) {
	idxWhere := indexKeyword(s, "WHERE")
	if idxWhere == -1 {
		return strings.TrimSpace(s), nil, nil
	}

	target := strings.TrimSpace(s[:idxWhere])
	wherePart := strings.TrimSpace(s[idxWhere+len("WHERE"):])
	if wherePart == "" {
		return "", nil, fmt.Errorf("empty WHERE clause")
	}

	where, err := parseWhereClause(wherePart)
	if err != nil {
		return "", nil, err
	}
	return target, where, nil
}

// parseWhereClause parses a simple "column = literal" expression.
func parseWhereClause(wherePart string) (*WhereExpr, error) {
	// Expect: column [spaces] = [spaces] literal
	idxEq := strings.Index(wherePart, "=")
	if idxEq == -1 {
		return nil, fmt.Errorf("WHERE: only '=' operator is supported for now")
	}

	colPart := strings.TrimSpace(wherePart[:idxEq])
	valPart := strings.TrimSpace(wherePart[idxEq+1:])

	if colPart == "" {
		return nil, fmt.Errorf("WHERE: missing column name")
	}
	if valPart == "" {
		return nil, fmt.Errorf("WHERE: missing value after '='")
	}

	val, err := ClassifyLiteral(valPart)
	if err != nil {
		return nil, fmt.Errorf("WHERE: invalid literal %q: %w", valPart, err)
	}

	return &WhereExpr{
		Column: foldIdent(colPart),
		Op:     "=",
		Value:  val,
	}, nil
}
