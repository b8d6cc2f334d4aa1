package sql

import (
	"fmt"
	"strings"
)

// parseDelete parses:
//
//	DELETE FROM tableName [WHERE column = literal];
func parseDelete(query string) (Statement, error) {
	q := strings.TrimSpace(query)
	upper := strings.ToUpper(q)

	if !strings.HasPrefix(upper, "DELETE") {
		return nil, fmt.Errorf("DELETE: expected DELETE")
	}

	// Remove "DELETE"
	rest := strings.TrimSpace(q[len("DELETE"):])
	if rest == "" {
		return nil, fmt.Errorf("DELETE: missing FROM")
	}

	if indexKeyword(rest, "FROM") != 0 {
		return nil, fmt.Errorf("DELETE: expected FROM after DELETE")
	}

	afterFrom := strings.TrimSpace(rest[len("FROM"):])
	if afterFrom == "" {
		return nil, fmt.Errorf("DELETE: missing table name")
	}

	tablePart, where, err := splitWhere(afterFrom)
	if err != nil {
		return nil, fmt.Errorf("DELETE: %w", err)
	}

	table, err := parseTableName(tablePart)
	if err != nil {
		return nil, fmt.Errorf("DELETE: %w", err)
	}

	return &DeleteStmt{
		Table: table,
		Where: where,
	}, nil
}
