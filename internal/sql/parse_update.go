package sql

import (
	"fmt"
	"strings"
)

// parseUpdate parses:
//
//	UPDATE tableName SET col1 = value1, col2 = value2 [WHERE column = literal];
//
// Assigned values may be arithmetic expressions, as in INSERT.
func parseUpdate(query string) (Statement, error) {
	q := strings.TrimSpace(query)
	upper := strings.ToUpper(q)

	if !strings.HasPrefix(upper, "UPDATE ") {
		return nil, fmt.Errorf("UPDATE: expected UPDATE")
	}

	// strip "UPDATE"
	rest := strings.TrimSpace(q[len("UPDATE"):])

	idxSet := indexKeyword(rest, "SET")
	if idxSet == -1 {
		return nil, fmt.Errorf("UPDATE: missing SET")
	}

	tableNamePart := strings.TrimSpace(rest[:idxSet])
	table, err := parseTableName(tableNamePart)
	if err != nil {
		return nil, fmt.Errorf("UPDATE: %w", err)
	}

	afterSet := strings.TrimSpace(rest[idxSet+len("SET"):])
	if afterSet == "" {
		return nil, fmt.Errorf("UPDATE: missing assignments after SET")
	}

	assignsPart, where, err := splitWhere(afterSet)
	if err != nil {
		return nil, fmt.Errorf("UPDATE: %w", err)
	}
	if assignsPart == "" {
		return nil, fmt.Errorf("UPDATE: empty SET assignments")
	}

	// Parse assignments: "col1 = val1, col2 = val2"
	assignDefs := splitCommaSeparated(assignsPart)
	assignments := make([]Assignment, 0, len(assignDefs))
	for _, def := range assignDefs {
		idxEq := strings.Index(def, "=")
		if idxEq == -1 {
			return nil, fmt.Errorf("UPDATE: expected '=' in assignment %q", def)
		}

		colPart := strings.TrimSpace(def[:idxEq])
		valPart := strings.TrimSpace(def[idxEq+1:])
		if colPart == "" || valPart == "" {
			return nil, fmt.Errorf("UPDATE: invalid assignment %q", def)
		}

		val, err := ParseExpression(valPart)
		if err != nil {
			return nil, fmt.Errorf("UPDATE: invalid value %q: %w", valPart, err)
		}

		assignments = append(assignments, Assignment{
			Column: foldIdent(colPart),
			Value:  val,
		})
	}

	if len(assignments) == 0 {
		return nil, fmt.Errorf("UPDATE: no valid assignments")
	}

	return &UpdateStmt{
		Table:       table,
		Assignments: assignments,
		Where:       where,
	}, nil
}
