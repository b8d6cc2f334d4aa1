package sql

import (
	"fmt"
	"strings"

	"godbtypes/internal/sqlerr"
)

// Parse parses a single SQL statement string into an AST Statement.
// Failures that are not already typed (for example a malformed literal) are
// reported as syntax errors.
func Parse(query string) (Statement, error) {
	stmt, err := parseStatement(query)
	if err != nil {
		if sqlerr.Kind(err) == sqlerr.UNKNOWN {
			return nil, sqlerr.NewSyntaxError("syntax error", err)
		}
		return nil, err
	}
	return stmt, nil
}

func parseStatement(query string) (Statement, error) {
	// Trim leading & trailing whitespace
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty query")
	}

	// Remove trailing semicolon if present
	if strings.HasSuffix(q, ";") {
		q = strings.TrimSpace(q[:len(q)-1])
	}

	upper := strings.ToUpper(q)
	tokens := strings.Fields(upper)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("invalid SQL statement")
	}

	switch tokens[0] {
	case "CREATE":
		if len(tokens) >= 2 && tokens[1] == "TABLE" {
			return parseCreateTable(q)
		}
		if len(tokens) >= 2 && tokens[1] == "SCHEMA" {
			return parseCreateSchema(q)
		}
		return nil, fmt.Errorf("invalid SQL statement")
	case "DROP":
		if len(tokens) >= 2 && tokens[1] == "TABLE" {
			return parseDropTable(q)
		}
		if len(tokens) >= 2 && tokens[1] == "SCHEMA" {
			return parseDropSchema(q)
		}
		return nil, fmt.Errorf("invalid SQL statement")
	case "INSERT":
		if len(tokens) >= 2 && tokens[1] == "INTO" {
			return parseInsert(q)
		}
		return nil, fmt.Errorf("invalid SQL statement")
	case "SELECT":
		return parseSelect(q)
	case "UPDATE":
		return parseUpdate(q)
	case "DELETE":
		return parseDelete(q)
	default:
		return nil, fmt.Errorf("unsupported statement (supported: CREATE SCHEMA, DROP SCHEMA, CREATE TABLE, DROP TABLE, INSERT, SELECT, UPDATE, DELETE)")
	}
}
