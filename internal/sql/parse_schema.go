package sql

import (
	"fmt"
	"strings"
)

// parseCreateSchema parses:
//
//	CREATE SCHEMA name;
func parseCreateSchema(query string) (Statement, error) {
	tokens := strings.Fields(query)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("CREATE SCHEMA: expected exactly one schema name")
	}
	name := tokens[2]
	if strings.ContainsAny(name, ".,()'") {
		return nil, fmt.Errorf("CREATE SCHEMA: only unqualified schema names are supported, %q", name)
	}
	return &CreateSchemaStmt{Name: foldIdent(name)}, nil
}

// parseDropSchema parses:
//
//	DROP SCHEMA name[, name...] [CASCADE | RESTRICT];
func parseDropSchema(query string) (Statement, error) {
	rest := strings.TrimSpace(query[len("DROP"):])
	rest = strings.TrimSpace(rest[len("SCHEMA"):])
	if rest == "" {
		return nil, fmt.Errorf("DROP SCHEMA: missing schema name")
	}

	cascade := false
	fields := strings.Fields(rest)
	switch strings.ToUpper(fields[len(fields)-1]) {
	case "CASCADE":
		cascade = true
		rest = strings.TrimSpace(rest[:strings.LastIndex(strings.ToUpper(rest), "CASCADE")])
	case "RESTRICT":
		rest = strings.TrimSpace(rest[:strings.LastIndex(strings.ToUpper(rest), "RESTRICT")])
	}

	names, err := parseIdentList(rest)
	if err != nil {
		return nil, fmt.Errorf("DROP SCHEMA: %w", err)
	}
	for _, n := range names {
		if strings.Contains(n, ".") {
			return nil, fmt.Errorf("DROP SCHEMA: only unqualified schema names are supported, %q", n)
		}
	}
	return &DropSchemaStmt{Names: names, Cascade: cascade}, nil
}

// parseDropTable parses:
//
//	DROP TABLE schema.table[, ...];
func parseDropTable(query string) (Statement, error) {
	rest := strings.TrimSpace(query[len("DROP"):])
	rest = strings.TrimSpace(rest[len("TABLE"):])
	if rest == "" {
		return nil, fmt.Errorf("DROP TABLE: missing table name")
	}

	parts := splitCommaSeparated(rest)
	tables := make([]TableName, 0, len(parts))
	for _, p := range parts {
		t, err := parseTableName(p)
		if err != nil {
			return nil, fmt.Errorf("DROP TABLE: %w", err)
		}
		tables = append(tables, t)
	}
	return &DropTableStmt{Tables: tables}, nil
}
