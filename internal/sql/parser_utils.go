package sql

import (
	"fmt"
	"strings"
)

// splitCommaSeparated splits s on commas that are outside single quotes and
// parentheses, so "1, 'a,b', (3 + 4)" yields three parts. Parts are trimmed;
// empty parts are kept so callers can reject "1,,2".
func splitCommaSeparated(s string) []string {
	var out []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			out = append(out, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(out) > 0 {
		out = append(out, last)
	}
	return out
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// indexKeyword returns the byte offset of the first occurrence of the keyword
// kw in s that stands as a whole word outside quoted strings, or -1.
// kw must be upper case; s is compared case-insensitively.
func indexKeyword(s, kw string) int {
	upper := strings.ToUpper(s)
	inQuote := false
	for i := 0; i+len(kw) <= len(upper); i++ {
		if upper[i] == '\'' {
			inQuote = !inQuote
			continue
		}
		if inQuote || upper[i:i+len(kw)] != kw {
			continue
		}
		if i > 0 && isIdentByte(upper[i-1]) {
			continue
		}
		if end := i + len(kw); end < len(upper) && isIdentByte(upper[end]) {
			continue
		}
		return i
	}
	return -1
}

// foldIdent folds an unquoted identifier to lower case, so Users, USERS and
// users name the same object.
func foldIdent(s string) string {
	return strings.ToLower(s)
}

// parseTableName parses "table" or "schema.table". Unqualified names live in
// DefaultSchema.
func parseTableName(s string) (TableName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TableName{}, fmt.Errorf("missing table name")
	}
	if strings.ContainsAny(s, " \t\n(),;'") {
		return TableName{}, fmt.Errorf("invalid table name %q", s)
	}
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		return TableName{Schema: DefaultSchema, Name: foldIdent(parts[0])}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return TableName{}, fmt.Errorf("invalid table name %q", s)
		}
		return TableName{Schema: foldIdent(parts[0]), Name: foldIdent(parts[1])}, nil
	default:
		return TableName{}, fmt.Errorf("unable to process table name %q", s)
	}
}

// parseIdentList parses "a, b, c" into names.
func parseIdentList(s string) ([]string, error) {
	parts := splitCommaSeparated(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty column list")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t\n()'") {
			return nil, fmt.Errorf("invalid column name %q", p)
		}
		out = append(out, foldIdent(p))
	}
	return out, nil
}

// unwrapParens strips one pair of enclosing parentheses from s.
func unwrapParens(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}
