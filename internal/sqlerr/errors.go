package sqlerr

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const ENABLE_STACK_TRACE = true

const (
	// LITERALS AND COERCION:
	MALFORMED_LITERAL       = "Malformed Literal"
	TYPE_MISMATCH           = "Type Mismatch"
	NUMERIC_OVERFLOW        = "Numeric Overflow"
	STRING_TOO_LONG         = "String Too Long"
	INVALID_BOOLEAN_LITERAL = "Invalid Boolean Literal"
	DIVISION_BY_ZERO        = "Division By Zero"

	// CATALOG:
	SCHEMA_NOT_FOUND      = "Schema Not Found"
	SCHEMA_ALREADY_EXISTS = "Schema Already Exists"
	SCHEMA_NOT_EMPTY      = "Schema Not Empty"
	TABLE_NOT_FOUND       = "Table Not Found"
	TABLE_ALREADY_EXISTS  = "Table Already Exists"
	COLUMN_NOT_FOUND      = "Column Not Found"
	DUPLICATE_COLUMN      = "Duplicate Column"

	// STATEMENTS:
	SYNTAX_ERROR                = "Syntax Error"
	TOO_MANY_INSERT_EXPRESSIONS = "Too Many Insert Expressions"
	MISSING_COLUMN_VALUE        = "Missing Column Value"

	UNKNOWN = "Unknown"
)

// SQLSTATE codes reported alongside each error type.
const (
	CodeInvalidTextRepresentation = "22P02"
	CodeDatatypeMismatch          = "42804"
	CodeNumericValueOutOfRange    = "22003"
	CodeStringDataRightTruncation = "22001"
	CodeDivisionByZero            = "22012"
	CodeInvalidSchemaName         = "3F000"
	CodeDuplicateSchema           = "42P06"
	CodeDependentObjectsExist     = "2BP01"
	CodeUndefinedTable            = "42P01"
	CodeDuplicateTable            = "42P07"
	CodeUndefinedColumn           = "42703"
	CodeDuplicateColumn           = "42701"
	CodeNotNullViolation          = "23502"
	CodeSyntaxError               = "42601"
)

// SQLError is implemented by every typed error in this package.
type SQLError interface {
	error
	Code() string
	GetType() string
	AddDetail(key, value string)
	Details() map[string]string
}

type JSONStackTrace map[string]interface{}

func NewGenericError(err error) GenericError {
	msg := err.Error()
	return GenericError{
		msg:     msg,
		err:     eris.Wrap(err, msg),
		details: map[string]string{},
	}
}

type GenericError struct {
	msg     string
	err     error
	details map[string]string
}

func (e *GenericError) Error() string {
	msg := e.msg
	if len(e.details) == 0 {
		return msg
	}
	keys := make([]string, 0, len(e.details))
	for key := range e.details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.details[key]))
	}
	return fmt.Sprintf("%s (%s)", msg, strings.Join(parts, ", "))
}

func (e *GenericError) Message() string {
	return e.msg
}

func (e *GenericError) Stack() JSONStackTrace {
	return eris.ToJSON(e.err, ENABLE_STACK_TRACE)
}

func (e *GenericError) Details() map[string]string {
	return e.details
}

func (e *GenericError) AddDetail(key, value string) {
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ToLower(key)
	e.details[key] = value
}

type baseError struct {
	code      string
	errorType string
	GenericError
}

func newBaseError(err error, errorType, code string) baseError {
	return baseError{
		code:         code,
		errorType:    errorType,
		GenericError: NewGenericError(err),
	}
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) GetType() string {
	return e.errorType
}

// WithColumn records which column and 1-based value position err refers to.
// Errors that are not SQLErrors are returned unchanged.
func WithColumn(err error, column string, position int) error {
	var sqlErr SQLError
	if errors.As(err, &sqlErr) {
		sqlErr.AddDetail("column", column)
		sqlErr.AddDetail("position", strconv.Itoa(position))
	}
	return err
}

// Kind returns the error type name of err, or UNKNOWN.
func Kind(err error) string {
	var sqlErr SQLError
	if errors.As(err, &sqlErr) {
		return sqlErr.GetType()
	}
	return UNKNOWN
}

// Code returns the SQLSTATE of err. Untyped errors map to XX000.
func Code(err error) string {
	var sqlErr SQLError
	if errors.As(err, &sqlErr) {
		return sqlErr.Code()
	}
	return "XX000"
}
