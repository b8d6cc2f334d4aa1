package sqlerr

import "fmt"

func NewSchemaNotFoundError(schema string) *SchemaNotFoundError {
	baseError := newBaseError(fmt.Errorf("schema %q does not exist", schema), SCHEMA_NOT_FOUND, CodeInvalidSchemaName)
	baseError.AddDetail("schema", schema)

	return &SchemaNotFoundError{
		baseError,
	}
}

type SchemaNotFoundError struct {
	baseError
}

func NewSchemaAlreadyExistsError(schema string) *SchemaAlreadyExistsError {
	baseError := newBaseError(fmt.Errorf("schema %q already exists", schema), SCHEMA_ALREADY_EXISTS, CodeDuplicateSchema)
	baseError.AddDetail("schema", schema)

	return &SchemaAlreadyExistsError{
		baseError,
	}
}

type SchemaAlreadyExistsError struct {
	baseError
}

func NewSchemaNotEmptyError(schema string) *SchemaNotEmptyError {
	baseError := newBaseError(fmt.Errorf("cannot drop schema %s because other objects depend on it", schema), SCHEMA_NOT_EMPTY, CodeDependentObjectsExist)
	baseError.AddDetail("schema", schema)

	return &SchemaNotEmptyError{
		baseError,
	}
}

type SchemaNotEmptyError struct {
	baseError
}

func NewTableNotFoundError(table string) *TableNotFoundError {
	baseError := newBaseError(fmt.Errorf("table %q does not exist", table), TABLE_NOT_FOUND, CodeUndefinedTable)
	baseError.AddDetail("table", table)

	return &TableNotFoundError{
		baseError,
	}
}

type TableNotFoundError struct {
	baseError
}

func NewTableAlreadyExistsError(table string) *TableAlreadyExistsError {
	baseError := newBaseError(fmt.Errorf("table %q already exists", table), TABLE_ALREADY_EXISTS, CodeDuplicateTable)
	baseError.AddDetail("table", table)

	return &TableAlreadyExistsError{
		baseError,
	}
}

type TableAlreadyExistsError struct {
	baseError
}

func NewColumnNotFoundError(column, table string) *ColumnNotFoundError {
	baseError := newBaseError(fmt.Errorf("column %q does not exist", column), COLUMN_NOT_FOUND, CodeUndefinedColumn)
	baseError.AddDetail("table", table)

	return &ColumnNotFoundError{
		baseError,
	}
}

type ColumnNotFoundError struct {
	baseError
}

func NewDuplicateColumnError(column string) *DuplicateColumnError {
	baseError := newBaseError(fmt.Errorf("column %q specified more than once", column), DUPLICATE_COLUMN, CodeDuplicateColumn)
	baseError.AddDetail("column", column)

	return &DuplicateColumnError{
		baseError,
	}
}

type DuplicateColumnError struct {
	baseError
}

func NewSyntaxError(statement string, err error) *SyntaxError {
	if err == nil {
		err = fmt.Errorf("invalid syntax")
	}
	baseError := newBaseError(fmt.Errorf("%s: %w", statement, err), SYNTAX_ERROR, CodeSyntaxError)

	return &SyntaxError{
		baseError,
	}
}

type SyntaxError struct {
	baseError
}

func NewTooManyInsertExpressionsError(values, columns int) *TooManyInsertExpressionsError {
	baseError := newBaseError(fmt.Errorf("INSERT has more expressions than target columns (%d > %d)", values, columns), TOO_MANY_INSERT_EXPRESSIONS, CodeSyntaxError)

	return &TooManyInsertExpressionsError{
		baseError,
	}
}

type TooManyInsertExpressionsError struct {
	baseError
}

// Columns have no defaults, so an INSERT must give every column a value.
func NewMissingColumnValueError(column, table string) *MissingColumnValueError {
	baseError := newBaseError(fmt.Errorf("no value for column %q of relation %q", column, table), MISSING_COLUMN_VALUE, CodeNotNullViolation)
	baseError.AddDetail("table", table)

	return &MissingColumnValueError{
		baseError,
	}
}

type MissingColumnValueError struct {
	baseError
}
