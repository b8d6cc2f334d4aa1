package sqlerr

import (
	"fmt"
	"strconv"
)

func NewMalformedLiteralError(token string, err error) *MalformedLiteralError {
	if err == nil {
		err = fmt.Errorf("malformed literal")
	}
	baseError := newBaseError(fmt.Errorf("malformed literal %q: %w", token, err), MALFORMED_LITERAL, CodeInvalidTextRepresentation)

	return &MalformedLiteralError{
		baseError,
	}
}

type MalformedLiteralError struct {
	baseError
}

func NewTypeMismatchError(value, targetType string) *TypeMismatchError {
	baseError := newBaseError(fmt.Errorf("column is of type %s but expression is %s", targetType, value), TYPE_MISMATCH, CodeDatatypeMismatch)
	baseError.AddDetail("type", targetType)

	return &TypeMismatchError{
		baseError,
	}
}

type TypeMismatchError struct {
	baseError
}

func NewNumericOverflowError(targetType, value string) *NumericOverflowError {
	baseError := newBaseError(fmt.Errorf("%s out of range", targetType), NUMERIC_OVERFLOW, CodeNumericValueOutOfRange)
	baseError.AddDetail("type", targetType)
	if value != "" {
		baseError.AddDetail("value", value)
	}

	return &NumericOverflowError{
		baseError,
	}
}

type NumericOverflowError struct {
	baseError
}

func NewStringTooLongError(targetType string, length int) *StringTooLongError {
	baseError := newBaseError(fmt.Errorf("value too long for type %s", targetType), STRING_TOO_LONG, CodeStringDataRightTruncation)
	baseError.AddDetail("type", targetType)
	baseError.AddDetail("length", strconv.Itoa(length))

	return &StringTooLongError{
		baseError,
	}
}

type StringTooLongError struct {
	baseError
}

func NewInvalidBooleanLiteralError(value string) *InvalidBooleanLiteralError {
	baseError := newBaseError(fmt.Errorf("invalid input syntax for type boolean: %s", value), INVALID_BOOLEAN_LITERAL, CodeInvalidTextRepresentation)
	baseError.AddDetail("type", "boolean")

	return &InvalidBooleanLiteralError{
		baseError,
	}
}

type InvalidBooleanLiteralError struct {
	baseError
}

func NewDivisionByZeroError() *DivisionByZeroError {
	baseError := newBaseError(fmt.Errorf("division by zero"), DIVISION_BY_ZERO, CodeDivisionByZero)

	return &DivisionByZeroError{
		baseError,
	}
}

type DivisionByZeroError struct {
	baseError
}
