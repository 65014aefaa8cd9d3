package cron

import "errors"

var (
	// ErrInvalidExpression is the root of every parse failure. All other
	// errors in this package wrap it.
	ErrInvalidExpression = errors.New("invalid cron expression")

	// ErrFieldCount is returned when an expression has neither 5 nor 6 fields.
	ErrFieldCount = errors.New("cron expression must have 5 or 6 fields")

	// ErrSyntax is returned when a field contains a token outside the grammar.
	ErrSyntax = errors.New("malformed cron field")

	// ErrOutOfRange is returned when a value, name, or step falls outside the
	// legal domain of its field.
	ErrOutOfRange = errors.New("cron value out of range")
)
