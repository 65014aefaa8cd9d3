package cron

import (
	"fmt"
	"strings"
)

// Expression is a parsed cron expression. Seconds is nil for the classic
// 5-field form.
type Expression struct {
	Text       string
	Seconds    *Field
	Minute     Field
	Hour       Field
	DayOfMonth Field
	Month      Field
	DayOfWeek  Field
}

// Parse parses a 5-field (minute hour day-of-month month day-of-week) or
// 6-field (seconds first) cron expression. Every returned error wraps
// ErrInvalidExpression.
func Parse(expr string) (Expression, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 && len(fields) != 6 {
		return Expression{}, fmt.Errorf("%w: %w: got %d", ErrInvalidExpression, ErrFieldCount, len(fields))
	}

	kinds := []FieldKind{Minute, Hour, DayOfMonth, Month, DayOfWeek}
	if len(fields) == 6 {
		kinds = append([]FieldKind{Seconds}, kinds...)
	}

	e := Expression{Text: strings.Join(fields, " ")}
	for i, raw := range fields {
		f, err := parseField(kinds[i], raw)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %s field: %w", ErrInvalidExpression, kinds[i], err)
		}
		switch kinds[i] {
		case Seconds:
			e.Seconds = &f
		case Minute:
			e.Minute = f
		case Hour:
			e.Hour = f
		case DayOfMonth:
			e.DayOfMonth = f
		case Month:
			e.Month = f
		case DayOfWeek:
			e.DayOfWeek = f
		}
	}
	return e, nil
}

// HasSeconds reports whether the expression was written in the 6-field form.
func (e Expression) HasSeconds() bool {
	return e.Seconds != nil
}

// secondsAtZero reports whether the seconds field is absent or exactly "0",
// which makes the expression equivalent to its 5-field tail.
func (e Expression) secondsAtZero() bool {
	if e.Seconds == nil {
		return true
	}
	v, ok := e.Seconds.Single()
	return ok && v == 0
}

// DayEither reports whether both day-of-month and day-of-week are restricted.
// Such expressions fire when either day field matches.
func (e Expression) DayEither() bool {
	return e.DayOfMonth.Restricted() && e.DayOfWeek.Restricted()
}
