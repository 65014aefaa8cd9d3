package cron

import "strings"

// FieldKind identifies a position in a cron expression.
type FieldKind int

const (
	Seconds FieldKind = iota
	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek
)

// String returns the field name used in error messages.
func (k FieldKind) String() string {
	return domains[k].name
}

type domain struct {
	name     string
	min, max int
	// aliases are three-letter names; aliases[i] maps to aliasBase+i.
	aliases   []string
	aliasBase int
	// optional allows "?" as a wildcard.
	optional bool
}

var monthAliases = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

var dayAliases = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

var domains = map[FieldKind]domain{
	Seconds:    {name: "seconds", min: 0, max: 59},
	Minute:     {name: "minute", min: 0, max: 59},
	Hour:       {name: "hour", min: 0, max: 23},
	DayOfMonth: {name: "day-of-month", min: 1, max: 31, optional: true},
	Month:      {name: "month", min: 1, max: 12, aliases: monthAliases, aliasBase: 1},
	// 7 is accepted as a second spelling of Sunday.
	DayOfWeek: {name: "day-of-week", min: 0, max: 7, aliases: dayAliases, aliasBase: 0, optional: true},
}

func (d domain) alias(name string) (int, bool) {
	for i, a := range d.aliases {
		if strings.EqualFold(a, name) {
			return d.aliasBase + i, true
		}
	}
	return 0, false
}

func (d domain) contains(v int) bool {
	return v >= d.min && v <= d.max
}

// TermKind is the shape of a single comma-separated term.
type TermKind int

const (
	// Wildcard is "*" (or "?" in the day fields), optionally stepped: "*/n".
	Wildcard TermKind = iota
	// Value is a single value, optionally stepped from that value: "a/n".
	Value
	// Range is an inclusive range, optionally stepped: "a-b/n".
	Range
)

// Term is one element of a field's value list.
type Term struct {
	Kind TermKind
	From int
	To   int
	// Step is 0 when the term has no "/n" suffix.
	Step int
}

// Field is a parsed cron field.
type Field struct {
	Kind  FieldKind
	Terms []Term
}

// IsWildcard reports whether the field is an unstepped "*" (or "?").
func (f Field) IsWildcard() bool {
	return len(f.Terms) == 1 && f.Terms[0].Kind == Wildcard && f.Terms[0].Step == 0
}

// Restricted reports whether the field narrows the schedule at all.
func (f Field) Restricted() bool {
	return !f.IsWildcard()
}

// Single returns the value of a field made of exactly one unstepped value.
func (f Field) Single() (int, bool) {
	if len(f.Terms) != 1 {
		return 0, false
	}
	t := f.Terms[0]
	if t.Kind != Value || t.Step != 0 {
		return 0, false
	}
	return t.From, true
}

// Values returns the values of a field that is a plain list of unstepped
// values. It reports false for any field containing a wildcard, range, or step.
func (f Field) Values() ([]int, bool) {
	vals := make([]int, 0, len(f.Terms))
	for _, t := range f.Terms {
		if t.Kind != Value || t.Step != 0 {
			return nil, false
		}
		vals = append(vals, t.From)
	}
	return vals, true
}
