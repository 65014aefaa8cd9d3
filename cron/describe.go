package cron

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EitherDayNote is the secondary line added when both day fields are
// restricted.
const EitherDayNote = "Runs when either the day of the month or the day of the week matches"

// Description is one primary line, optionally followed by a clarifying line.
type Description []string

// Primary returns the first line.
func (d Description) Primary() string {
	if len(d) == 0 {
		return ""
	}
	return d[0]
}

// Describe parses expr and renders it. It reports false for any expression
// that does not parse; callers never see a partial description.
func Describe(expr string) (Description, bool) {
	e, err := Parse(expr)
	if err != nil {
		return nil, false
	}
	d := e.Describe()
	if d.Primary() == "" {
		return nil, false
	}
	return d, true
}

// Describe renders the expression. Clauses are emitted in the order seconds,
// minutes, hours, day-of-month, day-of-week, month; wildcarded fields add
// nothing.
func (e Expression) Describe() Description {
	segments := []string{e.timeClause()}
	segments = append(segments,
		clause(e.DayOfMonth, dayOfMonthWords),
		clause(e.DayOfWeek, dayOfWeekWords),
		clause(e.Month, monthWords),
	)

	line := capitalize(joinNonEmpty(segments, ", "))
	if e.DayEither() {
		return Description{line, EitherDayNote}
	}
	return Description{line}
}

func (e Expression) timeClause() string {
	sec, secSingle := 0, true
	if e.Seconds != nil {
		sec, secSingle = e.Seconds.Single()
	}
	minute, minSingle := e.Minute.Single()
	hour, hourSingle := e.Hour.Single()
	secZero := e.secondsAtZero()

	switch {
	case secSingle && minSingle && hourSingle:
		if sec != 0 {
			return fmt.Sprintf("At %02d:%02d:%02d", hour, minute, sec)
		}
		return fmt.Sprintf("At %02d:%02d", hour, minute)

	case secZero && e.Minute.IsWildcard() && e.Hour.IsWildcard():
		return "Every minute"

	case e.Seconds != nil && e.Seconds.IsWildcard() && e.Minute.IsWildcard() && e.Hour.IsWildcard():
		return "Every second"

	case secZero && hourSingle && len(e.Minute.Terms) == 1 && e.Minute.Terms[0].Kind == Range && e.Minute.Terms[0].Step == 0:
		t := e.Minute.Terms[0]
		return fmt.Sprintf("Every minute between %02d:%02d and %02d:%02d", hour, t.From, hour, t.To)

	case secZero && minSingle:
		if hours, ok := e.Hour.Values(); ok && len(hours) > 1 {
			times := make([]string, len(hours))
			for i, h := range hours {
				times[i] = fmt.Sprintf("%02d:%02d", h, minute)
			}
			return "At " + joinList(times)
		}
	}

	var secs string
	if !secZero {
		secs = clause(*e.Seconds, secondWords)
		if e.Seconds.IsWildcard() {
			secs = "every second"
		}
	}

	var mins string
	switch {
	case e.Minute.IsWildcard():
		if secZero {
			mins = "every minute"
		}
	case minSingle && e.Hour.IsWildcard():
		mins = fmt.Sprintf("at minute %d past every hour", minute)
	default:
		mins = clause(e.Minute, minuteWords)
	}

	return joinNonEmpty([]string{secs, mins, clause(e.Hour, hourWords)}, ", ")
}

// words is the phrase table for one field.
type words struct {
	unit, units string
	name        func(v int) string
	single      func(v int) string
	between     func(a, b int) string
	starting    func(v int) string
	list        func(names string) string
}

var secondWords = words{
	unit: "second", units: "seconds",
	name:     func(v int) string { return fmt.Sprint(v) },
	single:   func(v int) string { return fmt.Sprintf("at %d seconds past the minute", v) },
	between:  func(a, b int) string { return fmt.Sprintf("seconds %d through %d past the minute", a, b) },
	starting: func(v int) string { return fmt.Sprintf("starting at %d seconds past the minute", v) },
	list:     func(s string) string { return fmt.Sprintf("at %s seconds past the minute", s) },
}

var minuteWords = words{
	unit: "minute", units: "minutes",
	name:     func(v int) string { return fmt.Sprint(v) },
	single:   func(v int) string { return fmt.Sprintf("at minute %d past the hour", v) },
	between:  func(a, b int) string { return fmt.Sprintf("minutes %d through %d past the hour", a, b) },
	starting: func(v int) string { return fmt.Sprintf("starting at minute %d past the hour", v) },
	list:     func(s string) string { return fmt.Sprintf("at minutes %s past the hour", s) },
}

var hourWords = words{
	unit: "hour", units: "hours",
	name:     func(v int) string { return fmt.Sprintf("%02d:00", v) },
	single:   func(v int) string { return fmt.Sprintf("between %02d:00 and %02d:59", v, v) },
	between:  func(a, b int) string { return fmt.Sprintf("between %02d:00 and %02d:59", a, b) },
	starting: func(v int) string { return fmt.Sprintf("starting at %02d:00", v) },
	list:     func(s string) string { return "at " + s },
}

var dayOfMonthWords = words{
	unit: "day", units: "days",
	name:     func(v int) string { return fmt.Sprint(v) },
	single:   func(v int) string { return fmt.Sprintf("on day %d of the month", v) },
	between:  func(a, b int) string { return fmt.Sprintf("between day %d and %d of the month", a, b) },
	starting: func(v int) string { return fmt.Sprintf("starting on day %d of the month", v) },
	list:     func(s string) string { return fmt.Sprintf("on day %s of the month", s) },
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var dayOfWeekWords = words{
	unit: "day of the week", units: "days of the week",
	name:     func(v int) string { return weekdayNames[v%7] },
	single:   func(v int) string { return "only on " + weekdayNames[v%7] },
	between: func(a, b int) string {
		if b-a >= 6 {
			return "every day of the week"
		}
		return weekdayNames[a%7] + " through " + weekdayNames[b%7]
	},
	starting: func(v int) string { return "starting on " + weekdayNames[v%7] },
	list:     func(s string) string { return "only on " + s },
}

var monthNames = []string{"January", "February", "March", "April", "May", "June", "July",
	"August", "September", "October", "November", "December"}

var monthWords = words{
	unit: "month", units: "months",
	name:     func(v int) string { return monthNames[v-1] },
	single:   func(v int) string { return "only in " + monthNames[v-1] },
	between:  func(a, b int) string { return monthNames[a-1] + " through " + monthNames[b-1] },
	starting: func(v int) string { return "starting in " + monthNames[v-1] },
	list:     func(s string) string { return "only in " + s },
}

func (w words) every(n int) string {
	if n == 1 {
		return "every " + w.unit
	}
	return fmt.Sprintf("every %d %s", n, w.units)
}

// clause renders a single field. Unstepped wildcards render as "".
func clause(f Field, w words) string {
	if f.IsWildcard() {
		return ""
	}

	if len(f.Terms) == 1 {
		t := f.Terms[0]
		switch {
		case t.Kind == Wildcard:
			return w.every(t.Step)
		case t.Kind == Value && t.Step == 0:
			return w.single(t.From)
		case t.Kind == Value:
			return w.every(t.Step) + ", " + w.starting(t.From)
		case t.Step == 0:
			return w.between(t.From, t.To)
		default:
			return w.every(t.Step) + ", " + w.between(t.From, t.To)
		}
	}

	parts := make([]string, len(f.Terms))
	for i, t := range f.Terms {
		parts[i] = listItem(t, w)
	}
	return w.list(joinList(parts))
}

func listItem(t Term, w words) string {
	var s string
	switch t.Kind {
	case Wildcard:
		return w.every(max(t.Step, 1))
	case Value:
		s = w.name(t.From)
	case Range:
		s = w.name(t.From) + " through " + w.name(t.To)
	}
	if t.Step > 0 {
		s = fmt.Sprintf("%s (%s)", s, w.every(t.Step))
	}
	return s
}

// joinList joins items as "a", "a and b", or "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
