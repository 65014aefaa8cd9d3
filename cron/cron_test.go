package cron

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "describe":
				return handleDescribe(d)
			default:
				t.Fatalf("unknown command: %s", d.Cmd)
				return ""
			}
		})
	})
}

// handleDescribe describes every input line and prints the rendered lines
// indented under the expression.
func handleDescribe(d *datadriven.TestData) string {
	var out []string
	for _, expr := range strings.Split(d.Input, "\n") {
		out = append(out, expr)
		desc, ok := Describe(expr)
		if !ok {
			out = append(out, "  (invalid)")
			continue
		}
		for _, line := range desc {
			out = append(out, "  "+line)
		}
	}
	return strings.Join(out, "\n")
}

func TestParse_FieldCount(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"", "   ", "* * *", "* * * *", "* * * * * * *"} {
		_, err := Parse(expr)
		require.Error(t, err, expr)
		assert.ErrorIs(t, err, ErrInvalidExpression)
		assert.ErrorIs(t, err, ErrFieldCount)
	}
}

func TestParse_SixFieldShiftsBySeconds(t *testing.T) {
	t.Parallel()

	e, err := Parse("15 30 6 * * *")
	require.NoError(t, err)
	require.True(t, e.HasSeconds())

	sec, ok := e.Seconds.Single()
	require.True(t, ok)
	assert.Equal(t, 15, sec)

	minute, ok := e.Minute.Single()
	require.True(t, ok)
	assert.Equal(t, 30, minute)

	hour, ok := e.Hour.Single()
	require.True(t, ok)
	assert.Equal(t, 6, hour)

	five, err := Parse("30 6 * * *")
	require.NoError(t, err)
	assert.False(t, five.HasSeconds())
	assert.Nil(t, five.Seconds)
}

func TestParse_Whitespace(t *testing.T) {
	t.Parallel()

	e, err := Parse("  0\t0  *  * *  ")
	require.NoError(t, err)
	assert.Equal(t, "0 0 * * *", e.Text)
}

func TestParseField_Grammar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		kind  FieldKind
		raw   string
		terms []Term
	}{
		{"wildcard", Minute, "*", []Term{{Kind: Wildcard, From: 0, To: 59}}},
		{"wildcard_step", Minute, "*/5", []Term{{Kind: Wildcard, From: 0, To: 59, Step: 5}}},
		{"value", Hour, "23", []Term{{Kind: Value, From: 23, To: 23}}},
		{"value_step", Seconds, "10/15", []Term{{Kind: Value, From: 10, To: 10, Step: 15}}},
		{"range", DayOfMonth, "1-15", []Term{{Kind: Range, From: 1, To: 15}}},
		{"range_step", Hour, "9-17/2", []Term{{Kind: Range, From: 9, To: 17, Step: 2}}},
		{"list", Minute, "0,15,30", []Term{
			{Kind: Value, From: 0, To: 0},
			{Kind: Value, From: 15, To: 15},
			{Kind: Value, From: 30, To: 30},
		}},
		{"mixed_list", Hour, "1-3,5,*/6", []Term{
			{Kind: Range, From: 1, To: 3},
			{Kind: Value, From: 5, To: 5},
			{Kind: Wildcard, From: 0, To: 23, Step: 6},
		}},
		{"month_alias", Month, "jan-Mar", []Term{{Kind: Range, From: 1, To: 3}}},
		{"day_alias", DayOfWeek, "MON,FRI", []Term{
			{Kind: Value, From: 1, To: 1},
			{Kind: Value, From: 5, To: 5},
		}},
		{"sunday_as_seven", DayOfWeek, "7", []Term{{Kind: Value, From: 7, To: 7}}},
		{"question_mark", DayOfMonth, "?", []Term{{Kind: Wildcard, From: 1, To: 31}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, err := parseField(tc.kind, tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, f.Kind)
			assert.Equal(t, tc.terms, f.Terms)
		})
	}
}

func TestParseField_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind FieldKind
		raw  string
		want error
	}{
		{Minute, "60", ErrOutOfRange},
		{Seconds, "60", ErrOutOfRange},
		{Hour, "24", ErrOutOfRange},
		{DayOfMonth, "0", ErrOutOfRange},
		{DayOfMonth, "32", ErrOutOfRange},
		{Month, "0", ErrOutOfRange},
		{Month, "13", ErrOutOfRange},
		{Month, "MON", ErrOutOfRange},
		{DayOfWeek, "8", ErrOutOfRange},
		{DayOfWeek, "JAN", ErrOutOfRange},
		{Minute, "*/0", ErrOutOfRange},
		{Minute, "30-10", ErrOutOfRange},
		{Minute, "?", ErrSyntax},
		{Minute, "1,", ErrSyntax},
		{Minute, ",1", ErrSyntax},
		{Minute, "1--2", ErrSyntax},
		{Minute, "*-5", ErrSyntax},
		{Minute, "5/", ErrSyntax},
		{Minute, "5/*", ErrSyntax},
		{Minute, "1-2-3", ErrSyntax},
		{Minute, "L", ErrOutOfRange},
		{Minute, "#", ErrSyntax},
		{Minute, "1.5", ErrSyntax},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s_%s", tc.kind, tc.raw), func(t *testing.T) {
			t.Parallel()

			_, err := parseField(tc.kind, tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDescribe_SecondsZeroMatchesFiveField(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"* * * * *", "0 * * * * *"},
		{"5 * * * *", "0 5 * * * *"},
		{"30 6 * * *", "0 30 6 * * *"},
		{"0 0 1 * 1", "0 0 0 1 * 1"},
		{"*/10 9-17 * * MON-FRI", "0 */10 9-17 * * MON-FRI"},
	}

	for _, p := range pairs {
		five, ok := Describe(p[0])
		require.True(t, ok, p[0])
		six, ok := Describe(p[1])
		require.True(t, ok, p[1])
		assert.Equal(t, five, six)
	}
}

func TestDescribe_EitherDayLine(t *testing.T) {
	t.Parallel()

	d, ok := Describe("0 0 1 * 1")
	require.True(t, ok)
	require.Len(t, d, 2)
	assert.Equal(t, EitherDayNote, d[1])
	assert.Contains(t, d[1], "either")

	for _, expr := range []string{"0 0 1 * *", "0 0 * * 1", "0 0 ? * 1", "0 0 1 * ?"} {
		d, ok := Describe(expr)
		require.True(t, ok, expr)
		assert.Len(t, d, 1, expr)
	}
}

func TestDescribe_Invalid(t *testing.T) {
	t.Parallel()

	d, ok := Describe("* * *")
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestJoinList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", joinList(nil))
	assert.Equal(t, "a", joinList([]string{"a"}))
	assert.Equal(t, "a and b", joinList([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinList([]string{"a", "b", "c"}))
}

func TestParseField_WildcardSwallowsList(t *testing.T) {
	t.Parallel()

	f, err := parseField(Minute, "*,5")
	require.NoError(t, err)
	assert.True(t, f.IsWildcard())

	f, err = parseField(Minute, "*/2,5")
	require.NoError(t, err)
	assert.Len(t, f.Terms, 2)

	_, err = parseField(Minute, "*,99")
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDescribe_FullWeekRange(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"0 9 * * 0-7", "0 9 * * 0-6", "0 9 * * 1-7"} {
		d, ok := Describe(expr)
		require.True(t, ok, expr)
		assert.Equal(t, Description{"At 09:00, every day of the week"}, d, expr)
	}

	d, ok := Describe("0 9 * * 1-6")
	require.True(t, ok)
	assert.Equal(t, "At 09:00, Monday through Saturday", d.Primary())
}
