// Package cron parses 5-field and 6-field (seconds-first) cron expressions and
// renders them as short English descriptions.
//
// It supports wildcards, ranges, steps, and lists across the seconds, minute,
// hour, day-of-month, month, and day-of-week fields, plus the JAN-DEC and
// SUN-SAT aliases. It does not compute fire times.
package cron
