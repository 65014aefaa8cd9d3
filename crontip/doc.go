// Package crontip finds cron-expression string literals in source code and
// builds editor quick-info tooltips describing them.
//
// A tooltip request runs two steps. Locate resolves the smallest syntax node
// at a cursor position, walks up to the enclosing string literal, and keeps it
// only when the literal is a call argument, an annotation argument, or an
// initializer. The literal text is then described by package cron. Compose and
// BuildTooltip wrap both steps and turn every failure into "no tooltip".
//
// Grammars for Go, C#, Java, and Python are registered at init time.
package crontip
