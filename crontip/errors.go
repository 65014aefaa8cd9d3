package crontip

import "errors"

var (
	// ErrTreeUnavailable is returned by tree providers when no syntax tree can
	// be produced for a document.
	ErrTreeUnavailable = errors.New("syntax tree unavailable")

	// ErrUnsupportedLanguage is returned when no registered language handles
	// a file.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
