package crontip

import "go.uber.org/zap"

// ScanOptions configures the Scan function.
type ScanOptions struct {
	// Path is the root directory to scan for files.
	// If empty, current directory is used.
	Path string

	// File is a single file to scan.
	// If set, Path is ignored.
	File string

	// Languages restricts the scan to these language names.
	// If empty, every registered language is scanned.
	Languages []string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, a 2 MiB limit is used.
	MaxBytes int64

	// IgnoreDirs replaces the default set of skipped directory names.
	IgnoreDirs []string

	// BaseURL and Label override the tooltip deep link.
	BaseURL string
	Label   string

	// Logger receives per-file failures at debug level.
	Logger *zap.Logger
}
