package crontip

import (
	"fmt"
	"io/fs"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
	Language    Language
}

// defaultIgnoreDirs returns the default list of directories to ignore.
func defaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":          {},
		".hg":           {},
		".svn":          {},
		".jj":           {},
		".vs":           {},
		".idea":         {},
		"node_modules":  {},
		"vendor":        {},
		"dist":          {},
		"build":         {},
		"target":        {},
		"bin":           {},
		"obj":           {},
		".venv":         {},
		"__pycache__":   {},
		".mypy_cache":   {},
		".pytest_cache": {},
		".cache":        {},
		"coverage":      {},
	}
}

// scannerConfig holds scanner configuration.
type scannerConfig struct {
	root       string
	languages  []Language
	ignoreDirs map[string]struct{}
	maxBytes   int64
}

// scanner discovers files for processing.
type scanner struct {
	cfg       scannerConfig
	gitignore *ignore.GitIgnore
}

// newScanner creates a new scanner with the given configuration. A
// .gitignore at the root, when present, excludes matching files.
func newScanner(cfg scannerConfig) *scanner {
	if cfg.ignoreDirs == nil {
		cfg.ignoreDirs = defaultIgnoreDirs()
	}
	s := &scanner{cfg: cfg}
	if cfg.root != "" {
		if gi, err := ignore.CompileIgnoreFile(filepath.Join(cfg.root, ".gitignore")); err == nil {
			s.gitignore = gi
		}
	}
	return s
}

// collect finds all matching files and returns them as FileJobs.
func (s *scanner) collect() ([]FileJob, error) {
	absRoot, err := filepath.Abs(s.cfg.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var jobs []FileJob
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if s.shouldIgnoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		language := s.languageFor(d.Name())
		if language == nil {
			return nil
		}

		if s.cfg.maxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > s.cfg.maxBytes {
				return nil
			}
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if s.gitignore != nil && s.gitignore.MatchesPath(rel) {
			return nil
		}

		jobs = append(jobs, FileJob{
			AbsPath:     path,
			DisplayPath: rel,
			Language:    language,
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// collectSingle returns a single file as a FileJob.
func (s *scanner) collectSingle(filePath string) (FileJob, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return FileJob{}, fmt.Errorf("resolve path: %w", err)
	}

	language := s.languageFor(absPath)
	if language == nil {
		return FileJob{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filePath)
	}

	return FileJob{
		AbsPath:     absPath,
		DisplayPath: filepath.Base(absPath),
		Language:    language,
	}, nil
}

func (s *scanner) shouldIgnoreDir(name string) bool {
	_, ok := s.cfg.ignoreDirs[name]
	return ok
}

// languageFor returns the configured language handling name, or nil.
func (s *scanner) languageFor(name string) Language {
	language := ForPath(name)
	if language == nil {
		return nil
	}
	for _, l := range s.cfg.languages {
		if l.Name() == language.Name() {
			return language
		}
	}
	return nil
}
