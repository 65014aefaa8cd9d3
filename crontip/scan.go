package crontip

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Finding is a cron literal discovered by Scan.
type Finding struct {
	File string `json:"file"`
	Tooltip
}

// Scan walks a directory (or a single file), visits every string literal of
// the selected languages, and returns the ones that carry a describable cron
// expression. Findings are sorted by file, line, and column.
func Scan(ctx context.Context, opts ScanOptions) ([]Finding, error) {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = 2 * 1024 * 1024
	}
	if len(opts.Languages) == 0 {
		opts.Languages = List()
	}

	languages := make([]Language, 0, len(opts.Languages))
	queries := make(map[string]*query, len(opts.Languages))
	for _, name := range opts.Languages {
		language := Get(name)
		if language == nil {
			return nil, fmt.Errorf("%w: %s language not registered", ErrUnsupportedLanguage, name)
		}
		q, err := newQuery(language.LiteralsQuery(), language)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		languages = append(languages, language)
		queries[name] = q
	}

	var ignoreDirs map[string]struct{}
	if len(opts.IgnoreDirs) > 0 {
		ignoreDirs = make(map[string]struct{}, len(opts.IgnoreDirs))
		for _, d := range opts.IgnoreDirs {
			ignoreDirs[d] = struct{}{}
		}
	}

	var files []FileJob
	if opts.File != "" {
		sc := newScanner(scannerConfig{languages: languages})
		job, err := sc.collectSingle(opts.File)
		if err != nil {
			return nil, err
		}
		files = []FileJob{job}
	} else {
		sc := newScanner(scannerConfig{
			root:       opts.Path,
			languages:  languages,
			ignoreDirs: ignoreDirs,
			maxBytes:   opts.MaxBytes,
		})
		var err error
		files, err = sc.collect()
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return []Finding{}, nil
	}

	cfg := newConfig([]Option{WithBaseURL(opts.BaseURL), WithLabel(opts.Label), WithLogger(opts.Logger)})
	findings := runWorkers(ctx, files, opts.Jobs, func(parsers *parserSet, job FileJob) []Finding {
		return scanFile(ctx, parsers, queries[job.Language.Name()], job, cfg)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if findings == nil {
		return []Finding{}, nil
	}

	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Range.Start.Line != b.Range.Start.Line {
			return a.Range.Start.Line < b.Range.Start.Line
		}
		return a.Range.Start.Column < b.Range.Start.Column
	})
	return findings, nil
}

// scanFile parses one file and composes a tooltip at the start of every
// string literal.
func scanFile(ctx context.Context, parsers *parserSet, q *query, job FileJob, cfg config) []Finding {
	tree, source, err := parsers.get(job.Language).parseFile(ctx, job.AbsPath)
	if err != nil {
		cfg.logger.Debug("skipping file", zap.String("file", job.DisplayPath), zap.Error(err))
		return nil
	}
	defer tree.Close()

	doc := Document{Path: job.DisplayPath, Source: source, Language: job.Language}
	var findings []Finding
	for _, lit := range q.nodes(tree, "literal") {
		pos := Position(doc.charOffset(lit.StartByte()))
		tip, ok := compose(doc, tree, pos, cfg)
		if !ok {
			continue
		}
		findings = append(findings, Finding{File: job.DisplayPath, Tooltip: *tip})
	}
	return findings
}

// parserSet holds one parser per language for a single worker.
type parserSet struct {
	parsers map[string]*parser
}

func (s *parserSet) get(language Language) *parser {
	p, ok := s.parsers[language.Name()]
	if !ok {
		p = newParser(language)
		s.parsers[language.Name()] = p
	}
	return p
}

// runWorkers fans files out to a pool of workers, each with its own parsers,
// and gathers whatever process returns. Workers stop picking up files once
// ctx is cancelled.
func runWorkers[T any](
	ctx context.Context,
	files []FileJob,
	jobs int,
	process func(parsers *parserSet, job FileJob) []T,
) []T {
	results := make(chan T, 128)
	jobQueue := make(chan FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		parsers := &parserSet{parsers: make(map[string]*parser)}
		for job := range jobQueue {
			if ctx.Err() != nil {
				continue
			}
			for _, r := range process(parsers, job) {
				results <- r
			}
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		for _, f := range files {
			jobQueue <- f
		}
		close(jobQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []T
	for r := range results {
		all = append(all, r)
	}

	return all
}
