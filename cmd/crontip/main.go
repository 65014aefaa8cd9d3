package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/arjunmahishi/crontip/cron"
	"github.com/arjunmahishi/crontip/crontip"
	"github.com/arjunmahishi/crontip/output"
)

// app is the state shared by all commands, built once in the root Before hook.
type app struct {
	config *Config
	logger *zap.Logger
	out    *output.Writer
	format output.Format
	stdout io.Writer
}

func main() {
	a := &app{format: output.FormatJSON, stdout: os.Stdout}
	cmd := newCommand(a)

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		output.WriteError(a.format, err)
		os.Exit(1)
	}
}

func newCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "crontip",
		Usage: "describe cron expressions found in source code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a crontip.yaml file",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: json or text",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn, or error",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored text output",
			},
		},
		Before: a.setup,
		After:  a.teardown,
		Commands: []*cli.Command{
			describeCommand(a),
			hoverCommand(a),
			scanCommand(a),
			languagesCommand(a),
			examplesCommand(a),
		},
	}
}

// setup loads the config file and applies flag overrides on top of it.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("format") {
		// Errors from here on are reported in the requested format.
		if f, err := output.ParseFormat(cmd.String("format")); err == nil {
			a.format = f
		}
	}

	config, err := LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("format") {
		config.Format = cmd.String("format")
	}
	if cmd.IsSet("log-level") {
		config.LogLevel = cmd.String("log-level")
	}

	format, err := output.ParseFormat(config.Format)
	if err != nil {
		return ctx, err
	}
	logger, err := newLogger(config.LogLevel)
	if err != nil {
		return ctx, err
	}

	if cmd.Bool("no-color") {
		color.NoColor = true
	}

	a.config = config
	a.format = format
	a.logger = logger
	a.out = output.New(output.Config{
		Format:  format,
		Compact: cmd.Bool("compact"),
		Output:  a.stdout,
	})
	return ctx, nil
}

func (a *app) teardown(_ context.Context, _ *cli.Command) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

func (a *app) tooltipOptions() []crontip.Option {
	return []crontip.Option{
		crontip.WithBaseURL(a.config.BaseURL),
		crontip.WithLabel(a.config.Label),
		crontip.WithLogger(a.logger),
	}
}

func describeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "describe cron expressions in plain English",
		ArgsUsage: "EXPR...",
		Description: "Each argument is one cron expression with 5 or 6 fields.\n\n" +
			"Examples:\n" +
			"  crontip describe '*/5 * * * *'\n" +
			"  crontip --format text describe '0 0 1 * 1' '0 12 * * SUN,WED'",
		Action: func(_ context.Context, cmd *cli.Command) error {
			exprs := cmd.Args().Slice()
			if len(exprs) == 0 {
				return errors.New("at least one expression is required")
			}

			results := make([]output.Description, 0, len(exprs))
			for _, expr := range exprs {
				d := output.Description{Expression: expr}
				if lines, ok := cron.Describe(expr); ok {
					d.Valid = true
					d.Lines = lines
					d.URI = crontip.ActionURI(a.config.BaseURL, expr)
				}
				results = append(results, d)
			}
			return a.out.WriteDescriptions(results)
		},
	}
}

func hoverCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "hover",
		Usage: "show the tooltip for a position in a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "file to inspect (required)",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "offset",
				Value: -1,
				Usage: "character offset of the cursor",
			},
			&cli.IntFlag{
				Name:  "line",
				Usage: "1-based cursor line",
			},
			&cli.IntFlag{
				Name:  "column",
				Usage: "1-based cursor column, in characters",
			},
		},
		Action: a.runHover,
	}
}

func (a *app) runHover(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	pos, err := cursorPosition(cmd, crontip.Document{Path: path, Source: source})
	if err != nil {
		return err
	}

	provider := crontip.ParseTreeProvider{
		Overlay: map[crontip.DocumentHandle][]byte{crontip.DocumentHandle(path): source},
	}
	tip, _ := crontip.BuildTooltip(ctx, provider, crontip.DocumentHandle(path), pos, a.tooltipOptions()...)
	return a.out.WriteTooltip(tip)
}

// cursorPosition resolves --offset or --line/--column into a position.
func cursorPosition(cmd *cli.Command, doc crontip.Document) (crontip.Position, error) {
	hasOffset := cmd.Int("offset") >= 0
	hasPoint := cmd.IsSet("line") || cmd.IsSet("column")

	switch {
	case hasOffset && hasPoint:
		return 0, errors.New("use --offset or --line/--column, not both")
	case hasOffset:
		return crontip.Position(cmd.Int("offset")), nil
	case hasPoint:
		p := crontip.Point{Line: cmd.Int("line"), Column: cmd.Int("column")}
		pos, ok := doc.PositionAt(p)
		if !ok {
			return 0, fmt.Errorf("no position %d:%d in %s", p.Line, p.Column, doc.Path)
		}
		return pos, nil
	}
	return 0, errors.New("--offset or --line and --column is required")
}

func scanCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "find every described cron literal under a path",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: ".",
				Usage: "root path to scan",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "single file to scan",
			},
			&cli.StringSliceFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "restrict to these languages",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "number of parallel workers (default: number of CPUs)",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Usage: "skip files larger than this",
			},
			&cli.StringSliceFlag{
				Name:  "ignore-dir",
				Usage: "directory names to skip, replacing the defaults",
			},
		},
		Action: a.runScan,
	}
}

func (a *app) runScan(ctx context.Context, cmd *cli.Command) error {
	sc := a.config.Scan
	opts := crontip.ScanOptions{
		Path:       cmd.String("path"),
		File:       cmd.String("file"),
		Languages:  sc.Languages,
		Jobs:       sc.Jobs,
		MaxBytes:   sc.MaxBytes,
		IgnoreDirs: sc.IgnoreDirs,
		BaseURL:    a.config.BaseURL,
		Label:      a.config.Label,
		Logger:     a.logger,
	}
	if cmd.IsSet("lang") {
		opts.Languages = cmd.StringSlice("lang")
	}
	if cmd.IsSet("jobs") {
		opts.Jobs = cmd.Int("jobs")
	}
	if cmd.IsSet("max-bytes") {
		opts.MaxBytes = cmd.Int64("max-bytes")
	}
	if cmd.IsSet("ignore-dir") {
		opts.IgnoreDirs = cmd.StringSlice("ignore-dir")
	}

	findings, err := crontip.Scan(ctx, opts)
	if err != nil {
		return err
	}
	a.logger.Debug("scan finished", zap.String("path", opts.Path), zap.Int("findings", len(findings)))
	return a.out.WriteFindings(findings)
}

func languagesCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "list supported languages and their file extensions",
		Action: func(_ context.Context, _ *cli.Command) error {
			names := crontip.List()
			languages := make(map[string][]string, len(names))
			for _, name := range names {
				languages[name] = crontip.Get(name).Extensions()
			}
			return a.out.WriteLanguages(languages, names)
		},
	}
}
