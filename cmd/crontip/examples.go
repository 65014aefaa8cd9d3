package main

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/crontip/cron"
)

//go:embed examples.txt
var examplesText string

func examplesCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "examples",
		Usage: "show example cron expressions with their descriptions",
		Description: "Print common cron expressions next to their descriptions.\n" +
			"Output is designed to be grep-friendly.\n\n" +
			"Examples:\n" +
			"  crontip examples               # show all examples\n" +
			"  crontip examples | grep Monday # find weekday schedules",
		Action: func(_ context.Context, _ *cli.Command) error {
			for _, line := range renderExamples(examplesText) {
				fmt.Fprintln(a.stdout, line)
			}
			return nil
		},
	}
}

// renderExamples pairs each expression in text with its description. Blank
// lines and # comments are copied through.
func renderExamples(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		expr := strings.TrimSpace(line)
		if expr == "" || strings.HasPrefix(expr, "#") {
			out = append(out, line)
			continue
		}
		lines, ok := cron.Describe(expr)
		if !ok {
			out = append(out, fmt.Sprintf("%-20s # invalid", expr))
			continue
		}
		out = append(out, fmt.Sprintf("%-20s # %s", expr, strings.Join(lines, ". ")))
	}
	return out
}
