package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "callscope",
		Usage:   "Call review quality dashboard for the terminal",
		Version: version,
		Description: `Callscope pulls reviewed call records from a call-logs API and turns
them into quality views: team summary cards, per-staff performance,
a sortable call table, and score trends.

Reviewers grade calls on 10, 13, or 16 point rubrics; callscope
normalizes everything to a 10-point scale so the numbers compare.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"CALLSCOPE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			summaryCmd(),
			staffCmd(),
			logsCmd(),
			showCmd(),
			trendCmd(),
			watchCmd(),
			reportCmd(),
			validateCmd(),
			configCmd(),
			mcpCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
