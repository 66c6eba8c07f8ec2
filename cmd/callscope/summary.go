package main

import (
	"github.com/nchandra/callscope/internal/output"
	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/urfave/cli/v2"
)

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:    "summary",
		Aliases: []string{"sum"},
		Usage:   "Show highest, lowest, and average call scores",
		Flags: append(criteriaFlags(),
			&cli.BoolFlag{
				Name:  "by-scale",
				Usage: "Also break scores down by their native rubric (10, 13, 16 point)",
			},
		),
		Action: runSummaryCmd,
	}
}

func runSummaryCmd(c *cli.Context) error {
	view, crit, cfg, err := fetchView(c, true)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	cards := &output.Cards{
		Title:   titled("Call Quality Summary", crit),
		Summary: aggregate.Summarize(view),
	}
	if c.Bool("by-scale") {
		cards.ByScale = aggregate.SummarizeByScale(view)
	}
	return formatter.Output(cards)
}
