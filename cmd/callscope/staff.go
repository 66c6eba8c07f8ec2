package main

import (
	"github.com/nchandra/callscope/internal/output"
	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/urfave/cli/v2"
)

func staffCmd() *cli.Command {
	return &cli.Command{
		Name:   "staff",
		Usage:  "Chart average scores per staff member",
		Flags:  criteriaFlags(),
		Action: runStaffCmd,
	}
}

func runStaffCmd(c *cli.Context) error {
	view, crit, cfg, err := fetchView(c, true)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&output.BarChart{
		Title: titled("Staff Performance", crit),
		Bars:  aggregate.StaffAverages(view),
	})
}
