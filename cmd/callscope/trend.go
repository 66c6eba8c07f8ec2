package main

import (
	"fmt"

	"github.com/nchandra/callscope/internal/output"
	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/urfave/cli/v2"
)

func trendCmd() *cli.Command {
	return &cli.Command{
		Name:  "trend",
		Usage: "Fit a linear trend over daily average scores",
		// Trends need a date range; default_today is never applied here.
		Flags:  criteriaFlags(),
		Action: runTrendCmd,
	}
}

func runTrendCmd(c *cli.Context) error {
	view, crit, cfg, err := fetchView(c, false)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	trend := aggregate.DailyTrend(view)

	rows := make([][]string, 0, len(trend.Points))
	for _, p := range trend.Points {
		rows = append(rows, []string{
			p.Date,
			fmt.Sprintf("%.1f", p.Average),
			fmt.Sprintf("%d", p.Calls),
		})
	}

	var footer []string
	if len(trend.Points) >= 2 {
		footer = []string{
			fmt.Sprintf("Slope: %+.2f/day", trend.Slope),
			fmt.Sprintf("R2: %.2f", trend.RSquared),
			"",
		}
	}

	return formatter.Output(output.NewTable(
		titled("Daily Score Trend", crit),
		[]string{"Date", "Average", "Calls"},
		rows,
		footer,
		trend,
	))
}
