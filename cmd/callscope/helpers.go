package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nchandra/callscope/internal/client"
	"github.com/nchandra/callscope/internal/output"
	"github.com/nchandra/callscope/internal/progress"
	"github.com/nchandra/callscope/pkg/config"
	"github.com/nchandra/callscope/pkg/filter"
	"github.com/nchandra/callscope/pkg/models"
	"github.com/urfave/cli/v2"
)

// criteriaFlags are the filter flags shared by every data command.
func criteriaFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "date",
			Aliases: []string{"d"},
			Usage:   "Exact local date (YYYY-MM-DD), shorthand for --from and --to",
		},
		&cli.StringFlag{
			Name:  "from",
			Usage: "Inclusive start date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "Inclusive end date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:    "staff",
			Aliases: []string{"s"},
			Usage:   "Case-insensitive substring of the staff name",
		},
		&cli.StringFlag{
			Name:  "score",
			Usage: "Substring of the floored normalized score (\"8\" matches 8.x)",
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Ignore the default_today config and include every date",
		},
	}
}

// buildCriteria assembles filter criteria from flags. When no date flag is
// given, defaultToday (from config) pins the view to today unless --all is
// set.
func buildCriteria(c *cli.Context, defaultToday bool) (filter.Criteria, error) {
	for _, name := range []string{"date", "from", "to"} {
		if v := c.String(name); v != "" {
			if _, err := time.ParseInLocation("2006-01-02", v, time.Local); err != nil {
				return filter.Criteria{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, v)
			}
		}
	}

	crit := filter.Criteria{
		From:  c.String("from"),
		To:    c.String("to"),
		Staff: c.String("staff"),
		Score: c.String("score"),
	}
	if d := c.String("date"); d != "" {
		crit.From, crit.To = d, d
	}

	if crit.From == "" && crit.To == "" && defaultToday && !c.Bool("all") {
		today := time.Now().Format("2006-01-02")
		crit.From, crit.To = today, today
	}
	return crit, nil
}

// describeCriteria renders active criteria for titles and report metadata.
func describeCriteria(crit filter.Criteria) string {
	var parts []string
	switch {
	case crit.From != "" && crit.From == crit.To:
		parts = append(parts, crit.From)
	case crit.From != "" || crit.To != "":
		from, to := crit.From, crit.To
		if from == "" {
			from = "start"
		}
		if to == "" {
			to = "now"
		}
		parts = append(parts, from+" to "+to)
	}
	if crit.Staff != "" {
		parts = append(parts, "staff ~ "+crit.Staff)
	}
	if crit.Score != "" {
		parts = append(parts, "score ~ "+crit.Score)
	}
	return strings.Join(parts, ", ")
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if format == "" {
		format = cfg.Output.Format
	}
	colored := cfg.Output.Color && !c.Bool("no-color")
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), colored)
}

// fetchLogs pulls the full record set with a spinner on stderr.
func fetchLogs(ctx context.Context, cfg *config.Config) ([]models.CallLog, error) {
	spinner := progress.NewSpinner("Fetching call logs...")
	logs, err := client.New(cfg.API).FetchAll(ctx, client.Query{})
	if err != nil {
		spinner.FinishError(err)
		return nil, err
	}
	spinner.FinishSuccess()
	return logs, nil
}

// fetchView is the common fetch+filter+sort pipeline behind the data
// commands.
func fetchView(c *cli.Context, defaultToday bool) ([]models.CallLog, filter.Criteria, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, filter.Criteria{}, nil, err
	}
	crit, err := buildCriteria(c, defaultToday && cfg.Filters.DefaultToday)
	if err != nil {
		return nil, filter.Criteria{}, nil, err
	}
	logs, err := fetchLogs(c.Context, cfg)
	if err != nil {
		return nil, filter.Criteria{}, nil, err
	}

	view := filter.Apply(logs, crit)
	models.SortLogs(view)
	return view, crit, cfg, nil
}

// scoreCell renders a normalized score for table cells, colored by band.
func scoreCell(l *models.CallLog, colored bool) string {
	n, ok := l.Score.Normalized()
	if !ok {
		return "N/A"
	}
	text := fmt.Sprintf("%.1f/10", n)
	if colored {
		return output.BandColor(models.BandFor(n), text)
	}
	return text
}

func titled(base string, crit filter.Criteria) string {
	if desc := describeCriteria(crit); desc != "" {
		return base + " (" + desc + ")"
	}
	return base
}
