package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/nchandra/callscope/internal/client"
	"github.com/nchandra/callscope/internal/dashboard"
	"github.com/nchandra/callscope/internal/output"
	"github.com/nchandra/callscope/internal/progress"
	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/urfave/cli/v2"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Poll the API and redraw the dashboard when data changes",
		Flags: append(criteriaFlags(),
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Poll interval (default from config, 30s)",
			},
		),
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	crit, err := buildCriteria(c, cfg.Filters.DefaultToday)
	if err != nil {
		return err
	}

	interval := c.Duration("interval")
	if interval <= 0 {
		interval = cfg.Watch.Interval()
	}

	session := dashboard.NewSession(client.New(cfg.API), crit)
	colored := cfg.Output.Color && !c.Bool("no-color")

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	refresh := func() {
		spinner := progress.NewSpinner("Refreshing")
		changed, err := session.Refresh(ctx)
		if err != nil {
			// Keep showing the last good view; the status line carries the
			// failure.
			spinner.FinishError(err)
			color.Red("Refresh failed: %v", err)
			return
		}
		if !changed {
			spinner.FinishSkipped("unchanged")
			return
		}
		spinner.FinishSuccess()
		drawDashboard(session, interval, colored)
	}

	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}

func drawDashboard(session *dashboard.Session, interval time.Duration, colored bool) {
	// Clear screen and home the cursor before each redraw.
	fmt.Print("\033[2J\033[H")

	report := &output.Report{
		Title: titled("Call Quality Dashboard", session.Criteria()),
		Sections: []output.Renderable{
			&output.Cards{Summary: session.Summary()},
			&output.BarChart{Title: "Staff Performance", Bars: session.StaffAverages()},
			logsTable(session),
		},
	}
	if err := report.RenderText(os.Stdout, colored); err != nil {
		color.Red("Render failed: %v", err)
		return
	}

	loadedAt, _, lastErr := session.Status()
	fmt.Println()
	if lastErr != nil {
		color.Yellow("Last refresh failed (%v); showing data from %s",
			lastErr, loadedAt.Format("15:04:05"))
	} else {
		fmt.Printf("Updated %s, polling every %s. Ctrl+C to stop.\n",
			loadedAt.Format("15:04:05"), interval)
	}
}

func logsTable(session *dashboard.Session) *output.Table {
	view := session.View()
	summary := aggregate.Summarize(view)

	rows := make([][]string, 0, len(view))
	for i := range view {
		l := &view[i]
		rows = append(rows, []string{
			l.CallDatetime,
			l.StaffName,
			scoreCell(l, true),
			l.RawScore,
		})
	}
	return output.NewTable(
		"Call Logs",
		[]string{"Date/Time", "Staff", "Score", "Raw"},
		rows,
		[]string{fmt.Sprintf("Total: %d", len(view)), "", fmt.Sprintf("Scored: %d", summary.Scored), ""},
		view,
	)
}
