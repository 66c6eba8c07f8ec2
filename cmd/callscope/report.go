package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/nchandra/callscope/internal/progress"
	"github.com/nchandra/callscope/internal/report"
	"github.com/nchandra/callscope/pkg/filter"
	"github.com/nchandra/callscope/pkg/models"
	"github.com/urfave/cli/v2"
)

func applyServeCriteria(logs []models.CallLog, crit filter.Criteria) []models.CallLog {
	view := filter.Apply(logs, crit)
	models.SortLogs(view)
	return view
}

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Generate and serve HTML quality reports",
		Subcommands: []*cli.Command{
			reportGenerateCmd(),
			reportRenderCmd(),
			reportServeCmd(),
		},
	}
}

func reportGenerateCmd() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Fetch data and write report artifacts (JSON + manifest) to a directory",
		Flags: append(criteriaFlags(),
			&cli.StringFlag{
				Name:  "data-dir",
				Value: ".callscope/report",
				Usage: "Directory for generated artifacts",
			},
		),
		Action: runReportGenerateCmd,
	}
}

func runReportGenerateCmd(c *cli.Context) error {
	view, crit, cfg, err := fetchView(c, false)
	if err != nil {
		return err
	}

	dir := c.String("data-dir")
	tracker := progress.NewTracker("Writing report artifacts", report.ArtifactCount)
	err = report.Generate(dir, view, report.GenerateOptions{
		Source:   cfg.API.BaseURL,
		Version:  version,
		Filters:  describeCriteria(crit),
		Progress: tracker.Tick,
	})
	if err != nil {
		tracker.FinishError(err)
		return err
	}
	tracker.FinishSuccess()

	color.Green("Report data written to %s (%d records)", dir, len(view))
	return nil
}

func reportRenderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render generated artifacts into a self-contained HTML page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Value: ".callscope/report",
				Usage: "Directory with generated artifacts",
			},
			&cli.StringFlag{
				Name:  "html",
				Value: "callscope-report.html",
				Usage: "Output HTML file",
			},
		},
		Action: runReportRenderCmd,
	}
}

func runReportRenderCmd(c *cli.Context) error {
	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}
	out := c.String("html")
	if err := renderer.RenderToFile(c.String("data-dir"), out); err != nil {
		return err
	}
	color.Green("Report written to %s", out)
	return nil
}

func reportServeCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the report over HTTP, regenerating from the API on each request",
		Flags: append(criteriaFlags(),
			&cli.StringFlag{
				Name:  "addr",
				Value: "localhost:8990",
				Usage: "Listen address",
			},
		),
		Action: runReportServeCmd,
	}
}

func runReportServeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	crit, err := buildCriteria(c, false)
	if err != nil {
		return err
	}
	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		view, fetchErr := fetchLogs(r.Context(), cfg)
		if fetchErr != nil {
			http.Error(w, fetchErr.Error(), http.StatusBadGateway)
			return
		}
		view = applyServeCriteria(view, crit)

		dir, tmpErr := os.MkdirTemp("", "callscope-report-")
		if tmpErr != nil {
			http.Error(w, tmpErr.Error(), http.StatusInternalServerError)
			return
		}
		defer os.RemoveAll(dir)

		genErr := report.Generate(dir, view, report.GenerateOptions{
			Source:  cfg.API.BaseURL,
			Version: version,
			Filters: describeCriteria(crit),
		})
		if genErr != nil {
			http.Error(w, genErr.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if renderErr := renderer.Render(dir, w); renderErr != nil {
			color.Red("Render failed: %v", renderErr)
		}
	}

	srv := &http.Server{
		Addr:              c.String("addr"),
		Handler:           http.HandlerFunc(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	fmt.Printf("Serving report at http://%s (Ctrl+C to stop)\n", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
