package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/nchandra/callscope/pkg/models"
	"github.com/sourcegraph/conc"
	"gopkg.in/yaml.v3"
)

// ArtifactCount is the number of files Generate writes, for sizing
// progress bars.
const ArtifactCount = 7

// GenerateOptions configures one report data set.
type GenerateOptions struct {
	Source  string
	Version string
	Filters string // human-readable description of applied criteria

	// Progress, when set, is invoked once per artifact written. Must be
	// safe for concurrent use.
	Progress func()
}

// manifest is the index written alongside the JSON artifacts.
type manifest struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	Version     string    `yaml:"version"`
	Source      string    `yaml:"source"`
	Filters     string    `yaml:"filters,omitempty"`
	Artifacts   []string  `yaml:"artifacts"`
}

// Generate writes the report data set for the given logs into dir: one JSON
// artifact per view plus a manifest. Artifacts are independent and written
// concurrently.
func Generate(dir string, logs []models.CallLog, opts GenerateOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	meta := Metadata{
		Source:           opts.Source,
		GeneratedAt:      time.Now(),
		CallscopeVersion: opts.Version,
		Filters:          opts.Filters,
		TotalLogs:        len(logs),
	}

	artifacts := map[string]any{
		"metadata.json": meta,
		"summary.json":  aggregate.Summarize(logs),
		"staff.json":    aggregate.StaffAverages(logs),
		"scales.json":   aggregate.SummarizeByScale(logs),
		"logs.json":     buildRows(logs),
		"trend.json":    aggregate.DailyTrend(logs),
	}

	var wg conc.WaitGroup
	errs := make(chan error, len(artifacts))
	for name, data := range artifacts {
		wg.Go(func() {
			if err := writeJSON(filepath.Join(dir, name), data); err != nil {
				errs <- fmt.Errorf("writing %s: %w", name, err)
				return
			}
			if opts.Progress != nil {
				opts.Progress()
			}
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		return err
	}

	m := manifest{
		GeneratedAt: meta.GeneratedAt,
		Version:     opts.Version,
		Source:      opts.Source,
		Filters:     opts.Filters,
		Artifacts:   []string{"metadata.json", "summary.json", "staff.json", "scales.json", "logs.json", "trend.json"},
	}
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.yaml"), raw, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if opts.Progress != nil {
		opts.Progress()
	}
	return nil
}

func buildRows(logs []models.CallLog) []LogRow {
	rows := make([]LogRow, 0, len(logs))
	for i := range logs {
		l := logs[i]
		row := LogRow{
			Key:      l.Key(),
			Datetime: l.CallDatetime,
			Staff:    l.StaffName,
			RawScore: l.RawScore,
			Band:     string(l.Score.ScoreBand()),
		}
		if n, ok := l.Score.Normalized(); ok {
			row.Score = n
			row.Scored = true
		}
		if v, scale, ok := l.Score.Native(); ok && scale != 10 {
			row.NativeRaw = fmt.Sprintf("%g/%g", v, scale)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
