package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/nchandra/callscope/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed template.html
var templateFS embed.FS

// RenderData contains everything the HTML template needs.
type RenderData struct {
	Metadata Metadata
	Summary  aggregate.Summary
	Staff    []aggregate.StaffScore
	Scales   map[int]aggregate.Summary
	Logs     []LogRow
	Trend    aggregate.Trend
}

// Renderer turns a generated data directory into a self-contained HTML page.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the embedded template.
func NewRenderer() (*Renderer, error) {
	printer := message.NewPrinter(language.English)
	funcMap := template.FuncMap{
		"bandClass": func(score float64) string {
			return string(models.BandFor(score))
		},
		"score1": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 1, 64)
		},
		"barWidth": func(score float64) string {
			pct := score / 10 * 100
			if pct > 100 {
				pct = 100
			}
			if pct < 0 {
				pct = 0
			}
			return strconv.FormatFloat(pct, 'f', 0, 64)
		},
		"norm": func(s models.Score) float64 {
			n, _ := s.Normalized()
			return n
		},
		"num": func(n int) string {
			return printer.Sprintf("%d", n)
		},
	}

	tmplContent, err := templateFS.ReadFile("template.html")
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(string(tmplContent))
	if err != nil {
		return nil, err
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render reads the data directory and writes the HTML page to w.
func (r *Renderer) Render(dataDir string, w io.Writer) error {
	data, err := r.loadData(dataDir)
	if err != nil {
		return err
	}
	return r.tmpl.Execute(w, data)
}

// RenderToFile renders the HTML page into outputPath.
func (r *Renderer) RenderToFile(dataDir, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return r.Render(dataDir, f)
}

func (r *Renderer) loadData(dataDir string) (*RenderData, error) {
	data := &RenderData{}

	if err := loadJSON(filepath.Join(dataDir, "metadata.json"), &data.Metadata); err != nil {
		return nil, fmt.Errorf("report data incomplete: %w", err)
	}
	if err := loadJSON(filepath.Join(dataDir, "summary.json"), &data.Summary); err != nil {
		return nil, fmt.Errorf("report data incomplete: %w", err)
	}
	if err := loadJSON(filepath.Join(dataDir, "logs.json"), &data.Logs); err != nil {
		return nil, fmt.Errorf("report data incomplete: %w", err)
	}

	// Optional artifacts: sections render empty when absent.
	loadJSON(filepath.Join(dataDir, "staff.json"), &data.Staff)
	loadJSON(filepath.Join(dataDir, "scales.json"), &data.Scales)
	loadJSON(filepath.Join(dataDir, "trend.json"), &data.Trend)

	return data, nil
}

func loadJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(v)
}
