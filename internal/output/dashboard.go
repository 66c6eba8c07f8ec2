package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/nchandra/callscope/pkg/models"
)

// Cards renders the analytics summary: highest scorer, lowest scorer, and
// team average, plus optional per-scale breakdowns that never mix
// denominators in one average.
type Cards struct {
	Title   string
	Summary aggregate.Summary
	ByScale map[int]aggregate.Summary // optional
}

func (c *Cards) RenderData() any {
	data := map[string]any{"summary": c.Summary}
	if len(c.ByScale) > 0 {
		data["by_scale"] = c.ByScale
	}
	return data
}

func (c *Cards) RenderText(w io.Writer, colored bool) error {
	if c.Title != "" {
		if colored {
			color.New(color.Bold).Fprintln(w, c.Title)
		} else {
			fmt.Fprintln(w, c.Title)
		}
		fmt.Fprintln(w)
	}

	if c.Summary.Scored == 0 {
		fmt.Fprintln(w, "  No scored calls for this period")
		if c.Summary.Unscored > 0 {
			fmt.Fprintf(w, "  (%d unscored)\n", c.Summary.Unscored)
		}
		return nil
	}

	top := c.Summary.Top
	bottom := c.Summary.Bottom
	topScore, _ := top.Score.Normalized()
	bottomScore, _ := bottom.Score.Normalized()

	writeCard(w, colored, "Highest", top.StaffName, topScore)
	writeCard(w, colored, "Lowest", bottom.StaffName, bottomScore)
	avgLine := fmt.Sprintf("%.1f/10", c.Summary.Average)
	if colored {
		avgLine = BandSprint(models.BandFor(c.Summary.Average))("%.1f/10", c.Summary.Average)
	}
	fmt.Fprintf(w, "  %-10s %-24s %s\n", "Average", teamLabel(c.Summary), avgLine)

	if len(c.ByScale) > 0 {
		fmt.Fprintln(w)
		for _, scale := range sortedScales(c.ByScale) {
			s := c.ByScale[scale]
			fmt.Fprintf(w, "  %d-point calls: %d scored, avg %.1f/%d\n", scale, s.Scored, s.Average, scale)
		}
	}
	return nil
}

func writeCard(w io.Writer, colored bool, label, staff string, score float64) {
	scoreText := fmt.Sprintf("%.1f/10", score)
	if colored {
		scoreText = BandSprint(models.BandFor(score))("%.1f/10", score)
	}
	fmt.Fprintf(w, "  %-10s %-24s %s\n", label, staff, scoreText)
}

func teamLabel(s aggregate.Summary) string {
	if s.Unscored > 0 {
		return fmt.Sprintf("%d calls (%d unscored)", s.Scored, s.Unscored)
	}
	return fmt.Sprintf("%d calls", s.Scored)
}

func (c *Cards) RenderMarkdown(w io.Writer) error {
	if c.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", c.Title)
	}
	if c.Summary.Scored == 0 {
		fmt.Fprintln(w, "No scored calls for this period.")
		fmt.Fprintln(w)
		return nil
	}
	fmt.Fprintln(w, "| Card | Staff | Score |")
	fmt.Fprintln(w, "| --- | --- | --- |")
	topScore, _ := c.Summary.Top.Score.Normalized()
	bottomScore, _ := c.Summary.Bottom.Score.Normalized()
	fmt.Fprintf(w, "| Highest | %s | %.1f/10 |\n", c.Summary.Top.StaffName, topScore)
	fmt.Fprintf(w, "| Lowest | %s | %.1f/10 |\n", c.Summary.Bottom.StaffName, bottomScore)
	fmt.Fprintf(w, "| Average | %s | %.1f/10 |\n", teamLabel(c.Summary), c.Summary.Average)
	fmt.Fprintln(w)
	for _, scale := range sortedScales(c.ByScale) {
		s := c.ByScale[scale]
		fmt.Fprintf(w, "- %d-point calls: %d scored, avg %.1f/%d\n", scale, s.Scored, s.Average, scale)
	}
	if len(c.ByScale) > 0 {
		fmt.Fprintln(w)
	}
	return nil
}

func sortedScales(byScale map[int]aggregate.Summary) []int {
	scales := make([]int, 0, len(byScale))
	for s := range byScale {
		scales = append(scales, s)
	}
	sort.Ints(scales)
	return scales
}

// barWidth is the character width of a full 10/10 bar.
const barWidth = 40

// BarChart renders per-staff average scores as horizontal bars on the 0-10
// domain, colored by score band.
type BarChart struct {
	Title string
	Bars  []aggregate.StaffScore
}

func (b *BarChart) RenderData() any {
	return b.Bars
}

func (b *BarChart) RenderText(w io.Writer, colored bool) error {
	if b.Title != "" {
		if colored {
			color.New(color.Bold).Fprintln(w, b.Title)
		} else {
			fmt.Fprintln(w, b.Title)
		}
		fmt.Fprintln(w)
	}

	if len(b.Bars) == 0 {
		fmt.Fprintln(w, "  No data available")
		return nil
	}

	nameWidth := 0
	for _, bar := range b.Bars {
		if len(bar.Name) > nameWidth {
			nameWidth = len(bar.Name)
		}
	}

	for _, bar := range b.Bars {
		filled := int(bar.Average / 10 * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
		if filled < 0 {
			filled = 0
		}
		barText := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		if colored {
			barText = BandColor(models.BandFor(bar.Average), barText)
		}
		fmt.Fprintf(w, "  %-*s %s %4.1f (%d calls)\n", nameWidth, bar.Name, barText, bar.Average, bar.Calls)
	}
	return nil
}

func (b *BarChart) RenderMarkdown(w io.Writer) error {
	if b.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", b.Title)
	}
	if len(b.Bars) == 0 {
		fmt.Fprintln(w, "No data available.")
		fmt.Fprintln(w)
		return nil
	}
	fmt.Fprintln(w, "| Staff | Average | Calls |")
	fmt.Fprintln(w, "| --- | --- | --- |")
	for _, bar := range b.Bars {
		fmt.Fprintf(w, "| %s | %.1f | %d |\n", bar.Name, bar.Average, bar.Calls)
	}
	fmt.Fprintln(w)
	return nil
}
