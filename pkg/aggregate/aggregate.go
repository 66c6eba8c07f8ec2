// Package aggregate computes summary statistics over call-log subsets. All
// functions are pure; views are recomputed from scratch whenever inputs
// change.
package aggregate

import (
	"math"
	"sort"

	"github.com/nchandra/callscope/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the headline numbers for a log subset. Unscored calls are
// excluded from all three outputs; an empty or fully-unscored input yields
// Average 0 with nil Top and Bottom, and Scored tells the two apart.
type Summary struct {
	Top      *models.CallLog `json:"top,omitempty"`
	Bottom   *models.CallLog `json:"bottom,omitempty"`
	Average  float64         `json:"average"`
	Scored   int             `json:"scored"`
	Unscored int             `json:"unscored"`
}

// Summarize computes top/bottom scorer and mean score on the normalized
// 10-point scale. Ties resolve to the first record scanned, which is
// deterministic because input order is stable.
func Summarize(logs []models.CallLog) Summary {
	var s Summary
	var values []float64
	var topScore, bottomScore float64

	for i := range logs {
		n, ok := logs[i].Score.Normalized()
		if !ok {
			s.Unscored++
			continue
		}
		values = append(values, n)
		if s.Top == nil || n > topScore {
			top := logs[i]
			s.Top, topScore = &top, n
		}
		if s.Bottom == nil || n < bottomScore {
			bottom := logs[i]
			s.Bottom, bottomScore = &bottom, n
		}
	}

	s.Scored = len(values)
	if len(values) > 0 {
		s.Average = round1(stat.Mean(values, nil))
	}
	return s
}

// SummarizeByScale partitions logs by their native denominator (numeric
// scores count as 10-point) and summarizes each partition on raw
// numerators. Scores from different scales are never mixed in one average.
func SummarizeByScale(logs []models.CallLog) map[int]Summary {
	byScale := make(map[int][]models.CallLog)
	for i := range logs {
		_, scale, ok := logs[i].Score.Native()
		if !ok {
			continue
		}
		key := int(scale)
		byScale[key] = append(byScale[key], logs[i])
	}

	out := make(map[int]Summary, len(byScale))
	for scale, group := range byScale {
		out[scale] = summarizeNative(group)
	}
	return out
}

// summarizeNative ranks and averages raw numerators within one scale.
func summarizeNative(logs []models.CallLog) Summary {
	var s Summary
	var values []float64
	var topScore, bottomScore float64

	for i := range logs {
		v, _, ok := logs[i].Score.Native()
		if !ok {
			s.Unscored++
			continue
		}
		values = append(values, v)
		if s.Top == nil || v > topScore {
			top := logs[i]
			s.Top, topScore = &top, v
		}
		if s.Bottom == nil || v < bottomScore {
			bottom := logs[i]
			s.Bottom, bottomScore = &bottom, v
		}
	}

	s.Scored = len(values)
	if len(values) > 0 {
		s.Average = round1(stat.Mean(values, nil))
	}
	return s
}

// StaffScore is one bar of the per-staff performance chart.
type StaffScore struct {
	Name    string  `json:"name"`
	Average float64 `json:"average"` // normalized 10-point mean
	Calls   int     `json:"calls"`   // scored calls only
}

// StaffAverages aggregates normalized scores per staff member, sorted by
// average descending (name ascending on ties, for stable output). Unscored
// calls are excluded.
func StaffAverages(logs []models.CallLog) []StaffScore {
	type acc struct {
		values []float64
	}
	byStaff := make(map[string]*acc)
	for i := range logs {
		n, ok := logs[i].Score.Normalized()
		if !ok {
			continue
		}
		a := byStaff[logs[i].StaffName]
		if a == nil {
			a = &acc{}
			byStaff[logs[i].StaffName] = a
		}
		a.values = append(a.values, n)
	}

	out := make([]StaffScore, 0, len(byStaff))
	for name, a := range byStaff {
		out = append(out, StaffScore{
			Name:    name,
			Average: round1(stat.Mean(a.values, nil)),
			Calls:   len(a.values),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
