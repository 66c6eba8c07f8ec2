package aggregate

import (
	"sort"

	"github.com/nchandra/callscope/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// TrendPoint is one day's average normalized score.
type TrendPoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD, local time
	Average float64 `json:"average"`
	Calls   int     `json:"calls"`
}

// Trend holds the daily average series plus regression statistics over the
// day index. Stats are zero when fewer than two days have scored calls.
type Trend struct {
	Points      []TrendPoint `json:"points"`
	Slope       float64      `json:"slope"` // score change per day
	Intercept   float64      `json:"intercept"`
	RSquared    float64      `json:"r_squared"`
	Correlation float64      `json:"correlation"`
}

// DailyTrend groups scored calls by local calendar date and fits a linear
// regression over the daily averages. Calls with unparseable timestamps or
// no score are skipped.
func DailyTrend(logs []models.CallLog) Trend {
	byDay := make(map[string][]float64)
	for i := range logs {
		day := logs[i].Day()
		if day == "" {
			continue
		}
		n, ok := logs[i].Score.Normalized()
		if !ok {
			continue
		}
		byDay[day] = append(byDay[day], n)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	t := Trend{Points: make([]TrendPoint, 0, len(days))}
	for _, day := range days {
		values := byDay[day]
		t.Points = append(t.Points, TrendPoint{
			Date:    day,
			Average: round1(stat.Mean(values, nil)),
			Calls:   len(values),
		})
	}

	if len(t.Points) < 2 {
		return t
	}

	xs := make([]float64, len(t.Points))
	ys := make([]float64, len(t.Points))
	for i, p := range t.Points {
		xs[i] = float64(i)
		ys[i] = p.Average
	}
	t.Intercept, t.Slope = stat.LinearRegression(xs, ys, nil, false)
	t.RSquared = stat.RSquared(xs, ys, nil, t.Intercept, t.Slope)
	t.Correlation = stat.Correlation(xs, ys, nil)
	return t
}
