package report

import "time"

// Metadata describes one generated report data set.
type Metadata struct {
	Source           string    `json:"source"`
	GeneratedAt      time.Time `json:"generated_at"`
	CallscopeVersion string    `json:"callscope_version"`
	Filters          string    `json:"filters,omitempty"`
	TotalLogs        int       `json:"total_logs"`
}

// LogRow is one table row of the HTML report: the normalized presentation of
// a call record.
type LogRow struct {
	Key       string  `json:"key"`
	Datetime  string  `json:"datetime"`
	Staff     string  `json:"staff"`
	Score     float64 `json:"score"`
	RawScore  string  `json:"raw_score"`
	Scored    bool    `json:"scored"`
	Band      string  `json:"band"`
	NativeRaw string  `json:"native,omitempty"`
}

