package models

import (
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// CallLog is one reviewed call record from the call-logs API. Records are
// immutable once decoded; filtering and sorting always derive new views.
//
// Upstream records carry arbitrary extra fields (call summary, category,
// customer number, ...). Those are preserved in Extra for the detail view
// but never participate in filtering or aggregation.
type CallLog struct {
	ID           string         `json:"id,omitempty"`
	CallDatetime string         `json:"call_datetime"`
	StaffName    string         `json:"staff_name"`
	Score        Score          `json:"score"`
	RawScore     string         `json:"sop_score"` // as received, for display
	Extra        map[string]any `json:"extra,omitempty"`
}

// knownFields are lifted into struct fields during decoding.
var knownFields = map[string]bool{
	"id":            true,
	"call_datetime": true,
	"staff_name":    true,
	"sop_score":     true,
}

// UnmarshalJSON decodes an upstream record. The id may be a JSON number or
// string, and sop_score may be a number, an "N/A" marker, or a fraction
// string; both are normalized here so the rest of the pipeline never
// inspects raw JSON again. Decoding a score is total and never fails.
func (l *CallLog) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if v, ok := fields["id"]; ok {
		l.ID = stringifyID(v)
	}
	if v, ok := fields["call_datetime"].(string); ok {
		l.CallDatetime = v
	}
	if v, ok := fields["staff_name"].(string); ok {
		l.StaffName = v
	}

	switch v := fields["sop_score"].(type) {
	case float64:
		l.Score = ScoreFromNumber(v)
		l.RawScore = formatNumber(v)
	case string:
		l.Score = ParseScore(v)
		l.RawScore = v
	default:
		l.Score = Score{Kind: ScoreUnscored}
		l.RawScore = ""
	}

	for k, v := range fields {
		if knownFields[k] {
			continue
		}
		if l.Extra == nil {
			l.Extra = make(map[string]any)
		}
		l.Extra[k] = v
	}
	return nil
}

// MarshalJSON writes the record back in the upstream shape, so serialized
// records round-trip through UnmarshalJSON.
func (l CallLog) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(l.Extra)+4)
	for k, v := range l.Extra {
		fields[k] = v
	}
	if l.ID != "" {
		fields["id"] = l.ID
	}
	fields["call_datetime"] = l.CallDatetime
	fields["staff_name"] = l.StaffName
	fields["sop_score"] = l.RawScore
	return json.Marshal(fields)
}

// Key returns a stable reference for the record: the upstream id when
// present, otherwise a short content hash so records without ids can still
// be opened in the detail view.
func (l *CallLog) Key() string {
	if l.ID != "" {
		return l.ID
	}
	sum := blake3.Sum256([]byte(l.CallDatetime + "\x00" + l.StaffName + "\x00" + l.RawScore))
	return hex.EncodeToString(sum[:6])
}

// datetimeLayouts covers the ISO-8601-ish forms seen from the API.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp parses call_datetime leniently. ok is false when no layout
// matches; callers degrade rather than error.
func (l *CallLog) Timestamp() (time.Time, bool) {
	s := strings.TrimSpace(l.CallDatetime)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day returns the local calendar date (YYYY-MM-DD) of the call, or "" when
// the timestamp cannot be parsed. Date filtering compares these strings.
func (l *CallLog) Day() string {
	t, ok := l.Timestamp()
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// SortLogs orders records newest-first for the table, using a three-tier
// comparator: numeric ids descending when both parse, then lexicographic
// ids descending, then call_datetime descending. A record with an id sorts
// ahead of one without, regardless of dates.
func SortLogs(logs []CallLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return moreRecent(&logs[i], &logs[j])
	})
}

func moreRecent(a, b *CallLog) bool {
	switch {
	case a.ID != "" && b.ID != "":
		na, errA := strconv.ParseFloat(a.ID, 64)
		nb, errB := strconv.ParseFloat(b.ID, 64)
		if errA == nil && errB == nil {
			return na > nb
		}
		return a.ID > b.ID
	case a.ID != "":
		return true
	case b.ID != "":
		return false
	}
	ta, okA := a.Timestamp()
	tb, okB := b.Timestamp()
	if okA && okB {
		return ta.After(tb)
	}
	return okA && !okB
}

func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return formatNumber(id)
	default:
		return ""
	}
}

// formatNumber renders a JSON number the way it was written: no exponent,
// no trailing zeros.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
