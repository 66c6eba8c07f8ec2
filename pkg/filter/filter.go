// Package filter applies user criteria to an in-memory call-log set. The
// filter is a pure, order-preserving AND of independent predicates; the
// caller owns sorting.
package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/nchandra/callscope/pkg/models"
)

// Criteria holds the optional filter inputs. A blank field means "no
// constraint", never "match empty".
type Criteria struct {
	From  string `json:"from,omitempty"`  // inclusive local date, YYYY-MM-DD
	To    string `json:"to,omitempty"`    // inclusive local date, YYYY-MM-DD
	Staff string `json:"staff,omitempty"` // case-insensitive substring
	Score string `json:"score,omitempty"` // substring of floored normalized score
}

// IsZero reports whether no constraint is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// ExactDate pins both bounds to a single day, the exact-match mode of the
// date filter expressed through the canonical range mode.
func ExactDate(day string) Criteria {
	return Criteria{From: day, To: day}
}

// Apply filters logs by c, preserving input order. Records whose
// call_datetime cannot be parsed fail any date constraint but never cause
// an error.
func Apply(logs []models.CallLog, c Criteria) []models.CallLog {
	if c.IsZero() {
		out := make([]models.CallLog, len(logs))
		copy(out, logs)
		return out
	}

	out := make([]models.CallLog, 0, len(logs))
	for i := range logs {
		if matches(&logs[i], c) {
			out = append(out, logs[i])
		}
	}
	return out
}

func matches(log *models.CallLog, c Criteria) bool {
	if c.From != "" || c.To != "" {
		day := log.Day()
		if day == "" {
			return false
		}
		if c.From != "" && day < c.From {
			return false
		}
		if c.To != "" && day > c.To {
			return false
		}
	}

	if c.Staff != "" {
		if !strings.Contains(strings.ToLower(log.StaffName), strings.ToLower(c.Staff)) {
			return false
		}
	}

	if c.Score != "" {
		// The score filter is substring comparison against the decimal text
		// of the floored normalized score, so "1" matches both 1 and 10.
		// Unscored calls compare as 0, matching the upstream dashboard.
		n, _ := log.Score.Normalized()
		floored := strconv.Itoa(int(math.Floor(n)))
		if !strings.Contains(floored, c.Score) {
			return false
		}
	}

	return true
}
