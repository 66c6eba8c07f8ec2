package main

import (
	"testing"
	"time"

	"github.com/nchandra/callscope/pkg/filter"
	"github.com/urfave/cli/v2"
)

// runWithFlags runs fn inside a cli action so flag parsing matches real
// invocations.
func runWithFlags(t *testing.T, args []string, fn func(c *cli.Context)) {
	t.Helper()
	app := &cli.App{
		Flags: criteriaFlags(),
		Action: func(c *cli.Context) error {
			fn(c)
			return nil
		},
	}
	if err := app.Run(append([]string{"callscope"}, args...)); err != nil {
		t.Fatalf("app.Run() error: %v", err)
	}
}

func TestBuildCriteria(t *testing.T) {
	t.Run("explicit_range", func(t *testing.T) {
		runWithFlags(t, []string{"--from", "2025-03-01", "--to", "2025-03-07", "--staff", "priya"}, func(c *cli.Context) {
			crit, err := buildCriteria(c, true)
			if err != nil {
				t.Fatalf("buildCriteria() error: %v", err)
			}
			want := filter.Criteria{From: "2025-03-01", To: "2025-03-07", Staff: "priya"}
			if crit != want {
				t.Errorf("criteria = %+v, want %+v", crit, want)
			}
		})
	})

	t.Run("date_pins_both_bounds", func(t *testing.T) {
		runWithFlags(t, []string{"--date", "2025-03-14", "--from", "2025-01-01"}, func(c *cli.Context) {
			crit, err := buildCriteria(c, false)
			if err != nil {
				t.Fatalf("buildCriteria() error: %v", err)
			}
			if crit.From != "2025-03-14" || crit.To != "2025-03-14" {
				t.Errorf("criteria = %+v", crit)
			}
		})
	})

	t.Run("default_today", func(t *testing.T) {
		runWithFlags(t, nil, func(c *cli.Context) {
			crit, err := buildCriteria(c, true)
			if err != nil {
				t.Fatalf("buildCriteria() error: %v", err)
			}
			today := time.Now().Format("2006-01-02")
			if crit.From != today || crit.To != today {
				t.Errorf("criteria = %+v, want pinned to %s", crit, today)
			}
		})
	})

	t.Run("all_overrides_default_today", func(t *testing.T) {
		runWithFlags(t, []string{"--all"}, func(c *cli.Context) {
			crit, err := buildCriteria(c, true)
			if err != nil {
				t.Fatalf("buildCriteria() error: %v", err)
			}
			if !crit.IsZero() {
				t.Errorf("criteria = %+v, want zero", crit)
			}
		})
	})

	t.Run("invalid_date", func(t *testing.T) {
		runWithFlags(t, []string{"--date", "14/03/2025"}, func(c *cli.Context) {
			if _, err := buildCriteria(c, false); err == nil {
				t.Error("buildCriteria() should reject non-ISO dates")
			}
		})
	})
}

func TestDescribeCriteria(t *testing.T) {
	tests := []struct {
		name string
		crit filter.Criteria
		want string
	}{
		{"empty", filter.Criteria{}, ""},
		{"exact_date", filter.ExactDate("2025-03-14"), "2025-03-14"},
		{"range", filter.Criteria{From: "2025-03-01", To: "2025-03-07"}, "2025-03-01 to 2025-03-07"},
		{"open_start", filter.Criteria{To: "2025-03-07"}, "start to 2025-03-07"},
		{"combined", filter.Criteria{From: "2025-03-14", To: "2025-03-14", Staff: "priya"}, "2025-03-14, staff ~ priya"},
		{"score_only", filter.Criteria{Score: "8"}, "score ~ 8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeCriteria(tt.crit); got != tt.want {
				t.Errorf("describeCriteria() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "*******210"},
		{"+91 98765 43210", "+** ***** **210"},
		{"210", "210"},
		{"", ""},
		{"anonymous", "anonymous"},
	}

	for _, tt := range tests {
		if got := maskNumber(tt.in); got != tt.want {
			t.Errorf("maskNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		name string
		key  string
		in   any
		want string
	}{
		{"string", "call_summary", "customer asked about billing", "customer asked about billing"},
		{"number", "duration_seconds", float64(245), "245"},
		{"bool", "escalated", true, "true"},
		{"object", "tags", map[string]any{"priority": "high"}, `{"priority":"high"}`},
		{"array", "topics", []any{"billing", "refund"}, `["billing","refund"]`},
		{"masked_number", "customer_number", "9876543210", "*******210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayValue(tt.key, tt.in); got != tt.want {
				t.Errorf("displayValue(%q, %v) = %q, want %q", tt.key, tt.in, got, tt.want)
			}
		})
	}
}

func TestDisplayField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"call_summary", "Call Summary"},
		{"customer_number", "Customer Number"},
		{"category", "Category"},
	}

	for _, tt := range tests {
		if got := displayField(tt.in); got != tt.want {
			t.Errorf("displayField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
