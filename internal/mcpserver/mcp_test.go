package mcpserver

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nchandra/callscope/pkg/config"
	"github.com/nchandra/callscope/pkg/models"
)

func TestServerCreation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = "https://reviews.example.com"

	server := NewServer(cfg, "1.0.0-test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
	if server.client == nil {
		t.Fatal("NewServer().client is nil")
	}
}

func TestServerCreationEmptyVersion(t *testing.T) {
	if NewServer(config.DefaultConfig(), "") == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"list_call_logs":    describeListCallLogs,
		"summarize_scores":  describeSummarizeScores,
		"staff_performance": describeStaffPerformance,
		"score_trend":       describeScoreTrend,
	}

	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			if desc == "" {
				t.Errorf("%s description is empty", name)
			}
			if !strings.Contains(desc, "USE WHEN:") {
				t.Errorf("%s description missing USE WHEN section", name)
			}
			if !strings.Contains(desc, "INTERPRETING RESULTS:") {
				t.Errorf("%s description missing INTERPRETING RESULTS section", name)
			}
			if !strings.Contains(desc, "METRICS RETURNED:") {
				t.Errorf("%s description missing METRICS RETURNED section", name)
			}
		})
	}
}

func TestCriteriaFrom(t *testing.T) {
	c := criteriaFrom(FilterInput{From: "2025-03-01", To: "2025-03-07", Staff: "priya", Score: "8"})
	if c.From != "2025-03-01" || c.To != "2025-03-07" {
		t.Errorf("range criteria = %+v", c)
	}
	if c.Staff != "priya" || c.Score != "8" {
		t.Errorf("criteria = %+v", c)
	}

	// date pins both bounds, overriding from/to.
	c = criteriaFrom(FilterInput{Date: "2025-03-14", From: "2025-01-01"})
	if c.From != "2025-03-14" || c.To != "2025-03-14" {
		t.Errorf("exact date criteria = %+v", c)
	}
}

func TestToEntries(t *testing.T) {
	raw := `[
		{"id": 7, "call_datetime": "2025-03-14T10:00:00", "staff_name": "Priya", "sop_score": "10/13"},
		{"call_datetime": "2025-03-14T11:00:00", "staff_name": "Arun", "sop_score": "N/A"}
	]`
	var logs []models.CallLog
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		t.Fatal(err)
	}

	entries := toEntries(logs)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if entries[0].Key != "7" {
		t.Errorf("Key = %q, want 7", entries[0].Key)
	}
	if entries[0].Normalized != 7.7 || !entries[0].Scored {
		t.Errorf("entry 0 = %+v, want normalized 7.7", entries[0])
	}
	if entries[0].Band != "fair" {
		t.Errorf("Band = %q, want fair", entries[0].Band)
	}

	if entries[1].Scored || entries[1].Normalized != 0 {
		t.Errorf("unscored entry = %+v", entries[1])
	}
	if entries[1].Key == "" {
		t.Error("record without id should get a content-hash key")
	}
}

func TestGenerateManifest(t *testing.T) {
	raw, err := GenerateManifest("2.1.0")
	if err != nil {
		t.Fatalf("GenerateManifest() error: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if m.Version != "2.1.0" {
		t.Errorf("Version = %q", m.Version)
	}
	if !strings.Contains(m.Name, "callscope") {
		t.Errorf("Name = %q", m.Name)
	}
}

func TestParseFrontmatter(t *testing.T) {
	content := []byte("---\ndescription: A test prompt.\n---\n\nDo the thing.\n")
	desc, body := parseFrontmatter(content)
	if desc != "A test prompt." {
		t.Errorf("description = %q", desc)
	}
	if body != "Do the thing.\n" {
		t.Errorf("body = %q", body)
	}

	desc, body = parseFrontmatter([]byte("no frontmatter"))
	if desc != "" || body != "no frontmatter" {
		t.Errorf("plain content: desc=%q body=%q", desc, body)
	}
}
