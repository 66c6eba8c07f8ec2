package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nchandra/callscope/internal/client"
	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/nchandra/callscope/pkg/filter"
	"github.com/nchandra/callscope/pkg/models"
	toon "github.com/toon-format/toon-go"
)

// FilterInput is the shared filter block of all tools. Semantics match the
// terminal commands: blank means no constraint.
type FilterInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Exact local date YYYY-MM-DD. Shorthand for from=to."`
	From  string `json:"from,omitempty" jsonschema:"Inclusive start date YYYY-MM-DD."`
	To    string `json:"to,omitempty" jsonschema:"Inclusive end date YYYY-MM-DD."`
	Staff string `json:"staff,omitempty" jsonschema:"Case-insensitive substring of the staff name."`
	Score string `json:"score,omitempty" jsonschema:"Substring of the floored normalized score, e.g. 8."`
}

// ListInput adds list options.
type ListInput struct {
	FilterInput
	Limit int `json:"limit,omitempty" jsonschema:"Return at most N records, newest first. Default 50."`
}

// SummarizeInput adds summary options.
type SummarizeInput struct {
	FilterInput
	ByScale bool `json:"by_scale,omitempty" jsonschema:"Also break scores down by their native scale (10, 13, 16 point)."`
}

func criteriaFrom(in FilterInput) filter.Criteria {
	c := filter.Criteria{From: in.From, To: in.To, Staff: in.Staff, Score: in.Score}
	if in.Date != "" {
		c.From, c.To = in.Date, in.Date
	}
	return c
}

func (s *Server) load(ctx context.Context, in FilterInput) ([]models.CallLog, error) {
	logs, err := s.client.FetchAll(ctx, client.Query{})
	if err != nil {
		return nil, err
	}
	view := filter.Apply(logs, criteriaFrom(in))
	models.SortLogs(view)
	return view, nil
}

// logEntry is the per-record tool output: the raw fields plus the normalized
// score so agents never reimplement scale conversion.
type logEntry struct {
	Key        string  `json:"key" toon:"key"`
	Datetime   string  `json:"datetime" toon:"datetime"`
	Staff      string  `json:"staff" toon:"staff"`
	RawScore   string  `json:"raw_score" toon:"raw_score"`
	Normalized float64 `json:"normalized" toon:"normalized"`
	Scored     bool    `json:"scored" toon:"scored"`
	Band       string  `json:"band" toon:"band"`
}

func toEntries(logs []models.CallLog) []logEntry {
	entries := make([]logEntry, 0, len(logs))
	for i := range logs {
		l := logs[i]
		e := logEntry{
			Key:      l.Key(),
			Datetime: l.CallDatetime,
			Staff:    l.StaffName,
			RawScore: l.RawScore,
			Band:     string(l.Score.ScoreBand()),
		}
		if n, ok := l.Score.Normalized(); ok {
			e.Normalized = n
			e.Scored = true
		}
		entries = append(entries, e)
	}
	return entries
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) handleListCallLogs(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, any, error) {
	logs, err := s.load(ctx, input.FilterInput)
	if err != nil {
		return toolError(err.Error())
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	total := len(logs)
	if len(logs) > limit {
		logs = logs[:limit]
	}

	out := struct {
		Total int        `json:"total" toon:"total"`
		Logs  []logEntry `json:"logs" toon:"logs"`
	}{total, toEntries(logs)}
	return toolResult(out)
}

func (s *Server) handleSummarizeScores(ctx context.Context, req *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, any, error) {
	logs, err := s.load(ctx, input.FilterInput)
	if err != nil {
		return toolError(err.Error())
	}

	summary := aggregate.Summarize(logs)
	out := struct {
		Average  float64            `json:"average" toon:"average"`
		Scored   int                `json:"scored" toon:"scored"`
		Unscored int                `json:"unscored" toon:"unscored"`
		Top      *logEntry          `json:"top,omitempty" toon:"top,omitempty"`
		Bottom   *logEntry          `json:"bottom,omitempty" toon:"bottom,omitempty"`
		ByScale  map[string]float64 `json:"by_scale,omitempty" toon:"by_scale,omitempty"`
	}{
		Average:  summary.Average,
		Scored:   summary.Scored,
		Unscored: summary.Unscored,
	}
	if summary.Top != nil {
		entries := toEntries([]models.CallLog{*summary.Top})
		out.Top = &entries[0]
	}
	if summary.Bottom != nil {
		entries := toEntries([]models.CallLog{*summary.Bottom})
		out.Bottom = &entries[0]
	}
	if input.ByScale {
		out.ByScale = make(map[string]float64)
		for scale, s := range aggregate.SummarizeByScale(logs) {
			out.ByScale[fmt.Sprintf("%d-point", scale)] = s.Average
		}
	}
	return toolResult(out)
}

func (s *Server) handleStaffPerformance(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, any, error) {
	logs, err := s.load(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Staff []aggregate.StaffScore `json:"staff" toon:"staff"`
	}{aggregate.StaffAverages(logs)}
	return toolResult(out)
}

func (s *Server) handleScoreTrend(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, any, error) {
	logs, err := s.load(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(aggregate.DailyTrend(logs))
}
