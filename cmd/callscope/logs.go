package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nchandra/callscope/internal/output"
	"github.com/nchandra/callscope/pkg/models"
	"github.com/urfave/cli/v2"
)

func logsCmd() *cli.Command {
	return &cli.Command{
		Name:    "logs",
		Aliases: []string{"ls"},
		Usage:   "List reviewed calls, newest first",
		Flags: append(criteriaFlags(),
			&cli.IntFlag{
				Name:  "limit",
				Value: 0,
				Usage: "Show at most N records (0 = all)",
			},
		),
		Action: runLogsCmd,
	}
}

func runLogsCmd(c *cli.Context) error {
	view, crit, cfg, err := fetchView(c, false)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	total := len(view)
	if limit := c.Int("limit"); limit > 0 && len(view) > limit {
		view = view[:limit]
	}

	scored := 0
	rows := make([][]string, 0, len(view))
	for i := range view {
		l := &view[i]
		if _, ok := l.Score.Normalized(); ok {
			scored++
		}
		rows = append(rows, []string{
			l.Key(),
			l.CallDatetime,
			l.StaffName,
			scoreCell(l, formatter.Colored()),
			l.RawScore,
		})
	}

	return formatter.Output(output.NewTable(
		titled("Call Logs", crit),
		[]string{"Key", "Date/Time", "Staff", "Score", "Raw"},
		rows,
		[]string{fmt.Sprintf("Total: %d", total), "", "", fmt.Sprintf("Scored: %d", scored), ""},
		view,
	))
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show every field of one call record",
		ArgsUsage: "<key>",
		Action:    runShowCmd,
	}
}

func runShowCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("show takes exactly one record key (see `callscope logs`)")
	}
	key := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logs, err := fetchLogs(c.Context, cfg)
	if err != nil {
		return err
	}

	// Keys resolve against the full set; the record need not match any
	// filter to be inspectable.
	var rec *models.CallLog
	for i := range logs {
		if logs[i].Key() == key {
			rec = &logs[i]
			break
		}
	}
	if rec == nil {
		return fmt.Errorf("no call record with key %q", key)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{"Key", rec.Key()},
		{"Date/Time", rec.CallDatetime},
		{"Staff", rec.StaffName},
		{"Score", scoreCell(rec, formatter.Colored())},
		{"Raw score", rec.RawScore},
	}
	if _, scale, ok := rec.Score.Native(); ok && scale != 10 {
		rows = append(rows, []string{"Rubric", fmt.Sprintf("%g-point", scale)})
	}

	extraKeys := make([]string, 0, len(rec.Extra))
	for k := range rec.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		rows = append(rows, []string{displayField(k), displayValue(k, rec.Extra[k])})
	}

	return formatter.Output(output.NewTable("Call Record", []string{"Field", "Value"}, rows, nil, rec))
}

// displayField turns an upstream snake_case field into a label.
func displayField(k string) string {
	words := strings.Split(k, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// displayValue formats an extra field, masking customer phone numbers.
// Nested objects and arrays keep their JSON form.
func displayValue(key string, v any) string {
	var s string
	switch v.(type) {
	case map[string]any, []any:
		if b, err := json.Marshal(v); err == nil {
			s = string(b)
		} else {
			s = fmt.Sprintf("%v", v)
		}
	default:
		s = fmt.Sprintf("%v", v)
	}
	if key == "customer_number" {
		return maskNumber(s)
	}
	return s
}

// maskNumber hides all but the last three digits.
func maskNumber(s string) string {
	runes := []rune(s)
	digitsSeen := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] < '0' || runes[i] > '9' {
			continue
		}
		digitsSeen++
		if digitsSeen > 3 {
			runes[i] = '*'
		}
	}
	return string(runes)
}
