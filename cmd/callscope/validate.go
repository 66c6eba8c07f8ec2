package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/nchandra/callscope/internal/client"
	"github.com/nchandra/callscope/internal/output"
	"github.com/nchandra/callscope/internal/schema"
	"github.com/urfave/cli/v2"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "Check the API response against the call-log record schema",
		Action: runValidateCmd,
	}
}

func runValidateCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	body, err := client.New(cfg.API).Raw(c.Context, client.Query{})
	if err != nil {
		return err
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}
	violations, err := validator.Check(body)
	if err != nil {
		return err
	}

	if len(violations) == 0 {
		color.Green("All records match the call-log schema")
		return nil
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, []string{fmt.Sprintf("%d", v.Index), v.Detail})
	}
	if err := formatter.Output(output.NewTable(
		"Schema Violations",
		[]string{"Record", "Problem"},
		rows,
		nil,
		violations,
	)); err != nil {
		return err
	}
	return fmt.Errorf("%d of the fetched records violate the schema", len(violations))
}
