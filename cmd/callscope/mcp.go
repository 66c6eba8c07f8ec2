package main

import (
	"fmt"

	"github.com/nchandra/callscope/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes call-quality
views as tools LLMs can invoke, so an assistant can answer questions
about review scores directly from the API.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "callscope": {
        "command": "callscope",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - list_call_logs     Reviewed calls with normalized scores
  - summarize_scores   Highest/lowest/average for a period
  - staff_performance  Per-staff average ranking
  - score_trend        Linear trend over daily averages`,
		Action: runMCPCmd,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP server manifest (server.json)",
				Action: runMCPManifestCmd,
			},
		},
	}
}

func runMCPCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return mcpserver.NewServer(cfg, version).Run(c.Context)
}

func runMCPManifestCmd(c *cli.Context) error {
	raw, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
