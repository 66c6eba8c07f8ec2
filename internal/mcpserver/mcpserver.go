// Package mcpserver exposes the call-quality views as MCP tools over stdio,
// so agents can query review data without scraping terminal output.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nchandra/callscope/internal/client"
	"github.com/nchandra/callscope/pkg/config"
)

// Server wraps the MCP server and the API client the tools share.
type Server struct {
	server *mcp.Server
	client *client.Client
}

// NewServer creates an MCP server with all callscope tools registered. Every
// tool call fetches fresh data; there is no cache to go stale between calls.
func NewServer(cfg *config.Config, version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "callscope",
			Version: version,
		},
		nil,
	)

	s := &Server{
		server: server,
		client: client.New(cfg.API),
	}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_call_logs",
		Description: describeListCallLogs(),
	}, s.handleListCallLogs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_scores",
		Description: describeSummarizeScores(),
	}, s.handleSummarizeScores)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "staff_performance",
		Description: describeStaffPerformance(),
	}, s.handleStaffPerformance)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_trend",
		Description: describeScoreTrend(),
	}, s.handleScoreTrend)
}
