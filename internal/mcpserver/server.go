package mcpserver

import (
	"context"
	"fmt"
	"time"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
	logger "github.com/inference-gateway/costgate/internal/logger"
	services "github.com/inference-gateway/costgate/internal/services"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is the implementation name advertised during MCP initialization.
const ServerName = "costgate"

// Server exposes the estimators as MCP tools and routes approvals through elicitation.
type Server struct {
	server    *mcp.Server
	costModel *services.CostModel
	budget    *services.BudgetCalculator
	scanner   domain.Scanner
	timeout   time.Duration

	// gateFor builds the approval gate for the session that issued a tool call.
	gateFor func(session *mcp.ServerSession) *services.ApprovalGate
}

// NewServer creates the MCP server and registers its tools
func NewServer(cfg *config.Config, version string, costModel *services.CostModel, budget *services.BudgetCalculator, scanner domain.Scanner) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil),
		costModel: costModel,
		budget:    budget,
		scanner:   scanner,
		timeout:   time.Duration(cfg.Approval.Timeout) * time.Second,
	}

	s.gateFor = func(session *mcp.ServerSession) *services.ApprovalGate {
		return services.NewApprovalGate(NewElicitationApprover(session, s.timeout))
	}

	s.registerTools()
	return s
}

// MCPServer returns the underlying SDK server
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Run serves MCP requests on transport until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	logger.Info("MCP server starting", "name", ServerName, "approval_timeout", s.timeout.String())

	if err := s.server.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}

	logger.Info("MCP server stopped")
	return nil
}

// RunStdio serves MCP over stdin/stdout.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}
