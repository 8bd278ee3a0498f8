package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SimulateResponse is the structured output of the simulate tool.
type SimulateResponse struct {
	Result   domain.RunResult `json:"result" jsonschema_description:"The finished run, including every instantaneous description"`
	Accepted bool             `json:"accepted" jsonschema_description:"True when the machine halted in an accepting state"`
}

// Machine is the compiled machine exposed over MCP. *turing.Machine satisfies it.
type Machine interface {
	Definition() *domain.Definition
	Run(ctx context.Context, inputs []string, opts ...runner.Option) ([]domain.RunResult, error)
}

// Server wraps a machine and exposes it as an MCP Server.
type Server struct {
	machine   Machine
	store     ports.ResultStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithStore archives the results of every simulate call.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets the structured logger. MCP over stdio owns stdout, so it must not write there.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(m Machine, opts ...Option) *Server {
	s := &Server{
		machine:   m,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run the machine on one input string and return the verdict, final tape and every instantaneous description."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; each character is one tape symbol. May be empty.")),
		mcp.WithNumber("step_limit", mcp.Description("Maximum number of transitions before the run is reported as timed out (optional)")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: describe_machine
	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Get the machine definition: states, alphabets, blank, initial and accepting states, transitions."),
	), s.handleDescribe)

	// TOOL: machine_graph
	s.mcpServer.AddTool(mcp.NewTool("machine_graph",
		mcp.WithDescription("Get the state diagram of the machine in Mermaid syntax."),
	), s.handleGraph)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	input, _ := args["input"].(string)

	clean, err := runner.SanitizeInput(input)
	if err != nil {
		s.logger.Warn("MCP Simulate: Input rejected", "error", err, "size", len(input))
		return SimulateResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	var opts []runner.Option
	if limit, ok := args["step_limit"].(float64); ok && limit > 0 {
		opts = append(opts, runner.WithStepLimit(int(limit)))
	}
	if s.store != nil {
		opts = append(opts, runner.WithStore(s.store))
	}

	results, err := s.machine.Run(ctx, []string{clean}, opts...)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}

	res := results[0]
	s.logger.Debug("MCP Simulate", "input", clean, "outcome", res.Outcome, "steps", res.Steps)
	return SimulateResponse{Result: res, Accepted: res.Accepted()}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.machine.Definition())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(graph.GenerateMermaid(s.machine.Definition(), nil)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: turing://machine
	s.mcpServer.AddResource(mcp.NewResource("turing://machine", "Machine Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.machine.Definition())
		if err != nil {
			return nil, fmt.Errorf("failed to encode machine: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "turing://machine",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: turing://graph
	s.mcpServer.AddResource(mcp.NewResource("turing://graph", "Machine State Diagram",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "turing://graph",
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(s.machine.Definition(), nil),
			},
		}, nil
	})
}
