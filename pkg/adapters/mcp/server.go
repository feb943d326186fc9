package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/timescript"
	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/export"
)

// GrammarURI is the resource describing the statement forms.
const GrammarURI = "timescript://grammar"

// Engine defines the operations the MCP server exposes.
type Engine interface {
	Compile(ctx context.Context, source string) (*domain.Compilation, error)
	Validate(ctx context.Context, source string) []domain.Diagnostic
	Export(ctx context.Context, source string, format export.Format) ([]byte, error)
}

// CompileResponse is the structured result of compile_script.
type CompileResponse struct {
	Format   string              `json:"format" jsonschema_description:"Encoding of output: json, yaml or engine"`
	Output   string              `json:"output" jsonschema_description:"The encoded document"`
	Nodes    int                 `json:"nodes" jsonschema_description:"Number of top-level nodes"`
	Warnings []domain.Diagnostic `json:"warnings" jsonschema_description:"Lines the compiler skipped"`
}

// ValidateResponse is the structured result of validate_script.
type ValidateResponse struct {
	Valid       bool                `json:"valid" jsonschema_description:"True when no error was reported"`
	Errors      int                 `json:"errors"`
	Warnings    int                 `json:"warnings"`
	Diagnostics []domain.Diagnostic `json:"diagnostics"`
}

type compileArgs struct {
	Source string `mapstructure:"source"`
	Format string `mapstructure:"format"`
}

type validateArgs struct {
	Source string `mapstructure:"source"`
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("timescript-mcp", timescript.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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
	// TOOL: compile_script
	compileTool := mcp.NewTool("compile_script",
		mcp.WithDescription("Compile TimeScript source into a dialogue document."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The TimeScript source text")),
		mcp.WithString("format", mcp.Description("Output encoding: json (default), yaml or engine")),
		mcp.WithOutputSchema[CompileResponse](),
	)
	s.mcpServer.AddTool(compileTool, mcp.NewStructuredToolHandler(s.handleCompile))

	// TOOL: validate_script
	validateTool := mcp.NewTool("validate_script",
		mcp.WithDescription("Check TimeScript source and list every grammar problem with its line and column."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The TimeScript source text")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CompileResponse, error) {
	var in compileArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return CompileResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}
	format, err := export.ParseFormat(in.Format)
	if err != nil {
		return CompileResponse{}, err
	}

	res, err := s.engine.Compile(ctx, in.Source)
	if err != nil {
		return CompileResponse{}, fmt.Errorf("compile failed: %w", err)
	}
	out, err := export.Encode(res.Document, format)
	if err != nil {
		return CompileResponse{}, fmt.Errorf("encode failed: %w", err)
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []domain.Diagnostic{}
	}
	return CompileResponse{
		Format:   string(format),
		Output:   string(out),
		Nodes:    len(res.Document),
		Warnings: warnings,
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	var in validateArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return ValidateResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}

	diags := s.engine.Validate(ctx, in.Source)
	if diags == nil {
		diags = []domain.Diagnostic{}
	}
	errs := domain.CountSeverity(diags, domain.SeverityError)
	return ValidateResponse{
		Valid:       errs == 0,
		Errors:      errs,
		Warnings:    domain.CountSeverity(diags, domain.SeverityWarning),
		Diagnostics: diags,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: timescript://grammar
	s.mcpServer.AddResource(mcp.NewResource(GrammarURI, "TimeScript Statement Forms",
		mcp.WithMIMEType("text/markdown"),
	), s.readGrammar)
}

func (s *Server) readGrammar(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GrammarURI,
			MIMEType: "text/markdown",
			Text:     grammar,
		},
	}, nil
}

const grammar = "# TimeScript statement forms\n\n" +
	"| Form | Shape |\n" +
	"|------|-------|\n" +
	"| Dialogue | `#[uiType-dataTag]-voice<speaker>~: content {key:value}` |\n" +
	"| Question | `#[Q1-dataTag]-voice<speaker>~: prompt` |\n" +
	"| Option | eight spaces then `-(id)::[uiType-dataTag]-voice<speaker>::<target>~: content` |\n" +
	"| Answer | `#[(A1)-dataTag]-voice<speaker>~(qid):` |\n" +
	"| Conversation | `+#[uiType-dataTag]-voice<speaker>~: content` |\n" +
	"| Conversation end | `#<label> end;` |\n" +
	"| Parameter | `name：value；` (full-width colon and semicolon) |\n\n" +
	"uiType codes: T1 title, ST1 subtitle, D1 dialogue, Q1 question, A/A1 answer, AD1, M1.\n" +
	"voiceType codes: Default, V1, P1, T1.\n\n" +
	"Lines starting with `//` and `/* ... */` blocks are comments.\n"
