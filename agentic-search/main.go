package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const (
	serverName    = "agentic-search"
	serverVersion = "v1.0.0"
	toolName      = "agentic_search"
)

const toolDescription = `Perform a deep, reasoned search across the web and social media (X).
Iteratively analyzes results and makes follow-up queries to find comprehensive, up-to-date information with citations.
Use depth "standard" (default) for fast lookups of news, posts and sentiment.
Use depth "deep" for complex multi-faceted research, academic questions, or when standard results are insufficient.`

// searchInputSchema is the schema inferred from SearchInput, with depth
// narrowed to its two values and defaulted to standard.
func searchInputSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[SearchInput](nil)
	if err != nil {
		return nil, err
	}
	depth, ok := schema.Properties["depth"]
	if !ok {
		return nil, fmt.Errorf("input schema has no depth property")
	}
	depth.Enum = []any{string(DepthStandard), string(DepthDeep)}
	depth.Default = json.RawMessage(`"` + string(DepthStandard) + `"`)
	return schema, nil
}

// NewServer creates the MCP server with the agentic_search tool registered.
func NewServer(cfg Config, factory ClientFactory, logger zerolog.Logger) (*mcp.Server, error) {
	inputSchema, err := searchInputSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build input schema: %w", err)
	}

	openWorld := true
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        toolName,
		Title:       "Agentic Search",
		Description: toolDescription,
		InputSchema: inputSchema,
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: &openWorld,
		},
	}, NewAgenticSearchHandler(cfg, factory, logger))
	return server, nil
}

func main() {
	cfg := LoadConfig()

	logger, closeLog, err := NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	if cfg.APIKey == "" {
		logger.Warn().Msg("XAI_API_KEY environment variable not set, searches will fail")
	}

	server, err := NewServer(cfg, NewXAIClientFactory(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("base_url", cfg.BaseURL).Msg("Starting Agentic Search MCP server")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Server stopped")
		stop()
		closeLog()
		os.Exit(1)
	}
}
