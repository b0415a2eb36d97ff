package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

var (
	ErrMissingAPIKey = errors.New("XAI_API_KEY environment variable not set")
	ErrEmptyQuery    = errors.New("query must not be empty")
	ErrInvalidDepth  = errors.New("invalid depth")
	ErrSearchFailed  = errors.New("search failed")
)

// maxLoggedQuery bounds how much of the query is written to the log.
const maxLoggedQuery = 100

// Input type for the agentic_search tool
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query or question to research"`
	Depth Depth  `json:"depth,omitempty" jsonschema:"search depth: standard (fast, default) or deep (thorough reasoning for complex multi-faceted research)"`
}

// SearchResult is the structured output of the agentic_search tool
type SearchResult struct {
	Result      string   `json:"result" jsonschema:"the answer text"`
	Citations   []string `json:"citations" jsonschema:"source URLs backing the answer"`
	SourceCount int      `json:"source_count" jsonschema:"number of citations"`
	ModelUsed   string   `json:"model_used" jsonschema:"the model that produced the answer"`
	Depth       string   `json:"depth" jsonschema:"the search depth that was used"`
}

// NewSearchResult builds the tool output from a backend completion.
func NewSearchResult(completion *Completion, profile Profile, depth Depth) SearchResult {
	citations := []string{}
	content := ""
	if completion != nil {
		content = completion.Content
		if completion.Citations != nil {
			citations = completion.Citations
		}
	}
	return SearchResult{
		Result:      content,
		Citations:   citations,
		SourceCount: len(citations),
		ModelUsed:   profile.Model,
		Depth:       string(depth),
	}
}

// FormatText renders a result as plain text: the answer, followed by a
// citations block when there is at least one citation.
func FormatText(result SearchResult) string {
	if len(result.Citations) == 0 {
		return result.Result
	}
	var b strings.Builder
	b.WriteString(result.Result)
	b.WriteString("\n\n---\nCitations:\n")
	for i, citation := range result.Citations {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(citation)
	}
	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// NewAgenticSearchHandler creates the agentic_search handler. cfg is read
// once at startup; factory builds a fresh backend client for every call.
func NewAgenticSearchHandler(cfg Config, factory ClientFactory, log zerolog.Logger) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, SearchResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchResult, error) {
		query := strings.TrimSpace(input.Query)
		if query == "" {
			return nil, SearchResult{}, ErrEmptyQuery
		}
		profile, err := ProfileFor(input.Depth)
		if err != nil {
			return nil, SearchResult{}, err
		}
		depth := profile.Depth

		searchID := uuid.NewString()
		searchLog := log.With().
			Str("search_id", searchID).
			Str("depth", string(depth)).
			Str("model", profile.Model).
			Logger()
		searchLog.Info().Str("query", truncate(query, maxLoggedQuery)).Msg("Starting search")

		fail := func(err error) (*mcp.CallToolResult, SearchResult, error) {
			searchLog.Error().Err(err).Msgf("Error during %s search", depth)
			return nil, SearchResult{}, fmt.Errorf("%w: %w", ErrSearchFailed, err)
		}

		if cfg.APIKey == "" {
			return fail(ErrMissingAPIKey)
		}

		client, err := factory(cfg, searchLog)
		if err != nil {
			return fail(err)
		}

		ctx, cancel := context.WithTimeout(ctx, profile.Timeout)
		defer cancel()

		completion, err := client.Search(ctx, Query{
			Text:     query,
			Profile:  profile,
			SearchID: searchID,
		})
		if err != nil {
			return fail(err)
		}

		result := NewSearchResult(completion, profile, depth)

		done := searchLog.Info().Int("citations", result.SourceCount)
		if depth == DepthDeep && completion != nil && completion.HasUsage {
			done = done.Int64("reasoning_tokens", completion.ReasoningTokens)
		}
		done.Msg("Search completed")

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: FormatText(result)}},
		}, result, nil
	}
}
