package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/respjson"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"github.com/rs/zerolog"
)

// Query is one outbound search: the user's text and the execution profile
// selected for it.
type Query struct {
	Text     string
	Profile  Profile
	SearchID string
}

// Completion is the normalized backend answer.
type Completion struct {
	Content         string
	Citations       []string
	ReasoningTokens int64
	HasUsage        bool
}

// Searcher runs an agentic search against a completion backend.
type Searcher interface {
	Search(ctx context.Context, q Query) (*Completion, error)
}

// ClientFactory constructs a Searcher for a single call.
type ClientFactory func(cfg Config, log zerolog.Logger) (Searcher, error)

// NewXAIClientFactory returns the production factory backed by the xAI
// Responses API.
func NewXAIClientFactory() ClientFactory {
	return func(cfg Config, log zerolog.Logger) (Searcher, error) {
		client, err := NewXAIClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// XAIClient talks to the OpenAI-compatible xAI Responses endpoint with the
// server-side web and X search tools enabled.
type XAIClient struct {
	client openai.Client
	log    zerolog.Logger
}

// NewXAIClient creates a client for cfg. Retries are disabled: a failed
// search is reported, not repeated.
func NewXAIClient(cfg Config, log zerolog.Logger) (*XAIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithMiddleware(makeRequestTraceMiddleware(log)),
	}

	return &XAIClient{
		client: openai.NewClient(opts...),
		log:    log.With().Str("provider", "xai").Logger(),
	}, nil
}

// searchTools is the fixed tool set sent with every request. x_search has no
// counterpart in the OpenAI schema, so the list is written raw.
func searchTools() []map[string]any {
	return []map[string]any{
		{
			"type":                       "web_search",
			"enable_image_understanding": true,
		},
		{
			"type":                       "x_search",
			"enable_image_understanding": true,
			"enable_video_understanding": true,
		},
	}
}

// Search submits q and waits for the final answer.
func (c *XAIClient) Search(ctx context.Context, q Query) (*Completion, error) {
	params := responses.ResponseNewParams{
		Model: q.Profile.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(q.Text, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if q.Profile.ReasoningEffort != "" {
		params.Reasoning = shared.ReasoningParam{
			Effort: shared.ReasoningEffort(q.Profile.ReasoningEffort),
		}
	}

	opts := []option.RequestOption{
		option.WithJSONSet("tools", searchTools()),
		option.WithJSONSet("include", []string{"inline_citations"}),
	}
	if q.Profile.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(q.Profile.Timeout))
	}
	if q.SearchID != "" {
		opts = append(opts, option.WithHeader("x-request-id", q.SearchID))
	}

	resp, err := c.client.Responses.New(ctx, params, opts...)
	if err != nil {
		return nil, err
	}
	return completionFromResponse(resp), nil
}

// completionFromResponse extracts the answer text, the citation URLs and the
// reasoning usage. Citations come from the top-level citations array xAI adds
// and from url_citation annotations; each URL is kept once, first seen first.
func completionFromResponse(resp *responses.Response) *Completion {
	var content strings.Builder
	citations := []string{}
	seen := make(map[string]bool)
	addCitation := func(url string) {
		url = strings.TrimSpace(url)
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		citations = append(citations, url)
	}

	// Unknown keys are kept in ExtraFields but never marked valid.
	if field, ok := resp.JSON.ExtraFields["citations"]; ok {
		var urls []string
		if raw := field.Raw(); raw != "" && raw != respjson.Null && json.Unmarshal([]byte(raw), &urls) == nil {
			for _, url := range urls {
				addCitation(url)
			}
		}
	}

	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type != "output_text" {
				continue
			}
			content.WriteString(part.Text)
			for _, annotation := range part.Annotations {
				if annotation.Type == "url_citation" {
					addCitation(annotation.URL)
				}
			}
		}
	}

	return &Completion{
		Content:         content.String(),
		Citations:       citations,
		ReasoningTokens: resp.Usage.OutputTokensDetails.ReasoningTokens,
		HasUsage:        resp.JSON.Usage.Valid(),
	}
}

// makeRequestTraceMiddleware logs every outbound HTTP exchange at debug
// level. Failures are reported by the caller, so they stay at debug here.
func makeRequestTraceMiddleware(log zerolog.Logger) option.Middleware {
	traceLog := log.With().Str("component", "xai_http").Logger()
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		start := time.Now()
		requestID := req.Header.Get("x-request-id")

		traceLog.Debug().
			Str("request_id", requestID).
			Str("request_method", req.Method).
			Str("request_path", req.URL.Path).
			Msg("Dispatching search request")

		resp, err := next(req)
		event := traceLog.Debug().
			Str("request_id", requestID).
			Int64("elapsed_ms", time.Since(start).Milliseconds())
		if err != nil {
			event.Err(err).Msg("Search request failed")
			return resp, err
		}
		event.Int("status", resp.StatusCode).Msg("Search request finished")
		return resp, nil
	}
}
