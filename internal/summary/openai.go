package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4"
	DefaultOpenAITimeout = 30 * time.Second
)

//go:generate mockgen -source=$GOFILE -destination=generator_mocks_test.go -package=summary_test

// Generator writes the summary text for one week of workouts.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type OpenAIClientParams struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIClient talks to an OpenAI compatible chat completions endpoint.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewOpenAIClient(params OpenAIClientParams) *OpenAIClient {
	if params.BaseURL == "" {
		params.BaseURL = DefaultOpenAIBaseURL
	}
	if params.Model == "" {
		params.Model = DefaultOpenAIModel
	}
	if params.Timeout <= 0 {
		params.Timeout = DefaultOpenAITimeout
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		apiKey:  params.APIKey,
		model:   params.Model,
		http: &http.Client{
			Timeout:   params.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "openai.summary.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("model", c.model),
		attribute.Int("workouts", len(req.Workouts)),
	)

	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(chatCompletionRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, httpResp.StatusCode, string(respBody))
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptySummary
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptySummary
	}

	return text, nil
}
