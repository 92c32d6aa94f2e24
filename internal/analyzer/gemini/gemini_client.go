package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clausegenie/internal/analyzer"
	"clausegenie/internal/config"
	"clausegenie/internal/domain"
	"clausegenie/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	backoffBase       = 2 * time.Second
	backoffMultiplier = 2
	maxBackoff        = 30 * time.Second
)

// Client implements port.Analyzer against Google's Gemini generateContent API.
type Client struct {
	apiKey      string
	model       string
	endpoint    string
	maxRetries  int
	temperature float64
	client      *http.Client
}

// NewClient creates a Gemini-backed analyzer.
func NewClient(cfg *config.AnalyzerConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.AnalyzerConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.AnalyzerConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		endpoint:    endpoint,
		maxRetries:  maxRetries,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

// Analyze sends the document for schema-constrained structured analysis and
// validates the response against the contract.
func (c *Client) Analyze(ctx context.Context, input port.AnalyzeInput) (*domain.AnalysisResult, error) {
	req := analyzer.BuildAnalysisRequest(input.DocumentName, input.DocumentText)
	body, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return analyzer.InterpretAnalysis(body)
}

// Answer sends one grounded follow-up question. Interpretation never fails:
// a degraded answer is preferable to a hard error mid-conversation.
func (c *Client) Answer(ctx context.Context, input port.AnswerInput) (string, error) {
	req := analyzer.BuildFollowUpRequest(input.DocumentText, input.Question, c.temperature)
	body, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return analyzer.InterpretAnswer(body), nil
}

// generate issues the generateContent call with bounded retry on 429/5xx.
func (c *Client) generate(ctx context.Context, req analyzer.Request) ([]byte, error) {
	payload := buildPayload(req)
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	backoff := backoffBase
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		respBody, err := c.doOnce(ctx, bodyBytes)
		if err == nil {
			return respBody, nil
		}
		lastErr = err
		if !retryable(err) || attempt == c.maxRetries {
			return nil, err
		}

		wait := backoff
		var rlErr *analyzer.RateLimitError
		if errors.As(err, &rlErr) && rlErr.RetryAfter < wait {
			wait = rlErr.RetryAfter
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		backoff *= backoffMultiplier
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return respBody, nil
	case resp.StatusCode == http.StatusForbidden:
		return nil, &analyzer.CredentialError{StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := analyzer.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, analyzer.NewRateLimitError(
			fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody)),
			retryAfter,
		)
	default:
		return nil, &analyzer.TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
}

func buildPayload(req analyzer.Request) map[string]interface{} {
	generationConfig := map[string]interface{}{}
	if req.Schema != nil {
		generationConfig["responseMimeType"] = "application/json"
		generationConfig["responseSchema"] = req.Schema
	}
	if req.Temperature != nil {
		generationConfig["temperature"] = *req.Temperature
	}

	return map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": req.UserQuery},
				},
			},
		},
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]interface{}{
				{"text": req.SystemPrompt},
			},
		},
		"generationConfig": generationConfig,
	}
}

func retryable(err error) bool {
	var rlErr *analyzer.RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}
	var tErr *analyzer.TransportError
	if errors.As(err, &tErr) {
		return tErr.StatusCode >= 500
	}
	return false
}
