// OllamaClient calls the Ollama REST API using stdlib net/http.
// Endpoints used (relative to the configured base URL, which already
// carries the /api prefix, e.g. http://localhost:11434/api):
//   - POST /generate: single non-streaming generation
//   - GET  /tags: health check (lists available models)
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/infra/config"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"

	pathGenerate = "/generate"
	pathTags     = "/tags"

	maxResponseBody = 32 << 20
)

// OllamaClient implements InferenceClient against a running Ollama instance.
// It holds no per-call state and is safe for concurrent use.
type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOllamaClient validates baseURL and returns a client. A zero timeout
// leaves the transport defaults in place (no client-side deadline).
func NewOllamaClient(baseURL string, timeout time.Duration) (*OllamaClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, &config.ConfigurationError{Field: config.EnvOllamaURL, Reason: "is required"}
	}
	return &OllamaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Infer sends one generate call and returns the response text with
// surrounding whitespace removed.
func (c *OllamaClient) Infer(ctx context.Context, model, prompt string, images ...string) (string, error) {
	resp, err := c.Generate(ctx, GenerateRequest{Model: model, Prompt: prompt, Images: images})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Response), nil
}

// Generate performs POST /generate with stream forced to false.
func (c *OllamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	req.Stream = false

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ollama generate: encode request: %w", err)
	}

	log.WithFields(log.Fields{
		"model":         req.Model,
		"prompt_length": len(req.Prompt),
		"images":        len(req.Images),
	}).Debug("sending generate request")

	raw, err := c.doPost(ctx, pathGenerate, body)
	if err != nil {
		return nil, err
	}
	return decodeGenerateResponse(raw)
}

// HealthCheck calls GET /tags and returns nil if Ollama is reachable.
func (c *OllamaClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathTags, nil)
	if err != nil {
		return fmt.Errorf("ollama healthcheck: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "GET " + pathTags, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return transportError(resp)
	}
	return nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func validateRequest(req GenerateRequest) error {
	if strings.TrimSpace(req.Model) == "" {
		return &config.ConfigurationError{Field: "model", Reason: "must be non-empty"}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return &config.ConfigurationError{Field: "prompt", Reason: "must be non-empty"}
	}
	return nil
}

// doPost sends a POST request to baseURL+path and returns the full body of a
// 2xx response.
func (c *OllamaClient) doPost(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama post %s: build request: %w", path, err)
	}
	req.Header.Set(headerContentType, mimeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, transportError(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &NetworkError{Op: "read " + path + " body", Err: err}
	}
	return raw, nil
}

func transportError(resp *http.Response) *TransportError {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &TransportError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       truncate(strings.TrimSpace(string(snippet)), maxErrorBody),
	}
}

func decodeGenerateResponse(raw []byte) (*GenerateResponse, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &MalformedResponseError{Reason: "body is not a JSON object", Err: err}
	}
	field, ok := envelope["response"]
	if !ok {
		return nil, &MalformedResponseError{Reason: `missing "response" field`}
	}

	var out GenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedResponseError{Reason: "envelope fields have unexpected types", Err: err}
	}
	if strings.TrimSpace(out.Response) == "" {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf(`empty "response" field (%s)`, truncate(string(field), 32))}
	}
	return &out, nil
}
