// Unit tests for OllamaClient.
// Uses httptest.NewServer to mock the Ollama HTTP API, no real Ollama needed.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matiasleandrokruk/inferlab/internal/infra/config"
)

func newTestClient(t *testing.T, url string) *OllamaClient {
	t.Helper()
	c, err := NewOllamaClient(url, 0)
	if err != nil {
		t.Fatalf("NewOllamaClient(%q) error = %v", url, err)
	}
	return c
}

// ============================================================================
// Infer tests
// ============================================================================

func TestOllamaClient_Infer_Success_TrimsResponse(t *testing.T) {
	t.Parallel()

	var got GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" || r.Method != http.MethodPost {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			http.Error(w, "bad content type", http.StatusBadRequest)
			return
		}
		json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GenerateResponse{Response: "  success  ", Done: true}) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api")
	text, err := c.Infer(context.Background(), "llava", "describe", "aGVsbG8=")
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if text != "success" {
		t.Errorf("expected trimmed 'success', got %q", text)
	}
	if got.Model != "llava" || got.Prompt != "describe" {
		t.Errorf("unexpected request body: %+v", got)
	}
	if got.Stream {
		t.Error("expected stream=false on the wire")
	}
	if len(got.Images) != 1 || got.Images[0] != "aGVsbG8=" {
		t.Errorf("expected one base64 image, got %v", got.Images)
	}
}

func TestOllamaClient_Infer_TextOnly_OmitsImages(t *testing.T) {
	t.Parallel()

	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw) //nolint:errcheck
		w.Write([]byte(`{"response":"positive"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Infer(context.Background(), "llama3", "hi"); err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if _, ok := raw["images"]; ok {
		t.Errorf("expected no images key for text-only prompt, got %v", raw["images"])
	}
	if stream, ok := raw["stream"].(bool); !ok || stream {
		t.Errorf("expected stream=false to be sent explicitly, got %v", raw["stream"])
	}
}

func TestOllamaClient_Infer_ServerError_ReturnsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Infer(context.Background(), "llama3", "hi")

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T (%v)", err, err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", transportErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "500 Internal Server Error") {
		t.Errorf("expected status code and reason in message, got %q", err.Error())
	}
	if transportErr.Body != "boom" {
		t.Errorf("expected body snippet 'boom', got %q", transportErr.Body)
	}
}

func TestOllamaClient_Infer_EmptyEnvelope_ReturnsMalformedResponseError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Infer(context.Background(), "llama3", "hi")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedResponseError, got %T (%v)", err, err)
	}
}

func TestOllamaClient_Infer_MalformedBodies(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":          `<html>oops</html>`,
		"array":             `[]`,
		"null":              `null`,
		"blank response":    `{"response":"   "}`,
		"non-string answer": `{"response":42}`,
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body)) //nolint:errcheck
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			_, err := c.Infer(context.Background(), "llama3", "hi")
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedResponseError for %q, got %T (%v)", body, err, err)
			}
		})
	}
}

func TestOllamaClient_Infer_ServerDown_ReturnsNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed before the call.

	c := newTestClient(t, srv.URL)
	_, err := c.Infer(context.Background(), "llama3", "hi")

	var networkErr *NetworkError
	if !errors.As(err, &networkErr) {
		t.Fatalf("expected *NetworkError, got %T (%v)", err, err)
	}
	if Outcome(err) != OutcomeNetworkError {
		t.Errorf("expected outcome %q, got %q", OutcomeNetworkError, Outcome(err))
	}
}

func TestOllamaClient_Infer_EmptyArguments_FailBeforeRequest(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"response":"x"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Infer(context.Background(), "", "hi"); !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("empty model: expected configuration error, got %v", err)
	}
	if _, err := c.Infer(context.Background(), "llama3", "  "); !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("empty prompt: expected configuration error, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no HTTP calls, got %d", n)
	}
}

func TestNewOllamaClient_EmptyBaseURL_ReturnsConfigurationError(t *testing.T) {
	t.Parallel()

	_, err := NewOllamaClient("   ", 0)
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.ConfigurationError, got %T (%v)", err, err)
	}
	if cfgErr.Field != config.EnvOllamaURL {
		t.Errorf("expected field %q, got %q", config.EnvOllamaURL, cfgErr.Field)
	}
}

func TestNewOllamaClient_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:11434/api/")
	if c.baseURL != "http://localhost:11434/api" {
		t.Errorf("expected trailing slash trimmed, got %q", c.baseURL)
	}
}

// ============================================================================
// HealthCheck tests
// ============================================================================

func TestOllamaClient_HealthCheck_Healthy(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"models": []any{}}) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api")
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got error: %v", err)
	}
}

func TestOllamaClient_HealthCheck_Unavailable_ReturnsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.HealthCheck(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) || transportErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 TransportError, got %v", err)
	}
}

// ============================================================================
// Outcome tests
// ============================================================================

func TestOutcome_ClassifiesErrorKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&TransportError{StatusCode: 500}, OutcomeTransportError},
		{&MalformedResponseError{Reason: "x"}, OutcomeMalformedResponse},
		{&NetworkError{Op: "POST", Err: errors.New("refused")}, OutcomeNetworkError},
		{&config.ConfigurationError{Field: "model", Reason: "must be non-empty"}, OutcomeInvalidRequest},
	}
	for _, tc := range cases {
		if got := Outcome(tc.err); got != tc.want {
			t.Errorf("Outcome(%v) = %q; want %q", tc.err, got, tc.want)
		}
	}
}

func TestTransportError_MessageWithoutStatusText(t *testing.T) {
	t.Parallel()

	err := &TransportError{StatusCode: http.StatusBadGateway}
	if !strings.Contains(err.Error(), "502 Bad Gateway") {
		t.Errorf("expected reason phrase fallback, got %q", err.Error())
	}
}
