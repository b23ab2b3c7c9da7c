// Package api wires the HTTP surface: health, metrics, the sentiment
// controller and the request log.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matiasleandrokruk/inferlab/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/inferlab/internal/api/middleware"
)

// HealthChecker reports whether the inference endpoint is reachable.
// *llm.OllamaClient implements it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the services behind the routes. Nil fields leave their routes
// unregistered.
type Deps struct {
	Sentiment handlers.SentimentScorer
	Requests  handlers.RequestLister
	Inference HealthChecker
	Now       func() time.Time
}

const inferenceHealthTimeout = 5 * time.Second

// NewRouter creates the chi router with every route registered.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.AccessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})
	if deps.Inference != nil {
		r.Get("/health/inference", inferenceHealth(deps.Inference))
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if deps.Sentiment != nil {
			h := handlers.NewSentimentHandler(deps.Sentiment, deps.Now)
			r.Post("/chat/analisi-sentiment", h.AnalyzeSentiment) // POST /api/chat/analisi-sentiment
		}
		if deps.Requests != nil {
			h := handlers.NewRequestLogHandler(deps.Requests)
			r.Get("/requests", h.ListRequests) // GET /api/requests?limit=
		}
	})

	return r
}

func inferenceHealth(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), inferenceHealthTimeout)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := checker.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`)) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	}
}
