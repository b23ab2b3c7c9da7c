package sentiment

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/infra/llm"
	"github.com/matiasleandrokruk/inferlab/internal/infra/metrics"
)

const metricsMode = "sentiment"

// Classifier turns one text into a label. Analyzer is the production
// implementation; reports depend on the interface so tests can stub it.
type Classifier interface {
	Classify(ctx context.Context, text string) Label
}

// Analyzer runs sentiment prompts against one text model.
type Analyzer struct {
	client llm.InferenceClient
	model  string
}

// NewAnalyzer returns an Analyzer that sends prompts for model through client.
func NewAnalyzer(client llm.InferenceClient, model string) *Analyzer {
	return &Analyzer{client: client, model: model}
}

// Classify sends the one-word prompt and normalizes the reply. Inference
// failures are logged and reported as the Error label.
func (a *Analyzer) Classify(ctx context.Context, text string) Label {
	raw, err := a.client.Infer(ctx, a.model, Prompt(text))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"model":   a.model,
			"outcome": llm.Outcome(err),
		}).Warn("sentiment inference failed")
		metrics.NormalizedTotal.WithLabelValues(metricsMode, string(Error)).Inc()
		return Error
	}

	label := Normalize(raw)
	if label == Error {
		log.WithField("reply", raw).Debug("reply outside the label set")
	}
	metrics.NormalizedTotal.WithLabelValues(metricsMode, string(label)).Inc()
	return label
}

// Score sends the scored prompt and normalizes the reply. Only inference
// failures are returned as errors; an unusable reply is a Scored value whose
// Complete method reports false.
func (a *Analyzer) Score(ctx context.Context, text string) (Scored, error) {
	raw, err := a.client.Infer(ctx, a.model, ScoredPrompt(text))
	if err != nil {
		return Scored{Label: Error}, fmt.Errorf("score sentiment: %w", err)
	}
	s := NormalizeScored(raw)
	metrics.NormalizedTotal.WithLabelValues(metricsMode, string(s.Label)).Inc()
	return s, nil
}
