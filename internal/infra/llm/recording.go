package llm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matiasleandrokruk/inferlab/internal/infra/eventbus"
	"github.com/matiasleandrokruk/inferlab/internal/infra/metrics"
)

// RecordingClient wraps an InferenceClient, publishing one InferenceCompleted
// event per call and updating the inference metrics. The wrapped result and
// error are returned untouched.
type RecordingClient struct {
	next InferenceClient
	bus  eventbus.EventBus
	now  func() time.Time
}

// NewRecordingClient decorates next. bus may be nil, in which case only
// metrics are updated.
func NewRecordingClient(next InferenceClient, bus eventbus.EventBus) *RecordingClient {
	return &RecordingClient{next: next, bus: bus, now: time.Now}
}

// Infer implements InferenceClient.
func (c *RecordingClient) Infer(ctx context.Context, model, prompt string, images ...string) (string, error) {
	start := c.now()
	text, err := c.next.Infer(ctx, model, prompt, images...)
	elapsed := c.now().Sub(start)

	outcome := Outcome(err)
	metrics.InferenceRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.InferenceDurationSeconds.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if c.bus != nil {
		evt := InferenceCompleted{
			ID:         uuid.NewString(),
			Model:      model,
			Prompt:     prompt,
			ImageCount: len(images),
			Outcome:    outcome,
			Duration:   elapsed,
			At:         start,
		}
		if err != nil {
			evt.Error = err.Error()
		}
		c.bus.Publish(TopicInferenceCompleted, evt)
	}
	return text, err
}
