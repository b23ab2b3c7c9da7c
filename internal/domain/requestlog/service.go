// Package requestlog persists one row per generate call in the peticions
// table. Rows arrive as InferenceCompleted events from the event bus.
package requestlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/infra/eventbus"
	"github.com/matiasleandrokruk/inferlab/internal/infra/llm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500

	// Fixed-width so created_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Entry is one logged request.
type Entry struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Prompt     string    `json:"prompt"`
	ImageCount int       `json:"image_count"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service reads and writes the request log.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Record stores evt. Recording the same event twice is an error.
func (s *Service) Record(ctx context.Context, evt llm.InferenceCompleted) error {
	if evt.ID == "" {
		return errors.New("requestlog: event has no id")
	}
	var errText sql.NullString
	if evt.Error != "" {
		errText = sql.NullString{String: evt.Error, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO peticions (id, model, prompt, image_count, outcome, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.ID, evt.Model, evt.Prompt, evt.ImageCount, evt.Outcome, errText,
		evt.Duration.Milliseconds(), evt.At.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("requestlog: insert %s: %w", evt.ID, err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means
// DefaultListLimit; larger values are capped at MaxListLimit.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, prompt, image_count, outcome, error, duration_ms, created_at
		FROM peticions
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("requestlog: list: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := []Entry{}
	for rows.Next() {
		var (
			e         Entry
			errText   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Model, &e.Prompt, &e.ImageCount, &e.Outcome, &errText, &e.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("requestlog: scan: %w", err)
		}
		e.Error = errText.String
		if e.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("requestlog: parse created_at %q: %w", createdAt, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Start subscribes to inference events and records them until ctx is done.
// Events published before Start subscribes are not seen; callers that need
// them subscribe first and call Consume.
func (s *Service) Start(ctx context.Context, bus eventbus.EventBus) {
	s.Consume(ctx, bus.Subscribe(llm.TopicInferenceCompleted))
}

// Consume records events from ch until ctx is done, then records whatever
// is still buffered in ch and returns. Store failures are logged and skipped.
func (s *Service) Consume(ctx context.Context, ch <-chan eventbus.Event) {
	for {
		select {
		case <-ctx.Done():
			s.drain(context.WithoutCancel(ctx), ch)
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			s.handle(ctx, evt)
		}
	}
}

func (s *Service) drain(ctx context.Context, ch <-chan eventbus.Event) {
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return
			}
			s.handle(ctx, evt)
		default:
			return
		}
	}
}

func (s *Service) handle(ctx context.Context, evt eventbus.Event) {
	payload, ok := evt.Payload.(llm.InferenceCompleted)
	if !ok {
		return
	}
	if err := s.Record(ctx, payload); err != nil {
		log.WithError(err).WithField("id", payload.ID).Warn("request log write failed")
	}
}
