package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matiasleandrokruk/inferlab/internal/domain/requestlog"
	"github.com/matiasleandrokruk/inferlab/internal/infra/config"
	"github.com/matiasleandrokruk/inferlab/internal/infra/eventbus"
	"github.com/matiasleandrokruk/inferlab/internal/infra/llm"
	"github.com/matiasleandrokruk/inferlab/internal/infra/metrics"
	"github.com/matiasleandrokruk/inferlab/internal/infra/sqlite"
)

// eventBuffer holds inference events while the request log catches up.
const eventBuffer = 1024

// app is the wiring shared by every command: the Ollama client wrapped in
// the recording decorator, and the request log consuming its events.
type app struct {
	ollama   *llm.OllamaClient
	client   llm.InferenceClient
	db       *sql.DB
	requests *requestlog.Service

	stopLog context.CancelFunc
	logDone sync.WaitGroup
}

func newApp(cfg config.Config) (*app, error) {
	metrics.Register()

	ollama, err := llm.NewOllamaClient(cfg.OllamaURL, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	bus := eventbus.NewWithBuffer(eventBuffer)
	events := bus.Subscribe(llm.TopicInferenceCompleted)
	requests := requestlog.NewService(db)

	ctx, cancel := context.WithCancel(context.Background())
	a := &app{
		ollama:   ollama,
		client:   llm.NewRecordingClient(ollama, bus),
		db:       db,
		requests: requests,
		stopLog:  cancel,
	}
	a.logDone.Add(1)
	go func() {
		defer a.logDone.Done()
		requests.Consume(ctx, events)
	}()
	return a, nil
}

// flushLog stops the request-log consumer after it has written every
// buffered event.
func (a *app) flushLog() {
	a.stopLog()
	a.logDone.Wait()
}

// Close flushes the request log and closes the database.
func (a *app) Close() error {
	a.flushLog()
	return a.db.Close()
}
