package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/api"
	"github.com/matiasleandrokruk/inferlab/internal/domain/animal"
	"github.com/matiasleandrokruk/inferlab/internal/domain/sentiment"
	"github.com/matiasleandrokruk/inferlab/internal/infra/config"
	"github.com/matiasleandrokruk/inferlab/internal/mcpserver"
	"github.com/matiasleandrokruk/inferlab/internal/server"
)

const (
	reviewsDir      = "steamreviews"
	gamesFile       = "games.csv"
	reviewsFile     = "reviews.csv"
	sentimentOutput = "exercici2_resposta.json"
	animalsOutput   = "exercici3_resposta.json"
	shutdownTimeout = 10 * time.Second
)

var errUsage = errors.New("usage")

type command struct {
	mode config.Mode
	run  func(ctx context.Context, cfg config.Config, args []string, out io.Writer) error
}

var commands = map[string]command{
	"sentiment": {mode: config.ModeSentiment, run: runSentiment},
	"animals":   {mode: config.ModeAnimals, run: runAnimals},
	"serve":     {mode: config.ModeServe, run: runServe},
	"mcp":       {mode: config.ModeMCP, run: runMCP},
}

func parseFlags(fs *flag.FlagSet, args []string, out io.Writer) error {
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func runSentiment(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sentiment", flag.ContinueOnError)
	outPath := fs.String("out", filepath.Join(cfg.DataPath, sentimentOutput), "output file")
	games := fs.Int("games", cfg.GamesLimit, "games to process, 0 for all")
	reviews := fs.Int("reviews", cfg.ReviewsPerGame, "reviews per game, 0 for all")
	if err := parseFlags(fs, args, out); err != nil {
		return err
	}
	if *games < 0 || *reviews < 0 {
		fmt.Fprintln(out, "-games and -reviews must not be negative") //nolint:errcheck
		return errUsage
	}

	dir := filepath.Join(cfg.DataPath, reviewsDir)
	gameRows, err := sentiment.LoadGames(filepath.Join(dir, gamesFile))
	if err != nil {
		return err
	}
	reviewRows, err := sentiment.LoadReviews(filepath.Join(dir, reviewsFile))
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	analyzer := sentiment.NewAnalyzer(a.client, cfg.TextModel)
	report, err := sentiment.BuildReport(ctx, analyzer, gameRows, reviewRows,
		sentiment.Limits{Games: *games, ReviewsPerGame: *reviews}, time.Now)
	if err != nil {
		return err
	}
	return writeDocument(*outPath, report)
}

func runAnimals(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("animals", flag.ContinueOnError)
	outPath := fs.String("out", filepath.Join(cfg.DataPath, animalsOutput), "output file")
	dirs := fs.Int("dirs", cfg.AnimalDirLimit, "animal directories to process, 0 for all")
	if err := parseFlags(fs, args, out); err != nil {
		return err
	}
	if *dirs < 0 {
		fmt.Fprintln(out, "-dirs must not be negative") //nolint:errcheck
		return errUsage
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	analyzer := animal.NewAnalyzer(a.client, cfg.VisionModel)
	batch, err := analyzer.AnalyzeDir(ctx, filepath.Join(cfg.DataPath, animal.ImagesSubdir), *dirs)
	if err != nil {
		return err
	}
	return writeDocument(*outPath, batch.Document())
}

func runServe(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.HTTPAddr, "listen address")
	if err := parseFlags(fs, args, out); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Sentiment: sentiment.NewAnalyzer(a.client, cfg.TextModel),
		Requests:  a.requests,
		Inference: a.ollama,
		Now:       time.Now,
	})
	srvCfg := server.DefaultConfig()
	srvCfg.Addr = *addr
	srv := server.NewServer(router, a.db, srvCfg)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		a.Close() //nolint:errcheck
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.flushLog()
	// Shutdown closes the database.
	return srv.Shutdown(shutdownCtx)
}

func runMCP(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	if err := parseFlags(fs, args, out); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	s := mcpserver.New(
		sentiment.NewAnalyzer(a.client, cfg.TextModel),
		animal.NewAnalyzer(a.client, cfg.VisionModel),
	)
	return mcpserver.Run(ctx, s)
}

// writeDocument writes v as indented JSON to path, creating parent
// directories as needed.
func writeDocument(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.WithField("path", path).Info("result saved")
	return nil
}
