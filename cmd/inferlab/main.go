// inferlab runs sentiment and animal-image analyses against a local Ollama
// endpoint, as batch jobs, a REST API or an MCP tool server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/infra/config"
	"github.com/matiasleandrokruk/inferlab/internal/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("inferlab", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		printHelp(out)
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return exitOK
	}
	if *showHelp {
		printHelp(out)
		return exitOK
	}
	if fs.NArg() == 0 {
		printHelp(out)
		return exitUsage
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(out, "unknown command %q\n\n", fs.Arg(0)) //nolint:errcheck
		printHelp(out)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		setupLogging(config.Config{LogLevel: "info"}, cmd.mode)
		log.WithError(err).Error("load configuration")
		return exitError
	}
	setupLogging(cfg, cmd.mode)
	if err := cfg.Validate(cmd.mode); err != nil {
		log.WithError(err).Error("invalid configuration")
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, cfg, fs.Args()[1:], out); err != nil {
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		log.WithError(err).Errorf("%s failed", fs.Arg(0))
		return exitError
	}
	return exitOK
}

func printHelp(out io.Writer) {
	helpText := `inferlab - local model inference client

Usage:
  inferlab [options] <command> [command options]

Options:
  --version    Show version information
  --help       Show this help message

Commands:
  sentiment    Classify game reviews from DATA_PATH/steamreviews and write exercici2_resposta.json
  animals      Describe the images under DATA_PATH/imatges/animals and write exercici3_resposta.json
  serve        Start the REST API (POST /api/chat/analisi-sentiment, GET /api/requests, /metrics)
  mcp          Serve the analyses as MCP tools over stdio

Configuration (env, .env or the YAML file named by INFERLAB_CONFIG):
  CHAT_API_OLLAMA_URL, CHAT_API_OLLAMA_MODEL_TEXT, CHAT_API_OLLAMA_MODEL_VISION,
  DATA_PATH, INFERLAB_HTTP_TIMEOUT, INFERLAB_LOG_LEVEL, INFERLAB_DB_PATH,
  INFERLAB_HTTP_ADDR, INFERLAB_GAMES_LIMIT, INFERLAB_REVIEWS_PER_GAME,
  INFERLAB_ANIMAL_DIR_LIMIT

Examples:
  inferlab sentiment -games 5 -reviews 10
  inferlab animals -out /tmp/animals.json
  inferlab serve`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
