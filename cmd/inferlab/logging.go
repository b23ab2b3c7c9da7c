package main

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/json"

	"github.com/matiasleandrokruk/inferlab/internal/infra/config"
)

// setupLogging sends logs to stderr: JSON lines for the long-running server,
// the human-readable cli handler otherwise. Stdout stays free for the MCP
// protocol and command output.
func setupLogging(cfg config.Config, mode config.Mode) {
	if mode == config.ModeServe {
		log.SetHandler(json.New(os.Stderr))
	} else {
		log.SetHandler(cli.New(os.Stderr))
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
