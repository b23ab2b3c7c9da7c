// Package config provides runtime configuration loaded once at startup.
// Sources, lowest precedence first: built-in defaults, the YAML file named by
// INFERLAB_CONFIG, a .env file in the working directory, process env vars.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for inferlab.
type Config struct {
	// Inference endpoint
	OllamaURL   string        // CHAT_API_OLLAMA_URL: required, e.g. "http://localhost:11434/api"
	TextModel   string        // CHAT_API_OLLAMA_MODEL_TEXT: required for sentiment
	VisionModel string        // CHAT_API_OLLAMA_MODEL_VISION: required for animals
	HTTPTimeout time.Duration // INFERLAB_HTTP_TIMEOUT, default 0 (transport default)

	// Batch inputs and outputs
	DataPath       string // DATA_PATH, default "./data"
	GamesLimit     int    // INFERLAB_GAMES_LIMIT, default 2, 0 = all
	ReviewsPerGame int    // INFERLAB_REVIEWS_PER_GAME, default 2, 0 = all
	AnimalDirLimit int    // INFERLAB_ANIMAL_DIR_LIMIT, default 0 = all

	// Ambient
	LogLevel string // INFERLAB_LOG_LEVEL, default "info"
	DBPath   string // INFERLAB_DB_PATH, default DATA_PATH/inferlab.db
	HTTPAddr string // INFERLAB_HTTP_ADDR, default "0.0.0.0:8080"
}

// Mode selects which settings Validate requires.
type Mode string

const (
	ModeSentiment Mode = "sentiment"
	ModeAnimals   Mode = "animals"
	ModeServe     Mode = "serve"
	ModeMCP       Mode = "mcp"
)

const (
	EnvOllamaURL      = "CHAT_API_OLLAMA_URL"
	EnvTextModel      = "CHAT_API_OLLAMA_MODEL_TEXT"
	EnvVisionModel    = "CHAT_API_OLLAMA_MODEL_VISION"
	EnvDataPath       = "DATA_PATH"
	EnvConfigFile     = "INFERLAB_CONFIG"
	EnvHTTPTimeout    = "INFERLAB_HTTP_TIMEOUT"
	EnvLogLevel       = "INFERLAB_LOG_LEVEL"
	EnvDBPath         = "INFERLAB_DB_PATH"
	EnvHTTPAddr       = "INFERLAB_HTTP_ADDR"
	EnvGamesLimit     = "INFERLAB_GAMES_LIMIT"
	EnvReviewsPerGame = "INFERLAB_REVIEWS_PER_GAME"
	EnvAnimalDirLimit = "INFERLAB_ANIMAL_DIR_LIMIT"

	defaultDBName = "inferlab.db"
)

// fileConfig mirrors Config for the YAML overlay. Pointers distinguish
// "absent" from zero values.
type fileConfig struct {
	OllamaURL      string `yaml:"ollama_url"`
	TextModel      string `yaml:"text_model"`
	VisionModel    string `yaml:"vision_model"`
	HTTPTimeout    string `yaml:"http_timeout"`
	DataPath       string `yaml:"data_path"`
	GamesLimit     *int   `yaml:"games_limit"`
	ReviewsPerGame *int   `yaml:"reviews_per_game"`
	AnimalDirLimit *int   `yaml:"animal_dir_limit"`
	LogLevel       string `yaml:"log_level"`
	DBPath         string `yaml:"db_path"`
	HTTPAddr       string `yaml:"http_addr"`
}

// Load reads .env (if present), the optional YAML file and the environment.
// It fails only on unreadable sources or unparseable values; required
// settings are checked by Validate.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return load()
}

func defaults() Config {
	return Config{
		DataPath:       "./data",
		GamesLimit:     2,
		ReviewsPerGame: 2,
		LogLevel:       "info",
		HTTPAddr:       "0.0.0.0:8080",
	}
}

func load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataPath, defaultDBName)
	}
	return cfg, nil
}

// loadDotEnv populates unset env vars from path. A missing file is fine.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return &ConfigurationError{Field: path, Reason: fmt.Sprintf("cannot be parsed: %v", err)}
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigurationError{Field: EnvConfigFile, Reason: fmt.Sprintf("cannot be read: %v", err)}
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return &ConfigurationError{Field: EnvConfigFile, Reason: fmt.Sprintf("is not valid YAML: %v", err)}
	}

	setString(&cfg.OllamaURL, fc.OllamaURL)
	setString(&cfg.TextModel, fc.TextModel)
	setString(&cfg.VisionModel, fc.VisionModel)
	setString(&cfg.DataPath, fc.DataPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.HTTPAddr, fc.HTTPAddr)
	setInt(&cfg.GamesLimit, fc.GamesLimit)
	setInt(&cfg.ReviewsPerGame, fc.ReviewsPerGame)
	setInt(&cfg.AnimalDirLimit, fc.AnimalDirLimit)
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return &ConfigurationError{Field: "http_timeout", Reason: fmt.Sprintf("is not a duration: %q", fc.HTTPTimeout)}
		}
		cfg.HTTPTimeout = d
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.OllamaURL, os.Getenv(EnvOllamaURL))
	setString(&cfg.TextModel, os.Getenv(EnvTextModel))
	setString(&cfg.VisionModel, os.Getenv(EnvVisionModel))
	setString(&cfg.DataPath, os.Getenv(EnvDataPath))
	setString(&cfg.LogLevel, os.Getenv(EnvLogLevel))
	setString(&cfg.DBPath, os.Getenv(EnvDBPath))
	setString(&cfg.HTTPAddr, os.Getenv(EnvHTTPAddr))

	for key, dst := range map[string]*int{
		EnvGamesLimit:     &cfg.GamesLimit,
		EnvReviewsPerGame: &cfg.ReviewsPerGame,
		EnvAnimalDirLimit: &cfg.AnimalDirLimit,
	} {
		if err := envInt(key, dst); err != nil {
			return err
		}
	}

	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigurationError{Field: EnvHTTPTimeout, Reason: fmt.Sprintf("is not a duration: %q", v)}
		}
		cfg.HTTPTimeout = d
	}
	return nil
}

// Validate checks the settings mode needs. The first problem found is
// returned as a *ConfigurationError.
func (c Config) Validate(mode Mode) error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return &ConfigurationError{Field: EnvLogLevel, Reason: fmt.Sprintf("is not a log level: %q", c.LogLevel)}
	}
	if strings.TrimSpace(c.OllamaURL) == "" {
		return &ConfigurationError{Field: EnvOllamaURL, Reason: "is required"}
	}
	if c.HTTPTimeout < 0 {
		return &ConfigurationError{Field: EnvHTTPTimeout, Reason: "must not be negative"}
	}

	needText := mode == ModeSentiment || mode == ModeServe || mode == ModeMCP
	needVision := mode == ModeAnimals || mode == ModeMCP
	if needText && strings.TrimSpace(c.TextModel) == "" {
		return &ConfigurationError{Field: EnvTextModel, Reason: "is required"}
	}
	if needVision && strings.TrimSpace(c.VisionModel) == "" {
		return &ConfigurationError{Field: EnvVisionModel, Reason: "is required"}
	}

	switch mode {
	case ModeSentiment:
		if c.GamesLimit < 0 || c.ReviewsPerGame < 0 {
			return &ConfigurationError{Field: EnvGamesLimit + "/" + EnvReviewsPerGame, Reason: "must not be negative"}
		}
	case ModeAnimals:
		if c.AnimalDirLimit < 0 {
			return &ConfigurationError{Field: EnvAnimalDirLimit, Reason: "must not be negative"}
		}
	case ModeServe:
		if strings.TrimSpace(c.HTTPAddr) == "" {
			return &ConfigurationError{Field: EnvHTTPAddr, Reason: "is required"}
		}
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// envInt overwrites dst with the integer value of key, if set.
func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return &ConfigurationError{Field: key, Reason: fmt.Sprintf("must be a non-negative integer, got %q", v)}
	}
	*dst = n
	return nil
}
