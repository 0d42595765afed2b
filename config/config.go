// Package config loads runtime settings shared by the library commands.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	envDataDir    = "LIBRARY_DATA_DIR"
	envDBPath     = "LIBRARY_DB_PATH"
	envEditorials = "LIBRARY_EDITORIALS_FILE"
	envGenres     = "LIBRARY_GENRES_FILE"
	envLoanDays   = "LIBRARY_LOAN_DAYS"
	envLogLevel   = "LIBRARY_LOG_LEVEL"
)

// Config holds the runtime settings. Values come from the environment (and
// an optional .env file); command-line flags override them.
type Config struct {
	DataDir        string
	DBPath         string
	EditorialsFile string
	GenresFile     string
	LoanDays       int
	LogLevel       string
}

// Load reads .env, if present, and then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("cannot read .env file")
	}

	cfg := Config{
		LoanDays: envInt(envLoanDays, 7),
		LogLevel: env(envLogLevel, "warn"),
	}
	return cfg.WithDataDir(env(envDataDir, "data"))
}

// WithDataDir places every file whose own variable is unset under dir.
func (c Config) WithDataDir(dir string) Config {
	c.DataDir = dir
	c.DBPath = env(envDBPath, filepath.Join(dir, "library.db"))
	c.EditorialsFile = env(envEditorials, filepath.Join(dir, "editorials.json"))
	c.GenresFile = env(envGenres, filepath.Join(dir, "genres.json"))
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}

// SetupLogger sends zerolog output to stderr in console format. An empty or
// unknown level means warn.
func SetupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
