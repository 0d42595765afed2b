package config

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envDataDir, envDBPath, envEditorials, envGenres, envLoanDays, envLogLevel} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "library.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("data", "editorials.json"), cfg.EditorialsFile)
	assert.Equal(t, filepath.Join("data", "genres.json"), cfg.GenresFile)
	assert.Equal(t, 7, cfg.LoanDays)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_BadLoanDaysFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(envLoanDays, "two weeks")
	assert.Equal(t, 7, Load().LoanDays)
}

func TestWithDataDir_KeepsPinnedFiles(t *testing.T) {
	clearEnv(t)
	t.Setenv(envEditorials, "/srv/catalog/editorials.json")

	cfg := Load().WithDataDir("/var/lib/library")
	assert.Equal(t, "/var/lib/library", cfg.DataDir)
	assert.Equal(t, filepath.Join("/var/lib/library", "library.db"), cfg.DBPath)
	assert.Equal(t, "/srv/catalog/editorials.json", cfg.EditorialsFile)
	assert.Equal(t, filepath.Join("/var/lib/library", "genres.json"), cfg.GenresFile)
}

func TestSetupLogger_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	SetupLogger("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	SetupLogger("")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	SetupLogger("loud")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
