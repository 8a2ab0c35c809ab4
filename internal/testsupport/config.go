package testsupport

import (
	"path/filepath"
	"testing"

	"quizdb/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.BasePath = base
	cfg.DatabasePath = filepath.Join(base, "quizdb.db")
	cfg.LogDir = filepath.Join(base, "logs")
	return &cfg
}
