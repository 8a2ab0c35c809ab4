package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// BasePathEnv overrides the data-tree base path when set.
const BasePathEnv = "QUIZDB_BASE_PATH"

// Config describes everything the import pipelines need to run.
type Config struct {
	// BasePath is the root of the data tree holding question_sets/ and
	// tournaments/ subdirectories.
	BasePath string `toml:"base_path"`

	DatabasePath string `toml:"database_path"`

	LogDir    string `toml:"log_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// QuestionSetsDir and TournamentsDir are relative to BasePath.
	QuestionSetsDir string `toml:"question_sets_dir"`
	TournamentsDir  string `toml:"tournaments_dir"`

	// CategoryTablePath points at a JSON subcategory table overriding the
	// embedded canon. Empty means use the embedded table.
	CategoryTablePath string `toml:"category_table_path"`

	// PacketNumberMin/Max bound the integers accepted as plausible packet
	// numbers; digits outside the window (years, edition labels) are ignored.
	PacketNumberMin int `toml:"packet_number_min"`
	PacketNumberMax int `toml:"packet_number_max"`
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() string {
	return expandPath("~/.config/quizdb/config.toml")
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist. An empty path means DefaultConfigPath. The base-path
// environment override is applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(expandPath(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if base := strings.TrimSpace(os.Getenv(BasePathEnv)); base != "" {
		cfg.BasePath = base
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipelines cannot run with.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	if c.PacketNumberMin < 1 {
		return fmt.Errorf("packet_number_min: must be at least 1, got %d", c.PacketNumberMin)
	}
	if c.PacketNumberMax < c.PacketNumberMin {
		return fmt.Errorf("packet_number_max: must be >= packet_number_min, got %d", c.PacketNumberMax)
	}
	if c.DatabasePath == "" {
		return errors.New("database_path: must not be empty")
	}
	return nil
}

// EnsureDirectories creates the log and database directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.LogDir, filepath.Dir(c.DatabasePath)} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// QuestionSetsPath returns the absolute question-set tree root.
func (c *Config) QuestionSetsPath() string {
	return filepath.Join(c.BasePath, c.QuestionSetsDir)
}

// TournamentsPath returns the absolute tournament tree root.
func (c *Config) TournamentsPath() string {
	return filepath.Join(c.BasePath, c.TournamentsDir)
}

func (c *Config) normalize() {
	c.BasePath = expandPath(c.BasePath)
	c.DatabasePath = expandPath(c.DatabasePath)
	c.LogDir = expandPath(c.LogDir)
	c.CategoryTablePath = expandPath(c.CategoryTablePath)
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
