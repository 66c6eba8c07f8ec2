package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for callscope.
type Config struct {
	// Upstream call-logs API
	API APIConfig `koanf:"api"`

	// Default filter behavior
	Filters FilterConfig `koanf:"filters"`

	// Output settings
	Output OutputConfig `koanf:"output"`

	// Watch mode settings
	Watch WatchConfig `koanf:"watch"`
}

// APIConfig describes the upstream call-logs endpoint.
type APIConfig struct {
	BaseURL        string `koanf:"base_url"`
	Key            string `koanf:"key"`
	KeyEnv         string `koanf:"key_env"` // env var consulted when Key is empty
	TimeoutSeconds int    `koanf:"timeout_seconds"`
	// InsecureSkipVerify disables TLS verification, for testing against
	// self-signed upstreams only.
	InsecureSkipVerify bool `koanf:"insecure_skip_verify"`
}

// FilterConfig controls default criteria applied when no flags are given.
type FilterConfig struct {
	// DefaultToday pins the summary and chart to today's calls unless an
	// explicit date filter is provided, matching the dashboard's cards.
	DefaultToday bool `koanf:"default_today"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown
	Color  bool   `koanf:"color"`
}

// WatchConfig controls the polling dashboard.
type WatchConfig struct {
	IntervalSeconds int `koanf:"interval_seconds"`
}

// ResolveKey returns the API key, preferring the configured value and
// falling back to the key_env environment variable.
func (a APIConfig) ResolveKey() string {
	if a.Key != "" {
		return a.Key
	}
	if a.KeyEnv != "" {
		return os.Getenv(a.KeyEnv)
	}
	return ""
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Interval returns the watch poll interval.
func (w WatchConfig) Interval() time.Duration {
	if w.IntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(w.IntervalSeconds) * time.Second
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8787/call-logs-api",
			KeyEnv:         "CALLSCOPE_API_KEY",
			TimeoutSeconds: 15,
		},
		Filters: FilterConfig{
			DefaultToday: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Watch: WatchConfig{
			IntervalSeconds: 30,
		},
	}
}

// Load loads configuration from a file, layered over defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configNames are the file names probed by LoadOrDefault, in order.
var configNames = []string{
	"callscope.toml",
	"callscope.yaml",
	"callscope.yml",
	"callscope.json",
	".callscope.toml",
	".callscope.yaml",
	".callscope.yml",
	".callscope.json",
}

// LoadOrDefault tries standard config locations (current directory, then
// ~/.config/callscope) and returns defaults when none parse.
func LoadOrDefault() *Config {
	for _, path := range candidatePaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// FindConfigFile returns the first config file LoadOrDefault would use, or
// "" when none exists. Used by `config validate` to report the source.
func FindConfigFile() string {
	for _, path := range candidatePaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func candidatePaths() []string {
	searchDirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		searchDirs = append(searchDirs, filepath.Join(home, ".config", "callscope"))
	}
	var paths []string
	for _, dir := range searchDirs {
		for _, name := range configNames {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}
