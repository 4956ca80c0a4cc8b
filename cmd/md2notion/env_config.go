package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2notion/internal/config"
)

// tokenEnvVar carries the integration secret. It is never read from a file.
const tokenEnvVar = "NOTION_TOKEN"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MD2NOTION_CONFIG: config file path
	Parent     string        // MD2NOTION_PARENT: parent page URL or id
	Timeout    time.Duration // MD2NOTION_TIMEOUT: per-document timeout

	// Tier 2 - I/O
	InputDir  string // MD2NOTION_INPUT_DIR: default input directory
	OutputDir string // MD2NOTION_OUTPUT_DIR: default output directory

	// Tier 3 - Extended
	Workers   int    // MD2NOTION_WORKERS: parallel workers
	LogLevel  string // MD2NOTION_LOG_LEVEL: logger level
	LogFormat string // MD2NOTION_LOG_FORMAT: logger format
	BaseURL   string // MD2NOTION_BASE_URL: API endpoint override
}

// knownEnvVars lists valid MD2NOTION_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MD2NOTION_CONFIG":  true,
	"MD2NOTION_PARENT":  true,
	"MD2NOTION_TIMEOUT": true,
	// Tier 2 - I/O
	"MD2NOTION_INPUT_DIR":  true,
	"MD2NOTION_OUTPUT_DIR": true,
	// Tier 3 - Extended
	"MD2NOTION_WORKERS":    true,
	"MD2NOTION_LOG_LEVEL":  true,
	"MD2NOTION_LOG_FORMAT": true,
	"MD2NOTION_BASE_URL":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2NOTION_CONFIG"),
		Parent:     getenv("MD2NOTION_PARENT"),
		InputDir:   getenv("MD2NOTION_INPUT_DIR"),
		OutputDir:  getenv("MD2NOTION_OUTPUT_DIR"),
		LogLevel:   getenv("MD2NOTION_LOG_LEVEL"),
		LogFormat:  getenv("MD2NOTION_LOG_FORMAT"),
		BaseURL:    getenv("MD2NOTION_BASE_URL"),
	}

	if timeout := getenv("MD2NOTION_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("MD2NOTION_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MD2NOTION_* variables.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "MD2NOTION_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by the command)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Parent != "" && cfg.Notion.Parent == "" {
		cfg.Notion.Parent = env.Parent
	}
	if env.BaseURL != "" && cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = env.BaseURL
	}

	// Log settings default to non-empty values, so env wins over defaults
	// but not over an explicit file value.
	defaults := config.DefaultConfig()
	if env.LogLevel != "" && cfg.Log.Level == defaults.Log.Level {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" && cfg.Log.Format == defaults.Log.Format {
		cfg.Log.Format = env.LogFormat
	}
}
