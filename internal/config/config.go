// Package config loads the YAML configuration of the md2notion command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2notion/internal/fileutil"
	"github.com/alnah/go-md2notion/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096 // Input/output directories
	MaxURLLength     = 2048 // Parent page URL, API base URL
	MaxVersionLength = 20   // "2022-06-28"
	MaxRetries       = 10
	MaxRetryWait     = 5 * time.Minute
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-md2notion"

// Config holds all configuration for conversion and upload.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
	Notion NotionConfig `yaml:"notion"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// RenderConfig toggles the optional grammar. Nil means enabled.
type RenderConfig struct {
	HTML      *bool `yaml:"html"`
	Equations *bool `yaml:"equations"`
}

// HTMLEnabled reports whether raw HTML extraction is on.
func (r RenderConfig) HTMLEnabled() bool {
	return r.HTML == nil || *r.HTML
}

// EquationsEnabled reports whether $ and $$ syntax is recognized.
func (r RenderConfig) EquationsEnabled() bool {
	return r.Equations == nil || *r.Equations
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error (default: warn)
	Format string `yaml:"format"` // console, json, pretty (default: console)
}

// NotionConfig defines upload options. The API token is never read from
// the file.
type NotionConfig struct {
	Parent    string `yaml:"parent"`    // Page URL or id receiving the blocks
	NewPage   bool   `yaml:"newPage"`   // Create a child page per document
	Version   string `yaml:"version"`   // Notion-Version header
	BaseURL   string `yaml:"baseURL"`   // API endpoint override
	Retries   int    `yaml:"retries"`   // Attempts per request (0 = default)
	RetryWait string `yaml:"retryWait"` // Duration between attempts, e.g. "5s"
}

// RetryWaitDuration parses RetryWait. Empty yields zero (client default).
func (n NotionConfig) RetryWaitDuration() (time.Duration, error) {
	if n.RetryWait == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(n.RetryWait)
	if err != nil {
		return 0, fmt.Errorf("%w: notion.retryWait: %v", ErrInvalidValue, err)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateOneOf("log.level", c.Log.Level, "trace", "debug", "info", "warn", "warning", "error"); err != nil {
		return err
	}
	if err := validateOneOf("log.format", c.Log.Format, "console", "json", "pretty"); err != nil {
		return err
	}

	if err := validateFieldLength("notion.parent", c.Notion.Parent, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("notion.baseURL", c.Notion.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.Notion.BaseURL != "" && !fileutil.IsURL(c.Notion.BaseURL) {
		return fmt.Errorf("%w: notion.baseURL must start with http:// or https://, got %q", ErrInvalidValue, c.Notion.BaseURL)
	}
	if err := validateFieldLength("notion.version", c.Notion.Version, MaxVersionLength); err != nil {
		return err
	}
	if c.Notion.Retries < 0 || c.Notion.Retries > MaxRetries {
		return fmt.Errorf("%w: notion.retries must be between 0 and %d, got %d", ErrInvalidValue, MaxRetries, c.Notion.Retries)
	}
	wait, err := c.Notion.RetryWaitDuration()
	if err != nil {
		return err
	}
	if wait < 0 || wait > MaxRetryWait {
		return fmt.Errorf("%w: notion.retryWait must be between 0 and %v, got %v", ErrInvalidValue, MaxRetryWait, wait)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateOneOf accepts an empty value or one of allowed, case-insensitively.
func validateOneOf(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(value), a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration with both extensions enabled and no
// upload target.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "warn", Format: "console"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFileStrict(configPath, cfg); err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-md2notion/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
