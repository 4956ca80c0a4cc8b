package main

import (
	"errors"
	"fmt"
	"time"

	md2notion "github.com/alnah/go-md2notion"
	"github.com/alnah/go-md2notion/internal/config"
	"github.com/alnah/go-md2notion/internal/logging"
	"github.com/alnah/go-md2notion/internal/logging/gologger"
)

// Sentinel errors shared by commands.
var (
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// defaultTimeout bounds each conversion when neither flag nor env sets one.
const defaultTimeout = 30 * time.Second

// commandSetup is the resolved state shared by convert and push.
type commandSetup struct {
	cfg      *config.Config
	env      *envConfig
	provider logging.Provider
	timeout  time.Duration
}

// setupCommand loads config, applies env and flag overrides, and builds the
// log provider. Precedence: CLI flags > env vars > config file > defaults.
func setupCommand(common commonFlags, flagTimeout string, env *Environment) (*commandSetup, error) {
	warnUnknownEnvVars(env.Environ(), env.Stderr)
	envCfg := loadEnvConfig(env.Getenv)

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)

	if common.logLevel != "" {
		cfg.Log.Level = common.logLevel
	}
	if common.logFormat != "" {
		cfg.Log.Format = common.logFormat
	}
	if common.quiet {
		cfg.Log.Level = "error"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout, err := resolveTimeout(flagTimeout, envCfg.Timeout)
	if err != nil {
		return nil, err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}

	return &commandSetup{cfg: cfg, env: envCfg, provider: provider, timeout: timeout}, nil
}

// resolveTimeout picks the flag value, then the env value, then the default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return defaultTimeout, nil
}

// resolveExtensions combines config toggles with --no-* flags.
func resolveExtensions(cfg config.RenderConfig, f renderFlags) []md2notion.Extension {
	var exts []md2notion.Extension
	if cfg.HTMLEnabled() && !f.noHTML {
		exts = append(exts, md2notion.ExtHTML)
	}
	if cfg.EquationsEnabled() && !f.noEquations {
		exts = append(exts, md2notion.ExtEquation)
	}
	return exts
}

// converterOptions builds the options every pooled converter shares.
func (s *commandSetup) converterOptions(f renderFlags) []md2notion.Option {
	return []md2notion.Option{
		md2notion.WithTimeout(s.timeout),
		md2notion.WithExtensions(resolveExtensions(s.cfg.Render, f)...),
	}
}
