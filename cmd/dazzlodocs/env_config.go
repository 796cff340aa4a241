package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Neelp4258/DazzloDocs/internal/config"
)

// envFile is loaded from the working directory before anything reads the
// environment.
const envFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string // DAZZLO_CONFIG: config file name or path
	StagingDir    string // DAZZLO_STAGING_DIR: staged document directory
	NavTimeout    string // DAZZLO_NAV_TIMEOUT: page load timeout
	AssetTimeout  string // DAZZLO_ASSET_TIMEOUT: image load timeout
	Letterhead    string // DAZZLO_LETTERHEAD: true/false, or a letterhead key
	LetterheadDir string // DAZZLO_LETTERHEAD_DIR: custom letterheads
	PageFormat    string // DAZZLO_PAGE_FORMAT: A4, Letter, ...
	Workers       int    // DAZZLO_WORKERS: parallel conversions
	LogLevel      string // DAZZLO_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid DAZZLO_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DAZZLO_CONFIG":         true,
	"DAZZLO_STAGING_DIR":    true,
	"DAZZLO_NAV_TIMEOUT":    true,
	"DAZZLO_ASSET_TIMEOUT":  true,
	"DAZZLO_LETTERHEAD":     true,
	"DAZZLO_LETTERHEAD_DIR": true,
	"DAZZLO_PAGE_FORMAT":    true,
	"DAZZLO_WORKERS":        true,
	"DAZZLO_LOG_LEVEL":      true,
	"DAZZLO_CONTAINER":      true, // read by doctor
}

// loadDotEnv loads .env without overriding variables that are already set.
// A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized DAZZLO_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("DAZZLO_CONFIG"),
		StagingDir:    os.Getenv("DAZZLO_STAGING_DIR"),
		NavTimeout:    os.Getenv("DAZZLO_NAV_TIMEOUT"),
		AssetTimeout:  os.Getenv("DAZZLO_ASSET_TIMEOUT"),
		Letterhead:    strings.TrimSpace(os.Getenv("DAZZLO_LETTERHEAD")),
		LetterheadDir: os.Getenv("DAZZLO_LETTERHEAD_DIR"),
		PageFormat:    os.Getenv("DAZZLO_PAGE_FORMAT"),
		LogLevel:      os.Getenv("DAZZLO_LOG_LEVEL"),
	}

	// Parse int for workers
	if workers := os.Getenv("DAZZLO_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// template returns the letterhead key given in DAZZLO_LETTERHEAD, or "" when
// the variable is unset or a boolean. The key selects the letterhead for the
// run the same way --template does.
func (e *envConfig) template() string {
	if e.Letterhead == "" {
		return ""
	}
	if _, err := strconv.ParseBool(e.Letterhead); err == nil {
		return ""
	}
	return e.Letterhead
}

// warnUnknownEnvVars logs warnings for unrecognized DAZZLO_* variables.
// Helps catch typos like DAZZLO_WORKER instead of DAZZLO_WORKERS.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DAZZLO_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.StagingDir != "" {
		cfg.Staging.Dir = env.StagingDir
	}
	if env.NavTimeout != "" {
		cfg.Renderer.NavigationTimeout = env.NavTimeout
	}
	if env.AssetTimeout != "" {
		cfg.Renderer.AssetTimeout = env.AssetTimeout
	}

	// DAZZLO_LETTERHEAD=true|false toggles; a key enables and is picked up
	// through template()
	if env.Letterhead != "" {
		enabled, err := strconv.ParseBool(env.Letterhead)
		cfg.Letterhead.Enabled = err != nil || enabled
	}
	if env.LetterheadDir != "" {
		cfg.Letterhead.Dir = env.LetterheadDir
	}

	if env.PageFormat != "" {
		cfg.Page.Format = env.PageFormat
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
