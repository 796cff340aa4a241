package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
	"github.com/Neelp4258/DazzloDocs/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxPageFormatLength = 10   // "tabloid", "a4"
	MaxLengthValue      = 20   // "12.5mm"
	MaxKeyLength        = 64   // letterhead key
	MaxWorkers          = 64
	MinScale            = 0.1
	MaxScale            = 2.0
)

// appDirName is the directory under the user config dir searched by name.
const appDirName = "dazzlodocs"

// Config holds all configuration for the CLI.
type Config struct {
	Renderer   RendererConfig   `yaml:"renderer"`
	Staging    StagingConfig    `yaml:"staging"`
	Letterhead LetterheadConfig `yaml:"letterhead"`
	Page       PageConfig       `yaml:"page"`
	Log        LogConfig        `yaml:"log"`
	Workers    int              `yaml:"workers"` // 0 = derived from GOMAXPROCS
}

// RendererConfig defines browser options.
type RendererConfig struct {
	BrowserBin        string `yaml:"browserBin"`        // Empty = auto-detect or download
	NavigationTimeout string `yaml:"navigationTimeout"` // Go duration, e.g. "30s"
	AssetTimeout      string `yaml:"assetTimeout"`      // Go duration, e.g. "10s"
}

// StagingConfig defines where staged documents are written.
type StagingConfig struct {
	Dir string `yaml:"dir"` // Empty = $TMPDIR/dazzlodocs
}

// LetterheadConfig defines letterhead options.
type LetterheadConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`     // Custom templates overlaying the built-ins
	Default string `yaml:"default"` // Key used when none is requested
}

// PageConfig defines PDF page settings. Pointer fields default to true when
// unset.
type PageConfig struct {
	Format            string       `yaml:"format"` // "A4", "Letter", ...
	Landscape         bool         `yaml:"landscape"`
	Scale             float64      `yaml:"scale"` // 0 = 1.0
	PrintBackground   *bool        `yaml:"printBackground"`
	PreferCSSPageSize *bool        `yaml:"preferCSSPageSize"`
	HeaderFooter      bool         `yaml:"headerFooter"`
	Margins           MarginConfig `yaml:"margins"`
}

// MarginConfig holds page margins as CSS lengths ("12mm", "0.5in").
type MarginConfig struct {
	Top    string `yaml:"top"`
	Right  string `yaml:"right"`
	Bottom string `yaml:"bottom"`
	Left   string `yaml:"left"`
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

var validLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
//
// Page format names and margin syntax are checked by the converter, which
// owns the format table.
func (c *Config) Validate() error {
	if err := validateFieldLength("renderer.browserBin", c.Renderer.BrowserBin, MaxPathLength); err != nil {
		return err
	}
	if _, err := parseDuration("renderer.navigationTimeout", c.Renderer.NavigationTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("renderer.assetTimeout", c.Renderer.AssetTimeout); err != nil {
		return err
	}

	if err := validateFieldLength("staging.dir", c.Staging.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("letterhead.dir", c.Letterhead.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("letterhead.default", c.Letterhead.Default, MaxKeyLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Letterhead.Default, "/\\.") {
		return fmt.Errorf("%w: letterhead.default %q must be a template key", ErrInvalidValue, c.Letterhead.Default)
	}

	if err := validateFieldLength("page.format", c.Page.Format, MaxPageFormatLength); err != nil {
		return err
	}
	if c.Page.Scale != 0 && (c.Page.Scale < MinScale || c.Page.Scale > MaxScale) {
		return fmt.Errorf("%w: page.scale must be between %.1f and %.1f, got %.2f", ErrInvalidValue, MinScale, MaxScale, c.Page.Scale)
	}
	margins := []struct {
		field string
		value string
	}{
		{"page.margins.top", c.Page.Margins.Top},
		{"page.margins.right", c.Page.Margins.Right},
		{"page.margins.bottom", c.Page.Margins.Bottom},
		{"page.margins.left", c.Page.Margins.Left},
	}
	for _, m := range margins {
		if err := validateFieldLength(m.field, m.value, MaxLengthValue); err != nil {
			return err
		}
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// NavigationTimeoutDuration returns the parsed navigation timeout, 0 when unset.
func (r RendererConfig) NavigationTimeoutDuration() time.Duration {
	d, _ := parseDuration("renderer.navigationTimeout", r.NavigationTimeout)
	return d
}

// AssetTimeoutDuration returns the parsed asset timeout, 0 when unset.
func (r RendererConfig) AssetTimeoutDuration() time.Duration {
	d, _ := parseDuration("renderer.assetTimeout", r.AssetTimeout)
	return d
}

// PrintBackgroundOrDefault returns page.printBackground, true when unset.
func (p PageConfig) PrintBackgroundOrDefault() bool {
	return p.PrintBackground == nil || *p.PrintBackground
}

// PreferCSSPageSizeOrDefault returns page.preferCSSPageSize, true when unset.
func (p PageConfig) PreferCSSPageSizeOrDefault() bool {
	return p.PreferCSSPageSize == nil || *p.PreferCSSPageSize
}

// parseDuration parses a positive Go duration. Empty means unset.
func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, field, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that leaves every option to the
// converter's defaults.
func DefaultConfig() *Config {
	return &Config{
		Letterhead: LetterheadConfig{Enabled: false},
		Log:        LogConfig{Level: "info"},
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

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, {UserConfigDir}/dazzlodocs/
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
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
