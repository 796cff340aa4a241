package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/Neelp4258/DazzloDocs"
	"github.com/Neelp4258/DazzloDocs/internal/config"
	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
	"github.com/Neelp4258/DazzloDocs/internal/hints"
	"github.com/Neelp4258/DazzloDocs/internal/letterhead"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput   = errors.New("no input specified")
	ErrUsage     = errors.New("invalid usage")
	ErrOutputPDF = errors.New("output ending in .pdf needs a single input file")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConvertConfig(flags, envCfg)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, resolveLogLevel(cfg.Log.Level, flags.common.quiet, flags.common.verbose))
	warnUnknownEnvVars(logger)

	template := flags.letterhead.template
	if template == "" {
		template = envCfg.template()
	}
	opts := buildOptions(cfg, template)
	if err := opts.Validate(); err != nil {
		return err
	}

	files, err := discoverFiles(positional, flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	renderer := dazzlodocs.NewRenderer(rendererOptions(cfg, logger)...)
	conv, err := dazzlodocs.NewConverter(renderer, converterOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	if opts.Letterhead && opts.LetterheadTemplate != "" &&
		!slices.Contains(conv.Letterheads(), letterhead.NormalizeKey(opts.LetterheadTemplate)) {
		logger.Warn("unknown letterhead, using default"+hints.ForTemplateKey(conv.Letterheads()),
			"key", opts.LetterheadTemplate, "default", conv.DefaultLetterhead())
	}

	logger.Debug("starting browser")
	if err := renderer.Initialize(ctx); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForBrowserLaunch())
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			logger.Warn("closing browser", "err", err)
		}
	}()

	workers := dazzlodocs.ResolveWorkers(cfg.Workers)
	logger.Debug("converting", "files", len(files), "workers", workers, "staging", conv.StagingDir())

	results := convertBatch(ctx, conv, files, opts, workers, flags.exactPages)

	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		first := firstError(results)
		return fmt.Errorf("%d conversion(s) failed: %w%s", failed, first, hintFor(first, conv.StagingDir()))
	}
	return nil
}

// hintFor returns an actionable hint for a conversion failure, or "".
func hintFor(err error, stagingDir string) string {
	switch {
	case errors.Is(err, dazzlodocs.ErrPageLoad), errors.Is(err, dazzlodocs.ErrAssetWait):
		return hints.ForTimeout()
	case errors.Is(err, dazzlodocs.ErrStaging):
		return hints.ForStagingDirectory(stagingDir)
	case errors.Is(err, dazzlodocs.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// loadConfigFile loads the named config, or the defaults when name is empty.
func loadConfigFile(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// userConfigPaths returns where a config name would be looked up in the user
// config directory. Paths are used as given, so they have none.
func userConfigPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "dazzlodocs", name+".yaml")}
}

// loadConvertConfig resolves configuration from file, environment and flags.
// Precedence: CLI flags > env vars > config file > defaults.
func loadConvertConfig(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg, err := loadConfigFile(name)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := validateWorkers(cfg.Workers); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Boolean flags only apply when given, so --letterhead=false can switch off
// a letterhead enabled in config.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.changed["workers"] {
		cfg.Workers = flags.workers
	}

	// Page
	if flags.page.format != "" {
		cfg.Page.Format = flags.page.format
	}
	if flags.changed["landscape"] {
		cfg.Page.Landscape = flags.page.landscape
	}
	if flags.changed["scale"] {
		cfg.Page.Scale = flags.page.scale
	}
	if flags.page.marginTop != "" {
		cfg.Page.Margins.Top = flags.page.marginTop
	}
	if flags.page.marginRight != "" {
		cfg.Page.Margins.Right = flags.page.marginRight
	}
	if flags.page.marginBottom != "" {
		cfg.Page.Margins.Bottom = flags.page.marginBottom
	}
	if flags.page.marginLeft != "" {
		cfg.Page.Margins.Left = flags.page.marginLeft
	}
	if flags.changed["no-background"] {
		v := !flags.page.noBackground
		cfg.Page.PrintBackground = &v
	}
	if flags.changed["no-css-page-size"] {
		v := !flags.page.noCSSPageSize
		cfg.Page.PreferCSSPageSize = &v
	}
	if flags.changed["header-footer"] {
		cfg.Page.HeaderFooter = flags.page.headerFooter
	}

	// Letterhead
	if flags.changed["letterhead"] {
		cfg.Letterhead.Enabled = flags.letterhead.enabled
	}
	if flags.letterhead.template != "" && !flags.changed["letterhead"] {
		cfg.Letterhead.Enabled = true
	}
	if flags.letterhead.dir != "" {
		cfg.Letterhead.Dir = flags.letterhead.dir
	}

	// Renderer
	if flags.renderer.browserBin != "" {
		cfg.Renderer.BrowserBin = flags.renderer.browserBin
	}
	if flags.renderer.navTimeout != "" {
		cfg.Renderer.NavigationTimeout = flags.renderer.navTimeout
	}
	if flags.renderer.assetTimeout != "" {
		cfg.Renderer.AssetTimeout = flags.renderer.assetTimeout
	}
	if flags.renderer.stagingDir != "" {
		cfg.Staging.Dir = flags.renderer.stagingDir
	}
}

// buildOptions converts page and letterhead config into conversion options.
// template selects the letterhead for this run; empty uses the default.
func buildOptions(cfg *config.Config, template string) *dazzlodocs.Options {
	opts := dazzlodocs.DefaultOptions()

	if cfg.Page.Format != "" {
		opts.PageFormat = cfg.Page.Format
	}
	if cfg.Page.Scale != 0 {
		opts.Scale = cfg.Page.Scale
	}
	if cfg.Page.Margins.Top != "" {
		opts.Margins.Top = cfg.Page.Margins.Top
	}
	if cfg.Page.Margins.Right != "" {
		opts.Margins.Right = cfg.Page.Margins.Right
	}
	if cfg.Page.Margins.Bottom != "" {
		opts.Margins.Bottom = cfg.Page.Margins.Bottom
	}
	if cfg.Page.Margins.Left != "" {
		opts.Margins.Left = cfg.Page.Margins.Left
	}
	opts.Landscape = cfg.Page.Landscape
	opts.PrintBackground = cfg.Page.PrintBackgroundOrDefault()
	opts.PreferCSSPageSize = cfg.Page.PreferCSSPageSizeOrDefault()
	opts.DisplayHeaderFooter = cfg.Page.HeaderFooter

	opts.Letterhead = cfg.Letterhead.Enabled
	opts.LetterheadTemplate = template

	return opts
}

// rendererOptions maps renderer config to renderer options.
func rendererOptions(cfg *config.Config, logger *log.Logger) []dazzlodocs.RendererOption {
	opts := []dazzlodocs.RendererOption{dazzlodocs.WithRendererLogger(logger)}
	if cfg.Renderer.BrowserBin != "" {
		opts = append(opts, dazzlodocs.WithBrowserBin(cfg.Renderer.BrowserBin))
	}
	if d := cfg.Renderer.NavigationTimeoutDuration(); d > 0 {
		opts = append(opts, dazzlodocs.WithNavigationTimeout(d))
	}
	if d := cfg.Renderer.AssetTimeoutDuration(); d > 0 {
		opts = append(opts, dazzlodocs.WithAssetTimeout(d))
	}
	return opts
}

// converterOptions maps staging and letterhead config to converter options.
func converterOptions(cfg *config.Config, logger *log.Logger) []dazzlodocs.Option {
	opts := []dazzlodocs.Option{dazzlodocs.WithLogger(logger)}
	if cfg.Staging.Dir != "" {
		opts = append(opts, dazzlodocs.WithStagingDir(cfg.Staging.Dir))
	}
	if cfg.Letterhead.Dir != "" {
		opts = append(opts, dazzlodocs.WithLetterheadDir(cfg.Letterhead.Dir))
	}
	if cfg.Letterhead.Default != "" {
		opts = append(opts, dazzlodocs.WithDefaultTemplate(cfg.Letterhead.Default))
	}
	return opts
}
