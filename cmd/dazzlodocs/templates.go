package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Neelp4258/DazzloDocs"
	"github.com/Neelp4258/DazzloDocs/internal/config"
	"github.com/Neelp4258/DazzloDocs/internal/hints"
	"github.com/Neelp4258/DazzloDocs/internal/letterhead"
)

// runTemplates lists the letterheads available to convert, marking the
// default. Custom letterheads come from --letterhead-dir, DAZZLO_LETTERHEAD_DIR
// or letterhead.dir in config. A key in DAZZLO_LETTERHEAD is marked as the
// default when it exists, as convert would use it.
func runTemplates(args []string, env *Environment) error {
	flags, dir, err := parseTemplatesFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	cfg, err := loadConfigFile(name)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if dir != "" {
		cfg.Letterhead.Dir = dir
	}

	reg, err := loadRegistry(cfg.Letterhead)
	if err != nil {
		return err
	}
	if key := envCfg.template(); key != "" {
		if selected, err := reg.WithDefault(key); err == nil {
			reg = selected
		} else {
			logger := newLogger(env.Stderr, resolveLogLevel(cfg.Log.Level, flags.quiet, flags.verbose))
			logger.Warn("unknown letterhead, using default"+hints.ForTemplateKey(reg.Keys()),
				"key", key, "default", reg.DefaultKey())
		}
	}

	if flags.quiet {
		for _, key := range reg.Keys() {
			fmt.Fprintln(env.Stdout, key)
		}
		return nil
	}
	printTemplates(env.Stdout, reg, flags.verbose)
	return nil
}

// loadRegistry builds the registry the converter would use for cfg.
func loadRegistry(cfg config.LetterheadConfig) (*letterhead.Registry, error) {
	reg := letterhead.Builtin()
	var err error
	if cfg.Dir != "" {
		if reg, err = letterhead.FromDir(reg, cfg.Dir); err != nil {
			return nil, fmt.Errorf("%w: %w", dazzlodocs.ErrInvalidLetterhead, err)
		}
	}
	if cfg.Default != "" {
		if reg, err = reg.WithDefault(cfg.Default); err != nil {
			return nil, fmt.Errorf("%w: %w", dazzlodocs.ErrInvalidLetterhead, err)
		}
	}
	return reg, nil
}

func printTemplates(w io.Writer, reg *letterhead.Registry, verbose bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, key := range reg.Keys() {
		tpl, _ := reg.Get(key)
		mark := ""
		if key == reg.DefaultKey() {
			mark = "(default)"
		}
		if verbose {
			fmt.Fprintf(tw, "%s\t%s\theader %s\tfooter %s\t%d assets\t%s\n",
				key, tpl.Name, tpl.HeaderHeight, tpl.FooterHeight, len(tpl.Assets), mark)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, tpl.Name, mark)
	}
	_ = tw.Flush()

	if verbose {
		fmt.Fprintf(w, "\n%d letterheads\n", reg.Len())
	}
}
