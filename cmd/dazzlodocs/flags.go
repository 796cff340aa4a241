package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	format        string
	landscape     bool
	scale         float64
	marginTop     string
	marginRight   string
	marginBottom  string
	marginLeft    string
	noBackground  bool
	noCSSPageSize bool
	headerFooter  bool
}

// letterheadFlags holds letterhead selection flags.
type letterheadFlags struct {
	enabled  bool
	template string
	dir      string
}

// rendererFlags holds browser and staging flags.
type rendererFlags struct {
	browserBin   string
	navTimeout   string
	assetTimeout string
	stagingDir   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	exactPages bool
	page       pageFlags
	letterhead letterheadFlags
	renderer   rendererFlags

	// changed records which flags were set on the command line, so explicit
	// false values can override config.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging and timings")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "page format: A4, Letter, Legal, ...")
	fs.BoolVar(&f.landscape, "landscape", false, "landscape orientation")
	fs.Float64Var(&f.scale, "scale", 0, "rendering scale (0.1-2.0)")
	fs.StringVar(&f.marginTop, "margin-top", "", "top margin, e.g. 12mm")
	fs.StringVar(&f.marginRight, "margin-right", "", "right margin, e.g. 10mm")
	fs.StringVar(&f.marginBottom, "margin-bottom", "", "bottom margin, e.g. 14mm")
	fs.StringVar(&f.marginLeft, "margin-left", "", "left margin, e.g. 10mm")
	fs.BoolVar(&f.noBackground, "no-background", false, "do not print background colors and images")
	fs.BoolVar(&f.noCSSPageSize, "no-css-page-size", false, "ignore @page size rules")
	fs.BoolVar(&f.headerFooter, "header-footer", false, "show Chrome's header and footer")
}

// addLetterheadFlags adds letterhead flags to a FlagSet.
func addLetterheadFlags(fs *flag.FlagSet, f *letterheadFlags) {
	fs.BoolVarP(&f.enabled, "letterhead", "l", false, "add a letterhead to every page")
	fs.StringVarP(&f.template, "template", "t", "", "letterhead key (implies --letterhead)")
	fs.StringVar(&f.dir, "letterhead-dir", "", "directory of custom letterheads")
}

// addRendererFlags adds browser flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.browserBin, "browser", "", "Chrome binary (default: ROD_BROWSER_BIN or auto-detect)")
	fs.StringVar(&f.navTimeout, "nav-timeout", "", "page load timeout (e.g., 30s)")
	fs.StringVar(&f.assetTimeout, "asset-timeout", "", "image load timeout (e.g., 10s)")
	fs.StringVar(&f.stagingDir, "staging-dir", "", "directory for staged documents")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &convertFlags{changed: make(map[string]bool)}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.BoolVar(&f.exactPages, "exact-pages", false, "count pages with a full PDF parser")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addLetterheadFlags(fs, &f.letterhead)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printConvertUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}

// parseTemplatesFlags parses templates command flags.
func parseTemplatesFlags(args []string, usageOut io.Writer) (*commonFlags, string, error) {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &commonFlags{}
	var dir string

	addCommonFlags(fs, f)
	fs.StringVar(&dir, "letterhead-dir", "", "directory of custom letterheads")
	fs.Usage = func() { printTemplatesUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	return f, dir, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, usageOut io.Writer) (jsonOutput bool, stagingDir string, err error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.BoolVar(&jsonOutput, "json", false, "machine-readable output")
	fs.StringVar(&stagingDir, "staging-dir", "", "staging directory to check")
	fs.Usage = func() { printDoctorUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return false, "", err
	}
	return jsonOutput, stagingDir, nil
}
