package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Neelp4258/DazzloDocs"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dazzlodocs <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML documents to PDF")
	fmt.Fprintln(w, "  templates  List available letterheads")
	fmt.Fprintln(w, "  doctor     Check the browser and staging setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'dazzlodocs help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dazzlodocs convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML documents to PDF with an optional letterhead.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file (.html, .htm) or directory, one or more")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel conversions (0 = auto)")
	fmt.Fprintln(w, "      --exact-pages         Count pages with a full PDF parser")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintf(w, "  -f, --format <s>          Page format: %s\n", strings.Join(dazzlodocs.PageFormatNames(), ", "))
	fmt.Fprintln(w, "      --landscape           Landscape orientation")
	fmt.Fprintln(w, "      --scale <f>           Rendering scale (0.1-2.0)")
	fmt.Fprintln(w, "      --margin-top <len>    Top margin (default 12mm)")
	fmt.Fprintln(w, "      --margin-right <len>  Right margin (default 10mm)")
	fmt.Fprintln(w, "      --margin-bottom <len> Bottom margin (default 14mm)")
	fmt.Fprintln(w, "      --margin-left <len>   Left margin (default 10mm)")
	fmt.Fprintln(w, "                            Units: px, in, cm, mm, pt")
	fmt.Fprintln(w, "      --no-background       Do not print backgrounds")
	fmt.Fprintln(w, "      --no-css-page-size    Ignore @page size rules")
	fmt.Fprintln(w, "      --header-footer       Show Chrome's header and footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Letterhead:")
	fmt.Fprintln(w, "  -l, --letterhead          Add a letterhead to every page")
	fmt.Fprintln(w, "  -t, --template <key>      Letterhead key (implies --letterhead)")
	fmt.Fprintln(w, "      --letterhead-dir <d>  Directory of custom letterheads")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser <path>      Chrome binary")
	fmt.Fprintln(w, "      --nav-timeout <d>     Page load timeout (default 30s)")
	fmt.Fprintln(w, "      --asset-timeout <d>   Image load timeout (default 10s)")
	fmt.Fprintln(w, "      --staging-dir <dir>   Directory for staged documents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logging and timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DAZZLO_CONFIG, DAZZLO_STAGING_DIR, DAZZLO_NAV_TIMEOUT, DAZZLO_ASSET_TIMEOUT,")
	fmt.Fprintln(w, "  DAZZLO_LETTERHEAD, DAZZLO_LETTERHEAD_DIR, DAZZLO_PAGE_FORMAT, DAZZLO_WORKERS,")
	fmt.Fprintln(w, "  DAZZLO_LOG_LEVEL. A .env file in the working directory is loaded first.")
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dazzlodocs templates [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available letterheads. The default is marked.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --letterhead-dir <d>  Directory of custom letterheads")
	fmt.Fprintln(w, "  -q, --quiet               Print keys only")
	fmt.Fprintln(w, "  -v, --verbose             Show heights and asset counts")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dazzlodocs doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome can be found and the staging directory is writable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	fmt.Fprintln(w, "      --staging-dir <dir>   Staging directory to check")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: dazzlodocs version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: dazzlodocs help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
