// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserLaunch returns hints for renderer launch errors.
// The renderer always runs without a sandbox, so the only knobs left are
// the browser binary and shared memory inside containers.
func ForBrowserLaunch() string {
	var hints []string

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	if IsInContainer() {
		hints = append(hints, "give the container at least 1GB of /dev/shm or run 'dazzlodocs doctor'")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeouts for slow documents.
func ForTimeout() string {
	return format("for documents with slow remote assets, raise --nav-timeout or --asset-timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "dazzlodocs") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStagingDirectory returns hints when staged documents cannot be written.
func ForStagingDirectory(dir string) string {
	return format("staging directory " + dir + " must be writable; set DAZZLO_STAGING_DIR to move it")
}

// ForTemplateKey returns hints listing the letterhead keys that exist.
func ForTemplateKey(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available letterheads: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
