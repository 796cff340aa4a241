package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/Neelp4258/DazzloDocs"
	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
	"github.com/Neelp4258/DazzloDocs/internal/hints"
	"github.com/Neelp4258/DazzloDocs/internal/letterhead"
)

// lookPath locates an installed browser. Replaced in tests.
var lookPath = launcher.LookPath

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Chrome     chromeInfo     `json:"chrome"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Letterhead letterheadInfo `json:"letterheads"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	StagingDir      string `json:"staging_dir"`
	StagingWritable bool   `json:"staging_writable"`
}

// letterheadInfo lists the built-in letterheads.
type letterheadInfo struct {
	Keys    []string `json:"keys"`
	Default string   `json:"default"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput, stagingDir, err := parseDoctorFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}
	if stagingDir == "" {
		stagingDir = os.Getenv("DAZZLO_STAGING_DIR")
	}
	if stagingDir == "" {
		stagingDir = dazzlodocs.DefaultStagingDir()
	}

	result := runDoctor(stagingDir)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(stagingDir string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkStaging(result, stagingDir)
	checkLetterheads(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
// A missing browser is a warning: rod downloads Chromium on first launch.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = lookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; Chromium will be downloaded on first run. Set ROD_BROWSER_BIN to use an installed browser")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	// #nosec G204 -- browser path comes from ROD_BROWSER_BIN or launcher lookup
	out, err := exec.Command(chromePath, "--version").Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container {
		result.Warnings = append(result.Warnings,
			"Container detected: Chrome needs at least 1GB of /dev/shm (docker run --shm-size=1g)")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("DAZZLO_CONTAINER") == "1" {
		return true, "DAZZLO_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkStaging verifies staged documents can be written.
func checkStaging(result *doctorResult, dir string) {
	result.System.StagingDir = dir
	if err := os.MkdirAll(dir, fileutil.DirPermissions); err == nil && fileutil.DirWritable(dir) {
		result.System.StagingWritable = true
		return
	}
	result.Errors = append(result.Errors,
		fmt.Sprintf("Staging directory not writable: %s", dir))
}

// checkLetterheads reports the built-in letterheads.
func checkLetterheads(result *doctorResult) {
	reg := letterhead.Builtin()
	result.Letterhead.Keys = reg.Keys()
	result.Letterhead.Default = reg.DefaultKey()
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "dazzlodocs doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.StagingWritable {
		fmt.Fprintf(w, "  [OK] Staging directory: %s\n", r.System.StagingDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Staging directory: %s not writable\n", r.System.StagingDir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Letterheads")
	fmt.Fprintf(w, "  [OK] %s (default %s)\n", strings.Join(r.Letterhead.Keys, ", "), r.Letterhead.Default)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
