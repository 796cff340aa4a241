package hints

// Notes:
// - ForBrowserLaunch tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func TestForBrowserLaunch_NoBinary(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("ROD_BROWSER_BIN", "")

	hint := ForBrowserLaunch()

	if !strings.Contains(hint, "hint:") {
		t.Error("expected hint prefix")
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("expected ROD_BROWSER_BIN suggestion")
	}
	if strings.Contains(hint, "/dev/shm") {
		t.Error("shm hint should only appear in containers")
	}
}

func TestForBrowserLaunch_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	hint := ForBrowserLaunch()

	if strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("should not suggest ROD_BROWSER_BIN when already set")
	}
	if !strings.Contains(hint, "/dev/shm") {
		t.Error("expected shared memory suggestion in container")
	}
}

func TestForBrowserLaunch_NothingToSuggest(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	if hint := ForBrowserLaunch(); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
}

func TestForTimeout(t *testing.T) {
	t.Parallel()

	hint := ForTimeout()
	if !strings.Contains(hint, "--nav-timeout") || !strings.Contains(hint, "--asset-timeout") {
		t.Errorf("expected timeout flags in hint, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		wantPart string
	}{
		{
			name:     "no paths",
			paths:    nil,
			wantPart: "--config",
		},
		{
			name:     "suggests user config path",
			paths:    []string{"prod.yaml", "/home/u/.config/dazzlodocs/prod.yaml"},
			wantPart: "create /home/u/.config/dazzlodocs/prod.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.wantPart) {
				t.Errorf("expected %q in %q", tt.wantPart, hint)
			}
		})
	}
}

func TestForStagingDirectory(t *testing.T) {
	t.Parallel()

	hint := ForStagingDirectory("/var/tmp/dazzlodocs")
	if !strings.Contains(hint, "/var/tmp/dazzlodocs") || !strings.Contains(hint, "DAZZLO_STAGING_DIR") {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestForTemplateKey(t *testing.T) {
	t.Parallel()

	if got := ForTemplateKey(nil); got != "" {
		t.Errorf("expected empty hint, got %q", got)
	}

	hint := ForTemplateKey([]string{"dazzlo", "dazzlo-tech"})
	if !strings.Contains(hint, "dazzlo, dazzlo-tech") {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestForOutputDirectory(t *testing.T) {
	t.Parallel()

	if !strings.HasPrefix(ForOutputDirectory(), "\n  hint: ") {
		t.Error("expected formatted hint")
	}
}
