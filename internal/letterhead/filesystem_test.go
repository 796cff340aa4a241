package letterhead

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTemplateDir creates a complete template directory under base/key.
func writeTemplateDir(t *testing.T, base, key, name string) string {
	t.Helper()

	dir := filepath.Join(base, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create template dir: %v", err)
	}
	files := map[string]string{
		ManifestFile: "name: " + name + "\nheaderHeight: 25mm\nfooterHeight: 12mm\n",
		StyleFile:    ".letterhead-header{color:red !important}",
		HeaderFile:   `<header class="letterhead-header"><img src="letterheads/` + key + `/logo.svg">` + name + `</header>`,
		FooterFile:   `<footer class="letterhead-footer">` + name + `</footer>`,
		"logo.svg":   `<svg xmlns="http://www.w3.org/2000/svg"/>`,
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", file, err)
		}
	}
	return dir
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTemplateDir(t, base, "acme", "Acme Corp")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("loads complete template", func(t *testing.T) {
		t.Parallel()

		tpl, err := loader.Load("ACME")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if tpl.Key != "acme" || tpl.Name != "Acme Corp" {
			t.Errorf("Key/Name = %q/%q", tpl.Key, tpl.Name)
		}
		if tpl.HeaderHeight != "25mm" || tpl.FooterHeight != "12mm" {
			t.Errorf("heights = %q/%q", tpl.HeaderHeight, tpl.FooterHeight)
		}
		if !strings.Contains(tpl.Header, "Acme Corp") {
			t.Errorf("Header = %q", tpl.Header)
		}
		if _, ok := tpl.Assets["logo.svg"]; !ok {
			t.Error("logo.svg asset not loaded")
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.Load("missing")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("Load(missing) error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("traversal key rejected", func(t *testing.T) {
		t.Parallel()

		_, err := loader.Load("../etc")
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Load(../etc) error = %v, want ErrInvalidKey", err)
		}
	})
}

func TestFilesystemLoader_Incomplete(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	dir := writeTemplateDir(t, base, "broken", "Broken")
	if err := os.Remove(filepath.Join(dir, FooterFile)); err != nil {
		t.Fatal(err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.Load("broken")
	if !errors.Is(err, ErrIncompleteTemplate) {
		t.Errorf("Load() error = %v, want ErrIncompleteTemplate", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.css")
	if err := os.WriteFile(secret, []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := t.TempDir()
	dir := writeTemplateDir(t, base, "sneaky", "Sneaky")
	css := filepath.Join(dir, StyleFile)
	if err := os.Remove(css); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, css); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.Load("sneaky")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("Load() error = %v, want ErrPathTraversal", err)
	}
}

func TestFilesystemLoader_LoadAll(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTemplateDir(t, base, "one", "One")
	writeTemplateDir(t, base, "two", "Two")
	if err := os.WriteFile(filepath.Join(base, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(base, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	templates, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(templates) != 2 {
		t.Errorf("LoadAll() returned %d templates, want 2", len(templates))
	}
}

func TestFromDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTemplateDir(t, base, "dazzlo-tech", "Custom Tech")
	writeTemplateDir(t, base, "partner", "Partner")

	r, err := FromDir(Builtin(), base)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}

	if got := r.Lookup("dazzlo-tech").Name; got != "Custom Tech" {
		t.Errorf("dazzlo-tech Name = %q, want custom override", got)
	}
	if _, ok := r.Get("partner"); !ok {
		t.Error("partner template missing")
	}
	if r.DefaultKey() != DefaultKey {
		t.Errorf("DefaultKey() = %q, want %q", r.DefaultKey(), DefaultKey)
	}
	if Builtin().Lookup("dazzlo-tech").Name == "Custom Tech" {
		t.Error("FromDir mutated the built-in registry")
	}
}
