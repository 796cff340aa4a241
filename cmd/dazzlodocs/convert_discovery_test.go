package main

// Notes:
// - discoverFiles: we test single files, recursive directories, several
//   inputs at once and the errors for bad extensions, empty directories and
//   a .pdf output shared by several files.
// - Output paths are compared after filepath.Join so the tests run on any OS.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<p>x</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles
// ---------------------------------------------------------------------------

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "quote.html")
	touch(t, in)

	files, err := discoverFiles([]string{in}, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if want := filepath.Join(dir, "quote.pdf"); files[0].OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	touch(t, filepath.Join(src, "a.html"))
	touch(t, filepath.Join(src, "nested", "b.HTM"))
	touch(t, filepath.Join(src, "notes.txt"))
	touch(t, filepath.Join(src, "style.css"))

	out := t.TempDir()
	files, err := discoverFiles([]string{src}, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}

	want := map[string]string{
		filepath.Join(src, "a.html"):           filepath.Join(out, "a.pdf"),
		filepath.Join(src, "nested", "b.HTM"): filepath.Join(out, "nested", "b.pdf"),
	}
	for _, f := range files {
		if want[f.InputPath] != f.OutputPath {
			t.Errorf("%s -> %s, want %s", f.InputPath, f.OutputPath, want[f.InputPath])
		}
	}
}

func TestDiscoverFiles_MultipleInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.html")
	b := filepath.Join(dir, "sub", "b.htm")
	touch(t, a)
	touch(t, b)

	files, err := discoverFiles([]string{a, filepath.Dir(b)}, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].InputPath != a || files[1].InputPath != b {
		t.Errorf("files out of input order: %+v", files)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := filepath.Join(dir, "readme.md")
	touch(t, md)
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	a := filepath.Join(dir, "two", "a.html")
	touch(t, a)
	touch(t, filepath.Join(dir, "two", "b.html"))

	tests := []struct {
		name    string
		inputs  []string
		output  string
		wantErr error
	}{
		{"wrong extension", []string{md}, "", ErrInvalidExtension},
		{"missing file", []string{filepath.Join(dir, "nope.html")}, "", os.ErrNotExist},
		{"empty directory", []string{empty}, "", ErrNoHTMLFiles},
		{"pdf output for many files", []string{filepath.Dir(a)}, "out.pdf", ErrOutputPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverFiles(tt.inputs, tt.output)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("discoverFiles() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		baseDir string
		want    string
	}{
		{"next to input", filepath.Join("docs", "a.html"), "", "", filepath.Join("docs", "a.pdf")},
		{"explicit pdf", "a.html", "final.pdf", "", "final.pdf"},
		{"explicit PDF uppercase", "a.html", "FINAL.PDF", "", "FINAL.PDF"},
		{"into directory", "a.htm", "out", "", filepath.Join("out", "a.pdf")},
		{"keeps tree", filepath.Join("src", "x", "a.html"), "out", "src", filepath.Join("out", "x", "a.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.output, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{4, false},
		{64, false},
		{65, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
