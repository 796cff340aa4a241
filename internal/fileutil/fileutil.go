// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions    = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions   = 0o644 // rw-r--r--: owner read+write, others read
	StagedPermissions = 0o600 // rw-------: staged documents are private to the process
)

// WriteExclusive creates path and writes content to it.
// Fails if the file already exists, so two writers can never share a path.
// On a failed write the partial file is removed.
func WriteExclusive(path, content string) error {
	// #nosec G304 -- path is built by the caller from a generated identifier
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, StagedPermissions)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, writeErr := f.WriteString(content); writeErr != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}

	if closeErr := f.Close(); closeErr != nil {
		_ = os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}

	return nil
}

// WriteAtomic writes data to path through a temporary sibling and a rename.
// Concurrent writers of identical content never expose a half-written file.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	// #nosec G302 -- assets are read by the browser process
	if err := os.Chmod(tmpPath, FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// RemoveIfExists deletes path. A missing file is not an error.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirWritable reports whether a file can be created inside dir.
func DirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "dazzlo" -> false (name)
//   - "./custom.yaml" -> true (relative path)
//   - "/etc/dazzlodocs/prod.yaml" -> true (absolute)
//   - "C:\config\prod.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// PathToFileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths.
func PathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		// Windows drive letter: file:///C:/...
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// DirToBaseURL converts a directory to a file:// URL usable as an HTML base,
// which requires a trailing slash to resolve children.
func DirToBaseURL(absDir string) string {
	u := PathToFileURL(absDir)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
