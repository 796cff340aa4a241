package dazzlodocs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
	"github.com/Neelp4258/DazzloDocs/internal/letterhead"
)

// Staged document naming.
const (
	stagedPrefix = "staged-"
	stagedSuffix = ".html"
)

// DefaultStagingDir returns the directory used when no staging directory is
// configured.
func DefaultStagingDir() string {
	return filepath.Join(os.TempDir(), "dazzlodocs")
}

// stager writes staged documents and the letterhead assets they reference.
type stager struct {
	dir    string
	logger *log.Logger
}

// stagedDoc is one staged document, owned by a single conversion.
type stagedDoc struct {
	ID   string
	Path string
}

// URL returns the file URL the browser navigates to.
func (d stagedDoc) URL() string {
	return fileutil.PathToFileURL(d.Path)
}

// stage writes content under a fresh identifier. The file is created
// exclusively, so concurrent conversions can never share it.
func (s *stager) stage(content string) (stagedDoc, error) {
	if err := os.MkdirAll(s.dir, fileutil.DirPermissions); err != nil {
		return stagedDoc{}, fmt.Errorf("%w: creating %s: %w", ErrStaging, s.dir, err)
	}

	id := uuid.NewString()
	doc := stagedDoc{
		ID:   id,
		Path: filepath.Join(s.dir, stagedPrefix+id+stagedSuffix),
	}
	if err := fileutil.WriteExclusive(doc.Path, content); err != nil {
		return stagedDoc{}, fmt.Errorf("%w: %w", ErrStaging, err)
	}
	return doc, nil
}

// remove deletes a staged document. Failures are logged, never returned.
func (s *stager) remove(doc stagedDoc) {
	if err := fileutil.RemoveIfExists(doc.Path); err != nil {
		s.logger.Warn("failed to remove staged document", "id", doc.ID, "path", doc.Path, "err", err)
	}
}

// materialize copies a template's assets to <dir>/letterheads/<key>/ so
// that the relative references in its markup resolve against the staging
// directory. Files already holding the same bytes are left alone.
func (s *stager) materialize(tpl *letterhead.Template) error {
	if len(tpl.Assets) == 0 {
		return nil
	}

	assetDir := filepath.Join(s.dir, filepath.FromSlash(tpl.AssetDir()))
	for _, name := range tpl.AssetNames() {
		// Names come from a directory listing but custom templates are user data
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("%w: invalid asset name %q in letterhead %q", ErrStaging, name, tpl.Key)
		}

		data := tpl.Assets[name]
		target := filepath.Join(assetDir, name)

		existing, err := os.ReadFile(target) // #nosec G304 -- target is inside the staging directory
		if err == nil && bytes.Equal(existing, data) {
			continue
		}

		if err := fileutil.WriteAtomic(target, data); err != nil {
			return fmt.Errorf("%w: letterhead asset %s: %w", ErrStaging, name, err)
		}
	}
	return nil
}
