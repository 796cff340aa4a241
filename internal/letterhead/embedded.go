package letterhead

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

// DefaultKey is the key of the primary brand letterhead.
const DefaultKey = "dazzlo"

//go:embed letterheads
var letterheads embed.FS

var builtin = mustLoadEmbedded()

// Builtin returns the registry of templates embedded at compile time.
// The default template is DefaultKey.
func Builtin() *Registry {
	return builtin
}

func mustLoadEmbedded() *Registry {
	r, err := loadEmbedded(letterheads)
	if err != nil {
		panic(fmt.Sprintf("letterhead: embedded templates: %v", err))
	}
	return r
}

func loadEmbedded(fsys fs.FS) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, AssetPrefix)
	if err != nil {
		return nil, err
	}

	var templates []*Template
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, err := fs.Sub(fsys, path.Join(AssetPrefix, e.Name()))
		if err != nil {
			return nil, err
		}
		t, err := parseTemplate(e.Name(), sub)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return NewRegistry(DefaultKey, templates...)
}
