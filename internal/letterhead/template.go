package letterhead

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Neelp4258/DazzloDocs/internal/yamlutil"
)

// Files every template directory must provide.
const (
	ManifestFile = "letterhead.yaml"
	StyleFile    = "letterhead.css"
	HeaderFile   = "header.html"
	FooterFile   = "footer.html"
)

// AssetPrefix is the directory, relative to the staging base, under which
// template assets are materialized.
const AssetPrefix = "letterheads"

var assetExtensions = map[string]bool{
	".svg":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Template is one brand letterhead. Values are treated as immutable once
// registered.
type Template struct {
	Key          string            // Registry key (normalized)
	Name         string            // Display name
	CSS          string            // Stylesheet for header and footer
	Header       string            // Header markup
	Footer       string            // Footer markup
	HeaderHeight string            // Vertical space reserved at the top of each page
	FooterHeight string            // Vertical space reserved at the bottom of each page
	Assets       map[string][]byte // Image files keyed by base name
}

// AssetDir returns the slash-separated directory, relative to the staging
// base, that the template's markup expects its assets in.
func (t *Template) AssetDir() string {
	return path.Join(AssetPrefix, t.Key)
}

// AssetNames returns the template's asset file names in sorted order.
func (t *Template) AssetNames() []string {
	names := make([]string, 0, len(t.Assets))
	for name := range t.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type manifest struct {
	Name         string `yaml:"name"`
	HeaderHeight string `yaml:"headerHeight"`
	FooterHeight string `yaml:"footerHeight"`
}

// parseTemplate reads one template from fsys, rooted at the template's own
// directory.
func parseTemplate(key string, fsys fs.FS) (*Template, error) {
	key = NormalizeKey(key)
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	raw, err := readRequired(fsys, key, ManifestFile)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yamlutil.UnmarshalStrict(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, key, err)
	}
	if err := validateHeight("headerHeight", m.HeaderHeight); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if err := validateHeight("footerHeight", m.FooterHeight); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	tpl := &Template{
		Key:          key,
		Name:         strings.TrimSpace(m.Name),
		HeaderHeight: m.HeaderHeight,
		FooterHeight: m.FooterHeight,
		Assets:       make(map[string][]byte),
	}
	if tpl.Name == "" {
		tpl.Name = key
	}

	parts := []struct {
		file string
		dst  *string
	}{
		{StyleFile, &tpl.CSS},
		{HeaderFile, &tpl.Header},
		{FooterFile, &tpl.Footer},
	}
	for _, p := range parts {
		content, err := readRequired(fsys, key, p.file)
		if err != nil {
			return nil, err
		}
		*p.dst = string(content)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrAssetRead, key, err)
	}
	for _, e := range entries {
		if e.IsDir() || !assetExtensions[strings.ToLower(path.Ext(e.Name()))] {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %w", ErrAssetRead, key, e.Name(), err)
		}
		tpl.Assets[e.Name()] = data
	}

	return tpl, nil
}

func readRequired(fsys fs.FS, key, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplate, key, name)
		}
		return nil, fmt.Errorf("%w: %s/%s: %w", ErrAssetRead, key, name, err)
	}
	return data, nil
}
