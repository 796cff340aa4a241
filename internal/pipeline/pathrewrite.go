package pipeline

import (
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
)

// RewriteRelativePaths converts relative asset references to absolute file://
// URLs rooted at sourceDir, so a document staged in another directory still
// finds the files that sat next to it. If sourceDir is empty, returns the
// HTML unchanged.
//
// The input is tokenized, not parsed into a tree: only the rewritten
// attribute values change and every other byte is passed through as written.
//
// Rewrites:
//   - img[src]
//   - a[href] (the #fragment is kept)
//   - link[rel=stylesheet][href]
//
// Left untouched:
//   - URLs with a scheme, protocol-relative URLs and anchors
//   - absolute paths
//   - paths that resolve outside sourceDir
//   - srcset, CSS url() references and media elements
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.Grow(len(htmlContent))

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			buf.Write(z.Raw())
			return buf.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			// Token() lowercases the tokenizer's buffer in place
			raw := string(z.Raw())
			buf.WriteString(rewriteTag(raw, z.Token(), absSourceDir))

		default:
			buf.Write(z.Raw())
		}
	}
}

// rewriteTag returns raw with its asset reference rewritten, or raw itself
// when tok carries nothing to rewrite.
func rewriteTag(raw string, tok html.Token, sourceDir string) string {
	var attrName string
	keepFragment := false

	switch tok.DataAtom {
	case atom.Img:
		attrName = "src"
	case atom.A:
		attrName, keepFragment = "href", true
	case atom.Link:
		if !isStylesheet(tok.Attr) {
			return raw
		}
		attrName = "href"
	default:
		return raw
	}

	val, ok := firstAttr(tok.Attr, attrName)
	if !ok {
		return raw
	}
	resolved, ok := resolveReference(val, sourceDir, keepFragment)
	if !ok {
		return raw
	}
	return replaceAttrValue(raw, attrName, resolved)
}

// resolveReference maps a relative reference to a file URL under sourceDir.
func resolveReference(ref, sourceDir string, keepFragment bool) (string, bool) {
	if !isRelativePath(ref) {
		return "", false
	}

	target, fragment := ref, ""
	if keepFragment {
		if idx := strings.IndexByte(target, '#'); idx != -1 {
			target, fragment = target[:idx], target[idx:]
		}
	}

	absPath := filepath.Join(sourceDir, filepath.FromSlash(target))
	if !isPathUnderDir(absPath, sourceDir) {
		return "", false
	}
	return fileutil.PathToFileURL(absPath) + fragment, true
}

// tagAttrPattern matches one attribute of a start tag: the name, then an
// optional double-quoted, single-quoted or unquoted value.
var tagAttrPattern = regexp.MustCompile("([^\\s\"'>/=]+)(?:\\s*=\\s*(\"[^\"]*\"|'[^']*'|[^\\s\"'=<>`]+))?")

// replaceAttrValue swaps the value of the first name attribute in a raw
// start tag, leaving the rest of the tag byte for byte.
func replaceAttrValue(raw, name, value string) string {
	// Skip "<" and the tag name
	offset := 1
	for offset < len(raw) && !isTagSpace(raw[offset]) && raw[offset] != '>' && raw[offset] != '/' {
		offset++
	}

	for _, m := range tagAttrPattern.FindAllStringSubmatchIndex(raw[offset:], -1) {
		if !strings.EqualFold(raw[offset+m[2]:offset+m[3]], name) {
			continue
		}
		if m[4] < 0 {
			return raw
		}
		return raw[:offset+m[4]] + `"` + html.EscapeString(value) + `"` + raw[offset+m[5]:]
	}
	return raw
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func firstAttr(attrs []html.Attribute, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func isStylesheet(attrs []html.Attribute) bool {
	for _, attr := range attrs {
		if attr.Key == "rel" && strings.EqualFold(strings.TrimSpace(attr.Val), "stylesheet") {
			return true
		}
	}
	return false
}

// isRelativePath returns true if the reference should be resolved against
// the source directory.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}

	// Checked before the scheme test: C:\ parses as scheme "c"
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return false
	}

	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}

	return true
}

// isPathUnderDir checks that absPath is dir or a descendant of it.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
