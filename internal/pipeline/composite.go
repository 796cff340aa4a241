package pipeline

import (
	"html"
	"regexp"
	"strings"

	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
	"github.com/Neelp4258/DazzloDocs/internal/letterhead"
)

// The optional attribute group requires whitespace after the tag name so
// <header> is never taken for <head>.
var (
	headPattern = regexp.MustCompile(`(?is)<head(?:\s[^>]*)?>(.*?)</head\s*>`)
	bodyPattern = regexp.MustCompile(`(?is)<body(?:\s[^>]*)?>(.*?)</body\s*>`)
)

// Style block ids used in composited documents.
const (
	LetterheadStyleID = "dazzlodocs-letterhead"
	ReserveStyleID    = "dazzlodocs-letterhead-reserve"
)

// TemplateLookup resolves a letterhead key, falling back to a default
// template for unknown keys.
type TemplateLookup interface {
	Lookup(key string) *letterhead.Template
}

// Compositor merges documents with letterhead templates.
type Compositor struct {
	templates TemplateLookup
}

// NewCompositor creates a Compositor backed by templates.
func NewCompositor(templates TemplateLookup) *Compositor {
	return &Compositor{templates: templates}
}

// Template returns the template that Composite would use for key.
func (c *Compositor) Template(key string) *letterhead.Template {
	return c.templates.Lookup(key)
}

// Composite returns a complete document holding htmlContent's head and body
// with the letterhead for key. baseDir is the absolute directory relative
// references in the result resolve against; template assets are expected
// under baseDir/letterheads/{key}/.
//
// Only the first <head> and <body> are used. Without a body match the whole
// input becomes the body; without a head match the head is empty.
func (c *Compositor) Composite(htmlContent, baseDir, key string) string {
	tpl := c.templates.Lookup(key)
	if tpl == nil {
		return htmlContent
	}

	head, body := extractParts(htmlContent)

	var b strings.Builder
	b.Grow(len(head) + len(body) + len(tpl.CSS) + len(tpl.Header) + len(tpl.Footer) + 512)

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="UTF-8">` + "\n")
	if baseDir != "" {
		b.WriteString(`<base href="` + html.EscapeString(fileutil.DirToBaseURL(baseDir)) + `">` + "\n")
	}
	b.WriteString(head)
	b.WriteString("\n<style id=\"" + LetterheadStyleID + "\">" + sanitizeCSS(tpl.CSS) + "</style>\n")
	b.WriteString("<style id=\"" + ReserveStyleID + "\">" + reservationCSS(tpl) + "</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(tpl.Header)
	b.WriteString("\n")
	b.WriteString(tpl.Footer)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")

	return b.String()
}

// extractParts returns the inner content of the first head and body.
func extractParts(htmlContent string) (head, body string) {
	if m := headPattern.FindStringSubmatch(htmlContent); m != nil {
		head = m[1]
	}
	if m := bodyPattern.FindStringSubmatch(htmlContent); m != nil {
		body = m[1]
	} else {
		body = htmlContent
	}
	return head, body
}

// reservationCSS pads the body by the header and footer heights and pins the
// chrome to those heights, so flowed content never runs underneath it.
func reservationCSS(tpl *letterhead.Template) string {
	return "body{padding-top:" + tpl.HeaderHeight + " !important;padding-bottom:" + tpl.FooterHeight + " !important}" +
		".letterhead-header{height:" + tpl.HeaderHeight + " !important;box-sizing:border-box !important;overflow:hidden !important}" +
		".letterhead-footer{height:" + tpl.FooterHeight + " !important;box-sizing:border-box !important;overflow:hidden !important}"
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
