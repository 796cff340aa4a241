package pipeline

import "strings"

// PrintStyleID is the id attribute of the style block added by Enhance.
const PrintStyleID = "dazzlodocs-print"

// PrintCSS keeps colors exact in print, stops block elements from splitting
// across pages, keeps headings with the content that follows them, fits
// images to their container and holds at least three paragraph lines
// together at a break.
const PrintCSS = `*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;color-adjust:exact !important}` +
	`p,h1,h2,h3,h4,h5,h6,ul,ol,li,table,img,pre{break-inside:avoid;page-break-inside:avoid}` +
	`h1,h2,h3,h4,h5,h6{break-after:avoid;page-break-after:avoid}` +
	`img{max-width:100%;height:auto}` +
	`p{orphans:3;widows:3}`

// PrintStyle is the complete block inserted by Enhance.
const PrintStyle = `<style id="` + PrintStyleID + `">` + PrintCSS + `</style>`

// Enhance adds the print-safety style block to htmlContent.
// The block goes immediately before the first </head> (any case); the rest
// of the input is left byte-identical. Input without </head> is wrapped in a
// minimal document with the block in its head.
func Enhance(htmlContent string) string {
	if idx := indexFold(htmlContent, "</head>"); idx != -1 {
		var b strings.Builder
		b.Grow(len(htmlContent) + len(PrintStyle))
		b.WriteString(htmlContent[:idx])
		b.WriteString(PrintStyle)
		b.WriteString(htmlContent[idx:])
		return b.String()
	}

	return `<!DOCTYPE html><html><head><meta charset="UTF-8">` + PrintStyle +
		`</head><body>` + htmlContent + `</body></html>`
}

// indexFold returns the byte index of the first ASCII case-insensitive
// occurrence of substr in s, or -1. substr must be ASCII.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if asciiEqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func asciiEqualFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
