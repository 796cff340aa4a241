package pipeline

// Notes:
// - Enhance is a pure function; tests compare exact output where the input
//   carries </head> and structural properties where it is wrapped.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEnhance - Style Injection
// ---------------------------------------------------------------------------

func TestEnhance_WithHead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase head",
			input: `<html><head><title>T</title></head><body><p>Hi</p></body></html>`,
			want:  `<html><head><title>T</title>` + PrintStyle + `</head><body><p>Hi</p></body></html>`,
		},
		{
			name:  "uppercase head",
			input: `<HTML><HEAD></HEAD><BODY>x</BODY></HTML>`,
			want:  `<HTML><HEAD>` + PrintStyle + `</HEAD><BODY>x</BODY></HTML>`,
		},
		{
			name:  "mixed case head",
			input: `<head><style>p{color:red}</style></HeAd>`,
			want:  `<head><style>p{color:red}</style>` + PrintStyle + `</HeAd>`,
		},
		{
			name:  "only first head closing marker",
			input: `<head></head><template><head></head></template>`,
			want:  `<head>` + PrintStyle + `</head><template><head></head></template>`,
		},
		{
			name:  "non-ascii content preserved",
			input: `<head><title>Résumé 日本</title></head><body>Ünïcode</body>`,
			want:  `<head><title>Résumé 日本</title>` + PrintStyle + `</head><body>Ünïcode</body>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Enhance(tt.input)
			if got != tt.want {
				t.Errorf("Enhance() =\n%s\nwant\n%s", got, tt.want)
			}

			// Removing the block restores the input byte for byte
			if restored := strings.Replace(got, PrintStyle, "", 1); restored != tt.input {
				t.Errorf("input altered: %q", restored)
			}
		})
	}
}

func TestEnhance_WithoutHead(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<p>Hello</p>",
		"plain text",
		"<body><p>body only</p></body>",
		"<header>not a head</header>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got := Enhance(input)

			if n := strings.Count(got, PrintStyle); n != 1 {
				t.Errorf("style block count = %d, want 1", n)
			}
			for _, part := range []string{"<html>", "<head>", "</head>", "<body>", "</body>", "</html>", `<meta charset="UTF-8">`} {
				if !strings.Contains(got, part) {
					t.Errorf("Enhance(%q) missing %s", input, part)
				}
			}
			headEnd := strings.Index(got, "</head>")
			if strings.Index(got, PrintStyle) > headEnd {
				t.Error("style block should be inside head")
			}
			if !strings.Contains(got, "<body>"+input+"</body>") {
				t.Errorf("input not wrapped verbatim: %q", got)
			}
		})
	}
}

func TestPrintCSS(t *testing.T) {
	t.Parallel()

	wants := []string{
		"print-color-adjust:exact",
		"-webkit-print-color-adjust:exact",
		"break-inside:avoid",
		"page-break-inside:avoid",
		"break-after:avoid",
		"max-width:100%",
		"orphans:3",
		"widows:3",
	}
	for _, want := range wants {
		if !strings.Contains(PrintCSS, want) {
			t.Errorf("PrintCSS missing %q", want)
		}
	}

	for _, sel := range []string{"p", "h1", "h6", "ul", "ol", "li", "table", "img", "pre"} {
		if !strings.Contains(PrintCSS, sel+",") && !strings.Contains(PrintCSS, ","+sel+"{") {
			t.Errorf("PrintCSS break avoidance missing selector %q", sel)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIndexFold
// ---------------------------------------------------------------------------

func TestIndexFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s, sub string
		want   int
	}{
		{"abc</HEAD>", "</head>", 3},
		{"</head>", "</head>", 0},
		{"<head>", "</head>", -1},
		{"", "</head>", -1},
		{"é</head>", "</head>", 2},
	}
	for _, tt := range tests {
		if got := indexFold(tt.s, tt.sub); got != tt.want {
			t.Errorf("indexFold(%q, %q) = %d, want %d", tt.s, tt.sub, got, tt.want)
		}
	}
}
