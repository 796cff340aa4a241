package dazzlodocs

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// Scale bounds accepted by Chrome's print-to-PDF.
const (
	MinScale = 0.1
	MaxScale = 2.0
)

// Default option values.
const (
	DefaultPageFormat   = "A4"
	DefaultMarginTop    = "12mm"
	DefaultMarginRight  = "10mm"
	DefaultMarginBottom = "14mm"
	DefaultMarginLeft   = "10mm"
	DefaultScale        = 1.0
)

// PageFormat is a named paper size in inches, portrait orientation.
type PageFormat struct {
	Name   string
	Width  float64
	Height float64
}

var pageFormats = map[string]PageFormat{
	"letter":  {Name: "Letter", Width: 8.5, Height: 11},
	"legal":   {Name: "Legal", Width: 8.5, Height: 14},
	"tabloid": {Name: "Tabloid", Width: 11, Height: 17},
	"ledger":  {Name: "Ledger", Width: 17, Height: 11},
	"a0":      {Name: "A0", Width: 33.1, Height: 46.8},
	"a1":      {Name: "A1", Width: 23.4, Height: 33.1},
	"a2":      {Name: "A2", Width: 16.54, Height: 23.4},
	"a3":      {Name: "A3", Width: 11.7, Height: 16.54},
	"a4":      {Name: "A4", Width: 8.27, Height: 11.7},
	"a5":      {Name: "A5", Width: 5.83, Height: 8.27},
	"a6":      {Name: "A6", Width: 4.13, Height: 5.83},
}

// LookupPageFormat returns the paper size for name (case-insensitive).
func LookupPageFormat(name string) (PageFormat, error) {
	f, ok := pageFormats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PageFormat{}, fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidPageFormat, name, strings.Join(PageFormatNames(), ", "))
	}
	return f, nil
}

// PageFormatNames returns the canonical names of all supported formats.
func PageFormatNames() []string {
	names := make([]string, 0, len(pageFormats))
	for _, f := range pageFormats {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Margins holds the four page margins as lengths: a number followed by
// px, in, cm, mm or pt. A bare number is in pixels (96 per inch).
type Margins struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

// Options configures a single conversion.
//
// A nil *Options means DefaultOptions(). Empty PageFormat and margin fields
// and a zero Scale take their defaults; boolean fields are used as given,
// so start from DefaultOptions() to keep the true defaults.
type Options struct {
	PageFormat          string  // Named paper size, default "A4"
	Margins             Margins // Default 12mm/10mm/14mm/10mm
	PrintBackground     bool    // Print background colors and images, default true
	PreferCSSPageSize   bool    // Let @page size rules win over PageFormat, default true
	DisplayHeaderFooter bool    // Chrome's own header/footer (date, title, page number), default false
	Scale               float64 // Rendering scale, default 1.0
	Landscape           bool    // Default false
	Letterhead          bool    // Composite a letterhead, default false
	LetterheadTemplate  string  // Letterhead key, empty = the converter's default
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() *Options {
	return &Options{
		PageFormat: DefaultPageFormat,
		Margins: Margins{
			Top:    DefaultMarginTop,
			Right:  DefaultMarginRight,
			Bottom: DefaultMarginBottom,
			Left:   DefaultMarginLeft,
		},
		PrintBackground:   true,
		PreferCSSPageSize: true,
		Scale:             DefaultScale,
	}
}

// resolved returns a copy of o with zero-valued fields filled in.
func (o *Options) resolved() *Options {
	if o == nil {
		return DefaultOptions()
	}

	r := *o
	if r.PageFormat == "" {
		r.PageFormat = DefaultPageFormat
	}
	if r.Margins.Top == "" {
		r.Margins.Top = DefaultMarginTop
	}
	if r.Margins.Right == "" {
		r.Margins.Right = DefaultMarginRight
	}
	if r.Margins.Bottom == "" {
		r.Margins.Bottom = DefaultMarginBottom
	}
	if r.Margins.Left == "" {
		r.Margins.Left = DefaultMarginLeft
	}
	if r.Scale == 0 {
		r.Scale = DefaultScale
	}
	return &r
}

// Validate checks the page format, margins and scale after defaults are
// applied. Returns nil for a nil receiver.
func (o *Options) Validate() error {
	_, err := o.resolved().printRequest()
	return err
}

// printRequest builds the print-to-PDF parameters.
func (o *Options) printRequest() (*proto.PagePrintToPDF, error) {
	format, err := LookupPageFormat(o.PageFormat)
	if err != nil {
		return nil, err
	}

	if o.Scale < MinScale || o.Scale > MaxScale {
		return nil, fmt.Errorf("%w: %g (must be between %g and %g)", ErrInvalidScale, o.Scale, MinScale, MaxScale)
	}

	sides := []struct {
		name  string
		value string
	}{
		{name: "top", value: o.Margins.Top},
		{name: "right", value: o.Margins.Right},
		{name: "bottom", value: o.Margins.Bottom},
		{name: "left", value: o.Margins.Left},
	}
	inches := make([]float64, len(sides))
	for i, s := range sides {
		v, err := ParseLength(s.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		inches[i] = v
	}
	top, right, bottom, left := inches[0], inches[1], inches[2], inches[3]

	width, height := format.Width, format.Height
	if o.Landscape {
		width, height = height, width
	}
	if top+bottom >= height || left+right >= width {
		return nil, fmt.Errorf("%w: margins leave no printable area on %s", ErrInvalidMargin, format.Name)
	}

	// Chrome rotates the paper itself when Landscape is set
	return &proto.PagePrintToPDF{
		Landscape:           o.Landscape,
		DisplayHeaderFooter: o.DisplayHeaderFooter,
		PrintBackground:     o.PrintBackground,
		Scale:               floatPtr(o.Scale),
		PaperWidth:          floatPtr(format.Width),
		PaperHeight:         floatPtr(format.Height),
		MarginTop:           floatPtr(top),
		MarginBottom:        floatPtr(bottom),
		MarginLeft:          floatPtr(left),
		MarginRight:         floatPtr(right),
		PreferCSSPageSize:   o.PreferCSSPageSize,
	}, nil
}

var lengthPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?|\.\d+)\s*([a-zA-Z]*)$`)

// Units per inch.
var lengthUnits = map[string]float64{
	"":   96,
	"px": 96,
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
	"pt": 72,
}

// ParseLength converts a length such as "12mm" or "0.5in" to inches.
func ParseLength(s string) (float64, error) {
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
	}
	perInch, ok := lengthUnits[strings.ToLower(m[2])]
	if !ok {
		return 0, fmt.Errorf("%w: %q (unit must be px, in, cm, mm or pt)", ErrInvalidMargin, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
	}
	return v / perInch, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
