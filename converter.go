package dazzlodocs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Neelp4258/DazzloDocs/internal/fileutil"
	"github.com/Neelp4258/DazzloDocs/internal/letterhead"
	"github.com/Neelp4258/DazzloDocs/internal/pipeline"
)

// utf8BOM is stripped from file input before enhancement.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Request is one conversion.
type Request struct {
	HTML      string   // Document source
	Output    string   // PDF destination; parent directories are created
	SourceDir string   // Optional: resolves relative img/a/stylesheet paths in HTML
	Options   *Options // nil = DefaultOptions()
}

// Result describes a successful conversion.
type Result struct {
	Success  bool
	Output   string
	Size     int64 // Bytes written
	Pages    int   // Best-effort, see PageCount
	Duration time.Duration
}

// Option configures a Converter.
type Option func(*converterConfig)

type converterConfig struct {
	stagingDir      string
	logger          *log.Logger
	letterheadDir   string
	defaultTemplate string
}

// WithStagingDir sets where staged documents and letterhead assets are
// written. Default: DefaultStagingDir().
func WithStagingDir(dir string) Option {
	return func(c *converterConfig) {
		c.stagingDir = dir
	}
}

// WithLogger sets the converter's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLetterheadDir loads custom letterheads from dir. They overlay the
// built-in templates, replacing any with the same key.
func WithLetterheadDir(dir string) Option {
	return func(c *converterConfig) {
		c.letterheadDir = dir
	}
}

// WithDefaultTemplate sets the letterhead used when a request names none or
// names an unknown key. The key must exist.
func WithDefaultTemplate(key string) Option {
	return func(c *converterConfig) {
		c.defaultTemplate = key
	}
}

// Converter runs conversions against a shared Renderer.
// It is safe for concurrent use once the Renderer is Ready.
type Converter struct {
	engine     renderEngine
	templates  *letterhead.Registry
	compositor *pipeline.Compositor
	stager     *stager
	logger     *log.Logger
}

// NewConverter creates a Converter that renders with r.
// The renderer does not need to be initialized yet, only before Convert.
func NewConverter(r *Renderer, opts ...Option) (*Converter, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	return newConverter(r, opts...)
}

func newConverter(engine renderEngine, opts ...Option) (*Converter, error) {
	cfg := converterConfig{
		stagingDir: DefaultStagingDir(),
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	templates := letterhead.Builtin()
	if cfg.letterheadDir != "" {
		var err error
		templates, err = letterhead.FromDir(templates, cfg.letterheadDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLetterhead, err)
		}
	}
	if cfg.defaultTemplate != "" {
		var err error
		templates, err = templates.WithDefault(cfg.defaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLetterhead, err)
		}
	}

	stagingDir, err := filepath.Abs(cfg.stagingDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving staging directory: %w", ErrStaging, err)
	}

	return &Converter{
		engine:     engine,
		templates:  templates,
		compositor: pipeline.NewCompositor(templates),
		stager:     &stager{dir: stagingDir, logger: cfg.logger},
		logger:     cfg.logger,
	}, nil
}

// StagingDir returns the absolute staging directory.
func (c *Converter) StagingDir() string {
	return c.stager.dir
}

// Letterheads returns the available letterhead keys, sorted.
func (c *Converter) Letterheads() []string {
	return c.templates.Keys()
}

// DefaultLetterhead returns the key used when a request names none.
func (c *Converter) DefaultLetterhead() string {
	return c.templates.DefaultKey()
}

// Convert renders req.HTML to a PDF at req.Output.
//
// Errors: ErrNotInitialized when the renderer is not Ready, in which case
// nothing is written; otherwise ErrConversion wrapping the cause.
// The staged document is removed on every path.
func (c *Converter) Convert(ctx context.Context, req Request) (result *Result, err error) {
	if !c.engine.ready() {
		return nil, ErrNotInitialized
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrConversion, r)
		}
	}()

	result, err = c.run(ctx, req)
	if err != nil {
		// Renderer closed mid-conversion: still a contract violation
		if errors.Is(err, ErrNotInitialized) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return result, nil
}

func (c *Converter) run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if req.Output == "" {
		return nil, ErrEmptyOutput
	}
	opts := req.Options.resolved()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	htmlContent := req.HTML
	if req.SourceDir != "" {
		var err error
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, req.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	doc, err := c.compose(htmlContent, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	staged, err := c.stager.stage(doc)
	if err != nil {
		return nil, err
	}
	defer c.stager.remove(staged)

	c.logger.Debug("rendering", "id", staged.ID, "output", req.Output, "letterhead", opts.Letterhead)

	pdf, err := c.engine.render(ctx, staged.URL(), opts)
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: renderer returned no data", ErrPDFGeneration)
	}

	if err := fileutil.WriteAtomic(req.Output, pdf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return &Result{
		Success:  true,
		Output:   req.Output,
		Size:     int64(len(pdf)),
		Pages:    PageCount(pdf),
		Duration: time.Since(start),
	}, nil
}

// compose enhances the document and, when requested, composites the
// letterhead after staging its assets.
func (c *Converter) compose(htmlContent string, opts *Options) (string, error) {
	doc := pipeline.Enhance(htmlContent)
	if !opts.Letterhead {
		return doc, nil
	}

	tpl := c.compositor.Template(opts.LetterheadTemplate)
	if err := c.stager.materialize(tpl); err != nil {
		return "", err
	}
	return c.compositor.Composite(doc, c.stager.dir, tpl.Key), nil
}

// ConvertFile reads an HTML file and converts it to outputPath. Relative
// asset paths resolve against the file's directory.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string, opts *Options) (*Result, error) {
	if !c.engine.ready() {
		return nil, ErrNotInitialized
	}

	data, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrConversion, ErrReadInput, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrConversion, ErrReadInput, err)
	}

	return c.Convert(ctx, Request{
		HTML:      string(data),
		Output:    outputPath,
		SourceDir: filepath.Dir(absInput),
		Options:   opts,
	})
}
