package dazzlodocs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Neelp4258/DazzloDocs/internal/pipeline"
	"github.com/Neelp4258/DazzloDocs/internal/process"
)

// renderEngine abstracts the browser so the converter can be tested without
// one.
type renderEngine interface {
	ready() bool
	render(ctx context.Context, url string, opts *Options) ([]byte, error)
}

// Compile-time interface check.
var _ renderEngine = (*Renderer)(nil)

// Renderer timeouts.
const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultAssetTimeout      = 10 * time.Second

	// assetEvalGrace bounds the image-wait evaluation beyond the in-page
	// timer, for pages whose event loop never runs it.
	assetEvalGrace = 5 * time.Second
)

// RendererState is the lifecycle state of a Renderer.
type RendererState int

// Renderer states. Transitions: Uninitialized -> Ready -> Closed, and
// Closed -> Ready through a new Initialize.
const (
	StateUninitialized RendererState = iota
	StateReady
	StateClosed
)

func (s RendererState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return "RendererState(" + strconv.Itoa(int(s)) + ")"
}

// launchFlags are passed to Chrome in addition to --no-sandbox. They suit
// headless servers and containers; they are not a process-isolation boundary.
var launchFlags = []flags.Flag{
	"disable-gpu",
	"disable-background-timer-throttling",
	"disable-backgrounding-occluded-windows",
	"disable-renderer-backgrounding",
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	browserBin        string
	navigationTimeout time.Duration
	assetTimeout      time.Duration
	logger            *log.Logger
}

// WithBrowserBin sets the Chrome binary. Overrides ROD_BROWSER_BIN.
func WithBrowserBin(path string) RendererOption {
	return func(c *rendererConfig) {
		c.browserBin = path
	}
}

// WithNavigationTimeout bounds page navigation.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithNavigationTimeout(d time.Duration) RendererOption {
	if d <= 0 {
		panic("dazzlodocs: WithNavigationTimeout duration must be positive")
	}
	return func(c *rendererConfig) {
		c.navigationTimeout = d
	}
}

// WithAssetTimeout bounds the wait for images. Conversion proceeds when it
// expires.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithAssetTimeout(d time.Duration) RendererOption {
	if d <= 0 {
		panic("dazzlodocs: WithAssetTimeout duration must be positive")
	}
	return func(c *rendererConfig) {
		c.assetTimeout = d
	}
}

// WithRendererLogger sets the renderer's logger.
func WithRendererLogger(l *log.Logger) RendererOption {
	return func(c *rendererConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Renderer owns one headless Chrome process shared by all conversions.
//
// Initialize and Close take an exclusive lock, but callers must still not
// run them concurrently with conversions: Close tears the browser down under
// pages that are in use.
type Renderer struct {
	cfg rendererConfig

	mu       sync.RWMutex
	state    RendererState
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRenderer creates an uninitialized Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	cfg := rendererConfig{
		navigationTimeout: DefaultNavigationTimeout,
		assetTimeout:      DefaultAssetTimeout,
		logger:            log.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}

// State returns the current lifecycle state.
func (r *Renderer) State() RendererState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Renderer) ready() bool {
	return r.State() == StateReady
}

// Initialize launches Chrome and connects to it. It is a no-op when the
// renderer is already Ready.
//
// A throwaway page is opened to install the print-safety hook and closed
// again; a browser that cannot open it fails initialization.
func (r *Renderer) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateReady {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}

	if bin := r.cfg.browserBin; bin != "" {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
		}
	}

	l := r.newLauncher(ctx)
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %w", ErrBrowserLaunch, contextOr(ctx, err))
	}
	r.cfg.logger.Debug("browser launched", "bin", l.Get(flags.Bin), "pid", l.PID(), "url", u)

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.teardown(nil, l)
		return fmt.Errorf("%w: connecting: %v", ErrBrowserLaunch, err)
	}

	if err := installPrintHook(ctx, browser); err != nil {
		r.teardown(browser, l)
		return fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	r.launcher = l
	r.browser = browser
	r.state = StateReady
	return nil
}

// newLauncher builds the launcher. ctx bounds the launch itself, including
// a Chromium download; the running browser outlives it.
func (r *Renderer) newLauncher(ctx context.Context) *launcher.Launcher {
	l := launcher.New().Context(ctx).NoSandbox(true)

	bin := r.cfg.browserBin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin == "" {
		if path, found := launcher.LookPath(); found {
			bin = path
		}
	}
	// Empty bin lets rod download its managed Chromium
	if bin != "" {
		l = l.Bin(bin)
	}

	for _, flag := range launchFlags {
		l = l.Set(flag)
	}
	return l
}

// installPrintHook verifies the browser can host pages and that the hook
// script evaluates, using a page that is closed afterwards.
func installPrintHook(ctx context.Context, browser *rod.Browser) error {
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening probe page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if _, err := page.Context(ctx).EvalOnNewDocument(printHookJS); err != nil {
		return fmt.Errorf("installing print hook: %w", err)
	}
	return nil
}

// Close shuts the browser down. It is a no-op unless the renderer is Ready.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady {
		return nil
	}

	err := r.teardown(r.browser, r.launcher)
	r.browser = nil
	r.launcher = nil
	r.state = StateClosed
	return err
}

// teardown closes the connection, kills the process group and removes the
// launcher's user-data directory.
func (r *Renderer) teardown(browser *rod.Browser, l *launcher.Launcher) error {
	var errs []error
	if browser != nil {
		if err := browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
	}
	if l != nil {
		if pid := l.PID(); pid > 0 {
			// Usually already gone after browser.Close
			if err := process.KillProcessGroup(pid); err != nil {
				r.cfg.logger.Debug("killing browser process group", "pid", pid, "err", err)
			}
		}
		l.Kill()
		l.Cleanup()
	}
	r.cfg.logger.Debug("browser closed")
	return errors.Join(errs...)
}

// render loads url in a new page and prints it to PDF.
func (r *Renderer) render(ctx context.Context, url string, opts *Options) ([]byte, error) {
	r.mu.RLock()
	browser := r.browser
	state := r.state
	r.mu.RUnlock()

	if state != StateReady || browser == nil {
		return nil, ErrNotInitialized
	}

	req, err := opts.resolved().printRequest()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			r.cfg.logger.Debug("closing page", "err", err)
		}
	}()

	if _, err := page.Context(ctx).EvalOnNewDocument(printHookJS); err != nil {
		return nil, fmt.Errorf("%w: installing print hook: %v", ErrPageCreate, err)
	}

	if err := r.navigate(ctx, page, url); err != nil {
		return nil, err
	}

	if err := r.waitImages(ctx, page); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, contextOr(ctx, err))
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %w", ErrPDFGeneration, contextOr(ctx, err))
	}
	return data, nil
}

// navigate loads url and returns once the page has both parsed its DOM and
// gone network-idle, or the navigation timeout expires.
func (r *Renderer) navigate(ctx context.Context, page *rod.Page, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, r.cfg.navigationTimeout)
	defer cancel()

	p := page.Context(navCtx)

	// One subscription sees both events; rod's WaitNavigation disables
	// lifecycle events as soon as its own event arrives.
	if err := (proto.PageSetLifecycleEventsEnabled{Enabled: true}).Call(p); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPageLoad, url, contextOr(navCtx, err))
	}
	defer func() { _ = proto.PageSetLifecycleEventsEnabled{Enabled: false}.Call(page) }()

	nw := &navigationWait{frame: page.FrameID}
	wait := p.EachEvent(nw.observe)

	res, err := proto.PageNavigate{URL: url}.Call(p)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPageLoad, url, contextOr(navCtx, err))
	}
	if res.ErrorText != "" {
		return fmt.Errorf("%w: %s: %s", ErrPageLoad, url, res.ErrorText)
	}
	nw.loader = res.LoaderID

	wait()

	if err := navCtx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPageLoad, url, err)
	}
	return nil
}

// navigationWait collects the lifecycle events of one navigation. Events
// from other frames or from the document being replaced are ignored.
type navigationWait struct {
	frame  proto.PageFrameID
	loader proto.NetworkLoaderID
	dom    bool
	idle   bool
}

// observe records e and reports whether the navigation is complete.
func (w *navigationWait) observe(e *proto.PageLifecycleEvent) bool {
	if e.FrameID != w.frame || w.loader == "" || e.LoaderID != w.loader {
		return false
	}
	switch e.Name {
	case proto.PageLifecycleEventNameDOMContentLoaded:
		w.dom = true
	case proto.PageLifecycleEventNameNetworkIdle:
		w.idle = true
	}
	return w.dom && w.idle
}

// waitImagesJS resolves with the sources of images still pending when the
// timer fires, or an empty list once every image has loaded or failed.
const waitImagesJS = `(timeoutMs) => new Promise((resolve) => {
	const images = Array.from(document.images);
	const pending = () => images.filter((img) => !img.complete).map((img) => img.currentSrc || img.src);
	const settled = images.map((img) => img.complete ? Promise.resolve() : new Promise((done) => {
		img.addEventListener('load', done, { once: true });
		img.addEventListener('error', done, { once: true });
	}));
	const timer = setTimeout(() => resolve(pending()), timeoutMs);
	Promise.all(settled).then(() => { clearTimeout(timer); resolve([]); });
})`

// waitImages blocks until every image is loaded or errored. Images still
// pending after the asset timeout are logged and the conversion proceeds.
func (r *Renderer) waitImages(ctx context.Context, page *rod.Page) error {
	waitCtx, cancel := context.WithTimeout(ctx, r.cfg.assetTimeout+assetEvalGrace)
	defer cancel()

	res, err := page.Context(waitCtx).Eval(waitImagesJS, r.cfg.assetTimeout.Milliseconds())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetWait, contextOr(waitCtx, err))
	}

	pending := res.Value.Arr()
	if len(pending) > 0 {
		srcs := make([]string, 0, len(pending))
		for _, v := range pending {
			srcs = append(srcs, v.Str())
		}
		r.cfg.logger.Warn("images unresolved at asset timeout",
			"count", len(srcs), "timeout", r.cfg.assetTimeout, "sources", srcs)
	}
	return nil
}

// printHookJS adds the print-safety stylesheet to pages that were not
// enhanced, so raw documents still print with exact colors and sane breaks.
var printHookJS = `(() => {
	const install = () => {
		if (document.getElementById(` + strconv.Quote(pipeline.PrintStyleID) + `)) return;
		const style = document.createElement('style');
		style.id = ` + strconv.Quote(pipeline.PrintStyleID+"-default") + `;
		style.textContent = ` + strconv.Quote(pipeline.PrintCSS) + `;
		(document.head || document.documentElement).appendChild(style);
	};
	if (document.readyState === 'loading') {
		document.addEventListener('DOMContentLoaded', install, { once: true });
	} else {
		install();
	}
})()`

// contextOr prefers the context's error so cancellations and deadlines stay
// matchable with errors.Is.
func contextOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
