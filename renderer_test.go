package dazzlodocs

// Notes:
// - Browser-free tests: lifecycle state handling, option validation and the
//   injected scripts. Launching Chrome is covered by integration tests.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/Neelp4258/DazzloDocs/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestRendererState - Lifecycle
// ---------------------------------------------------------------------------

func TestRendererState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state RendererState
		want  string
	}{
		{StateUninitialized, "uninitialized"},
		{StateReady, "ready"},
		{StateClosed, "closed"},
		{RendererState(9), "RendererState(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRenderer_Uninitialized(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	if r.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", r.State())
	}
	if r.ready() {
		t.Error("new renderer should not be ready")
	}
}

func TestRenderer_CloseBeforeInitialize(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	for i := 0; i < 2; i++ {
		if err := r.Close(); err != nil {
			t.Errorf("Close() #%d error = %v", i, err)
		}
	}
	if r.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized after no-op Close", r.State())
	}
}

func TestRenderer_RenderNotInitialized(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	_, err := r.render(context.Background(), "file:///tmp/x.html", nil)
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("render() error = %v, want ErrNotInitialized", err)
	}
}

func TestRenderer_InitializeCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(WithBrowserBin("/nonexistent/chrome"))
	err := r.Initialize(ctx)
	if !errors.Is(err, ErrBrowserLaunch) || !errors.Is(err, context.Canceled) {
		t.Errorf("Initialize() error = %v, want ErrBrowserLaunch wrapping context.Canceled", err)
	}
	if r.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized after failed Initialize", r.State())
	}
}

func TestRenderer_InitializeMissingBinary(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithBrowserBin(filepath.Join(t.TempDir(), "no-chrome")))
	err := r.Initialize(context.Background())
	if !errors.Is(err, ErrBrowserLaunch) {
		t.Errorf("Initialize() error = %v, want ErrBrowserLaunch", err)
	}
	if r.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", r.State())
	}
}

func TestRenderer_InitializeDeadlineDuringLaunch(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the browser binary")
	}

	// A browser that starts but never prints its DevTools URL
	bin := filepath.Join(t.TempDir(), "stalled-chrome")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nsleep 30\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	r := NewRenderer(WithBrowserBin(bin))
	start := time.Now()
	err := r.Initialize(ctx)

	if !errors.Is(err, ErrBrowserLaunch) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Initialize() error = %v, want ErrBrowserLaunch wrapping DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Initialize() took %v, want it to stop at the context deadline", elapsed)
	}
	if r.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", r.State())
	}
}

// ---------------------------------------------------------------------------
// TestNavigationWait - Lifecycle events
// ---------------------------------------------------------------------------

func TestNavigationWait(t *testing.T) {
	t.Parallel()

	const (
		frame  = proto.PageFrameID("main")
		loader = proto.NetworkLoaderID("doc")
	)
	dom := proto.PageLifecycleEventNameDOMContentLoaded
	idle := proto.PageLifecycleEventNameNetworkIdle

	ev := func(f proto.PageFrameID, l proto.NetworkLoaderID, name proto.PageLifecycleEventName) *proto.PageLifecycleEvent {
		return &proto.PageLifecycleEvent{FrameID: f, LoaderID: l, Name: name}
	}

	tests := []struct {
		name   string
		events []*proto.PageLifecycleEvent
		want   bool
	}{
		{"dom then idle", []*proto.PageLifecycleEvent{ev(frame, loader, "init"), ev(frame, loader, dom), ev(frame, loader, "load"), ev(frame, loader, idle)}, true},
		{"idle then dom", []*proto.PageLifecycleEvent{ev(frame, loader, idle), ev(frame, loader, dom)}, true},
		{"dom only", []*proto.PageLifecycleEvent{ev(frame, loader, dom), ev(frame, loader, "load")}, false},
		{"idle only", []*proto.PageLifecycleEvent{ev(frame, loader, idle)}, false},
		{"replaced document", []*proto.PageLifecycleEvent{ev(frame, "blank", dom), ev(frame, "blank", idle)}, false},
		{"child frame", []*proto.PageLifecycleEvent{ev("iframe", loader, dom), ev("iframe", loader, idle)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := &navigationWait{frame: frame, loader: loader}
			done := false
			for _, e := range tt.events {
				done = w.observe(e)
			}
			if done != tt.want {
				t.Errorf("observe() after %d events = %v, want %v", len(tt.events), done, tt.want)
			}
		})
	}
}

func TestNavigationWait_NoLoaderYet(t *testing.T) {
	t.Parallel()

	w := &navigationWait{frame: "main"}
	w.observe(&proto.PageLifecycleEvent{FrameID: "main", Name: proto.PageLifecycleEventNameDOMContentLoaded})
	if w.observe(&proto.PageLifecycleEvent{FrameID: "main", Name: proto.PageLifecycleEventNameNetworkIdle}) {
		t.Error("events before the navigation's loader is known must not complete it")
	}
}

// ---------------------------------------------------------------------------
// TestRendererOptions - Functional Options
// ---------------------------------------------------------------------------

func TestRendererOptions(t *testing.T) {
	t.Parallel()

	r := NewRenderer(
		WithBrowserBin("/opt/chrome"),
		WithNavigationTimeout(5*time.Second),
		WithAssetTimeout(2*time.Second),
		WithRendererLogger(nil),
	)

	if r.cfg.browserBin != "/opt/chrome" {
		t.Errorf("browserBin = %q", r.cfg.browserBin)
	}
	if r.cfg.navigationTimeout != 5*time.Second {
		t.Errorf("navigationTimeout = %v", r.cfg.navigationTimeout)
	}
	if r.cfg.assetTimeout != 2*time.Second {
		t.Errorf("assetTimeout = %v", r.cfg.assetTimeout)
	}
	if r.cfg.logger == nil {
		t.Error("nil logger option should keep the default logger")
	}
}

func TestRendererOptions_Defaults(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	if r.cfg.navigationTimeout != DefaultNavigationTimeout || r.cfg.assetTimeout != DefaultAssetTimeout {
		t.Errorf("timeouts = %v/%v, want defaults", r.cfg.navigationTimeout, r.cfg.assetTimeout)
	}
}

func TestRendererOptions_NonPositiveTimeoutPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"navigation zero", func() { WithNavigationTimeout(0) }},
		{"navigation negative", func() { WithNavigationTimeout(-time.Second) }},
		{"asset zero", func() { WithAssetTimeout(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// ---------------------------------------------------------------------------
// TestScripts - Injected JavaScript
// ---------------------------------------------------------------------------

func TestPrintHookJS(t *testing.T) {
	t.Parallel()

	wants := []string{
		`"` + pipeline.PrintStyleID + `"`,
		"print-color-adjust:exact",
		"DOMContentLoaded",
	}
	for _, want := range wants {
		if !strings.Contains(printHookJS, want) {
			t.Errorf("print hook missing %q", want)
		}
	}
	if !strings.HasPrefix(printHookJS, "(() =>") || !strings.HasSuffix(printHookJS, ")()") {
		t.Error("print hook must run itself when evaluated as a script")
	}
}

func TestContextOr(t *testing.T) {
	t.Parallel()

	cause := errors.New("cdp failure")

	if got := contextOr(context.Background(), cause); got != cause {
		t.Errorf("contextOr(live) = %v, want cause", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := contextOr(ctx, cause); !errors.Is(got, context.Canceled) {
		t.Errorf("contextOr(cancelled) = %v, want context.Canceled", got)
	}
}
