// Package dazzlodocs converts HTML documents to PDF using headless Chrome,
// optionally composited with a brand letterhead.
//
// # Quick Start
//
// Start one renderer, share it across conversions, and close it on shutdown:
//
//	renderer := dazzlodocs.NewRenderer()
//	if err := renderer.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	conv, err := dazzlodocs.NewConverter(renderer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, dazzlodocs.Request{
//	    HTML:   "<html><head></head><body><p>Hi</p></body></html>",
//	    Output: "hi.pdf",
//	})
//
// # Conversion Pipeline
//
// Each conversion runs these stages:
//
//  1. Relative path rewriting (only when Request.SourceDir is set)
//  2. Print-safety CSS injection
//  3. Letterhead compositing (only when Options.Letterhead is set)
//  4. Staging to a uniquely named HTML file
//  5. Navigation, image wait and print-to-PDF in a fresh browser page
//  6. Output write and page counting
//
// The staged file is removed on every exit path.
//
// # Letterheads
//
// Built-in templates are "dazzlo" (the default), "dazzlo-holidays" and
// "dazzlo-tech". Unknown keys fall back to the default. Custom templates are
// loaded with WithLetterheadDir and replace built-ins that share a key:
//
//	{dir}/
//	└── {key}/
//	    ├── letterhead.yaml
//	    ├── letterhead.css
//	    ├── header.html
//	    ├── footer.html
//	    └── logo.svg
//
// # Concurrency
//
// Converter is safe for concurrent use and every conversion opens its own
// page in the shared browser. Renderer.Initialize and Renderer.Close must
// not race with in-flight conversions; callers run them at startup and
// shutdown.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/) when none is found.
// Use ROD_BROWSER_BIN or WithBrowserBin to select a binary.
//
// The browser is launched with --no-sandbox, --disable-gpu and with
// background throttling disabled. These flags target headless servers and
// containers; they are a deployment assumption and do not isolate the
// browser from the host.
package dazzlodocs
