// Package pipeline implements the HTML transformation stages that run before
// a document is handed to the renderer:
//   - Relative asset path rewriting for documents read from disk
//   - Print-safety CSS injection (Enhance)
//   - Letterhead compositing (Compositor)
//
// Every stage is a pure text transformation. Head and body extraction in the
// compositor uses first-match pattern matching rather than a structural
// parse, so malformed fragments are tolerated and markup outside the matched
// regions passes through byte for byte.
//
// PDF generation is handled separately by the root dazzlodocs package using
// headless Chrome (go-rod).
package pipeline
