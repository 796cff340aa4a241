// Package letterhead provides the catalog of brand letterheads that can be
// composited onto converted documents.
//
// # Registry
//
// A Registry maps template keys to immutable Template values and always holds
// a default entry, so a lookup with an empty or unknown key still resolves:
//
//	Registry
//	    │
//	    ├── Builtin()           - templates embedded at compile time
//	    ├── FilesystemLoader    - custom templates read from a directory
//	    └── Overlay(...)        - custom templates replacing built-ins by key
//
// Keys are case-insensitive and surrounding whitespace is ignored.
//
// # Directory Structure
//
// Built-in and custom templates share one layout:
//
//	{basePath}/
//	└── {key}/
//	    ├── letterhead.yaml     # name, headerHeight, footerHeight
//	    ├── letterhead.css      # header/footer styling
//	    ├── header.html         # header markup
//	    ├── footer.html         # footer markup
//	    └── logo.svg            # image assets (svg, png, jpg, gif, webp)
//
// Markup references its images as "letterheads/{key}/{file}", resolved
// against the staging directory where the converter materializes them.
//
// # Security
//
// Keys are validated to prevent path traversal. FilesystemLoader resolves
// symlinks and verifies every file it opens stays within basePath.
package letterhead
