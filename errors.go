package dazzlodocs

import "errors"

// Public error kinds. A conversion fails with exactly one of them:
// ErrNotInitialized for calls made outside the renderer's Ready state,
// ErrConversion for everything else.
var (
	ErrNotInitialized = errors.New("renderer not initialized")
	ErrConversion     = errors.New("conversion failed")
)

// Causes carried inside ErrConversion. Match them with errors.Is.
var (
	ErrBrowserLaunch = errors.New("failed to launch browser")
	ErrPageCreate    = errors.New("failed to create browser page")
	ErrPageLoad      = errors.New("failed to load page")
	ErrAssetWait     = errors.New("failed waiting for images")
	ErrPDFGeneration = errors.New("PDF generation failed")
	ErrWriteOutput   = errors.New("failed to write output")
	ErrReadInput     = errors.New("failed to read input")
	ErrStaging       = errors.New("failed to stage document")
	ErrEmptyOutput   = errors.New("output path cannot be empty")

	// Options validation errors.
	ErrInvalidPageFormat = errors.New("invalid page format")
	ErrInvalidMargin     = errors.New("invalid margin")
	ErrInvalidScale      = errors.New("invalid scale")
)

// Construction errors returned by NewConverter.
var (
	ErrNilRenderer       = errors.New("renderer cannot be nil")
	ErrInvalidLetterhead = errors.New("invalid letterhead configuration")
)
