package main

import (
	"errors"
	"os"

	"github.com/Neelp4258/DazzloDocs"
	"github.com/Neelp4258/DazzloDocs/internal/config"
)

// Exit codes for the dazzlodocs CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, dazzlodocs.ErrBrowserLaunch) ||
		errors.Is(err, dazzlodocs.ErrPageCreate) ||
		errors.Is(err, dazzlodocs.ErrPageLoad) ||
		errors.Is(err, dazzlodocs.ErrAssetWait) ||
		errors.Is(err, dazzlodocs.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, dazzlodocs.ErrReadInput) ||
		errors.Is(err, dazzlodocs.ErrWriteOutput) ||
		errors.Is(err, dazzlodocs.ErrStaging) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoHTMLFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dazzlodocs.ErrInvalidPageFormat) ||
		errors.Is(err, dazzlodocs.ErrInvalidMargin) ||
		errors.Is(err, dazzlodocs.ErrInvalidScale) ||
		errors.Is(err, dazzlodocs.ErrInvalidLetterhead) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrOutputPDF) {
		return ExitUsage
	}

	return ExitGeneral
}
