package main

import (
	"errors"
	"os"

	sitekit "github.com/alnah/go-sitekit"
	"github.com/alnah/go-sitekit/internal/config"
	"github.com/alnah/go-sitekit/internal/lint"
)

// Exit codes for the sitekit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build or lint succeeded
	ExitGeneral = 1 // General error or lint failure
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Missing input, missing image, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, sitekit.ErrBrowserConnect) ||
		errors.Is(err, sitekit.ErrPageCreate) ||
		errors.Is(err, sitekit.ErrPageLoad) ||
		errors.Is(err, sitekit.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, sitekit.ErrInvalidPageSize) ||
		errors.Is(err, sitekit.ErrInvalidAssetPath) ||
		errors.Is(err, sitekit.ErrStyleNotFound) ||
		errors.Is(err, lint.ErrUnknownRule) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, sitekit.ErrReadData) ||
		errors.Is(err, sitekit.ErrNoCards) ||
		errors.Is(err, sitekit.ErrImageNotFound) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrWriteHTML) {
		return ExitIO
	}

	return ExitGeneral
}
