package main

import (
	"errors"
	"os"

	"github.com/ArtieFishal/lastwish"
	"github.com/ArtieFishal/lastwish/internal/config"
	"github.com/ArtieFishal/lastwish/internal/dateutil"
)

// Exit codes for the lastwish CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document written or server stopped cleanly
	ExitGeneral = 1 // General/unexpected error, including render failures
	ExitUsage   = 2 // Invalid flags, config, bundle, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, lastwish.ErrInvalidBundle) ||
		errors.Is(err, lastwish.ErrInvalidInstructionsFormat) ||
		errors.Is(err, lastwish.ErrInvalidAssetPath) ||
		errors.Is(err, lastwish.ErrInvalidDateFormat) ||
		errors.Is(err, lastwish.ErrTemplate) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
