package main

import (
	"context"
	"errors"
	"os"

	findoc "github.com/alnah/go-findoc"
	"github.com/alnah/go-findoc/internal/config"
	"github.com/alnah/go-findoc/internal/hints"
)

// Exit codes for the findoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document written / command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, request, or unknown template
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome or rendering errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Rendering errors (exit 4), browser-specific ones included
	if errors.Is(err, findoc.ErrRendering) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, findoc.ErrTemplateNotFound) ||
		errors.Is(err, findoc.ErrUnknownDocumentType) ||
		errors.Is(err, findoc.ErrInvalidRequest) ||
		errors.Is(err, findoc.ErrInvalidAssetPath) ||
		errors.Is(err, findoc.ErrInvalidDateFormat) ||
		errors.Is(err, findoc.ErrInvalidPlacements) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns advice for err, or "" when there is none.
func hintFor(err error) string {
	switch {
	case errors.Is(err, findoc.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, findoc.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, findoc.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(templateNames())
	case errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	}
	return ""
}
