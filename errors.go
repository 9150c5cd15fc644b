package findoc

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	// ErrTemplateNotFound reports that no template exists for the requested
	// document type. Generation stops; no PDF is produced.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRendering reports that the document could not be printed to PDF.
	// The browser-stage errors below all wrap it.
	ErrRendering = errors.New("rendering failed")

	ErrBrowserConnect = fmt.Errorf("%w: failed to connect to browser", ErrRendering)
	ErrPageCreate     = fmt.Errorf("%w: failed to create browser page", ErrRendering)
	ErrPageLoad       = fmt.Errorf("%w: failed to load page", ErrRendering)
	ErrPDFGeneration  = fmt.Errorf("%w: PDF generation failed", ErrRendering)

	// Request validation errors.
	ErrInvalidRequest      = errors.New("invalid document request")
	ErrUnknownDocumentType = errors.New("unknown document type")

	// Option errors.
	ErrInvalidAssetPath  = errors.New("invalid asset path")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidPlacements = errors.New("invalid placement table")
)
