package assets

import "errors"

// Lookup errors. The resolver falls back to the next tier only on the two
// not-found errors; everything else is returned to the caller.
var (
	// ErrTemplateNotFound reports a document template missing from a tier.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrImageNotFound reports a logo or signature missing from a tier.
	ErrImageNotFound = errors.New("image not found")
)

// Validation and read errors.
var (
	// ErrInvalidAssetName reports a template or image name with path
	// separators, traversal sequences or an unsupported image extension.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath reports an asset directory that does not exist or
	// is not a directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrPathTraversal reports a file resolving outside the asset directory.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrAssetTooLarge reports a file over the per-asset size cap.
	ErrAssetTooLarge = errors.New("asset too large")

	// ErrAssetRead reports an I/O failure while reading an asset.
	ErrAssetRead = errors.New("failed to read asset")
)
