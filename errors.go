package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrRender        = errors.New("document rendering failed")
	ErrSerialize     = errors.New("document serialization failed")
	ErrInternal      = errors.New("internal error")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Image settings validation errors.
	ErrInvalidImageWidth   = errors.New("invalid image width")
	ErrInvalidImageTimeout = errors.New("invalid image timeout")
	ErrInvalidBaseURL      = errors.New("invalid base URL")

	// Asset and style errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")

	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("converter pool is closed")
)
