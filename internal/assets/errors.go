package assets

import "errors"

// Style sheet lookup errors.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrStyleRender      = errors.New("failed to render style sheet")
	ErrInvalidAssetName = errors.New("invalid asset name") // separators, dots or empty
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)
