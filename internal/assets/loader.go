package assets

// AssetLoader loads style sheet templates by name.
type AssetLoader interface {
	// LoadStyle returns the raw template text of a style sheet (name without .xml).
	// Returns ErrStyleNotFound if the sheet doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
