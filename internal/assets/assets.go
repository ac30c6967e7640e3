package assets

// DefaultStyleName names the embedded sheet used when none is configured.
const DefaultStyleName = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a style sheet template by name using the embedded loader.
// The name should not include the .xml extension or path components.
// Returns ErrStyleNotFound if the sheet does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or dots.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// AvailableStyles lists the embedded style sheet names.
func AvailableStyles() []string {
	return defaultLoader.Names()
}
