package assets

import (
	"errors"
)

// AssetResolver tries a custom loader first and falls back to the embedded
// sheets when the custom directory does not contain the requested name.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath selects embedded sheets only.
// Returns ErrInvalidBasePath if customBasePath is set but unusable.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a style sheet template, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}

	// Validation and I/O errors are not masked by the embedded copy.
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// Stylesheet loads the named sheet and renders it with data.
// An empty name selects DefaultStyleName.
func (r *AssetResolver) Stylesheet(name string, data StyleData) ([]byte, error) {
	if name == "" {
		name = DefaultStyleName
	}
	tmpl, err := r.LoadStyle(name)
	if err != nil {
		return nil, err
	}
	return RenderStyle(name, tmpl, data)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
