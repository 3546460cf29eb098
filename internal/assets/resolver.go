package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the text is not found in the custom location.
type AssetResolver struct {
	custom   TextLoader // nil if no custom path configured
	embedded TextLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded texts are used.
// Returns error if customBasePath is set but invalid.
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

// LoadText loads a legal text, trying the custom loader first if available.
func (r *AssetResolver) LoadText(name string) (string, error) {
	if r.custom != nil {
		text, err := r.custom.LoadText(name)
		if err == nil {
			return text, nil
		}
		// Only a missing text falls back; read errors and traversal
		// attempts are reported as-is.
		if !errors.Is(err, ErrTextNotFound) {
			return "", err
		}
	}
	return r.embedded.LoadText(name)
}

// Compile-time interface check.
var _ TextLoader = (*AssetResolver)(nil)

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}
