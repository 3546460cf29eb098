package assets

import (
	"embed"
	"fmt"
)

//go:embed legal/*.tmpl
var legal embed.FS

// textExt is the file extension of legal text templates.
const textExt = ".tmpl"

// EmbeddedLoader loads legal texts compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadText loads a built-in text by name.
func (e *EmbeddedLoader) LoadText(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := legal.ReadFile("legal/" + name + textExt)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTextNotFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ TextLoader = (*EmbeddedLoader)(nil)
