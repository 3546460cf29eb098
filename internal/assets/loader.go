package assets

// Names of the built-in legal texts.
const (
	Disclaimer   = "disclaimer"
	Notarization = "notarization"
	Instructions = "instructions"
)

// TextLoader loads a legal text template by name (without extension).
// Implementations may read from embedded files, disk, a database, etc.
type TextLoader interface {
	// LoadText returns ErrTextNotFound if the text does not exist and
	// ErrInvalidAssetName if the name contains invalid characters.
	LoadText(name string) (string, error)
}

// defaultLoader serves the built-in texts.
var defaultLoader = NewEmbeddedLoader()

// LoadText loads a built-in text using the default embedded loader.
func LoadText(name string) (string, error) {
	return defaultLoader.LoadText(name)
}
