package lastwish

import (
	"fmt"
	"os"

	"github.com/ArtieFishal/lastwish/internal/yamlutil"
)

// ParseBundle decodes an input bundle. JSON is valid YAML, so both formats
// are accepted. Unknown top-level fields are rejected to catch typos.
func ParseBundle(data []byte) (Input, error) {
	var in Input
	if err := yamlutil.UnmarshalBundle(data, &in); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// LoadBundle reads and decodes the bundle file at path.
func LoadBundle(path string) (Input, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- bundle path is user-provided
	if err != nil {
		return Input{}, fmt.Errorf("reading bundle: %w", err)
	}
	in, err := ParseBundle(data)
	if err != nil {
		return Input{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}
