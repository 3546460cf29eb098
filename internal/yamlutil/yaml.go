// Package yamlutil wraps YAML parsing to isolate the external dependency.
// JSON documents are valid YAML, so input bundles in either format decode
// through the same calls.
package yamlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits configuration input (default 1MB).
var MaxInputSize = 1 << 20

// MaxBundleSize limits input bundles, which may list thousands of assets.
var MaxBundleSize = 16 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func decode(data []byte, v any, limit int, opts ...yaml.DecodeOption) error {
	if err := validateInput(data, v, limit); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	return decode(data, v, MaxInputSize)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, MaxInputSize, yaml.Strict())
}

// UnmarshalBundle decodes a YAML or JSON input bundle up to MaxBundleSize.
// Unknown top-level fields are rejected; free-form records inside it are
// decoded as maps. Numbers in a JSON bundle decode as json.Number so large
// balances and token ids keep every digit.
func UnmarshalBundle(data []byte, v any) error {
	if err := validateInput(data, v, MaxBundleSize); err != nil {
		return err
	}
	if isJSONObject(data) && json.Valid(data) {
		return decodeJSON(data, v)
	}
	return decode(data, v, MaxBundleSize, yaml.Strict())
}

func isJSONObject(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
