// Package config loads the YAML configuration shared by the CLI and the
// HTTP server.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ArtieFishal/lastwish/internal/dateutil"
	"github.com/ArtieFishal/lastwish/internal/fileutil"
	"github.com/ArtieFishal/lastwish/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength   = 100  // state, county, provider names
	MaxURLLength    = 2048 // gateway URLs
	MaxPathLength   = 4096 // directories
	MaxAddrLength   = 255  // listen address
	MaxLevelLength  = 10   // log level
	MaxConcurrency  = 32   // parallel image downloads
	MaxWorkers      = 64   // concurrent server generations
	MaxImageTimeout = 2 * time.Minute
)

// appDir is the directory under the user config dir searched for configs.
const appDir = "lastwish"

// Config holds all configuration for document generation.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Images   ImagesConfig   `yaml:"images"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Assets   AssetsConfig   `yaml:"assets"`
	Log      LogConfig      `yaml:"log"`
}

// DocumentConfig defines document-wide defaults.
type DocumentConfig struct {
	DateFormat   string             `yaml:"dateFormat"`   // preset or tokens, default "long"
	Jurisdiction JurisdictionConfig `yaml:"jurisdiction"` // used when the bundle has none
}

// JurisdictionConfig names the default notarization venue.
type JurisdictionConfig struct {
	State  string `yaml:"state"`
	County string `yaml:"county"`
}

// ImagesConfig defines artwork download options.
type ImagesConfig struct {
	Enabled        bool          `yaml:"enabled"`
	IPFSGateway    string        `yaml:"ipfsGateway"`
	ArweaveGateway string        `yaml:"arweaveGateway"`
	Timeout        time.Duration `yaml:"timeout"`     // per fetch
	Concurrency    int           `yaml:"concurrency"` // 0 = default
	MaxBytes       int64         `yaml:"maxBytes"`    // 0 = default
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the bundle
}

// ServerConfig defines the HTTP front end.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Workers int    `yaml:"workers"` // 0 = auto
}

// AssetsConfig defines legal text loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded texts
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"document.jurisdiction.state", c.Document.Jurisdiction.State, MaxNameLength},
		{"document.jurisdiction.county", c.Document.Jurisdiction.County, MaxNameLength},
		{"images.ipfsGateway", c.Images.IPFSGateway, MaxURLLength},
		{"images.arweaveGateway", c.Images.ArweaveGateway, MaxURLLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"log.level", c.Log.Level, MaxLevelLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Document.DateFormat != "" {
		if _, err := dateutil.Layout(c.Document.DateFormat); err != nil {
			return fmt.Errorf("document.dateFormat: %w", err)
		}
	}

	if err := validateGateway("images.ipfsGateway", c.Images.IPFSGateway); err != nil {
		return err
	}
	if err := validateGateway("images.arweaveGateway", c.Images.ArweaveGateway); err != nil {
		return err
	}
	if c.Images.Timeout < 0 || c.Images.Timeout > MaxImageTimeout {
		return fmt.Errorf("%w: images.timeout must be between 0 and %s, got %s", ErrInvalidValue, MaxImageTimeout, c.Images.Timeout)
	}
	if c.Images.Concurrency < 0 || c.Images.Concurrency > MaxConcurrency {
		return fmt.Errorf("%w: images.concurrency must be between 0 and %d, got %d", ErrInvalidValue, MaxConcurrency, c.Images.Concurrency)
	}
	if c.Images.MaxBytes < 0 {
		return fmt.Errorf("%w: images.maxBytes must not be negative", ErrInvalidValue)
	}
	if c.Server.Workers < 0 || c.Server.Workers > MaxWorkers {
		return fmt.Errorf("%w: server.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Server.Workers)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}

	return nil
}

func validateGateway(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", ErrInvalidValue, field, raw)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{DateFormat: dateutil.DefaultDateFormat},
		Images:   ImagesConfig{Enabled: true},
		Server:   ServerConfig{Addr: ":8080"},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NotFoundError reports the locations searched for a config.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/lastwish/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Searched: triedPaths}
}
