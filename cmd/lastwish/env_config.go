package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ArtieFishal/lastwish/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "LASTWISH_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // LASTWISH_CONFIG: config file name or path
	OutputDir  string // LASTWISH_OUTPUT_DIR: default output directory
	AssetPath  string // LASTWISH_ASSET_PATH: legal text override directory
	LogLevel   string // LASTWISH_LOG_LEVEL: debug, info, warn, error

	// Tier 2 - Document
	DateFormat string // LASTWISH_DATE_FORMAT: preset or tokens
	State      string // LASTWISH_STATE: default jurisdiction state
	County     string // LASTWISH_COUNTY: default jurisdiction county

	// Tier 3 - Images
	NoImages       bool          // LASTWISH_NO_IMAGES: skip artwork downloads
	IPFSGateway    string        // LASTWISH_IPFS_GATEWAY: ipfs:// gateway
	ArweaveGateway string        // LASTWISH_ARWEAVE_GATEWAY: ar:// gateway
	ImageTimeout   time.Duration // LASTWISH_IMAGE_TIMEOUT: per-download timeout

	// Tier 4 - Server
	Addr    string // LASTWISH_ADDR: listen address
	Workers int    // LASTWISH_WORKERS: concurrent generations
}

// knownEnvVars lists valid LASTWISH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"LASTWISH_CONFIG":     true,
	"LASTWISH_OUTPUT_DIR": true,
	"LASTWISH_ASSET_PATH": true,
	"LASTWISH_LOG_LEVEL":  true,
	// Tier 2 - Document
	"LASTWISH_DATE_FORMAT": true,
	"LASTWISH_STATE":       true,
	"LASTWISH_COUNTY":      true,
	// Tier 3 - Images
	"LASTWISH_NO_IMAGES":       true,
	"LASTWISH_IPFS_GATEWAY":    true,
	"LASTWISH_ARWEAVE_GATEWAY": true,
	"LASTWISH_IMAGE_TIMEOUT":   true,
	// Tier 4 - Server
	"LASTWISH_ADDR":    true,
	"LASTWISH_WORKERS": true,
	// Diagnostics
	"LASTWISH_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized LASTWISH_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("LASTWISH_CONFIG"),
		OutputDir:  os.Getenv("LASTWISH_OUTPUT_DIR"),
		AssetPath:  os.Getenv("LASTWISH_ASSET_PATH"),
		LogLevel:   os.Getenv("LASTWISH_LOG_LEVEL"),
		// Tier 2
		DateFormat: os.Getenv("LASTWISH_DATE_FORMAT"),
		State:      os.Getenv("LASTWISH_STATE"),
		County:     os.Getenv("LASTWISH_COUNTY"),
		// Tier 3
		IPFSGateway:    os.Getenv("LASTWISH_IPFS_GATEWAY"),
		ArweaveGateway: os.Getenv("LASTWISH_ARWEAVE_GATEWAY"),
		// Tier 4
		Addr: os.Getenv("LASTWISH_ADDR"),
	}

	// Parse bool for image opt-out
	if v := os.Getenv("LASTWISH_NO_IMAGES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoImages = b
		}
	}

	// Parse duration for image timeout
	if timeout := os.Getenv("LASTWISH_IMAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.ImageTimeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("LASTWISH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized LASTWISH_* variables.
// Helps catch typos like LASTWISH_OUTPUTDIR instead of LASTWISH_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment values onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}

	// Tier 2
	if env.DateFormat != "" {
		cfg.Document.DateFormat = env.DateFormat
	}
	if env.State != "" {
		cfg.Document.Jurisdiction.State = env.State
	}
	if env.County != "" {
		cfg.Document.Jurisdiction.County = env.County
	}

	// Tier 3
	if env.NoImages {
		cfg.Images.Enabled = false
	}
	if env.IPFSGateway != "" {
		cfg.Images.IPFSGateway = env.IPFSGateway
	}
	if env.ArweaveGateway != "" {
		cfg.Images.ArweaveGateway = env.ArweaveGateway
	}
	if env.ImageTimeout > 0 {
		cfg.Images.Timeout = env.ImageTimeout
	}

	// Tier 4
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Workers > 0 {
		cfg.Server.Workers = env.Workers
	}
}
