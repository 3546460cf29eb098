package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ArtieFishal/lastwish"
	"github.com/ArtieFishal/lastwish/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input bundle specified")
	ErrReadBundle         = errors.New("failed to read input bundle")
	ErrWritePDF           = errors.New("failed to write PDF file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o600 // rw-------: documents hold personal data
)

// resolveConfig builds the effective configuration.
// Precedence: CLI flags > env vars > config file > defaults.
func resolveConfig(common commonFlags, doc documentFlags, img imageFlags) (*config.Config, error) {
	env := loadEnvConfig()

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	if err := mergeFlags(doc, img, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags to cfg (CLI wins).
func mergeFlags(doc documentFlags, img imageFlags, cfg *config.Config) error {
	if doc.dateFormat != "" {
		cfg.Document.DateFormat = doc.dateFormat
	}
	if doc.state != "" {
		cfg.Document.Jurisdiction.State = doc.state
	}
	if doc.county != "" {
		cfg.Document.Jurisdiction.County = doc.county
	}
	if doc.assetPath != "" {
		cfg.Assets.BasePath = doc.assetPath
	}

	if img.disabled {
		cfg.Images.Enabled = false
	}
	if img.ipfsGateway != "" {
		cfg.Images.IPFSGateway = img.ipfsGateway
	}
	if img.arweaveGateway != "" {
		cfg.Images.ArweaveGateway = img.arweaveGateway
	}
	if img.timeout != "" {
		d, err := time.ParseDuration(img.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: --image-timeout %q must be a positive duration", ErrUsage, img.timeout)
		}
		cfg.Images.Timeout = d
	}
	if img.concurrency < 0 {
		return fmt.Errorf("%w: --image-concurrency must not be negative", ErrUsage)
	}
	if img.concurrency > 0 {
		cfg.Images.Concurrency = img.concurrency
	}
	return nil
}

// newLogger builds a JSON logger on w, following the production preset.
// --verbose lowers the level to debug, --quiet raises it to error.
func newLogger(cfg *config.Config, common commonFlags, w io.Writer) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if cfg.Log.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Log.Level))); err != nil {
			return nil, fmt.Errorf("%w: log level %q", ErrUsage, cfg.Log.Level)
		}
	}
	switch {
	case common.verbose:
		level = zapcore.DebugLevel
	case common.quiet:
		level = zapcore.ErrorLevel
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(zc.EncoderConfig), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// generatorOptions translates cfg into library options.
func generatorOptions(cfg *config.Config, env *Environment, logger *zap.Logger) []lastwish.Option {
	opts := []lastwish.Option{
		lastwish.WithLogger(logger),
		lastwish.WithClock(env.Now),
		lastwish.WithDateFormat(cfg.Document.DateFormat),
		lastwish.WithGateways(cfg.Images.IPFSGateway, cfg.Images.ArweaveGateway),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, lastwish.WithAssetPath(cfg.Assets.BasePath))
	}
	if !cfg.Images.Enabled {
		opts = append(opts, lastwish.WithImagesDisabled())
	}
	if cfg.Images.Timeout > 0 {
		opts = append(opts, lastwish.WithImageTimeout(cfg.Images.Timeout))
	}
	if cfg.Images.Concurrency > 0 {
		opts = append(opts, lastwish.WithImageConcurrency(cfg.Images.Concurrency))
	}
	if cfg.Images.MaxBytes > 0 {
		opts = append(opts, lastwish.WithImageMaxBytes(cfg.Images.MaxBytes))
	}
	return opts
}

// defaultJurisdiction returns the configured notarization venue.
func defaultJurisdiction(cfg *config.Config) lastwish.Jurisdiction {
	return lastwish.Jurisdiction{
		State:  cfg.Document.Jurisdiction.State,
		County: cfg.Document.Jurisdiction.County,
	}
}
