package lastwish

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish/internal/imagefetch"
)

// Image is a decoded picture re-encoded as baseline JPEG, ready to embed.
type Image = imagefetch.Image

// ImageSource fetches collectible artwork by URL. Implementations return nil
// on any failure; the document then shows a placeholder.
type ImageSource interface {
	Fetch(ctx context.Context, url string) *Image
}

// Compile-time interface check.
var _ ImageSource = (*imagefetch.Fetcher)(nil)

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	now              func() time.Time
	imagesDisabled   bool
	imageTimeout     time.Duration
	imageConcurrency int
	imageMaxBytes    int64
	ipfsGateway      string
	arweaveGateway   string
	dateFormat       string
	assetPath        string
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l == nil {
			l = zap.NewNop()
		}
		g.logger = l
	}
}

// WithClock sets the clock used for the generation date and document id.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("lastwish: WithClock function must not be nil")
	}
	return func(g *Generator) {
		g.cfg.now = now
	}
}

// WithImageFetcher replaces the HTTP image fetcher.
func WithImageFetcher(src ImageSource) Option {
	return func(g *Generator) {
		g.images = src
	}
}

// WithImagesDisabled skips artwork downloads; every collectible shows the
// placeholder.
func WithImagesDisabled() Option {
	return func(g *Generator) {
		g.cfg.imagesDisabled = true
	}
}

// WithImageTimeout bounds each image download.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithImageTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("lastwish: WithImageTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.imageTimeout = d
	}
}

// WithImageConcurrency bounds parallel image downloads.
// Panics if n <= 0 (programmer error).
func WithImageConcurrency(n int) Option {
	if n <= 0 {
		panic("lastwish: WithImageConcurrency must be positive")
	}
	return func(g *Generator) {
		g.cfg.imageConcurrency = n
	}
}

// WithImageMaxBytes bounds the size of a downloaded image body.
// Panics if n <= 0 (programmer error).
func WithImageMaxBytes(n int64) Option {
	if n <= 0 {
		panic("lastwish: WithImageMaxBytes must be positive")
	}
	return func(g *Generator) {
		g.cfg.imageMaxBytes = n
	}
}

// WithGateways sets the HTTP gateways for ipfs:// and ar:// URLs. Empty
// values keep the defaults.
func WithGateways(ipfs, arweave string) Option {
	return func(g *Generator) {
		g.cfg.ipfsGateway = ipfs
		g.cfg.arweaveGateway = arweave
	}
}

// WithDateFormat sets the layout of the printed generation date: a preset
// (iso, european, us, long) or tokens such as "DD MMMM YYYY".
func WithDateFormat(format string) Option {
	return func(g *Generator) {
		g.cfg.dateFormat = format
	}
}

// WithAssetPath sets a directory whose legal/*.tmpl files override the
// embedded legal texts. Missing files fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}
