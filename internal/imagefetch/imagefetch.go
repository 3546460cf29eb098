// Package imagefetch downloads and decodes collectible artwork for embedding.
//
// Every failure path (bad URL, network error, timeout, oversize body,
// non-image content, undecodable bytes) yields a nil image. Callers treat nil
// as "draw the placeholder", never as an error.
package imagefetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ipfs/go-cid"
	"go.uber.org/zap"
)

// Defaults for fetch limits and gateways.
const (
	DefaultTimeout        = 8 * time.Second
	DefaultMaxBytes       = 5 << 20
	DefaultIPFSGateway    = "https://ipfs.io/ipfs/"
	DefaultArweaveGateway = "https://arweave.net/"

	// maxPixels bounds decoded image size.
	maxPixels = 4096 * 4096

	jpegQuality = 85
)

// Image is a decoded picture re-encoded as baseline JPEG.
type Image struct {
	Data   []byte
	Width  int
	Height int
	Source string
}

// Source fetches one image by URL. Implementations return nil on failure.
type Source interface {
	Fetch(ctx context.Context, rawURL string) *Image
}

// Config configures a Fetcher. Zero values take the package defaults.
type Config struct {
	IPFSGateway    string
	ArweaveGateway string
	Timeout        time.Duration
	MaxBytes       int64
	Client         *http.Client
	Logger         *zap.Logger
}

// Fetcher retrieves images over HTTP(S), translating decentralized-storage
// URLs to gateway URLs first.
type Fetcher struct {
	ipfsGateway    string
	arweaveGateway string
	timeout        time.Duration
	maxBytes       int64
	client         *http.Client
	logger         *zap.Logger
}

// Compile-time interface check.
var _ Source = (*Fetcher)(nil)

// New creates a Fetcher from cfg.
func New(cfg Config) *Fetcher {
	f := &Fetcher{
		ipfsGateway:    withSlash(cfg.IPFSGateway, DefaultIPFSGateway),
		arweaveGateway: withSlash(cfg.ArweaveGateway, DefaultArweaveGateway),
		timeout:        cfg.Timeout,
		maxBytes:       cfg.MaxBytes,
		client:         cfg.Client,
		logger:         cfg.Logger,
	}
	if f.timeout <= 0 {
		f.timeout = DefaultTimeout
	}
	if f.maxBytes <= 0 {
		f.maxBytes = DefaultMaxBytes
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// Fetch downloads and decodes rawURL. It returns nil on any failure,
// including ctx cancellation and the per-fetch timeout.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) *Image {
	resolved, ok := ResolveURL(rawURL, f.ipfsGateway, f.arweaveGateway)
	if !ok {
		f.logger.Debug("image url not fetchable", zap.String("url", rawURL))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	data, err := f.download(ctx, resolved)
	if err != nil {
		f.logger.Debug("image fetch failed", zap.String("url", resolved), zap.Error(err))
		return nil
	}

	img, err := Decode(data)
	if err != nil {
		f.logger.Debug("image decode failed", zap.String("url", resolved), zap.Error(err))
		return nil
	}
	img.Source = resolved
	return img
}

func (f *Fetcher) download(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "image/png, image/jpeg;q=0.9, image/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", f.maxBytes)
	}
	return data, nil
}

// ResolveURL translates rawURL to an HTTP(S) URL. ipfs:// URLs go through
// the IPFS gateway (the CID must parse), ar:// through the Arweave gateway.
// The second result is false for anything that cannot be fetched.
func ResolveURL(rawURL, ipfsGateway, arweaveGateway string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	switch {
	case rawURL == "":
		return "", false
	case strings.HasPrefix(rawURL, "ipfs://"):
		rest := strings.TrimPrefix(rawURL, "ipfs://")
		rest = strings.TrimPrefix(rest, "ipfs/")
		id, path, _ := strings.Cut(rest, "/")
		if _, err := cid.Decode(id); err != nil {
			return "", false
		}
		out := withSlash(ipfsGateway, DefaultIPFSGateway) + id
		if path != "" {
			out += "/" + path
		}
		return out, true
	case strings.HasPrefix(rawURL, "ar://"):
		id := strings.TrimPrefix(rawURL, "ar://")
		if id == "" {
			return "", false
		}
		return withSlash(arweaveGateway, DefaultArweaveGateway) + id, true
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}

// Decode sniffs data, decodes it as PNG then JPEG (JPEG first when the bytes
// look like JPEG), flattens transparency onto white and re-encodes the
// result as baseline JPEG.
func Decode(data []byte) (*Image, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("content type %s is not an image", mt.String())
	}

	decoders := []func([]byte) (image.Image, error){decodePNG, decodeJPEG}
	if mt.Is("image/jpeg") {
		decoders = []func([]byte) (image.Image, error){decodeJPEG, decodePNG}
	}

	var src image.Image
	var err error
	for _, dec := range decoders {
		if src, err = dec(data); err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return &Image{Data: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func decodePNG(data []byte) (image.Image, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := checkSize(cfg); err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}

func decodeJPEG(data []byte) (image.Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := checkSize(cfg); err != nil {
		return nil, err
	}
	return jpeg.Decode(bytes.NewReader(data))
}

func checkSize(cfg image.Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)
	}
	return nil
}

func withSlash(gateway, fallback string) string {
	if gateway == "" {
		gateway = fallback
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return gateway
}
