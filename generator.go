package lastwish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish/internal/assets"
	"github.com/ArtieFishal/lastwish/internal/compose"
	"github.com/ArtieFishal/lastwish/internal/dateutil"
	"github.com/ArtieFishal/lastwish/internal/grouping"
	"github.com/ArtieFishal/lastwish/internal/imagefetch"
	"github.com/ArtieFishal/lastwish/internal/model"
	"github.com/ArtieFishal/lastwish/internal/normalize"
	"github.com/ArtieFishal/lastwish/internal/render"
)

// DocumentIDPrefix starts every document identifier.
const DocumentIDPrefix = "LWE-"

// documentNamespace seeds name-based document identifiers.
var documentNamespace = uuid.MustParse("6f1d2c8e-4b7a-5e39-9c0d-2a8f7b1e3d54")

// Generator turns allocation data into a PDF document.
// Create with NewGenerator and reuse it: Generate keeps no state between
// calls and is safe for concurrent use.
type Generator struct {
	cfg    generatorConfig
	logger *zap.Logger
	images ImageSource
	texts  compose.Texts
}

// NewGenerator creates a Generator. Legal texts are loaded and checked once
// here, so a bad asset path or date format fails before any generation.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			now:        time.Now,
			dateFormat: dateutil.DefaultDateFormat,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if _, err := dateutil.Layout(g.cfg.dateFormat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}

	var loader assets.TextLoader = assets.NewEmbeddedLoader()
	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}
	texts, err := compose.LoadTexts(loader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	g.texts = texts

	// Create the HTTP fetcher if not injected (e.g., by tests)
	if g.images == nil && !g.cfg.imagesDisabled {
		g.images = imagefetch.New(imagefetch.Config{
			IPFSGateway:    g.cfg.ipfsGateway,
			ArweaveGateway: g.cfg.arweaveGateway,
			Timeout:        g.cfg.imageTimeout,
			MaxBytes:       g.cfg.imageMaxBytes,
			Logger:         g.logger.Named("images"),
		})
	}

	return g, nil
}

// Generate renders input into a complete PDF.
//
// The context bounds artwork downloads only: once it is done, remaining
// images fall back to placeholders and the document is still produced.
// On error no partial output is returned. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, input Input) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			pdf = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	now := g.cfg.now()
	date, err := dateutil.Format(now, g.cfg.dateFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}

	data := normalize.Normalize(normalize.Raw{
		Assets:        input.Assets,
		Beneficiaries: input.Beneficiaries,
		Allocations:   input.Allocations,
		ResolvedNames: input.ResolvedNames,
	}, g.logger)

	doc := compose.Document{
		ID:           DocumentID(now),
		GeneratedAt:  date,
		Owner:        compose.Person(input.Owner),
		Executor:     compose.Executor(input.Executor),
		Jurisdiction: compose.Jurisdiction(input.Jurisdiction),
		Data:         data,
		Wallets:      grouping.Group(data.Assets, input.WalletProviders, input.ResolvedNames),
		Chains:       grouping.ByChain(data.Assets),
		Instructions: compose.Paragraphs(input.Instructions, input.InstructionsFormat == InstructionsMarkdown),
		Images:       g.prefetch(ctx, data.Assets),
		Texts:        g.texts,
	}

	canvas := render.New(render.Options{
		Title:   compose.Title,
		Author:  input.Owner.Name,
		Subject: "Document " + doc.ID,
		Created: now,
	})
	if _, err := compose.New(canvas, g.logger).Compose(doc); err != nil {
		if errors.Is(err, compose.ErrTemplate) {
			return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pdf, err = canvas.Finalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	g.logger.Debug("document generated",
		zap.String("id", doc.ID),
		zap.Int("assets", len(data.Assets)),
		zap.Int("wallets", len(doc.Wallets)),
		zap.Int("pages", canvas.PageCount()),
		zap.Int("bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)))
	return pdf, nil
}

// prefetch downloads the artwork of every non-fungible asset. It returns an
// empty map when images are disabled.
func (g *Generator) prefetch(ctx context.Context, list []model.Asset) map[string]*imagefetch.Image {
	if g.images == nil || g.cfg.imagesDisabled {
		return map[string]*imagefetch.Image{}
	}
	var urls []string
	for _, a := range list {
		if a.IsNonFungible() && a.ImageURL != "" {
			urls = append(urls, a.ImageURL)
		}
	}
	return imagefetch.Prefetch(ctx, g.images, urls, g.cfg.imageConcurrency)
}

// DocumentID derives the printed identifier from the generation time, so
// the same clock always yields the same id.
func DocumentID(t time.Time) string {
	id := uuid.NewSHA1(documentNamespace, []byte(t.UTC().Format(time.RFC3339Nano)))
	hex := strings.ReplaceAll(id.String(), "-", "")
	return DocumentIDPrefix + strings.ToUpper(hex[:12])
}
