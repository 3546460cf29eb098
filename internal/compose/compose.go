// Package compose lays out the fixed sequence of document sections.
//
// Every draw step takes a textlayout.LayoutContext and returns the updated
// copy; the composer itself keeps no cursor state. Breaks are decided before
// a block is drawn, so section bands and asset blocks never straddle pages.
package compose

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish/internal/imagefetch"
	"github.com/ArtieFishal/lastwish/internal/model"
	"github.com/ArtieFishal/lastwish/internal/render"
	"github.com/ArtieFishal/lastwish/internal/textlayout"
)

// NotProvided replaces missing identity fields.
const NotProvided = "Not provided"

// Canvas is the drawing surface the composer needs. *render.Renderer
// satisfies it; tests use a recording fake.
type Canvas interface {
	textlayout.Pager
	FillRect(x, y, w, h float64, c render.Color, alpha float64)
	StrokeRect(x, y, w, h float64, c render.Color, width float64)
	Line(x1, y1, x2, y2 float64, c render.Color, width float64)
	Text(x, y float64, s string, st render.TextStyle)
	TextWidth(s string, f render.Font, size float64) float64
	Image(name string, data []byte, x, y, w, h float64) error
}

// Compile-time interface check.
var _ Canvas = (*render.Renderer)(nil)

// Person identifies the document owner.
type Person struct {
	Name    string
	Address string
	City    string
	State   string
	Zip     string
	Phone   string
	Email   string
}

// Executor identifies the person carrying out the instructions.
type Executor struct {
	Name          string
	Relationship  string
	Address       string
	Phone         string
	Email         string
	WalletAddress string
}

// Jurisdiction names where the acknowledgment is notarized.
type Jurisdiction struct {
	State  string
	County string
}

// Document is everything one composition draws.
type Document struct {
	ID           string
	GeneratedAt  string // human readable
	Owner        Person
	Executor     Executor
	Jurisdiction Jurisdiction
	Data         model.Dataset
	Wallets      []model.WalletGroup
	Chains       []model.ChainGroup
	Instructions []string // one entry per paragraph
	Images       map[string]*imagefetch.Image
	Texts        Texts
}

// Composer draws a Document onto a Canvas.
type Composer struct {
	canvas Canvas
	logger *zap.Logger
}

// New creates a Composer. A nil logger discards output.
func New(canvas Canvas, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{canvas: canvas, logger: logger}
}

type section struct {
	name string
	draw func(textlayout.LayoutContext, *Document) (textlayout.LayoutContext, error)
}

// Compose draws every section in order starting on a fresh page and returns
// the final cursor.
func (c *Composer) Compose(doc Document) (textlayout.LayoutContext, error) {
	ctx := textlayout.NewContext(c.canvas.AddPage(), textlayout.DefaultMargins)

	sections := []section{
		{"title", c.title},
		{"disclaimer", c.disclaimer},
		{"owner", c.owner},
		{"wallets", c.walletDirectory},
		{"beneficiary wallets", c.beneficiaryWallets},
		{"executor", c.executor},
		{"beneficiaries", c.beneficiaries},
		{"summary", c.summary},
		{"by chain", c.byChain},
		{"instructions", c.instructions},
		{"notarization", c.notarization},
		{"footer", c.footer},
	}

	for _, s := range sections {
		start := time.Now()
		var err error
		if ctx, err = s.draw(ctx, &doc); err != nil {
			return ctx, fmt.Errorf("composing %s: %w", s.name, err)
		}
		c.logger.Debug("section composed",
			zap.String("section", s.name),
			zap.Int("page", ctx.Page),
			zap.Duration("elapsed", time.Since(start)))
	}
	return ctx, nil
}
