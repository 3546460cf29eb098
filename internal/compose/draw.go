package compose

import (
	"strings"

	"github.com/ArtieFishal/lastwish/internal/render"
	"github.com/ArtieFishal/lastwish/internal/textlayout"
)

// Palette and type scale.
var (
	ink       = render.Color{R: 17, G: 24, B: 39}
	muted     = render.Color{R: 75, G: 85, B: 99}
	rule      = render.Color{R: 209, G: 213, B: 219}
	white     = render.Color{R: 255, G: 255, B: 255}
	navy      = render.Color{R: 30, G: 58, B: 138}
	bandColor = render.Color{R: 37, G: 99, B: 235}
	verified  = render.Color{R: 22, G: 163, B: 74}

	titleStyle    = render.TextStyle{Font: render.Bold, Size: 20, Color: white}
	subtitleStyle = render.TextStyle{Size: 9, Color: white}
	headerStyle   = render.TextStyle{Font: render.Bold, Size: 12, Color: ink}
	subStyle      = render.TextStyle{Font: render.Bold, Size: 10.5, Color: ink}
	labelStyle    = render.TextStyle{Font: render.Bold, Size: 9.5, Color: muted}
	bodyStyle     = render.TextStyle{Size: 9.5, Color: ink}
	smallStyle    = render.TextStyle{Size: 8, Color: muted}
	badgeStyle    = render.TextStyle{Font: render.Bold, Size: 7, Color: verified}
)

// Geometry in points.
const (
	titleHeight  = 64.0
	bandHeight   = 22.0
	bandAlpha    = 0.12
	bandGap      = 8.0
	sectionGap   = 14.0
	paragraphGap = 5.0
	labelWidth   = 110.0
	entryGap     = 8.0
	swatchSize   = 10.0
	assetIndent  = 12.0
	thumbSize    = 56.0
	thumbGap     = 10.0
	blockGap     = 8.0
)

func lineHeight(st render.TextStyle) float64 {
	return st.Size * 1.4
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotProvided
	}
	return s
}

func (c *Composer) measure(st render.TextStyle) textlayout.Measurer {
	return func(s string) float64 {
		return c.canvas.TextWidth(s, st.Font, st.Size)
	}
}

// wrap sanitizes s and breaks it into lines no wider than width.
func (c *Composer) wrap(s string, width float64, st render.TextStyle) []string {
	return textlayout.Wrap(textlayout.Sanitize(s), width, c.measure(st))
}

// text draws a single sanitized run with its top edge at y.
func (c *Composer) text(x, y float64, s string, st render.TextStyle) {
	c.canvas.Text(x, y+st.Size, textlayout.Sanitize(s), st)
}

func (c *Composer) width(s string, st render.TextStyle) float64 {
	return c.canvas.TextWidth(textlayout.Sanitize(s), st.Font, st.Size)
}

// lines draws pre-wrapped lines at x, breaking the page between lines.
func (c *Composer) lines(ctx textlayout.LayoutContext, x float64, lines []string, st render.TextStyle) textlayout.LayoutContext {
	lh := lineHeight(st)
	for _, l := range lines {
		ctx = ctx.Ensure(c.canvas, lh)
		c.canvas.Text(x, ctx.Y+st.Size, l, st)
		ctx = ctx.Advance(lh)
	}
	return ctx
}

// paragraph wraps s to the content width minus indent and draws it.
func (c *Composer) paragraph(ctx textlayout.LayoutContext, indent float64, s string, st render.TextStyle) textlayout.LayoutContext {
	wrapped := c.wrap(s, ctx.ContentWidth()-indent, st)
	return c.lines(ctx, ctx.Left()+indent, wrapped, st)
}

// band draws a section header on a translucent band. The break check covers
// the band plus follow, the height of the first line drawn after it.
func (c *Composer) band(ctx textlayout.LayoutContext, title string, follow float64) textlayout.LayoutContext {
	if !ctx.AtTop() {
		ctx = ctx.Advance(sectionGap)
	}
	ctx = ctx.Ensure(c.canvas, bandHeight+bandGap+follow)
	c.canvas.FillRect(ctx.Left(), ctx.Y, ctx.ContentWidth(), bandHeight, bandColor, bandAlpha)
	c.text(ctx.Left()+8, ctx.Y+(bandHeight-headerStyle.Size)/2-1, title, headerStyle)
	return ctx.Advance(bandHeight + bandGap)
}

// field draws a "label  value" row, wrapping the value in its column.
func (c *Composer) field(ctx textlayout.LayoutContext, label, value string) textlayout.LayoutContext {
	wrapped := c.wrap(orNotProvided(value), ctx.ContentWidth()-labelWidth, bodyStyle)
	ctx = ctx.Ensure(c.canvas, lineHeight(bodyStyle))
	c.text(ctx.Left(), ctx.Y, label, labelStyle)
	return c.lines(ctx, ctx.Left()+labelWidth, wrapped, bodyStyle)
}

// swatch fills a small square in a wallet's palette color.
func (c *Composer) swatch(x, y float64, color render.Color) {
	c.canvas.FillRect(x, y, swatchSize, swatchSize, color, 1)
}
