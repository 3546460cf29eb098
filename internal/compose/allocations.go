package compose

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/ArtieFishal/lastwish/internal/grouping"
	"github.com/ArtieFishal/lastwish/internal/imagefetch"
	"github.com/ArtieFishal/lastwish/internal/model"
	"github.com/ArtieFishal/lastwish/internal/render"
	"github.com/ArtieFishal/lastwish/internal/textlayout"
)

// NotAllocated is printed for assets without allocations.
const NotAllocated = "Not allocated"

// QuantityPrecision is the number of decimals of derived quantities.
const QuantityPrecision = 6

// AllocationLines renders the allocation statements of one asset.
//
// Every allocation of a non-fungible asset reads as a whole transfer,
// whatever value it carries. Fungible percentages show the derived quantity
// balance*percentage/100; amounts are printed as supplied.
func AllocationLines(a model.Asset, d model.Dataset) []string {
	allocs := d.AllocationsFor(a.ID)
	if len(allocs) == 0 {
		return []string{NotAllocated}
	}

	out := make([]string, 0, len(allocs))
	for _, alloc := range allocs {
		to := "an unknown beneficiary"
		if b, ok := d.Beneficiary(alloc.BeneficiaryID); ok {
			to = beneficiaryLabel(b)
		}

		switch {
		case a.IsNonFungible():
			out = append(out, "Entire asset transferred to "+to)
		case alloc.Kind == model.Percentage:
			pct := valueText(alloc)
			line := pct + "% to " + to
			if qty, ok := DerivedQuantity(a.Balance, pct); ok {
				line += " (" + withSymbol(qty, a.Symbol) + ")"
			}
			out = append(out, line)
		default:
			out = append(out, withSymbol(valueText(alloc), a.Symbol)+" to "+to)
		}
	}
	return out
}

// DerivedQuantity computes balance*percentage/100 in exact decimal
// arithmetic, rounded half away from zero to QuantityPrecision places.
// It reports false when either operand is not a decimal number.
func DerivedQuantity(balance, percentage string) (string, bool) {
	b, ok := new(big.Rat).SetString(strings.TrimSpace(balance))
	if !ok {
		return "", false
	}
	p, ok := new(big.Rat).SetString(strings.TrimSpace(percentage))
	if !ok {
		return "", false
	}
	q := new(big.Rat).Mul(b, p)
	q.Quo(q, big.NewRat(100, 1))
	return q.FloatString(QuantityPrecision), true
}

func valueText(alloc model.Allocation) string {
	if s := strings.TrimSpace(alloc.ValueText); s != "" {
		return s
	}
	return strconv.FormatFloat(alloc.Value, 'f', -1, 64)
}

func withSymbol(qty, symbol string) string {
	if symbol == "" {
		return qty
	}
	return qty + " " + symbol
}

// beneficiaryLabel picks the most human name a beneficiary has.
func beneficiaryLabel(b model.Beneficiary) string {
	for _, s := range []string{b.Name, b.ResolvedName, b.WalletAddress, b.ID} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return NotProvided
}

func assetTitle(a model.Asset) string {
	title := a.Symbol
	switch {
	case title == "":
		title = a.Name
	case a.Name != "" && a.Name != a.Symbol:
		title += " - " + a.Name
	}
	if title == "" {
		title = a.ID
	}
	if a.IsNonFungible() && a.TokenID != "" {
		title += " #" + a.TokenID
	}
	return title
}

func (c *Composer) summary(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	ctx = c.band(ctx, "Executive Summary", lineHeight(subStyle))
	if len(doc.Wallets) == 0 {
		return c.paragraph(ctx, 0, "No assets listed.", bodyStyle), nil
	}
	var err error
	for _, w := range doc.Wallets {
		ctx = c.walletHeading(ctx, w)
		for _, ch := range w.Chains {
			ctx = c.chainHeading(ctx, ch.Chain)
			for _, a := range ch.Assets {
				if ctx, err = c.assetBlock(ctx, doc, a, false); err != nil {
					return ctx, err
				}
			}
		}
	}
	return ctx, nil
}

func (c *Composer) byChain(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	ctx = c.band(ctx, "Detailed Allocations by Chain", lineHeight(subStyle))
	if len(doc.Chains) == 0 {
		return c.paragraph(ctx, 0, "No assets listed.", bodyStyle), nil
	}
	var err error
	for _, ch := range doc.Chains {
		ctx = c.chainHeading(ctx, ch.Chain)
		for _, a := range ch.Assets {
			if ctx, err = c.assetBlock(ctx, doc, a, true); err != nil {
				return ctx, err
			}
		}
	}
	return ctx, nil
}

// walletHeading keeps room for the heading plus one asset title line.
func (c *Composer) walletHeading(ctx textlayout.LayoutContext, w model.WalletGroup) textlayout.LayoutContext {
	label := w.Provider + " - " + w.Address
	if w.ResolvedName != "" {
		label = w.Provider + " - " + w.ResolvedName + " (" + w.Address + ")"
	}
	textX := ctx.Left() + swatchSize + 8
	wrapped := c.wrap(label, ctx.ContentWidth()-(textX-ctx.Left()), subStyle)

	ctx = ctx.Ensure(c.canvas, float64(len(wrapped)+2)*lineHeight(subStyle))
	c.swatch(ctx.Left(), ctx.Y+1, render.Color(grouping.Palette[w.ColorIndex%grouping.PaletteSize]))
	return c.lines(ctx, textX, wrapped, subStyle).Advance(2)
}

func (c *Composer) chainHeading(ctx textlayout.LayoutContext, chain string) textlayout.LayoutContext {
	if chain == "" {
		chain = "unknown"
	}
	ctx = ctx.Ensure(c.canvas, lineHeight(labelStyle)+2*lineHeight(subStyle))
	c.text(ctx.Left()+assetIndent/2, ctx.Y, "Chain: "+chain, labelStyle)
	return ctx.Advance(lineHeight(labelStyle))
}

type styledLine struct {
	text  string
	style render.TextStyle
}

// assetBlock draws one asset with its allocations. Non-fungible assets
// reserve a thumbnail column whether or not an image is available, so the
// cursor after the block does not depend on the fetch outcome.
func (c *Composer) assetBlock(ctx textlayout.LayoutContext, doc *Document, a model.Asset, withWallet bool) (textlayout.LayoutContext, error) {
	x := ctx.Left() + assetIndent
	width := ctx.ContentWidth() - assetIndent
	if a.IsNonFungible() {
		x += thumbSize + thumbGap
		width -= thumbSize + thumbGap
	}

	var block []styledLine
	add := func(s string, st render.TextStyle) {
		for _, l := range c.wrap(s, width, st) {
			block = append(block, styledLine{l, st})
		}
	}
	add(assetTitle(a), subStyle)
	if withWallet {
		add("Wallet: "+a.WalletAddress, smallStyle)
	}
	if !a.IsNonFungible() {
		add("Balance: "+withSymbol(a.FormattedBalance, a.Symbol), smallStyle)
	}
	for _, s := range AllocationLines(a, doc.Data) {
		add("- "+s, bodyStyle)
	}

	height := 0.0
	for _, l := range block {
		height += lineHeight(l.style)
	}
	if a.IsNonFungible() {
		height = max(height, thumbSize)
	}
	ctx = ctx.Ensure(c.canvas, min(height, ctx.Bottom()-ctx.Margins.Top))
	start := ctx

	if a.IsNonFungible() {
		if err := c.thumbnail(ctx.Left()+assetIndent, ctx.Y, a.ImageURL, doc.Images[a.ImageURL]); err != nil {
			return ctx, err
		}
	}
	for _, l := range block {
		lh := lineHeight(l.style)
		ctx = ctx.Ensure(c.canvas, lh)
		c.canvas.Text(x, ctx.Y+l.style.Size, l.text, l.style)
		ctx = ctx.Advance(lh)
	}
	if a.IsNonFungible() && ctx.Page == start.Page {
		ctx.Y = max(ctx.Y, start.Y+thumbSize)
	}
	return ctx.Advance(blockGap), nil
}

// thumbnail draws img scaled into the thumbnail box, or a "No image"
// placeholder when img is nil. Both paths draw the same border.
func (c *Composer) thumbnail(x, y float64, url string, img *imagefetch.Image) error {
	c.canvas.StrokeRect(x, y, thumbSize, thumbSize, rule, 0.75)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		label := "No image"
		c.text(x+(thumbSize-c.width(label, smallStyle))/2, y+thumbSize/2-smallStyle.Size/2, label, smallStyle)
		return nil
	}

	scale := min(thumbSize/float64(img.Width), thumbSize/float64(img.Height))
	w, h := float64(img.Width)*scale, float64(img.Height)*scale
	return c.canvas.Image("img:"+url, img.Data, x+(thumbSize-w)/2, y+(thumbSize-h)/2, w, h)
}
