package compose

import (
	"strconv"
	"strings"

	"github.com/ArtieFishal/lastwish/internal/grouping"
	"github.com/ArtieFishal/lastwish/internal/model"
	"github.com/ArtieFishal/lastwish/internal/normalize"
	"github.com/ArtieFishal/lastwish/internal/render"
	"github.com/ArtieFishal/lastwish/internal/textlayout"
)

// Title is printed in the title band.
const Title = "Digital Asset Inheritance Instructions"

func (c *Composer) title(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	ctx = ctx.Ensure(c.canvas, titleHeight)
	c.canvas.FillRect(ctx.Left(), ctx.Y, ctx.ContentWidth(), titleHeight, navy, 0.95)
	c.text(ctx.Left()+14, ctx.Y+14, Title, titleStyle)
	c.text(ctx.Left()+14, ctx.Y+42, "Prepared for "+orNotProvided(doc.Owner.Name)+" on "+doc.GeneratedAt, subtitleStyle)
	return ctx.Advance(titleHeight), nil
}

func (c *Composer) disclaimer(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	paras, err := renderText("disclaimer", doc.Texts.Disclaimer, legalData(doc))
	if err != nil {
		return ctx, err
	}
	ctx = c.band(ctx, "Legal Disclaimer", lineHeight(bodyStyle))
	for _, p := range paras {
		ctx = c.paragraph(ctx, 0, p, bodyStyle).Advance(paragraphGap)
	}
	return ctx, nil
}

func (c *Composer) owner(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	o := doc.Owner
	ctx = c.band(ctx, "Owner Information", lineHeight(bodyStyle))
	ctx = c.field(ctx, "Full name", o.Name)
	ctx = c.field(ctx, "Address", joinAddress(o.Address, o.City, o.State, o.Zip))
	ctx = c.field(ctx, "Phone", o.Phone)
	ctx = c.field(ctx, "Email", o.Email)
	return ctx, nil
}

// joinAddress formats "street, city, state zip", skipping empty parts.
func joinAddress(street, city, state, zip string) string {
	region := strings.TrimSpace(state + " " + zip)
	var parts []string
	for _, p := range []string{street, city, region} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (c *Composer) walletDirectory(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	ctx = c.band(ctx, "Connected Wallets", lineHeight(subStyle))
	if len(doc.Wallets) == 0 {
		return c.paragraph(ctx, 0, "No wallets connected.", bodyStyle), nil
	}
	for _, w := range doc.Wallets {
		ctx = c.walletEntry(ctx, w)
	}
	return ctx, nil
}

// walletEntry draws one directory entry as an unbreakable block: swatch,
// provider, badge, resolved name, address and a chain summary.
func (c *Composer) walletEntry(ctx textlayout.LayoutContext, w model.WalletGroup) textlayout.LayoutContext {
	x := ctx.Left()
	textX := x + swatchSize + 8
	badge := "VERIFIED"
	badgeW := c.width(badge, badgeStyle) + 8
	width := ctx.ContentWidth() - (textX - x) - badgeW - 8

	addr := c.wrap(w.Address, width, bodyStyle)
	summary := c.wrap(chainSummary(w), width, smallStyle)

	height := lineHeight(subStyle) + float64(len(addr))*lineHeight(bodyStyle) +
		float64(len(summary))*lineHeight(smallStyle) + entryGap
	if w.ResolvedName != "" {
		height += lineHeight(bodyStyle)
	}
	ctx = ctx.Ensure(c.canvas, height)

	c.swatch(x, ctx.Y+1, render.Color(grouping.Palette[w.ColorIndex%grouping.PaletteSize]))
	right := ctx.Left() + ctx.ContentWidth()
	c.canvas.StrokeRect(right-badgeW, ctx.Y, badgeW, 12, verified, 0.75)
	c.text(right-badgeW+4, ctx.Y+2.5, badge, badgeStyle)
	c.text(textX, ctx.Y, w.Provider, subStyle)
	ctx = ctx.Advance(lineHeight(subStyle))
	if w.ResolvedName != "" {
		c.text(textX, ctx.Y, w.ResolvedName, bodyStyle)
		ctx = ctx.Advance(lineHeight(bodyStyle))
	}
	ctx = c.lines(ctx, textX, addr, bodyStyle)
	ctx = c.lines(ctx, textX, summary, smallStyle)
	return ctx.Advance(entryGap)
}

func chainSummary(w model.WalletGroup) string {
	n := 0
	chains := make([]string, 0, len(w.Chains))
	for _, ch := range w.Chains {
		n += len(ch.Assets)
		chains = append(chains, ch.Chain)
	}
	noun := "assets"
	if n == 1 {
		noun = "asset"
	}
	return strconv.Itoa(n) + " " + noun + " on " + strings.Join(chains, ", ")
}

func (c *Composer) beneficiaryWallets(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	ctx = c.band(ctx, "Beneficiary Wallets", lineHeight(subStyle))
	drawn := 0
	for _, b := range doc.Data.Beneficiaries {
		if b.WalletAddress == "" {
			continue
		}
		addr := c.wrap(normalize.DisplayAddress(b.WalletAddress), ctx.ContentWidth()-assetIndent, bodyStyle)
		height := lineHeight(subStyle) + float64(len(addr))*lineHeight(bodyStyle) + entryGap
		if b.ResolvedName != "" {
			height += lineHeight(bodyStyle)
		}
		ctx = ctx.Ensure(c.canvas, height)
		c.text(ctx.Left(), ctx.Y, beneficiaryLabel(b), subStyle)
		ctx = ctx.Advance(lineHeight(subStyle))
		if b.ResolvedName != "" {
			c.text(ctx.Left()+assetIndent, ctx.Y, b.ResolvedName, bodyStyle)
			ctx = ctx.Advance(lineHeight(bodyStyle))
		}
		ctx = c.lines(ctx, ctx.Left()+assetIndent, addr, bodyStyle).Advance(entryGap)
		drawn++
	}
	if drawn == 0 {
		ctx = c.paragraph(ctx, 0, "No beneficiary wallets provided.", bodyStyle)
	}
	return ctx, nil
}

func (c *Composer) executor(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	e := doc.Executor
	wallet := e.WalletAddress
	if wallet != "" {
		wallet = normalize.DisplayAddress(wallet)
	}
	ctx = c.band(ctx, "Executor Information", lineHeight(bodyStyle))
	ctx = c.field(ctx, "Full name", e.Name)
	ctx = c.field(ctx, "Relationship", e.Relationship)
	ctx = c.field(ctx, "Address", e.Address)
	ctx = c.field(ctx, "Phone", e.Phone)
	ctx = c.field(ctx, "Email", e.Email)
	ctx = c.field(ctx, "Wallet", wallet)
	return ctx, nil
}

func (c *Composer) beneficiaries(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	ctx = c.band(ctx, "Beneficiaries", lineHeight(subStyle))
	if len(doc.Data.Beneficiaries) == 0 {
		return c.paragraph(ctx, 0, "No beneficiaries designated.", bodyStyle), nil
	}
	for i, b := range doc.Data.Beneficiaries {
		rows := [][2]string{{"Wallet", normalize.DisplayAddress(b.WalletAddress)}}
		if b.ResolvedName != "" {
			rows = append(rows, [2]string{"Resolved name", b.ResolvedName})
		}
		for _, r := range [][2]string{
			{"Relationship", b.Relationship},
			{"Phone", b.Phone},
			{"Email", b.Email},
		} {
			if r[1] != "" {
				rows = append(rows, r)
			}
		}

		ctx = ctx.Ensure(c.canvas, lineHeight(subStyle)+float64(len(rows))*lineHeight(bodyStyle))
		c.text(ctx.Left(), ctx.Y, strconv.Itoa(i+1)+". "+beneficiaryLabel(b), subStyle)
		ctx = ctx.Advance(lineHeight(subStyle))
		for _, r := range rows {
			ctx = c.field(ctx, r[0], r[1])
		}
		ctx = ctx.Advance(entryGap)
	}
	return ctx, nil
}

func (c *Composer) instructions(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	paras := doc.Instructions
	if len(paras) == 0 {
		var err error
		if paras, err = renderText("instructions", doc.Texts.Instructions, legalData(doc)); err != nil {
			return ctx, err
		}
	}
	ctx = c.band(ctx, "Key Instructions", lineHeight(bodyStyle))
	for _, p := range paras {
		ctx = c.paragraph(ctx, 0, p, bodyStyle).Advance(paragraphGap)
	}
	return ctx, nil
}

// Signature and seal geometry.
const (
	signatureHeight = 42.0
	signatureWidth  = 260.0
	dateColumn      = 300.0
	sealSize        = 108.0
)

func (c *Composer) notarization(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	data := legalData(doc)
	paras, err := renderText("notarization", doc.Texts.Notarization, data)
	if err != nil {
		return ctx, err
	}
	ctx = c.band(ctx, "Notarization", lineHeight(bodyStyle))
	for _, p := range paras {
		ctx = c.paragraph(ctx, 0, p, bodyStyle).Advance(paragraphGap)
	}

	for _, signer := range []string{
		"Signature of " + data.OwnerName + " (Owner)",
		"Signature of " + data.ExecutorName + " (Executor)",
		"Signature of Notary Public",
	} {
		ctx = ctx.Ensure(c.canvas, signatureHeight)
		y := ctx.Y + 26
		right := ctx.Left() + ctx.ContentWidth()
		c.canvas.Line(ctx.Left(), y, ctx.Left()+signatureWidth, y, ink, 0.75)
		c.canvas.Line(ctx.Left()+dateColumn, y, right, y, ink, 0.75)
		c.text(ctx.Left(), y+3, signer, smallStyle)
		c.text(ctx.Left()+dateColumn, y+3, "Date", smallStyle)
		ctx = ctx.Advance(signatureHeight)
	}

	ctx = ctx.Advance(paragraphGap).Ensure(c.canvas, sealSize+paragraphGap)
	x := ctx.Left()
	c.canvas.StrokeRect(x, ctx.Y, sealSize, sealSize, ink, 1)
	seal := "NOTARY SEAL"
	c.text(x+(sealSize-c.width(seal, labelStyle))/2, ctx.Y+sealSize/2-labelStyle.Size/2, seal, labelStyle)
	c.text(x+sealSize+16, ctx.Y+sealSize-40, "Notary Public, State of "+data.State, bodyStyle)
	c.text(x+sealSize+16, ctx.Y+sealSize-24, "My commission expires: "+blank, bodyStyle)
	return ctx.Advance(sealSize + paragraphGap), nil
}

const footerHeight = 30.0

// footer draws the document id and generation date once, after the last
// section. It is not repeated on every page.
func (c *Composer) footer(ctx textlayout.LayoutContext, doc *Document) (textlayout.LayoutContext, error) {
	ctx = ctx.Advance(sectionGap).Ensure(c.canvas, footerHeight)
	right := ctx.Left() + ctx.ContentWidth()
	c.canvas.Line(ctx.Left(), ctx.Y, right, ctx.Y, rule, 0.5)
	c.text(ctx.Left(), ctx.Y+8, "Document ID: "+doc.ID, smallStyle)
	generated := "Generated " + doc.GeneratedAt
	c.text(right-c.width(generated, smallStyle), ctx.Y+8, generated, smallStyle)
	return ctx.Advance(footerHeight), nil
}
