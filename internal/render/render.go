// Package render owns the PDF page list and the low-level drawing
// primitives. It is a thin layer over go-pdf/fpdf fixed to US Letter in
// points, with Helvetica regular and bold as the only faces.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Sentinel errors for rendering.
var (
	ErrFinalized = errors.New("document already finalized")
	ErrBackend   = errors.New("pdf backend error")
	ErrEmptyName = errors.New("image name cannot be empty")
)

// Page geometry in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

const fontFamily = "Helvetica"

// Font selects one of the two faces.
type Font int

// Faces.
const (
	Regular Font = iota
	Bold
)

func (f Font) style() string {
	if f == Bold {
		return "B"
	}
	return ""
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B int
}

// TextStyle describes a text run.
type TextStyle struct {
	Font  Font
	Size  float64
	Color Color
}

// Options carries document metadata.
type Options struct {
	Title   string
	Author  string
	Subject string
	Created time.Time // pinned into the file so output is reproducible
}

// Renderer draws onto an append-only list of Letter pages.
type Renderer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	images    map[string]bool
	finalized bool
}

// New creates a Renderer with no pages.
func New(opts Options) *Renderer {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)
	if !opts.Created.IsZero() {
		pdf.SetCreationDate(opts.Created)
		pdf.SetModificationDate(opts.Created)
	}
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if opts.Subject != "" {
		pdf.SetSubject(opts.Subject, true)
	}
	pdf.SetCreator("lastwish", false)

	return &Renderer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""), // cp1252
		images:    make(map[string]bool),
	}
}

// AddPage appends a page, makes it current and returns its 1-based number.
func (r *Renderer) AddPage() int {
	r.pdf.AddPage()
	return r.pdf.PageNo()
}

// PageCount returns the number of pages.
func (r *Renderer) PageCount() int {
	return r.pdf.PageCount()
}

// FillRect paints a rectangle blended over existing content with alpha in
// [0, 1].
func (r *Renderer) FillRect(x, y, w, h float64, c Color, alpha float64) {
	r.pdf.SetAlpha(clamp(alpha), "Normal")
	r.pdf.SetFillColor(c.R, c.G, c.B)
	r.pdf.Rect(x, y, w, h, "F")
	r.pdf.SetAlpha(1, "Normal")
}

// StrokeRect outlines a rectangle.
func (r *Renderer) StrokeRect(x, y, w, h float64, c Color, width float64) {
	r.pdf.SetDrawColor(c.R, c.G, c.B)
	r.pdf.SetLineWidth(width)
	r.pdf.Rect(x, y, w, h, "D")
}

// Line draws a straight segment.
func (r *Renderer) Line(x1, y1, x2, y2 float64, c Color, width float64) {
	r.pdf.SetDrawColor(c.R, c.G, c.B)
	r.pdf.SetLineWidth(width)
	r.pdf.Line(x1, y1, x2, y2)
}

// Text draws s with its baseline at y.
func (r *Renderer) Text(x, y float64, s string, st TextStyle) {
	r.pdf.SetFont(fontFamily, st.Font.style(), st.Size)
	r.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	r.pdf.Text(x, y, r.translate(s))
}

// TextWidth measures s in the given face and size.
func (r *Renderer) TextWidth(s string, f Font, size float64) float64 {
	r.pdf.SetFont(fontFamily, f.style(), size)
	return r.pdf.GetStringWidth(r.translate(s))
}

// Image registers JPEG data under name (once) and draws it in the box.
func (r *Renderer) Image(name string, data []byte, x, y, w, h float64) error {
	if name == "" {
		return ErrEmptyName
	}
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	if !r.images[name] {
		r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if err := r.pdf.Error(); err != nil {
			return fmt.Errorf("%w: registering image %q: %v", ErrBackend, name, err)
		}
		r.images[name] = true
	}
	r.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return r.pdf.Error()
}

// Finalize serializes every page into one PDF. It may be called once; any
// error recorded while drawing is returned here.
func (r *Renderer) Finalize() ([]byte, error) {
	if r.finalized {
		return nil, ErrFinalized
	}
	r.finalized = true

	if err := r.pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if r.pdf.PageCount() == 0 {
		r.pdf.AddPage()
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return buf.Bytes(), nil
}

func clamp(alpha float64) float64 {
	switch {
	case alpha < 0:
		return 0
	case alpha > 1:
		return 1
	}
	return alpha
}
