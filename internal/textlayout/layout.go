package textlayout

// Letter page geometry in points. The engine only produces this size.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// Margins holds the four page margins in points.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins are the margins used for every page.
var DefaultMargins = Margins{Top: 54, Right: 54, Bottom: 54, Left: 54}

// Pager appends a page and returns its 1-based number.
type Pager interface {
	AddPage() int
}

// LayoutContext is the write position within the document. It is passed by
// value into every draw step and the updated copy is returned.
type LayoutContext struct {
	Page       int
	Y          float64
	PageWidth  float64
	PageHeight float64
	Margins    Margins
}

// NewContext returns a context positioned at the top margin of page.
func NewContext(page int, margins Margins) LayoutContext {
	return LayoutContext{
		Page:       page,
		Y:          margins.Top,
		PageWidth:  PageWidth,
		PageHeight: PageHeight,
		Margins:    margins,
	}
}

// Left returns the x coordinate of the left margin.
func (c LayoutContext) Left() float64 {
	return c.Margins.Left
}

// ContentWidth returns the writable width between the side margins.
func (c LayoutContext) ContentWidth() float64 {
	return c.PageWidth - c.Margins.Left - c.Margins.Right
}

// Bottom returns the lowest y a block may reach.
func (c LayoutContext) Bottom() float64 {
	return c.PageHeight - c.Margins.Bottom
}

// Remaining returns the vertical space left below the cursor.
func (c LayoutContext) Remaining() float64 {
	return c.Bottom() - c.Y
}

// Fits reports whether a block of height fits below the cursor.
func (c LayoutContext) Fits(height float64) bool {
	return height <= c.Remaining()
}

// AtTop reports whether the cursor sits at the top margin.
func (c LayoutContext) AtTop() bool {
	return c.Y <= c.Margins.Top
}

// Ensure makes room for a block of height. When the space below the cursor
// is insufficient a new page is appended and the cursor moves to its top
// margin. A block taller than a whole page is not broken again once the
// cursor is already at the top, so Ensure never adds empty pages in a loop.
func (c LayoutContext) Ensure(p Pager, height float64) LayoutContext {
	if c.Fits(height) || c.AtTop() {
		return c
	}
	c.Page = p.AddPage()
	c.Y = c.Margins.Top
	return c
}

// Advance moves the cursor down by dy.
func (c LayoutContext) Advance(dy float64) LayoutContext {
	c.Y += dy
	return c
}
