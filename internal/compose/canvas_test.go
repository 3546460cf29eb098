package compose

import (
	"github.com/ArtieFishal/lastwish/internal/render"
)

type op struct {
	Kind string
	Page int
	X, Y float64
	W, H float64
	Text string
}

// fakeCanvas records drawing calls. Glyphs are half the font size wide.
type fakeCanvas struct {
	page     int
	ops      []op
	imageErr error
}

func (f *fakeCanvas) AddPage() int {
	f.page++
	return f.page
}

func (f *fakeCanvas) FillRect(x, y, w, h float64, _ render.Color, _ float64) {
	f.ops = append(f.ops, op{Kind: "fill", Page: f.page, X: x, Y: y, W: w, H: h})
}

func (f *fakeCanvas) StrokeRect(x, y, w, h float64, _ render.Color, _ float64) {
	f.ops = append(f.ops, op{Kind: "stroke", Page: f.page, X: x, Y: y, W: w, H: h})
}

func (f *fakeCanvas) Line(x1, y1, x2, y2 float64, _ render.Color, _ float64) {
	f.ops = append(f.ops, op{Kind: "line", Page: f.page, X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (f *fakeCanvas) Text(x, y float64, s string, _ render.TextStyle) {
	f.ops = append(f.ops, op{Kind: "text", Page: f.page, X: x, Y: y, Text: s})
}

func (f *fakeCanvas) TextWidth(s string, _ render.Font, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.5
}

func (f *fakeCanvas) Image(name string, _ []byte, x, y, w, h float64) error {
	if f.imageErr != nil {
		return f.imageErr
	}
	f.ops = append(f.ops, op{Kind: "image", Page: f.page, X: x, Y: y, W: w, H: h, Text: name})
	return nil
}

func (f *fakeCanvas) texts() []string {
	var out []string
	for _, o := range f.ops {
		if o.Kind == "text" {
			out = append(out, o.Text)
		}
	}
	return out
}

func (f *fakeCanvas) count(kind, text string) int {
	n := 0
	for _, o := range f.ops {
		if o.Kind == kind && (text == "" || o.Text == text) {
			n++
		}
	}
	return n
}
