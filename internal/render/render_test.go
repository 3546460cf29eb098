package render

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"testing"
	"time"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func drawSample(r *Renderer) {
	r.AddPage()
	r.FillRect(36, 36, 540, 40, Color{59, 130, 246}, 0.15)
	r.Text(48, 62, "Digital Asset Instructions", TextStyle{Font: Bold, Size: 18})
	r.Line(36, 90, 576, 90, Color{200, 200, 200}, 0.5)
	r.Text(48, 110, "Zoë owns 1.5 ETH £", TextStyle{Size: 10})
	r.StrokeRect(400, 600, 120, 120, Color{}, 1)
	r.AddPage()
	r.Text(48, 60, "second page", TextStyle{Size: 10})
}

func TestRenderer_Finalize(t *testing.T) {
	t.Parallel()

	r := New(Options{Title: "Test", Created: fixedTime})
	drawSample(r)

	if got := r.PageCount(); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}

	data, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with %%PDF-: %q", data[:min(len(data), 16)])
	}
	if !bytes.Contains(data, []byte("Helvetica-Bold")) {
		t.Error("output does not reference Helvetica-Bold")
	}

	if _, err := r.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrFinalized", err)
	}
}

func TestRenderer_EmptyDocumentHasOnePage(t *testing.T) {
	t.Parallel()

	r := New(Options{Created: fixedTime})
	data, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("Finalize() returned empty output")
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	t.Parallel()

	render := func() []byte {
		r := New(Options{Title: "Same", Created: fixedTime})
		drawSample(r)
		data, err := r.Finalize()
		if err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		return data
	}

	if !bytes.Equal(render(), render()) {
		t.Error("identical drawing produced different bytes")
	}
}

func TestRenderer_TextWidth(t *testing.T) {
	t.Parallel()

	r := New(Options{})
	regular := r.TextWidth("Allocation", Regular, 10)
	bold := r.TextWidth("Allocation", Bold, 10)
	larger := r.TextWidth("Allocation", Regular, 20)

	if regular <= 0 {
		t.Fatalf("TextWidth() = %v, want > 0", regular)
	}
	if bold <= regular {
		t.Errorf("bold width %v should exceed regular %v", bold, regular)
	}
	if larger <= regular*1.9 {
		t.Errorf("20pt width %v should be about twice 10pt width %v", larger, regular)
	}
}

func TestRenderer_Image(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}

	r := New(Options{Created: fixedTime})
	r.AddPage()
	if err := r.Image("nft-1", buf.Bytes(), 54, 54, 48, 48); err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	// Second draw reuses the registered image.
	if err := r.Image("nft-1", nil, 54, 120, 48, 48); err != nil {
		t.Fatalf("Image() reuse error = %v", err)
	}
	if err := r.Image("", buf.Bytes(), 0, 0, 1, 1); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Image(\"\") error = %v, want ErrEmptyName", err)
	}
	if _, err := r.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
}

func TestRenderer_InvalidImageFailsDocument(t *testing.T) {
	t.Parallel()

	r := New(Options{Created: fixedTime})
	r.AddPage()
	if err := r.Image("bad", []byte("not a jpeg"), 0, 0, 10, 10); err == nil {
		t.Fatal("Image() with invalid data returned nil error")
	}
	if _, err := r.Finalize(); !errors.Is(err, ErrBackend) {
		t.Errorf("Finalize() error = %v, want ErrBackend", err)
	}
}
