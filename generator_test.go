package lastwish

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sync"
	"testing"
	"time"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// recordingSource records requested URLs and serves one image for all.
type recordingSource struct {
	mu   sync.Mutex
	urls []string
	img  *Image
}

func (s *recordingSource) Fetch(_ context.Context, url string) *Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, url)
	return s.img
}

func (s *recordingSource) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.urls)
	slices.Sort(out)
	return out
}

func jpegImage(t *testing.T) *Image {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3)), nil); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}
	return &Image{Data: buf.Bytes(), Width: 4, Height: 3}
}

func sampleInput() Input {
	return Input{
		Owner:        Person{Name: "Jordan Example", City: "Austin", State: "TX"},
		Executor:     Executor{Name: "Sam Example", Relationship: "Sibling"},
		Jurisdiction: Jurisdiction{State: "Texas", County: "Travis"},
		Assets: []Record{
			{"id": "eth", "chain": "ethereum", "symbol": "ETH", "name": "Ether", "balance": 1.5, "walletAddress": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
			{"contractAddress": "punk", "network": "ethereum", "type": "erc721", "name": "CryptoPunks", "tokenId": "7804", "image": "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG/7804.png", "wallet": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
			{"id": "ord", "chain": "bitcoin", "kind": "ordinal", "name": "Inscription", "metadata": map[string]any{"image": "https://img.example/ord.png"}},
		},
		Beneficiaries: []Record{
			{"id": "b1", "fullName": "Alice", "address": "0x0000000000000000000000000000000000000001"},
		},
		Allocations: []Record{
			{"assetId": "eth", "beneficiaryId": "b1", "percentage": 50},
			{"assetId": "punk", "beneficiaryId": "b1", "percentage": 30},
			{"assetId": "missing", "beneficiaryId": "b1", "percentage": 10},
		},
		WalletProviders: map[string]string{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed": "MetaMask"},
		Instructions:    "Seed phrase is in the safe.\nCall the attorney first.",
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	src := &recordingSource{img: jpegImage(t)}
	gen, err := NewGenerator(WithClock(fixedClock), WithImageFetcher(src))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	pdf, err := gen.Generate(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("output does not start with %%PDF-")
	}

	want := []string{
		"https://img.example/ord.png",
		"ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG/7804.png",
	}
	if got := src.requested(); !slices.Equal(got, want) {
		t.Errorf("fetched %v, want only non-fungible artwork %v", got, want)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	gen, err := NewGenerator(WithClock(fixedClock), WithImageFetcher(&recordingSource{img: jpegImage(t)}))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	first, err := gen.Generate(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := gen.Generate(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input and clock produced different bytes")
	}
}

func TestGenerator_EmptyInput(t *testing.T) {
	t.Parallel()

	gen, err := NewGenerator(WithClock(fixedClock), WithImagesDisabled())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	pdf, err := gen.Generate(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(pdf) == 0 {
		t.Error("Generate() returned empty output")
	}
}

func TestGenerator_CanceledContextStillProducesDocument(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen, err := NewGenerator(WithClock(fixedClock), WithImageFetcher(&recordingSource{}))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := gen.Generate(ctx, sampleInput()); err != nil {
		t.Errorf("Generate() with canceled context error = %v, want nil", err)
	}
}

func TestGenerator_MarkdownInstructions(t *testing.T) {
	t.Parallel()

	gen, err := NewGenerator(WithClock(fixedClock), WithImagesDisabled())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	in := sampleInput()
	in.Instructions = "# Steps\n\n1. Open the safe\n2. Call **Alice**\n"
	in.InstructionsFormat = InstructionsMarkdown
	if _, err := gen.Generate(context.Background(), in); err != nil {
		t.Errorf("Generate() error = %v", err)
	}
}

func TestGenerator_Errors(t *testing.T) {
	t.Parallel()

	broken := t.TempDir()
	if err := os.MkdirAll(filepath.Join(broken, "legal"), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(broken, "legal", "notarization.tmpl"), []byte("Signed by {{.Nobody}}"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name    string
		opts    []Option
		input   Input
		wantErr error
	}{
		{
			name:    "unknown instructions format",
			opts:    []Option{WithImagesDisabled()},
			input:   Input{InstructionsFormat: "html"},
			wantErr: ErrInvalidInstructionsFormat,
		},
		{
			name:    "template referencing unknown field",
			opts:    []Option{WithImagesDisabled(), WithAssetPath(broken)},
			input:   sampleInput(),
			wantErr: ErrTemplate,
		},
		{
			name:    "undecodable image data",
			opts:    []Option{WithImageFetcher(&recordingSource{img: &Image{Data: []byte("junk"), Width: 4, Height: 4}})},
			input:   sampleInput(),
			wantErr: ErrRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen, err := NewGenerator(append(tt.opts, WithClock(fixedClock))...)
			if err != nil {
				t.Fatalf("NewGenerator() error = %v", err)
			}
			pdf, err := gen.Generate(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if pdf != nil {
				t.Error("Generate() returned partial output on error")
			}
		})
	}
}

func TestNewGenerator_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"unclosed date bracket", []Option{WithDateFormat("[Generated MMMM")}, ErrInvalidDateFormat},
		{"missing asset directory", []Option{WithAssetPath(filepath.Join(t.TempDir(), "absent"))}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewGenerator(tt.opts...); !errors.Is(err, tt.wantErr) {
				t.Errorf("NewGenerator() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil clock", func() { WithClock(nil) }},
		{"zero timeout", func() { WithImageTimeout(0) }},
		{"zero concurrency", func() { WithImageConcurrency(0) }},
		{"negative max bytes", func() { WithImageMaxBytes(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestDocumentID(t *testing.T) {
	t.Parallel()

	id := DocumentID(fixedTime)
	if !regexp.MustCompile(`^LWE-[0-9A-F]{12}$`).MatchString(id) {
		t.Errorf("DocumentID() = %q, want LWE- and 12 uppercase hex digits", id)
	}
	if again := DocumentID(fixedTime.In(time.FixedZone("EST", -5*3600))); again != id {
		t.Errorf("DocumentID() depends on the time zone: %q != %q", again, id)
	}
	if other := DocumentID(fixedTime.Add(time.Nanosecond)); other == id {
		t.Error("DocumentID() collides for different instants")
	}
}

func TestGenerator_ImagesDisabledIgnoresInjectedFetcher(t *testing.T) {
	t.Parallel()

	src := &recordingSource{img: jpegImage(t)}
	gen, err := NewGenerator(WithClock(fixedClock), WithImageFetcher(src), WithImagesDisabled())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := gen.Generate(context.Background(), sampleInput()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := src.requested(); len(got) != 0 {
		t.Errorf("fetched %v with images disabled, want none", got)
	}
}
