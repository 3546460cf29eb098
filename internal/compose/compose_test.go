package compose

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ArtieFishal/lastwish/internal/assets"
	"github.com/ArtieFishal/lastwish/internal/grouping"
	"github.com/ArtieFishal/lastwish/internal/imagefetch"
	"github.com/ArtieFishal/lastwish/internal/model"
	"github.com/ArtieFishal/lastwish/internal/textlayout"
)

const wallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func loadTexts(t *testing.T) Texts {
	t.Helper()
	texts, err := LoadTexts(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("LoadTexts() error = %v", err)
	}
	return texts
}

func sampleData() model.Dataset {
	return model.Dataset{
		Assets: []model.Asset{
			{ID: "eth", Chain: "ethereum", Kind: model.Fungible, Symbol: "ETH", Name: "Ether", Balance: "1.5", FormattedBalance: "1.5", WalletAddress: wallet},
			{ID: "punk", Chain: "ethereum", Kind: model.NonFungible, Symbol: "PUNK", Name: "CryptoPunks", TokenID: "7804", ImageURL: "https://img.example/7804.png", WalletAddress: wallet},
			{ID: "sol", Chain: "solana", Kind: model.Fungible, Symbol: "SOL", Name: "Solana", Balance: "n/a", FormattedBalance: "n/a", WalletAddress: model.UnknownWallet},
		},
		Beneficiaries: []model.Beneficiary{
			{ID: "b1", Name: "Alice", WalletAddress: wallet, ResolvedName: "alice.eth", Email: "alice@example.com"},
			{ID: "b2", Name: "", ResolvedName: "bob.eth", WalletAddress: "0x0000000000000000000000000000000000000002"},
		},
		Allocations: []model.Allocation{
			{AssetID: "eth", BeneficiaryID: "b1", Kind: model.Percentage, Value: 50, ValueText: "50"},
			{AssetID: "eth", BeneficiaryID: "b2", Kind: model.Amount, Value: 0.25, ValueText: "0.25"},
			{AssetID: "punk", BeneficiaryID: "b1", Kind: model.Percentage, Value: 30, ValueText: "30"},
			{AssetID: "punk", BeneficiaryID: "b2", Kind: model.Amount, Value: 2, ValueText: "2"},
			{AssetID: "sol", BeneficiaryID: "b1", Kind: model.Percentage, Value: 10, ValueText: "10"},
		},
	}
}

func sampleDocument(t *testing.T, data model.Dataset) Document {
	t.Helper()
	return Document{
		ID:           "LWE-TEST0001",
		GeneratedAt:  "March 14, 2026",
		Owner:        Person{Name: "Jordan Example", City: "Austin", State: "TX"},
		Executor:     Executor{Name: "Sam Example", Relationship: "Sibling"},
		Jurisdiction: Jurisdiction{State: "Texas", County: "Travis"},
		Data:         data,
		Wallets:      grouping.Group(data.Assets, map[string]string{wallet: "MetaMask"}, nil),
		Chains:       grouping.ByChain(data.Assets),
		Texts:        loadTexts(t),
	}
}

// largeData produces enough content to span several pages.
func largeData() model.Dataset {
	var d model.Dataset
	for i := range 40 {
		id := fmt.Sprintf("b%02d", i)
		d.Beneficiaries = append(d.Beneficiaries, model.Beneficiary{
			ID: id, Name: "Beneficiary " + id, WalletAddress: fmt.Sprintf("0x%040x", i+1), Phone: "555-0100",
		})
	}
	for i := range 30 {
		id := fmt.Sprintf("a%02d", i)
		kind := model.Fungible
		if i%3 == 0 {
			kind = model.NonFungible
		}
		d.Assets = append(d.Assets, model.Asset{
			ID: id, Chain: []string{"base", "ethereum", "polygon"}[i%3], Kind: kind,
			Symbol: "TK" + id, Name: "Token " + id, Balance: "100", FormattedBalance: "100",
			WalletAddress: fmt.Sprintf("0x%040x", 100+i%4), ImageURL: "https://img.example/" + id,
		})
		d.Allocations = append(d.Allocations, model.Allocation{
			AssetID: id, BeneficiaryID: fmt.Sprintf("b%02d", i), Kind: model.Percentage, Value: 25, ValueText: "25",
		})
	}
	return d
}

func TestAllocationLines(t *testing.T) {
	t.Parallel()

	d := sampleData()
	tests := []struct {
		name  string
		asset model.Asset
		want  []string
	}{
		{
			name:  "fungible percentage and amount",
			asset: d.Assets[0],
			want:  []string{"50% to Alice (0.750000 ETH)", "0.25 ETH to bob.eth"},
		},
		{
			name:  "non-fungible ignores stored values",
			asset: d.Assets[1],
			want:  []string{"Entire asset transferred to Alice", "Entire asset transferred to bob.eth"},
		},
		{
			name:  "unparsable balance omits quantity",
			asset: d.Assets[2],
			want:  []string{"10% to Alice"},
		},
		{
			name:  "no allocations",
			asset: model.Asset{ID: "none", Symbol: "X"},
			want:  []string{NotAllocated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := AllocationLines(tt.asset, d)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AllocationLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllocationLines_NonFungibleNeverPartial(t *testing.T) {
	t.Parallel()

	d := largeData()
	for _, a := range d.Assets {
		if !a.IsNonFungible() {
			continue
		}
		for _, line := range AllocationLines(a, d) {
			if !strings.HasPrefix(line, "Entire asset transferred to ") {
				t.Errorf("asset %s rendered %q", a.ID, line)
			}
		}
	}
}

func TestDerivedQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		balance string
		pct     string
		want    string
		wantOK  bool
	}{
		{"1.5", "25", "0.375000", true},
		{"100", "33.333333", "33.333333", true},
		{"0.000001", "50", "0.000001", true}, // 0.0000005 rounds away from zero
		{"0.0000001", "50", "0.000000", true},
		{"123456789.123456789", "100", "123456789.123457", true},
		{"1e3", "10", "100.000000", true},
		{"abc", "10", "", false},
		{"10", "", "", false},
	}

	for _, tt := range tests {
		got, ok := DerivedQuantity(tt.balance, tt.pct)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DerivedQuantity(%q, %q) = (%q, %v), want (%q, %v)", tt.balance, tt.pct, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCompose_EmptyInput(t *testing.T) {
	t.Parallel()

	canvas := &fakeCanvas{}
	doc := Document{ID: "LWE-EMPTY", GeneratedAt: "January 1, 2026", Texts: loadTexts(t)}

	if _, err := New(canvas, nil).Compose(doc); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, want := range []string{
		Title,
		"Legal Disclaimer",
		"Owner Information",
		"Connected Wallets",
		"No wallets connected.",
		"Beneficiary Wallets",
		"No beneficiary wallets provided.",
		"Executor Information",
		"Beneficiaries",
		"No beneficiaries designated.",
		"Executive Summary",
		"Detailed Allocations by Chain",
		"Key Instructions",
		"Notarization",
		"NOTARY SEAL",
		NotProvided,
		"Document ID: LWE-EMPTY",
	} {
		if canvas.count("text", want) == 0 {
			t.Errorf("missing text %q", want)
		}
	}
}

func TestCompose_BandsStayOnOnePage(t *testing.T) {
	t.Parallel()

	canvas := &fakeCanvas{}
	if _, err := New(canvas, nil).Compose(sampleDocument(t, largeData())); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if canvas.page < 3 {
		t.Fatalf("pages = %d, want a multi-page document", canvas.page)
	}

	bottom := textlayout.PageHeight - textlayout.DefaultMargins.Bottom
	bands := 0
	for i, o := range canvas.ops {
		if o.Kind != "fill" || o.H != bandHeight {
			continue
		}
		bands++
		if o.Y+o.H > bottom {
			t.Errorf("band at y=%v on page %d crosses the bottom margin", o.Y, o.Page)
		}
		header := canvas.ops[i+1]
		if header.Kind != "text" || header.Page != o.Page {
			t.Errorf("band on page %d is followed by %s on page %d", o.Page, header.Kind, header.Page)
		}
	}
	if bands != 10 {
		t.Errorf("bands = %d, want 10", bands)
	}

	for _, o := range canvas.ops {
		if o.Kind == "text" && o.Y > bottom {
			t.Errorf("text %q at y=%v below the bottom margin on page %d", o.Text, o.Y, o.Page)
		}
	}
}

// The footer is drawn once after the last section rather than on every
// page. This test pins that behavior.
func TestCompose_FooterDrawnOnce(t *testing.T) {
	t.Parallel()

	canvas := &fakeCanvas{}
	if _, err := New(canvas, nil).Compose(sampleDocument(t, largeData())); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	var footers []op
	for _, o := range canvas.ops {
		if o.Kind == "text" && strings.HasPrefix(o.Text, "Document ID: ") {
			footers = append(footers, o)
		}
	}
	if len(footers) != 1 {
		t.Fatalf("footer drawn %d times over %d pages, want once", len(footers), canvas.page)
	}
	if footers[0].Page != canvas.page {
		t.Errorf("footer on page %d, want last page %d", footers[0].Page, canvas.page)
	}
}

func TestCompose_EveryWalletEntryHasBadge(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t, sampleData())
	var unknown bool
	for _, w := range doc.Wallets {
		if w.Address == model.UnknownWallet {
			unknown = true
		}
	}
	if !unknown {
		t.Fatal("sample document has no Unknown wallet group")
	}

	canvas := &fakeCanvas{}
	if _, err := New(canvas, nil).Compose(doc); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if got := canvas.count("text", "VERIFIED"); got != len(doc.Wallets) {
		t.Errorf("VERIFIED badges = %d, want %d", got, len(doc.Wallets))
	}
}

func TestCompose_Deterministic(t *testing.T) {
	t.Parallel()

	run := func() []op {
		canvas := &fakeCanvas{}
		if _, err := New(canvas, nil).Compose(sampleDocument(t, largeData())); err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		return canvas.ops
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("compositions differ (-first +second):\n%s", diff)
	}
}

func TestCompose_SanitizesEveryRun(t *testing.T) {
	t.Parallel()

	data := sampleData()
	data.Beneficiaries[0].Name = "Zoë “Ace” → heir — first… 世界"
	doc := sampleDocument(t, data)
	doc.Instructions = []string{"Seed phrase is in the safe → top shelf", "Ask for “Pat”…"}

	canvas := &fakeCanvas{}
	if _, err := New(canvas, nil).Compose(doc); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, s := range canvas.texts() {
		for _, r := range s {
			if !textlayout.InRange(r) {
				t.Errorf("text %q contains out-of-range rune %U", s, r)
			}
		}
	}
	joined := strings.Join(canvas.texts(), "\n")
	for _, want := range []string{`Zoë "Ace" -> heir -- first...`, "-> top shelf", `Ask for "Pat"...`} {
		if !strings.Contains(joined, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestAssetBlock_ImageFallbackEquivalence(t *testing.T) {
	t.Parallel()

	data := sampleData()
	nft := data.Assets[1]
	img := &imagefetch.Image{Data: []byte{0xff, 0xd8}, Width: 40, Height: 20}

	for _, startY := range []float64{100, 690} {
		t.Run(fmt.Sprintf("y=%v", startY), func(t *testing.T) {
			t.Parallel()

			run := func(images map[string]*imagefetch.Image) (textlayout.LayoutContext, *fakeCanvas) {
				canvas := &fakeCanvas{page: 1}
				doc := sampleDocument(t, data)
				doc.Images = images
				ctx := textlayout.NewContext(1, textlayout.DefaultMargins)
				ctx.Y = startY
				got, err := New(canvas, nil).assetBlock(ctx, &doc, nft, false)
				if err != nil {
					t.Fatalf("assetBlock() error = %v", err)
				}
				return got, canvas
			}

			withImage, c1 := run(map[string]*imagefetch.Image{nft.ImageURL: img})
			failed, c2 := run(map[string]*imagefetch.Image{nft.ImageURL: nil})
			absent, _ := run(nil)

			if withImage != failed || failed != absent {
				t.Errorf("cursor differs: image %+v, failed %+v, absent %+v", withImage, failed, absent)
			}
			if c1.count("image", "img:"+nft.ImageURL) != 1 {
				t.Error("image path did not draw the image")
			}
			if c2.count("text", "No image") != 1 {
				t.Error("fallback path did not draw the placeholder")
			}
		})
	}
}

func TestCompose_ImageBackendErrorSurfaces(t *testing.T) {
	t.Parallel()

	data := sampleData()
	doc := sampleDocument(t, data)
	doc.Images = map[string]*imagefetch.Image{data.Assets[1].ImageURL: {Data: []byte{1}, Width: 1, Height: 1}}

	backendErr := errors.New("bad image")
	canvas := &fakeCanvas{imageErr: backendErr}
	if _, err := New(canvas, nil).Compose(doc); !errors.Is(err, backendErr) {
		t.Errorf("Compose() error = %v, want %v", err, backendErr)
	}
}

func TestCompose_TemplateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		patch func(*Texts)
	}{
		{"parse", func(tx *Texts) { tx.Disclaimer = "{{.OwnerName" }},
		{"unknown field", func(tx *Texts) { tx.Notarization = "{{.Witness}}" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := sampleDocument(t, sampleData())
			tt.patch(&doc.Texts)
			if _, err := New(&fakeCanvas{}, nil).Compose(doc); !errors.Is(err, ErrTemplate) {
				t.Errorf("Compose() error = %v, want ErrTemplate", err)
			}
		})
	}
}

func TestCompose_SummaryOrder(t *testing.T) {
	t.Parallel()

	canvas := &fakeCanvas{}
	if _, err := New(canvas, nil).Compose(sampleDocument(t, sampleData())); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	// Within the summary, MetaMask sorts before the Unknown provider and
	// ETH before PUNK.
	texts := canvas.texts()
	start := indexOf(texts, "Executive Summary")
	end := indexOf(texts, "Detailed Allocations by Chain")
	if start < 0 || end < start {
		t.Fatalf("summary section not found")
	}
	summary := texts[start:end]
	order := []string{"MetaMask - " + wallet, "Chain: ethereum", "ETH - Ether", "PUNK - CryptoPunks #7804", "Unknown - Unknown", "Chain: solana"}
	pos := -1
	for _, want := range order {
		i := indexOf(summary, want)
		if i <= pos {
			t.Fatalf("%q at %d, want after %d in %v", want, i, pos, summary)
		}
		pos = i
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		markdown bool
		want     []string
	}{
		{
			name: "plain text splits on newlines",
			src:  "First line\n\n  Second line  \nThird",
			want: []string{"First line", "Second line", "Third"},
		},
		{
			name: "empty",
			src:  " \n ",
			want: nil,
		},
		{
			name:     "markdown flattens blocks",
			src:      "# Access\n\nThe *ledger* is in the\n**safe**.\n\n- first step\n- second step\n\n1. call `Pat`\n2. visit <https://example.com>\n",
			markdown: true,
			want: []string{
				"Access",
				"The ledger is in the safe.",
				"- first step",
				"- second step",
				"1. call Pat",
				"2. visit https://example.com",
			},
		},
		{
			name:     "markdown code block lines",
			src:      "```\nline one\nline two\n```\n",
			markdown: true,
			want:     []string{"line one", "line two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Paragraphs(tt.src, tt.markdown)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Paragraphs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJoinAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		street, city, state, zip string
		want                     string
	}{
		{"1 Main St", "Austin", "TX", "78701", "1 Main St, Austin, TX 78701"},
		{"", "Austin", "", "", "Austin"},
		{"", "", "", "", ""},
	}
	for _, tt := range tests {
		if got := joinAddress(tt.street, tt.city, tt.state, tt.zip); got != tt.want {
			t.Errorf("joinAddress() = %q, want %q", got, tt.want)
		}
	}
}
