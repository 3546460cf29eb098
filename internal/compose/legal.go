package compose

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/ArtieFishal/lastwish/internal/assets"
)

// ErrTemplate indicates a legal text failed to parse or execute.
var ErrTemplate = errors.New("legal text template error")

// blank stands in for missing names inside legal wording so the printed
// document leaves room to write them by hand.
const blank = "____________________"

// Texts holds the text/template sources of the legal wording.
type Texts struct {
	Disclaimer   string
	Notarization string
	Instructions string // used when no instructions were supplied
}

// LoadTexts reads every legal text from loader.
func LoadTexts(loader assets.TextLoader) (Texts, error) {
	var t Texts
	for _, item := range []struct {
		name string
		dst  *string
	}{
		{assets.Disclaimer, &t.Disclaimer},
		{assets.Notarization, &t.Notarization},
		{assets.Instructions, &t.Instructions},
	} {
		text, err := loader.LoadText(item.name)
		if err != nil {
			return Texts{}, fmt.Errorf("loading %s text: %w", item.name, err)
		}
		*item.dst = text
	}
	return t, nil
}

// LegalData is the data legal templates are executed with.
type LegalData struct {
	OwnerName    string
	ExecutorName string
	State        string
	County       string
	Date         string
	DocumentID   string
}

func legalData(doc *Document) LegalData {
	orBlank := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return blank
		}
		return s
	}
	return LegalData{
		OwnerName:    orBlank(doc.Owner.Name),
		ExecutorName: orBlank(doc.Executor.Name),
		State:        orBlank(doc.Jurisdiction.State),
		County:       orBlank(doc.Jurisdiction.County),
		Date:         doc.GeneratedAt,
		DocumentID:   doc.ID,
	}
}

// renderText executes a legal template and splits the result into
// paragraphs.
func renderText(name, src string, data LegalData) ([]string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplate, name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("%w: executing %s: %v", ErrTemplate, name, err)
	}
	return splitLines(b.String()), nil
}

// splitLines returns the non-blank lines of s, trimmed.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
