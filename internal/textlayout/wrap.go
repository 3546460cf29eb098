package textlayout

import "strings"

// Measurer returns the rendered width of s in the current font.
type Measurer func(s string) float64

// Wrap breaks text into lines no wider than width.
//
// Words are accumulated greedily: when appending the next word would exceed
// width, the current line is flushed and the word starts a new one. A single
// word wider than width is split at rune boundaries.
func Wrap(text string, width float64, measure Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current string
	for _, word := range words {
		if measure(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			pieces := splitWord(word, width, measure)
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}

		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if measure(candidate) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitWord cuts an over-long word into width-bounded pieces. Every piece
// holds at least one rune so the loop always advances.
func splitWord(word string, width float64, measure Measurer) []string {
	var pieces []string
	var b strings.Builder
	for _, r := range word {
		if b.Len() > 0 && measure(b.String()+string(r)) > width {
			pieces = append(pieces, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		pieces = append(pieces, b.String())
	}
	return pieces
}
