package processor

import (
	"strings"

	"github.com/heartmarshall/czechplus-backend/internal/lexer"
)

// renderWord merges one primary word with its annotation text.
type renderWord func(word, annotation string) (string, error)

// alignWords walks the annotation stream item by item against the primary
// stream at the same position. Both streams must have the same shape:
// separators face separators, and every annotation text or skip faces a word.
func alignWords(primary, annotation []lexer.Item, render renderWord) (string, error) {
	var sb strings.Builder

	for i, a := range annotation {
		if i >= len(primary) {
			return "", malformed("annotation item %d (%s) has no primary counterpart", i, a)
		}
		p := primary[i]

		switch {
		case a.Is(lexer.KindSeparator) && p.Is(lexer.KindSeparator):
			sb.WriteString(", ")
		case a.Is(lexer.KindSkip) && p.Is(lexer.KindText):
			sb.WriteString(strings.TrimSpace(p.Text))
		case a.Is(lexer.KindText) && p.Is(lexer.KindText):
			out, err := render(strings.TrimSpace(p.Text), strings.TrimSpace(a.Text))
			if err != nil {
				return "", err
			}
			sb.WriteString(out)
		default:
			return "", malformed("item %d: annotation %s does not match primary %s", i, a, p)
		}
	}

	if len(primary) > len(annotation) {
		return "", malformed("primary has %d items, annotation only %d", len(primary), len(annotation))
	}

	return sb.String(), nil
}
