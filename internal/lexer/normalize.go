package lexer

import "strings"

// Normalize merges adjacent text runs and, unless preserveEscaped is set,
// folds escaped content into the surrounding text. Every other item is
// passed through with the pending text flushed right before it, so the order
// of the stream is kept. Items between future-form markers go through the
// same pass with the same flag. Normalize is idempotent.
func Normalize(items []Item, preserveEscaped bool) []Item {
	out := make([]Item, 0, len(items))

	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, Text(text.String()))
			text.Reset()
		}
	}

	for _, it := range items {
		switch it.Kind {
		case KindText:
			text.WriteString(it.Text)
		case KindEscaped:
			if preserveEscaped {
				flush()
				out = append(out, it)
				continue
			}
			text.WriteString(it.Text)
		default:
			flush()
			out = append(out, it)
		}
	}
	flush()

	return out
}

// LexNormalized lexes raw and normalizes the result.
func LexNormalized(syms Symbols, raw string, preserveEscaped bool) ([]Item, error) {
	items, err := Lex(syms, raw)
	if err != nil {
		return nil, err
	}
	return Normalize(items, preserveEscaped), nil
}
