package processor

import (
	"log/slog"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// Noun prefixes every word with the demonstrative article of its gender:
// "pes" + "M" renders "ten pes".
type Noun struct {
	base
}

// NewNoun creates a noun processor.
func NewNoun(log *slog.Logger, spec CardSpec) *Noun {
	return &Noun{base: newBase(log, spec)}
}

func (n *Noun) Process(fields map[string]string) (string, error) {
	primaryRaw, annotationRaw, done, err := n.inputs(fields)
	if err != nil || done {
		return primaryRaw, err
	}

	primary, err := n.lex(n.spec.Primary, primaryRaw, false)
	if err != nil {
		return "", err
	}
	annotation, err := n.lex(n.spec.Annotation, annotationRaw, false)
	if err != nil {
		return "", err
	}

	return alignWords(primary, annotation, func(word, code string) (string, error) {
		g, err := domain.ParseGender(code)
		if err != nil {
			return "", n.withField(err)
		}
		return g.Article() + " " + word, nil
	})
}
