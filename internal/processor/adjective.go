package processor

import "log/slog"

// Adjective appends the comparison-degree completion of every word in
// parentheses: "dobrý" + "lepší" renders "dobrý (lepší)". A comma inside one
// completion has to be escaped ("\,").
type Adjective struct {
	base
}

// NewAdjective creates an adjective processor.
func NewAdjective(log *slog.Logger, spec CardSpec) *Adjective {
	return &Adjective{base: newBase(log, spec)}
}

func (a *Adjective) Process(fields map[string]string) (string, error) {
	primaryRaw, annotationRaw, done, err := a.inputs(fields)
	if err != nil || done {
		return primaryRaw, err
	}

	primary, err := a.lex(a.spec.Primary, primaryRaw, false)
	if err != nil {
		return "", err
	}
	annotation, err := a.lex(a.spec.Annotation, annotationRaw, false)
	if err != nil {
		return "", err
	}

	return alignWords(primary, annotation, func(word, degrees string) (string, error) {
		return word + " (" + degrees + ")", nil
	})
}
