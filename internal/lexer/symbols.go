package lexer

import (
	"fmt"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// Symbols is the symbol table of one category. A zero rune disables the
// optional symbols (AdditionalSeparator, FutureFormStart, FutureFormEnd).
type Symbols struct {
	Separator           rune
	AdditionalSeparator rune
	Escape              rune
	WordEscape          rune
	Skip                rune
	FutureFormStart     rune
	FutureFormEnd       rune
}

// DefaultSymbols returns the built-in symbol table for a category.
// Verbs separate words with "." and the preposition/case pairs of one word
// with ",", and bracket future forms with "[" and "]".
func DefaultSymbols(c domain.Category) Symbols {
	s := Symbols{
		Separator:  ',',
		Escape:     '\\',
		WordEscape: '!',
		Skip:       '_',
	}
	if c == domain.CategoryVerb {
		s.Separator = '.'
		s.AdditionalSeparator = ','
		s.FutureFormStart = '['
		s.FutureFormEnd = ']'
	}
	return s
}

// HasFutureForm reports whether future-form brackets are enabled.
func (s Symbols) HasFutureForm() bool {
	return s.FutureFormStart != 0 && s.FutureFormEnd != 0
}

// Validate checks that the mandatory symbols are set, that future-form
// brackets come in pairs and that no rune is bound twice.
func (s Symbols) Validate() error {
	var errs []domain.FieldError

	required := []struct {
		name string
		r    rune
	}{
		{"separator", s.Separator},
		{"escape", s.Escape},
		{"word_escape", s.WordEscape},
		{"skip", s.Skip},
	}
	for _, f := range required {
		if f.r == 0 {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "required"})
		}
	}

	if (s.FutureFormStart == 0) != (s.FutureFormEnd == 0) {
		errs = append(errs, domain.FieldError{Field: "future_form", Message: "start and end must be set together"})
	}

	seen := make(map[rune]string)
	for _, b := range s.bindings() {
		if prev, ok := seen[b.r]; ok {
			errs = append(errs, domain.FieldError{
				Field:   b.name,
				Message: fmt.Sprintf("symbol %q already used by %s", b.r, prev),
			})
			continue
		}
		seen[b.r] = b.name
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

type handler int

const (
	handleEscapeOne handler = iota + 1
	handleEscapeWord
	handleSeparator
	handleAdditionalSeparator
	handleSkip
	handleFutureFormStart
	handleFutureFormEnd
)

type binding struct {
	name string
	r    rune
	h    handler
}

func (s Symbols) bindings() []binding {
	all := []binding{
		{"escape", s.Escape, handleEscapeOne},
		{"word_escape", s.WordEscape, handleEscapeWord},
		{"separator", s.Separator, handleSeparator},
		{"additional_separator", s.AdditionalSeparator, handleAdditionalSeparator},
		{"skip", s.Skip, handleSkip},
		{"future_form_start", s.FutureFormStart, handleFutureFormStart},
		{"future_form_end", s.FutureFormEnd, handleFutureFormEnd},
	}
	out := all[:0]
	for _, b := range all {
		if b.r != 0 {
			out = append(out, b)
		}
	}
	return out
}

// table resolves the symbol table into a rune -> handler lookup.
func (s Symbols) table() map[rune]handler {
	t := make(map[rune]handler, 7)
	for _, b := range s.bindings() {
		t[b.r] = b.h
	}
	return t
}
