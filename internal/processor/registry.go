package processor

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/czechplus-backend/internal/config"
	"github.com/heartmarshall/czechplus-backend/internal/domain"
	"github.com/heartmarshall/czechplus-backend/internal/lexer"
)

type registered struct {
	proc Processor
	spec CardSpec
}

// Registry selects the processor of a note by its note type name.
type Registry struct {
	byNoteType map[string]registered
	noteTypes  []string
}

// NewRegistry builds one processor per configured card kind. The config must
// have been validated; symbol overrides are checked here against the
// built-in symbols of each kind.
func NewRegistry(log *slog.Logger, cfg config.CardsConfig) (*Registry, error) {
	kinds := []struct {
		name     string
		category domain.Category
		card     config.CardConfig
		build    func(*slog.Logger, CardSpec) Processor
	}{
		{"nouns", domain.CategoryNoun, cfg.Nouns, func(l *slog.Logger, s CardSpec) Processor { return NewNoun(l, s) }},
		{"verbs", domain.CategoryVerb, cfg.Verbs, func(l *slog.Logger, s CardSpec) Processor { return NewVerb(l, s) }},
		{"adjectives", domain.CategoryAdjective, cfg.Adjectives, func(l *slog.Logger, s CardSpec) Processor { return NewAdjective(l, s) }},
	}

	r := &Registry{byNoteType: make(map[string]registered, len(kinds))}
	for _, k := range kinds {
		syms := symbolsFor(k.category, k.card.Symbols)
		if err := syms.Validate(); err != nil {
			return nil, fmt.Errorf("processor: %s symbols: %w", k.name, err)
		}
		if _, dup := r.byNoteType[k.card.NoteTypeName]; dup {
			return nil, fmt.Errorf("processor: note type %q registered twice", k.card.NoteTypeName)
		}

		spec := CardSpec{
			Kind:       k.name,
			Category:   k.category,
			NoteType:   k.card.NoteTypeName,
			Primary:    k.card.Fields.Primary,
			Annotation: k.card.Fields.Annotation,
			Processed:  k.card.Fields.Processed,
			Symbols:    syms,
		}
		r.byNoteType[spec.NoteType] = registered{proc: k.build(log, spec), spec: spec}
		r.noteTypes = append(r.noteTypes, spec.NoteType)
	}
	return r, nil
}

func symbolsFor(c domain.Category, o config.SymbolsConfig) lexer.Symbols {
	s := lexer.DefaultSymbols(c)
	s.Separator = config.Rune(o.Separator, s.Separator)
	s.AdditionalSeparator = config.Rune(o.AdditionalSeparator, s.AdditionalSeparator)
	s.Escape = config.Rune(o.Escape, s.Escape)
	s.WordEscape = config.Rune(o.WordEscape, s.WordEscape)
	s.Skip = config.Rune(o.Skip, s.Skip)
	s.FutureFormStart = config.Rune(o.FutureFormStart, s.FutureFormStart)
	s.FutureFormEnd = config.Rune(o.FutureFormEnd, s.FutureFormEnd)
	return s
}

// ForNoteType returns the processor and card spec registered for a note type.
func (r *Registry) ForNoteType(noteType string) (Processor, CardSpec, error) {
	reg, ok := r.byNoteType[noteType]
	if !ok {
		return nil, CardSpec{}, fmt.Errorf("%w: note type %q", domain.ErrUnknownCategory, noteType)
	}
	return reg.proc, reg.spec, nil
}

// NoteTypes returns the registered note type names in kind order.
func (r *Registry) NoteTypes() []string {
	out := make([]string, len(r.noteTypes))
	copy(out, r.noteTypes)
	return out
}

// ProcessNote renders the processed field of a note and returns it together
// with the name of the field it belongs to.
func (r *Registry) ProcessNote(note domain.Note) (field, value string, err error) {
	proc, spec, err := r.ForNoteType(note.NoteType)
	if err != nil {
		return "", "", err
	}
	value, err = proc.Process(note.Fields)
	if err != nil {
		return "", "", err
	}
	return spec.Processed, value, nil
}
