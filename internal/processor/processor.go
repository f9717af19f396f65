// Package processor renders the processed field of a card from its primary
// field and its grammatical annotation field.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
	"github.com/heartmarshall/czechplus-backend/internal/lexer"
)

// Processor renders the processed field of one note from its raw fields.
// Implementations are stateless and safe for concurrent use.
type Processor interface {
	Process(fields map[string]string) (string, error)
}

// CardSpec describes how one card kind is stored and lexed.
type CardSpec struct {
	Kind       string
	Category   domain.Category
	NoteType   string
	Primary    string
	Annotation string
	Processed  string
	Symbols    lexer.Symbols
}

// base holds what every category processor shares: the card spec and the
// field lookup with its empty-annotation short circuit.
type base struct {
	spec CardSpec
	log  *slog.Logger
}

func newBase(log *slog.Logger, spec CardSpec) base {
	return base{
		spec: spec,
		log:  log.With("processor", strings.ToLower(spec.Category.String()), "note_type", spec.NoteType),
	}
}

// inputs returns the raw primary and annotation values. done is true when the
// annotation is blank and the primary value is the final result.
func (b base) inputs(fields map[string]string) (primary, annotation string, done bool, err error) {
	primary, ok := fields[b.spec.Primary]
	if !ok {
		return "", "", false, fmt.Errorf("%w: %q", domain.ErrMissingField, b.spec.Primary)
	}
	annotation, ok = fields[b.spec.Annotation]
	if !ok {
		return "", "", false, fmt.Errorf("%w: %q", domain.ErrMissingField, b.spec.Annotation)
	}

	if strings.TrimSpace(annotation) == "" {
		b.log.Info("annotation field is empty, primary value kept",
			slog.String("field", b.spec.Annotation))
		return primary, "", true, nil
	}
	return primary, annotation, false, nil
}

// lex lexes and normalizes one field value.
func (b base) lex(field, raw string, preserveEscaped bool) ([]lexer.Item, error) {
	items, err := lexer.LexNormalized(b.spec.Symbols, raw, preserveEscaped)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}
	if b.log.Enabled(context.Background(), slog.LevelDebug) {
		b.log.Debug("field lexed", slog.String("field", field), slog.String("items", lexer.Format(items)))
	}
	return items, nil
}

// withField binds an invalid-value error to the annotation field name.
func (b base) withField(err error) error {
	var ive *domain.InvalidValueError
	if errors.As(err, &ive) {
		return ive.WithField(b.spec.Annotation)
	}
	return err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedAnnotation, fmt.Sprintf(format, args...))
}
