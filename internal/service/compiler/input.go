package compiler

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// CompileAllInput selects the notes of a batch run.
type CompileAllInput struct {
	// NoteTypes restricts the run to these note types. Empty means every
	// registered note type.
	NoteTypes []string
	// DryRun renders without writing. The service-level setting also enables it.
	DryRun bool
}

// Validate checks all fields and collects all errors.
func (i CompileAllInput) Validate() error {
	var errs []domain.FieldError
	seen := make(map[string]bool, len(i.NoteTypes))
	for idx, nt := range i.NoteTypes {
		field := fmt.Sprintf("note_types[%d]", idx)
		switch {
		case strings.TrimSpace(nt) == "":
			errs = append(errs, domain.FieldError{Field: field, Message: "required"})
		case seen[nt]:
			errs = append(errs, domain.FieldError{Field: field, Message: "duplicate"})
		}
		seen[nt] = true
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CompileNoteInput identifies a single stored note.
type CompileNoteInput struct {
	NoteID uuid.UUID
	DryRun bool
}

// Validate checks all fields and collects all errors.
func (i CompileNoteInput) Validate() error {
	if i.NoteID == uuid.Nil {
		return domain.NewValidationError("note_id", "required")
	}
	return nil
}

// PreviewInput holds the raw fields of a note that is not stored.
type PreviewInput struct {
	NoteType string
	Fields   map[string]string
}

// Validate checks all fields and collects all errors.
func (i PreviewInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.NoteType) == "" {
		errs = append(errs, domain.FieldError{Field: "note_type", Message: "required"})
	}
	if len(i.Fields) == 0 {
		errs = append(errs, domain.FieldError{Field: "fields", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
