package compiler

import (
	"context"
	"fmt"
	"log/slog"
)

// CompileNote renders and stores the processed field of one note. The note
// row stays locked from read to write.
func (s *Service) CompileNote(ctx context.Context, input CompileNoteInput) (*NoteResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *NoteResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.notes.GetByIDForUpdate(ctx, input.NoteID)
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}

		field, value, err := s.proc.ProcessNote(n)
		if err != nil {
			return fmt.Errorf("note %s: %w", n.ID, err)
		}

		result = &NoteResult{NoteID: n.ID, Field: field, Value: value}
		if current, ok := n.Field(field); ok && current == value {
			return nil
		}
		result.Changed = true

		if input.DryRun || s.dryRun {
			return nil
		}
		if err := s.notes.UpdateField(ctx, n.ID, field, value); err != nil {
			return fmt.Errorf("update note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "note compiled",
		slog.String("note_id", result.NoteID.String()),
		slog.Bool("changed", result.Changed),
	)
	return result, nil
}
