package compiler

import (
	"context"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// Preview renders the processed field for fields that are not stored.
func (s *Service) Preview(_ context.Context, input PreviewInput) (*PreviewResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	field, value, err := s.proc.ProcessNote(domain.Note{NoteType: input.NoteType, Fields: input.Fields})
	if err != nil {
		return nil, err
	}
	return &PreviewResult{Field: field, Value: value}, nil
}
