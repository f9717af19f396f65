// Package compiler renders the processed field of stored notes.
package compiler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/czechplus-backend/internal/config"
	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

type noteRepo interface {
	ListByNoteTypes(ctx context.Context, noteTypes []string) ([]domain.Note, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Note, error)
	UpdateField(ctx context.Context, id uuid.UUID, field, value string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type noteProcessor interface {
	ProcessNote(note domain.Note) (field, value string, err error)
	NoteTypes() []string
}

// Service compiles notes in batches or one by one.
type Service struct {
	notes   noteRepo
	tx      txManager
	proc    noteProcessor
	workers int
	dryRun  bool
	log     *slog.Logger
}

// NewService creates a new compiler service.
func NewService(
	log *slog.Logger,
	notes noteRepo,
	tx txManager,
	proc noteProcessor,
	cfg config.CompilerConfig,
) *Service {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Service{
		notes:   notes,
		tx:      tx,
		proc:    proc,
		workers: workers,
		dryRun:  cfg.DryRun,
		log:     log.With("service", "compiler"),
	}
}
