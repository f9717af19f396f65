package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

type outcome int

const (
	outcomeCompiled outcome = iota
	outcomeUnchanged
	outcomeFailed
)

// CompileAll renders and stores the processed field of every note of the
// selected note types. A note that fails is reported in Result.Failures and
// does not stop the batch; only listing errors and cancellation abort it.
func (s *Service) CompileAll(ctx context.Context, input CompileAllInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	noteTypes, err := s.selectNoteTypes(input.NoteTypes)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByNoteTypes(ctx, noteTypes)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	result := &Result{Total: len(notes), DryRun: input.DryRun || s.dryRun}
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, n := range notes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := s.compile(gctx, n, result.DryRun)
			if out == outcomeFailed && isCanceled(gctx, err) {
				return gctx.Err()
			}

			mu.Lock()
			defer mu.Unlock()
			switch out {
			case outcomeCompiled:
				result.Compiled++
			case outcomeUnchanged:
				result.Unchanged++
			case outcomeFailed:
				result.Failures = append(result.Failures, Failure{NoteID: n.ID, NoteType: n.NoteType, Err: err})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compile notes: %w", err)
	}
	// The last goroutines may finish after cancellation without reporting it.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compile notes: %w", err)
	}

	s.log.InfoContext(ctx, "notes compiled",
		slog.Int("total", result.Total),
		slog.Int("compiled", result.Compiled),
		slog.Int("unchanged", result.Unchanged),
		slog.Int("failed", len(result.Failures)),
		slog.Bool("dry_run", result.DryRun),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// compile renders one note and writes the result when it differs from the
// stored value.
func (s *Service) compile(ctx context.Context, n domain.Note, dryRun bool) (outcome, error) {
	field, value, err := s.proc.ProcessNote(n)
	if err != nil {
		s.log.WarnContext(ctx, "note not compiled",
			slog.String("note_id", n.ID.String()),
			slog.String("note_type", n.NoteType),
			slog.String("error", err.Error()),
		)
		return outcomeFailed, err
	}

	if current, ok := n.Field(field); ok && current == value {
		return outcomeUnchanged, nil
	}
	if dryRun {
		s.log.DebugContext(ctx, "dry run",
			slog.String("note_id", n.ID.String()),
			slog.String("field", field),
			slog.String("value", value),
		)
		return outcomeCompiled, nil
	}

	if err := s.notes.UpdateField(ctx, n.ID, field, value); err != nil {
		s.log.ErrorContext(ctx, "store processed field",
			slog.String("note_id", n.ID.String()),
			slog.String("error", err.Error()),
		)
		return outcomeFailed, fmt.Errorf("update note: %w", err)
	}
	return outcomeCompiled, nil
}

// isCanceled reports whether err comes from the batch context rather than
// from the note itself.
func isCanceled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// selectNoteTypes returns requested, or every registered note type when
// requested is empty.
func (s *Service) selectNoteTypes(requested []string) ([]string, error) {
	registered := s.proc.NoteTypes()
	if len(requested) == 0 {
		return registered, nil
	}

	known := make(map[string]bool, len(registered))
	for _, nt := range registered {
		known[nt] = true
	}
	for _, nt := range requested {
		if !known[nt] {
			return nil, fmt.Errorf("%w: note type %q", domain.ErrUnknownCategory, nt)
		}
	}
	return requested, nil
}
