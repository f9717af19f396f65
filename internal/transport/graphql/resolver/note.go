package resolver

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
	"github.com/heartmarshall/czechplus-backend/internal/service/compiler"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/model"
)

// Preview renders the processed field of fields that are not stored. A field
// sent twice keeps its last value.
func (r *queryResolver) Preview(ctx context.Context, noteType string, fields []model.FieldInput) (*model.Preview, error) {
	input := compiler.PreviewInput{NoteType: noteType, Fields: make(map[string]string, len(fields))}
	for _, f := range fields {
		input.Fields[f.Name] = f.Value
	}

	res, err := r.compiler.Preview(ctx, input)
	if err != nil {
		return nil, err
	}
	return &model.Preview{Field: res.Field, Processed: res.Value}, nil
}

// Note loads a stored note through the request's dataloader.
func (r *queryResolver) Note(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	n, err := dataloader.FromContext(ctx).NoteByID.Load(ctx, id)()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	return toNote(n), nil
}

func (r *queryResolver) NoteTypes(_ context.Context) ([]string, error) {
	return r.noteTypes, nil
}

func (r *mutationResolver) CompileNote(ctx context.Context, id uuid.UUID, dryRun bool) (*model.NoteResult, error) {
	res, err := r.compiler.CompileNote(ctx, compiler.CompileNoteInput{NoteID: id, DryRun: dryRun})
	if err != nil {
		return nil, err
	}
	return &model.NoteResult{
		NoteID:    res.NoteID,
		Field:     res.Field,
		Processed: res.Value,
		Changed:   res.Changed,
	}, nil
}

// CompileAll runs a batch. Failed notes are listed in the result; the
// mutation itself still succeeds.
func (r *mutationResolver) CompileAll(ctx context.Context, noteTypes []string, dryRun bool) (*model.CompileAllResult, error) {
	res, err := r.compiler.CompileAll(ctx, compiler.CompileAllInput{NoteTypes: noteTypes, DryRun: dryRun})
	if err != nil {
		return nil, err
	}

	out := &model.CompileAllResult{
		Total:     res.Total,
		Compiled:  res.Compiled,
		Unchanged: res.Unchanged,
		DryRun:    res.DryRun,
		Failures:  make([]model.Failure, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, model.Failure{NoteID: f.NoteID, NoteType: f.NoteType, Error: f.Err.Error()})
	}
	if res.Failed() {
		r.log.WarnContext(ctx, "batch finished with failures", slog.Int("failed", len(res.Failures)))
	}
	return out, nil
}

// toNote converts a note with its fields sorted by name.
func toNote(n *domain.Note) *model.Note {
	names := make([]string, 0, len(n.Fields))
	for name := range n.Fields {
		names = append(names, name)
	}
	slices.Sort(names)

	fields := make([]model.Field, len(names))
	for i, name := range names {
		fields[i] = model.Field{Name: name, Value: n.Fields[name]}
	}
	return &model.Note{ID: n.ID, NoteType: n.NoteType, Fields: fields, UpdatedAt: n.UpdatedAt}
}
