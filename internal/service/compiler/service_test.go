package compiler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/czechplus-backend/internal/config"
	"github.com/heartmarshall/czechplus-backend/internal/domain"
	"github.com/heartmarshall/czechplus-backend/internal/processor"
)

// newTestService creates a Service with the default card registry and a
// discard logger.
func newTestService(t *testing.T, repo *noteRepoMock, tx *txManagerMock, cfg config.CompilerConfig) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := processor.NewRegistry(log, config.DefaultCards())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewService(log, repo, tx, reg, cfg)
}

func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func noun(word, gender string) domain.Note {
	return domain.Note{ID: uuid.New(), NoteType: "nouns", Fields: map[string]string{"czech": word, "gender": gender}}
}

// ---------------------------------------------------------------------------
// CompileAll Tests
// ---------------------------------------------------------------------------

func TestCompileAll_Success(t *testing.T) {
	t.Parallel()

	notes := []domain.Note{
		noun("pes", "M"),
		noun("kočka", "F"),
		{ID: uuid.New(), NoteType: "verbs", Fields: map[string]string{"czech": "jít", "pac": "na 4"}},
		{ID: uuid.New(), NoteType: "adjectives", Fields: map[string]string{"czech": "dobrý", "cocd": "lepší"}},
	}

	var mu sync.Mutex
	written := make(map[uuid.UUID]string)
	repo := &noteRepoMock{
		ListByNoteTypesFunc: func(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
			return notes, nil
		},
		UpdateFieldFunc: func(ctx context.Context, id uuid.UUID, field, value string) error {
			if field != "processed" {
				t.Errorf("field: got %q, want %q", field, "processed")
			}
			mu.Lock()
			written[id] = value
			mu.Unlock()
			return nil
		},
	}

	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 2})
	result, err := svc.CompileAll(context.Background(), CompileAllInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 4 || result.Compiled != 4 || result.Unchanged != 0 || result.Failed() {
		t.Errorf("result: got %+v", result)
	}

	want := map[uuid.UUID]string{
		notes[0].ID: "ten pes",
		notes[1].ID: "ta kočka",
		notes[2].ID: "jít (na koho? co?)",
		notes[3].ID: "dobrý (lepší)",
	}
	for id, v := range want {
		if written[id] != v {
			t.Errorf("note %s: got %q, want %q", id, written[id], v)
		}
	}

	calls := repo.ListByNoteTypesCalls()
	if len(calls) != 1 || len(calls[0].NoteTypes) != 3 {
		t.Errorf("ListByNoteTypes calls: got %+v, want all three note types", calls)
	}
}

func TestCompileAll_SkipsUnchanged(t *testing.T) {
	t.Parallel()

	n := noun("pes", "M")
	n.Fields["processed"] = "ten pes"

	repo := &noteRepoMock{
		ListByNoteTypesFunc: func(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
			return []domain.Note{n}, nil
		},
		UpdateFieldFunc: func(ctx context.Context, id uuid.UUID, field, value string) error {
			t.Error("UpdateField must not be called for an unchanged note")
			return nil
		},
	}

	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})
	result, err := svc.CompileAll(context.Background(), CompileAllInput{NoteTypes: []string{"nouns"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Unchanged != 1 || result.Compiled != 0 {
		t.Errorf("result: got %+v", result)
	}
}

func TestCompileAll_IsolatesFailures(t *testing.T) {
	t.Parallel()

	good := noun("pes", "M")
	badGender := noun("pes", "X")
	missing := domain.Note{ID: uuid.New(), NoteType: "nouns", Fields: map[string]string{"czech": "pes"}}
	storeFails := noun("kočka", "F")
	storeErr := errors.New("connection reset")

	repo := &noteRepoMock{
		ListByNoteTypesFunc: func(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
			return []domain.Note{good, badGender, missing, storeFails}, nil
		},
		UpdateFieldFunc: func(ctx context.Context, id uuid.UUID, field, value string) error {
			if id == storeFails.ID {
				return storeErr
			}
			return nil
		},
	}

	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 4})
	result, err := svc.CompileAll(context.Background(), CompileAllInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Compiled != 1 {
		t.Errorf("compiled: got %d, want 1", result.Compiled)
	}
	if len(result.Failures) != 3 {
		t.Fatalf("failures: got %d, want 3", len(result.Failures))
	}

	byID := make(map[uuid.UUID]error)
	for _, f := range result.Failures {
		byID[f.NoteID] = f.Err
	}
	if !errors.Is(byID[badGender.ID], domain.ErrInvalidGender) {
		t.Errorf("bad gender: got %v", byID[badGender.ID])
	}
	if !errors.Is(byID[missing.ID], domain.ErrMissingField) {
		t.Errorf("missing field: got %v", byID[missing.ID])
	}
	if !errors.Is(byID[storeFails.ID], storeErr) {
		t.Errorf("store failure: got %v", byID[storeFails.ID])
	}
}

func TestCompileAll_DryRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfgDry   bool
		inputDry bool
	}{
		{name: "from input", inputDry: true},
		{name: "from config", cfgDry: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &noteRepoMock{
				ListByNoteTypesFunc: func(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
					return []domain.Note{noun("pes", "M")}, nil
				},
			}
			svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1, DryRun: tt.cfgDry})

			result, err := svc.CompileAll(context.Background(), CompileAllInput{DryRun: tt.inputDry})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.DryRun || result.Compiled != 1 {
				t.Errorf("result: got %+v", result)
			}
			if len(repo.UpdateFieldCalls()) != 0 {
				t.Error("UpdateField must not be called in a dry run")
			}
		})
	}
}

func TestCompileAll_UnknownNoteType(t *testing.T) {
	t.Parallel()

	repo := &noteRepoMock{}
	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})

	_, err := svc.CompileAll(context.Background(), CompileAllInput{NoteTypes: []string{"phrases"}})
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got: %v", err)
	}
	if len(repo.ListByNoteTypesCalls()) != 0 {
		t.Error("ListByNoteTypes must not be called")
	}
}

func TestCompileAll_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &noteRepoMock{}, passthroughTx(), config.CompilerConfig{Workers: 1})

	_, err := svc.CompileAll(context.Background(), CompileAllInput{NoteTypes: []string{"nouns", "nouns", " "}})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if len(ve.Errors) != 2 {
		t.Errorf("field errors: got %+v, want 2", ve.Errors)
	}
}

func TestCompileAll_ListError(t *testing.T) {
	t.Parallel()

	listErr := errors.New("db down")
	repo := &noteRepoMock{
		ListByNoteTypesFunc: func(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
			return nil, listErr
		},
	}
	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})

	_, err := svc.CompileAll(context.Background(), CompileAllInput{})
	if !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got: %v", err)
	}
}

func TestCompileAll_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &noteRepoMock{
		ListByNoteTypesFunc: func(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
			return []domain.Note{noun("pes", "M")}, nil
		},
		UpdateFieldFunc: func(ctx context.Context, id uuid.UUID, field, value string) error {
			return nil
		},
	}
	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})

	_, err := svc.CompileAll(ctx, CompileAllInput{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestCompileAll_CanceledDuringLastNote(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &noteRepoMock{
		ListByNoteTypesFunc: func(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
			return []domain.Note{noun("pes", "M"), noun("kočka", "F")}, nil
		},
		UpdateFieldFunc: func(ctx context.Context, id uuid.UUID, field, value string) error {
			cancel()
			return ctx.Err()
		},
	}
	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})

	result, err := svc.CompileAll(ctx, CompileAllInput{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got: %+v", result)
	}
}

// ---------------------------------------------------------------------------
// CompileNote Tests
// ---------------------------------------------------------------------------

func TestCompileNote_Success(t *testing.T) {
	t.Parallel()

	n := domain.Note{ID: uuid.New(), NoteType: "verbs", Fields: map[string]string{"czech": "mluvit", "pac": "s 7, o 6"}}
	repo := &noteRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (domain.Note, error) {
			return n, nil
		},
		UpdateFieldFunc: func(ctx context.Context, id uuid.UUID, field, value string) error {
			return nil
		},
	}
	tx := passthroughTx()
	svc := newTestService(t, repo, tx, config.CompilerConfig{Workers: 1})

	result, err := svc.CompileNote(context.Background(), CompileNoteInput{NoteID: n.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Changed || result.Value != "mluvit (s kým? čím?, o kom? čem?)" {
		t.Errorf("result: got %+v", result)
	}
	if len(tx.RunInTxCalls()) != 1 {
		t.Errorf("RunInTx calls: got %d, want 1", len(tx.RunInTxCalls()))
	}
	calls := repo.UpdateFieldCalls()
	if len(calls) != 1 || calls[0].ID != n.ID || calls[0].Value != result.Value {
		t.Errorf("UpdateField calls: got %+v", calls)
	}
}

func TestCompileNote_Unchanged(t *testing.T) {
	t.Parallel()

	n := noun("pes", "M")
	n.Fields["processed"] = "ten pes"
	repo := &noteRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (domain.Note, error) {
			return n, nil
		},
	}
	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})

	result, err := svc.CompileNote(context.Background(), CompileNoteInput{NoteID: n.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed {
		t.Error("expected unchanged result")
	}
}

func TestCompileNote_DryRun(t *testing.T) {
	t.Parallel()

	n := noun("kuře", "N")
	repo := &noteRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (domain.Note, error) {
			return n, nil
		},
	}
	svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})

	result, err := svc.CompileNote(context.Background(), CompileNoteInput{NoteID: n.ID, DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Changed || result.Value != "to kuře" {
		t.Errorf("result: got %+v", result)
	}
}

func TestCompileNote_Errors(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name    string
		input   CompileNoteInput
		note    domain.Note
		getErr  error
		wantErr error
	}{
		{name: "nil id", input: CompileNoteInput{}, wantErr: domain.ErrValidation},
		{name: "not found", input: CompileNoteInput{NoteID: id}, getErr: domain.ErrNotFound, wantErr: domain.ErrNotFound},
		{
			name:    "unknown note type",
			input:   CompileNoteInput{NoteID: id},
			note:    domain.Note{ID: id, NoteType: "phrases", Fields: map[string]string{}},
			wantErr: domain.ErrUnknownCategory,
		},
		{
			name:    "malformed annotation",
			input:   CompileNoteInput{NoteID: id},
			note:    domain.Note{ID: id, NoteType: "adjectives", Fields: map[string]string{"czech": "dobrý", "cocd": "lepší, horší"}},
			wantErr: domain.ErrMalformedAnnotation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &noteRepoMock{
				GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (domain.Note, error) {
					return tt.note, tt.getErr
				},
			}
			svc := newTestService(t, repo, passthroughTx(), config.CompilerConfig{Workers: 1})

			_, err := svc.CompileNote(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got: %v", tt.wantErr, err)
			}
			if len(repo.UpdateFieldCalls()) != 0 {
				t.Error("UpdateField must not be called")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Preview Tests
// ---------------------------------------------------------------------------

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   PreviewInput
		want    string
		wantErr error
	}{
		{
			name:  "noun",
			input: PreviewInput{NoteType: "nouns", Fields: map[string]string{"czech": "pes, kočka", "gender": "M, F"}},
			want:  "ten pes, ta kočka",
		},
		{
			name:  "empty annotation keeps primary",
			input: PreviewInput{NoteType: "verbs", Fields: map[string]string{"czech": "jít", "pac": " "}},
			want:  "jít",
		},
		{name: "missing note type", input: PreviewInput{Fields: map[string]string{"czech": "pes"}}, wantErr: domain.ErrValidation},
		{name: "missing fields", input: PreviewInput{NoteType: "nouns"}, wantErr: domain.ErrValidation},
		{
			name:    "unknown note type",
			input:   PreviewInput{NoteType: "phrases", Fields: map[string]string{"czech": "ahoj"}},
			wantErr: domain.ErrUnknownCategory,
		},
		{
			name:    "invalid case",
			input:   PreviewInput{NoteType: "verbs", Fields: map[string]string{"czech": "jít", "pac": "na 9"}},
			wantErr: domain.ErrInvalidCase,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, &noteRepoMock{}, passthroughTx(), config.CompilerConfig{Workers: 1})
			got, err := svc.Preview(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Field != "processed" || got.Value != tt.want {
				t.Errorf("got %+v, want value %q", got, tt.want)
			}
		})
	}
}
