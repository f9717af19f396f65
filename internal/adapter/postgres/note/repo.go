// Package note implements the note repository using PostgreSQL. Note fields
// are stored as one jsonb object keyed by field name.
package note

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/czechplus-backend/internal/adapter/postgres"
	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

const table = "notes"

var (
	psql    = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns = []string{"id", "note_type", "fields", "created_at", "updated_at"}
)

type noteRow struct {
	ID        uuid.UUID `db:"id"`
	NoteType  string    `db:"note_type"`
	Fields    []byte    `db:"fields"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r noteRow) toDomain() (domain.Note, error) {
	fields := make(map[string]string)
	if len(r.Fields) > 0 {
		if err := json.Unmarshal(r.Fields, &fields); err != nil {
			return domain.Note{}, fmt.Errorf("note %s: decode fields: %w", r.ID, err)
		}
	}
	return domain.Note{
		ID:        r.ID,
		NoteType:  r.NoteType,
		Fields:    fields,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new note repository. db is used outside transactions.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByNoteTypes returns all notes of the given note types, oldest first.
func (r *Repo) ListByNoteTypes(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
	if len(noteTypes) == 0 {
		return []domain.Note{}, nil
	}

	return r.list(ctx, psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"note_type": noteTypes}).
		OrderBy("created_at", "id"))
}

// ListByIDs returns the notes with the given IDs. Unknown IDs are skipped;
// the order of the result is unspecified.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Note, error) {
	if len(ids) == 0 {
		return []domain.Note{}, nil
	}
	return r.list(ctx, psql.Select(columns...).From(table).Where(squirrel.Eq{"id": ids}))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Note, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notes query: %w", err)
	}

	var rows []noteRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		n, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// GetByID returns a note by primary key.
// Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	return r.get(ctx, psql.Select(columns...).From(table).Where(squirrel.Eq{"id": id}), id)
}

// GetByIDForUpdate is GetByID that locks the row until the surrounding
// transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	return r.get(ctx, psql.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"), id)
}

func (r *Repo) get(ctx context.Context, b squirrel.SelectBuilder, id uuid.UUID) (domain.Note, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("build get note query: %w", err)
	}

	var row noteRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.Note{}, postgres.MapError(err, "note", id)
	}
	return row.toDomain()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a note and returns it as stored. A zero ID is replaced with
// a new random one.
func (r *Repo) Create(ctx context.Context, n domain.Note) (domain.Note, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Fields == nil {
		n.Fields = map[string]string{}
	}
	fields, err := json.Marshal(n.Fields)
	if err != nil {
		return domain.Note{}, fmt.Errorf("note %s: encode fields: %w", n.ID, err)
	}

	query, args, err := psql.Insert(table).
		Columns("id", "note_type", "fields").
		Values(n.ID, n.NoteType, fields).
		Suffix("RETURNING id, note_type, fields, created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("build insert note query: %w", err)
	}

	var row noteRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.Note{}, postgres.MapError(err, "note", n.ID)
	}
	return row.toDomain()
}

// UpdateField sets one field of a note, leaving the other fields intact.
// Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) UpdateField(ctx context.Context, id uuid.UUID, field, value string) error {
	query, args, err := psql.Update(table).
		Set("fields", squirrel.Expr("jsonb_set(fields, ?, to_jsonb(?::text), true)", []string{field}, value)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update note query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "note", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
