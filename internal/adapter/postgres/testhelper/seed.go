package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// SeedNote inserts a note with the given note type and fields.
// Returns the note as stored, timestamps included.
func SeedNote(t *testing.T, pool *pgxpool.Pool, noteType string, fields map[string]string) domain.Note {
	t.Helper()

	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("testhelper: SeedNote marshal fields: %v", err)
	}

	n := domain.Note{ID: uuid.New(), NoteType: noteType, Fields: fields}
	err = pool.QueryRow(context.Background(),
		`INSERT INTO notes (id, note_type, fields) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		n.ID, n.NoteType, raw,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedNote insert: %v", err)
	}

	return n
}

// NoteField reads one field of a note directly from the database.
// Returns "" and false when the note or the field is missing.
func NoteField(t *testing.T, pool *pgxpool.Pool, id uuid.UUID, field string) (string, bool) {
	t.Helper()

	var value *string
	err := pool.QueryRow(context.Background(),
		`SELECT fields ->> $2 FROM notes WHERE id = $1`, id, field,
	).Scan(&value)
	if err != nil || value == nil {
		return "", false
	}
	return *value, true
}
