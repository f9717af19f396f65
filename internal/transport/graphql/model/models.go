// Package model holds the GraphQL types of the note compiler API.
package model

import (
	"time"

	"github.com/google/uuid"
)

// FieldInput is one raw note field sent by the client.
type FieldInput struct {
	Name  string
	Value string
}

type Field struct {
	Name  string
	Value string
}

type Preview struct {
	Field     string
	Processed string
}

type Note struct {
	ID        uuid.UUID
	NoteType  string
	Fields    []Field
	UpdatedAt time.Time
}

type NoteResult struct {
	NoteID    uuid.UUID
	Field     string
	Processed string
	Changed   bool
}

type CompileAllResult struct {
	Total     int
	Compiled  int
	Unchanged int
	DryRun    bool
	Failures  []Failure
}

// Failure is a note the batch could not compile.
type Failure struct {
	NoteID   uuid.UUID
	NoteType string
	Error    string
}
