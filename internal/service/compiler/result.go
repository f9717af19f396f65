package compiler

import (
	"github.com/google/uuid"
)

// Result summarises a batch run.
type Result struct {
	Total     int
	Compiled  int
	Unchanged int
	Failures  []Failure
	DryRun    bool
}

// Failed reports whether any note of the batch could not be compiled.
func (r *Result) Failed() bool { return len(r.Failures) > 0 }

// Failure is one note that could not be compiled.
type Failure struct {
	NoteID   uuid.UUID
	NoteType string
	Err      error
}

// NoteResult is the outcome of compiling one note.
type NoteResult struct {
	NoteID  uuid.UUID
	Field   string
	Value   string
	Changed bool
}

// PreviewResult is the processed field rendered for unsaved fields.
type PreviewResult struct {
	Field string
	Value string
}
