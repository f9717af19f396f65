package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the word class of a card. It selects the lexer symbols and
// the processor used for the card's fields.
type Category string

const (
	CategoryNoun      Category = "NOUN"
	CategoryVerb      Category = "VERB"
	CategoryAdjective Category = "ADJECTIVE"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryNoun, CategoryVerb, CategoryAdjective:
		return true
	}
	return false
}

// Note is one flashcard record: its note type and raw field contents.
type Note struct {
	ID        uuid.UUID
	NoteType  string
	Fields    map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field returns the content of the named field.
func (n Note) Field(name string) (string, bool) {
	v, ok := n.Fields[name]
	return v, ok
}
