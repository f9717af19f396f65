package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// Scanner lexes a string lazily. It follows the bufio.Scanner shape:
//
//	s := lexer.NewScanner(syms, raw)
//	for s.Scan() {
//		item := s.Item()
//	}
//	if err := s.Err(); err != nil { ... }
//
// A Scanner makes a single pass; lexing the same input again needs a new one.
// Input that is not valid UTF-8 stops the scan with ErrMalformedAnnotation.
type Scanner struct {
	m     *Machine
	src   string
	pos   int
	queue []Item
	item  Item
	err   error
	done  bool
}

// NewScanner creates a Scanner over raw.
func NewScanner(syms Symbols, raw string) *Scanner {
	return &Scanner{m: NewMachine(syms), src: raw}
}

// Scan advances to the next item. It returns false at the end of input or
// on error.
func (s *Scanner) Scan() bool {
	for len(s.queue) == 0 {
		if s.err != nil || s.done {
			return false
		}

		if s.pos >= len(s.src) {
			items, err := s.m.Close()
			s.done = true
			if err != nil {
				s.err = err
				return false
			}
			s.queue = items
			continue
		}

		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		offset := s.pos
		s.pos += size
		if r == utf8.RuneError && size == 1 {
			s.err = fmt.Errorf("lexer: offset %d: %w: invalid UTF-8 byte %#x", offset, domain.ErrMalformedAnnotation, s.src[offset])
			return false
		}

		items, err := s.m.Feed(r)
		if err != nil {
			s.err = fmt.Errorf("lexer: offset %d: %w", offset, err)
			return false
		}
		s.queue = items
	}

	s.item = s.queue[0]
	s.queue = s.queue[1:]
	return true
}

// Item returns the most recent item produced by Scan.
func (s *Scanner) Item() Item { return s.item }

// Err returns the first error encountered by Scan.
func (s *Scanner) Err() error { return s.err }

// Lex lexes raw completely and returns all items.
func Lex(syms Symbols, raw string) ([]Item, error) {
	s := NewScanner(syms, raw)
	var items []Item
	for s.Scan() {
		items = append(items, s.Item())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
