package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

var errClosed = errors.New("lexer: machine already closed")

// pending describes a multi-rune handler that is waiting for more input.
type pending int

const (
	pendingNone pending = iota
	pendingEscapeOne
	pendingEscapeWord
)

// Machine is the lexer state machine. It is advanced one rune at a time with
// Feed and finished with Close; each call returns the items it completed.
// A Machine is single-use and not safe for concurrent use.
type Machine struct {
	syms  Symbols
	table map[rune]handler

	text    strings.Builder // plain text waiting to be flushed
	escaped strings.Builder // content collected by the word escape
	pending pending

	// swallowSpace drops one space right after a separator.
	swallowSpace bool
	depth        int
	closed       bool
}

// NewMachine creates a Machine for the given symbol table.
func NewMachine(syms Symbols) *Machine {
	return &Machine{syms: syms, table: syms.table()}
}

// Feed consumes the next rune of input.
func (m *Machine) Feed(r rune) ([]Item, error) {
	if m.closed {
		return nil, errClosed
	}

	var out []Item

	if m.swallowSpace {
		m.swallowSpace = false
		if r == ' ' {
			return nil, nil
		}
	}

	switch m.pending {
	case pendingEscapeOne:
		m.pending = pendingNone
		return append(out, Escaped(string(r))), nil
	case pendingEscapeWord:
		if !m.endsEscapedWord(r) {
			m.escaped.WriteRune(r)
			return nil, nil
		}
		out = append(out, Escaped(m.escaped.String()))
		m.escaped.Reset()
		m.pending = pendingNone
		// The terminating rune is dispatched again below.
	}

	h, ok := m.table[r]
	if !ok {
		m.text.WriteRune(r)
		return out, nil
	}

	switch h {
	case handleEscapeOne:
		out = m.flush(out)
		m.pending = pendingEscapeOne
	case handleEscapeWord:
		out = m.flush(out)
		m.pending = pendingEscapeWord
	case handleSeparator:
		out = append(m.flush(out), Separator())
		m.swallowSpace = true
	case handleAdditionalSeparator:
		out = append(m.flush(out), AdditionalSeparator())
		m.swallowSpace = true
	case handleSkip:
		out = append(m.flush(out), Skip())
	case handleFutureFormStart:
		if m.depth > 0 {
			return out, fmt.Errorf("%w: %q inside an open future form", domain.ErrUnsupportedNesting, r)
		}
		// "word [future]": the space before the bracket is layout, the
		// word itself stays intact.
		word := strings.TrimRightFunc(m.text.String(), unicode.IsSpace)
		m.text.Reset()
		if word != "" {
			out = append(out, Text(word))
		}
		out = append(out, FutureFormStart())
		m.depth++
	case handleFutureFormEnd:
		out = append(m.flush(out), FutureFormEnd())
		if m.depth > 0 {
			m.depth--
		}
	}

	return out, nil
}

// Close signals the end of input. A pending escape is resolved (a trailing
// lone escape yields an empty Escaped item), buffered text is flushed and an
// open future form is closed.
func (m *Machine) Close() ([]Item, error) {
	if m.closed {
		return nil, errClosed
	}
	m.closed = true

	var out []Item
	switch m.pending {
	case pendingEscapeOne:
		out = append(out, Escaped(""))
	case pendingEscapeWord:
		out = append(out, Escaped(m.escaped.String()))
		m.escaped.Reset()
	}
	m.pending = pendingNone

	out = m.flush(out)
	if m.depth > 0 {
		out = append(out, FutureFormEnd())
		m.depth = 0
	}
	return out, nil
}

// Depth returns the current future-form nesting depth (0 or 1).
func (m *Machine) Depth() int { return m.depth }

func (m *Machine) flush(out []Item) []Item {
	if m.text.Len() == 0 {
		return out
	}
	out = append(out, Text(m.text.String()))
	m.text.Reset()
	return out
}

// endsEscapedWord reports whether r terminates a word escape. The closing
// bracket only counts inside an open future form.
func (m *Machine) endsEscapedWord(r rune) bool {
	switch {
	case r == m.syms.Separator:
		return true
	case m.syms.AdditionalSeparator != 0 && r == m.syms.AdditionalSeparator:
		return true
	case m.depth > 0 && m.syms.FutureFormEnd != 0 && r == m.syms.FutureFormEnd:
		return true
	}
	return false
}
