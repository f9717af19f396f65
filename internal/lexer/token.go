// Package lexer turns raw card field contents into a stream of items: plain
// text runs interleaved with separator, escape, skip and future-form tokens.
package lexer

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of an Item.
type Kind int

const (
	KindText Kind = iota
	KindSeparator
	KindAdditionalSeparator
	KindEscaped
	KindSkip
	KindFutureFormStart
	KindFutureFormEnd
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindSeparator:
		return "Separator"
	case KindAdditionalSeparator:
		return "AdditionalSeparator"
	case KindEscaped:
		return "Escaped"
	case KindSkip:
		return "Skip"
	case KindFutureFormStart:
		return "FutureFormStart"
	case KindFutureFormEnd:
		return "FutureFormEnd"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Item is one element of a lexed stream. Text carries the run for KindText
// and the verbatim content for KindEscaped; it is empty for every other kind.
// Items are comparable with ==.
type Item struct {
	Kind Kind
	Text string
}

func Text(s string) Item { return Item{Kind: KindText, Text: s} }
func Escaped(s string) Item { return Item{Kind: KindEscaped, Text: s} }
func Separator() Item { return Item{Kind: KindSeparator} }
func AdditionalSeparator() Item { return Item{Kind: KindAdditionalSeparator} }
func Skip() Item { return Item{Kind: KindSkip} }
func FutureFormStart() Item { return Item{Kind: KindFutureFormStart} }
func FutureFormEnd() Item { return Item{Kind: KindFutureFormEnd} }
func (i Item) Is(kind Kind) bool { return i.Kind == kind }

func (i Item) String() string {
	switch i.Kind {
	case KindText:
		return fmt.Sprintf("%q", i.Text)
	case KindEscaped:
		return fmt.Sprintf("Escaped(%q)", i.Text)
	}
	return i.Kind.String()
}

// Format renders a stream in a compact, human-readable form for logs.
func Format(items []Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
