package processor

import (
	"strings"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// piece is one annotation run inside a preposition/case entry.
type piece struct {
	text    string
	escaped bool
}

// pac is one preposition/case entry of a verb annotation:
//
//	pac     := [preposition WS] case | literal
//	case    := "1".."7" | case name
//	literal := any entry holding escaped content, rendered verbatim
type pac []piece

func (p pac) empty() bool {
	for _, pc := range p {
		if pc.escaped || strings.TrimSpace(pc.text) != "" {
			return false
		}
	}
	return true
}

func (p pac) literal() bool {
	for _, pc := range p {
		if pc.escaped {
			return true
		}
	}
	return false
}

func (p pac) raw() string {
	var sb strings.Builder
	for _, pc := range p {
		sb.WriteString(pc.text)
	}
	return sb.String()
}

// resolve renders the entry: "na 4" becomes "na koho? co?".
func (p pac) resolve() (string, error) {
	raw := p.raw()
	if p.literal() {
		return strings.TrimSpace(raw), nil
	}

	words := strings.Fields(raw)
	c, err := domain.ParseCase(words[len(words)-1])
	if err != nil {
		return "", err
	}
	if len(words) == 1 {
		return c.Question(), nil
	}
	return strings.Join(words[:len(words)-1], " ") + " " + c.Question(), nil
}

func resolveAll(pacs []pac) ([]string, error) {
	out := make([]string, 0, len(pacs))
	for _, p := range pacs {
		s, err := p.resolve()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
