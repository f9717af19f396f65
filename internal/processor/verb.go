package processor

import (
	"log/slog"
	"strings"

	"github.com/heartmarshall/czechplus-backend/internal/lexer"
)

// Verb adds the question of the governed case, with its preposition, to
// every verb:
//
//	"jít [půjít]" + "4 [3]"  ->  "jít (koho? co?) [půjít (komu? čemu?)]"
//	"jít, mít"    + "4. 2"   ->  "jít (koho? co?), mít (koho? čeho?)"
//
// Annotation segments are separated by the separator, entries of one segment
// by the additional separator, and the future form is bracketed.
type Verb struct {
	base
}

// NewVerb creates a verb processor.
func NewVerb(log *slog.Logger, spec CardSpec) *Verb {
	return &Verb{base: newBase(log, spec)}
}

func (v *Verb) Process(fields map[string]string) (string, error) {
	primaryRaw, annotationRaw, done, err := v.inputs(fields)
	if err != nil || done {
		return primaryRaw, err
	}

	primaryItems, err := v.lex(v.spec.Primary, primaryRaw, false)
	if err != nil {
		return "", err
	}
	verbs, err := parseVerbs(primaryItems)
	if err != nil {
		return "", err
	}

	annotation, err := v.lex(v.spec.Annotation, annotationRaw, true)
	if err != nil {
		return "", err
	}

	w := &verbWalker{verbs: verbs}
	out, err := w.walk(annotation)
	if err != nil {
		return "", v.withField(err)
	}
	return out, nil
}

// verb is one primary word with its optional future form.
type verb struct {
	word      string
	future    string
	hasFuture bool
}

func (v verb) empty() bool { return v.word == "" && !v.hasFuture }

// parseVerbs splits the primary stream into verbs. Both separators divide
// words in the primary field.
func parseVerbs(items []lexer.Item) ([]verb, error) {
	var (
		out      []verb
		cur      verb
		inFuture bool
	)

	for i, it := range items {
		switch it.Kind {
		case lexer.KindText:
			text := strings.TrimSpace(it.Text)
			switch {
			case inFuture:
				cur.future = text
			case text == "":
			case cur.word != "" || cur.hasFuture:
				return nil, malformed("primary item %d: %s follows a complete word", i, it)
			default:
				cur.word = text
			}
		case lexer.KindSeparator, lexer.KindAdditionalSeparator:
			if inFuture {
				return nil, malformed("primary item %d: separator inside a future form", i)
			}
			if !cur.empty() {
				out = append(out, cur)
			}
			cur = verb{}
		case lexer.KindFutureFormStart:
			inFuture = true
			cur.hasFuture = true
		case lexer.KindFutureFormEnd:
			if !inFuture {
				return nil, malformed("primary item %d: unbalanced future form end", i)
			}
			inFuture = false
		default:
			return nil, malformed("primary item %d: unexpected %s", i, it)
		}
	}
	if !cur.empty() {
		out = append(out, cur)
	}
	return out, nil
}

type walkState int

const (
	stateAccumulating walkState = iota
	stateInFutureForm
)

// segment collects the annotation of one verb.
type segment struct {
	pacs       []pac
	futurePacs []pac
	skip       bool
	futureSkip bool
	hasFuture  bool
}

func (s segment) empty() bool {
	return len(s.pacs) == 0 && len(s.futurePacs) == 0 && !s.skip && !s.futureSkip && !s.hasFuture
}

// verbWalker drives the annotation stream and consumes one primary verb per
// closed segment.
type verbWalker struct {
	verbs []verb
	next  int

	state walkState
	seg   segment
	cur   pac
	out   []string
}

func (w *verbWalker) walk(items []lexer.Item) (string, error) {
	for i, it := range items {
		if err := w.step(i, it); err != nil {
			return "", err
		}
	}

	w.closePac()
	w.state = stateAccumulating
	if !w.seg.empty() {
		if err := w.closeSegment(); err != nil {
			return "", err
		}
	}

	if w.next < len(w.verbs) {
		return "", malformed("annotation covers %d of %d verbs", w.next, len(w.verbs))
	}
	return strings.Join(w.out, ", "), nil
}

func (w *verbWalker) step(i int, it lexer.Item) error {
	switch it.Kind {
	case lexer.KindText:
		w.cur = append(w.cur, piece{text: it.Text})
	case lexer.KindEscaped:
		w.cur = append(w.cur, piece{text: it.Text, escaped: true})
	case lexer.KindAdditionalSeparator:
		w.closePac()
	case lexer.KindSkip:
		if w.state == stateInFutureForm {
			w.seg.futureSkip = true
		} else {
			w.seg.skip = true
		}
	case lexer.KindFutureFormStart:
		if w.state == stateInFutureForm {
			return malformed("annotation item %d: nested future form", i)
		}
		w.closePac()
		w.state = stateInFutureForm
		w.seg.hasFuture = true
	case lexer.KindFutureFormEnd:
		if w.state != stateInFutureForm {
			return malformed("annotation item %d: unbalanced future form end", i)
		}
		w.closePac()
		w.state = stateAccumulating
	case lexer.KindSeparator:
		if w.state == stateInFutureForm {
			return malformed("annotation item %d: separator inside a future form", i)
		}
		w.closePac()
		return w.closeSegment()
	}
	return nil
}

func (w *verbWalker) closePac() {
	if !w.cur.empty() {
		if w.state == stateInFutureForm {
			w.seg.futurePacs = append(w.seg.futurePacs, w.cur)
		} else {
			w.seg.pacs = append(w.seg.pacs, w.cur)
		}
	}
	w.cur = nil
}

func (w *verbWalker) closeSegment() error {
	seg := w.seg
	w.seg = segment{}

	if w.next >= len(w.verbs) {
		return malformed("annotation has more segments than the %d verbs", len(w.verbs))
	}
	v := w.verbs[w.next]
	w.next++

	rendered, err := renderVerb(v, seg)
	if err != nil {
		return err
	}
	w.out = append(w.out, rendered)
	return nil
}

func renderVerb(v verb, seg segment) (string, error) {
	if seg.skip && len(seg.pacs) > 0 {
		return "", malformed("verb %q is both skipped and annotated", v.word)
	}
	if seg.futureSkip && len(seg.futurePacs) > 0 {
		return "", malformed("future form of %q is both skipped and annotated", v.word)
	}
	if seg.hasFuture && !v.hasFuture {
		return "", malformed("verb %q has no future form to annotate", v.word)
	}

	out, err := withPacs(v.word, seg.pacs)
	if err != nil {
		return "", err
	}

	if v.hasFuture {
		future, err := withPacs(v.future, seg.futurePacs)
		if err != nil {
			return "", err
		}
		if out != "" {
			out += " "
		}
		out += "[" + future + "]"
	}
	return out, nil
}

func withPacs(word string, pacs []pac) (string, error) {
	if len(pacs) == 0 {
		return word, nil
	}
	resolved, err := resolveAll(pacs)
	if err != nil {
		return "", err
	}
	return word + " (" + strings.Join(resolved, ", ") + ")", nil
}
