package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Empty card settings are filled with their defaults first.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Compiler.Workers < 1 {
		return fmt.Errorf("compiler.workers must be >= 1 (got %d)", c.Compiler.Workers)
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0 (got %d)", c.Server.RateLimit)
	}

	c.Cards.applyDefaults()
	if err := c.Cards.validate(); err != nil {
		return fmt.Errorf("cards: %w", err)
	}

	return nil
}

func (c *CardsConfig) applyDefaults() {
	def := DefaultCards()
	c.Nouns.applyDefaults(def.Nouns)
	c.Verbs.applyDefaults(def.Verbs)
	c.Adjectives.applyDefaults(def.Adjectives)
}

func (c *CardConfig) applyDefaults(def CardConfig) {
	setDefault(&c.NoteTypeName, def.NoteTypeName)
	setDefault(&c.Fields.Primary, def.Fields.Primary)
	setDefault(&c.Fields.Annotation, def.Fields.Annotation)
	setDefault(&c.Fields.Processed, def.Fields.Processed)
}

func setDefault(v *string, def string) {
	if strings.TrimSpace(*v) == "" {
		*v = def
	}
}

func (c CardsConfig) validate() error {
	seen := make(map[string]string, 3)
	for _, kind := range []string{"nouns", "verbs", "adjectives"} {
		card := c.Kinds()[kind]
		if prev, ok := seen[card.NoteTypeName]; ok {
			return fmt.Errorf("%s.note_type_name %q already used by %s", kind, card.NoteTypeName, prev)
		}
		seen[card.NoteTypeName] = kind

		if err := card.validate(); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	return nil
}

func (c CardConfig) validate() error {
	f := c.Fields
	if f.Primary == f.Annotation {
		return fmt.Errorf("fields.primary and fields.annotation must differ (both %q)", f.Primary)
	}
	if f.Processed == f.Primary || f.Processed == f.Annotation {
		return fmt.Errorf("fields.processed %q must not overwrite an input field", f.Processed)
	}
	if err := c.Symbols.validate(); err != nil {
		return fmt.Errorf("symbols: %w", err)
	}
	return nil
}

func (s SymbolsConfig) validate() error {
	for name, v := range s.values() {
		if v != "" && utf8.RuneCountInString(v) != 1 {
			return fmt.Errorf("%s must be a single character (got %q)", name, v)
		}
	}
	return nil
}

func (s SymbolsConfig) values() map[string]string {
	return map[string]string{
		"separator":            s.Separator,
		"additional_separator": s.AdditionalSeparator,
		"escape":               s.Escape,
		"word_escape":          s.WordEscape,
		"skip":                 s.Skip,
		"future_form_start":    s.FutureFormStart,
		"future_form_end":      s.FutureFormEnd,
	}
}

// Rune returns the configured symbol as a rune, or def when it is empty.
func Rune(v string, def rune) rune {
	if v == "" {
		return def
	}
	r, _ := utf8.DecodeRuneInString(v)
	return r
}
