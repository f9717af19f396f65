package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Compiler CompilerConfig `yaml:"compiler"`
	Cards    CardsConfig    `yaml:"cards"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings for browser clients of the preview API.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimit is the per-client request budget of the API routes per
	// minute. Zero disables limiting.
	RateLimit int `yaml:"rate_limit" env:"SERVER_RATE_LIMIT" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CompilerConfig holds batch compilation settings.
type CompilerConfig struct {
	Workers int  `yaml:"workers" env:"COMPILER_WORKERS" env-default:"4"`
	DryRun  bool `yaml:"dry_run" env:"COMPILER_DRY_RUN" env-default:"false"`
}

// CardsConfig describes the three card kinds. Empty values are filled with
// per-kind defaults during validation.
type CardsConfig struct {
	Nouns      CardConfig `yaml:"nouns"      env-prefix:"CARDS_NOUNS_"`
	Verbs      CardConfig `yaml:"verbs"      env-prefix:"CARDS_VERBS_"`
	Adjectives CardConfig `yaml:"adjectives" env-prefix:"CARDS_ADJECTIVES_"`
}

// CardConfig binds one card kind to a note type and its field names.
type CardConfig struct {
	NoteTypeName string        `yaml:"note_type_name" env:"NOTE_TYPE_NAME"`
	Fields       FieldsConfig  `yaml:"fields"         env-prefix:"FIELDS_"`
	Symbols      SymbolsConfig `yaml:"symbols"        env-prefix:"SYMBOLS_"`
}

// FieldsConfig names the note fields a processor reads and writes.
type FieldsConfig struct {
	Primary    string `yaml:"primary"    env:"PRIMARY"`
	Annotation string `yaml:"annotation" env:"ANNOTATION"`
	Processed  string `yaml:"processed"  env:"PROCESSED"`
}

// SymbolsConfig overrides lexer symbols. Each value is a single character;
// an empty value keeps the built-in symbol of the card kind.
type SymbolsConfig struct {
	Separator           string `yaml:"separator"            env:"SEPARATOR"`
	AdditionalSeparator string `yaml:"additional_separator" env:"ADDITIONAL_SEPARATOR"`
	Escape              string `yaml:"escape"               env:"ESCAPE"`
	WordEscape          string `yaml:"word_escape"          env:"WORD_ESCAPE"`
	Skip                string `yaml:"skip"                 env:"SKIP"`
	FutureFormStart     string `yaml:"future_form_start"    env:"FUTURE_FORM_START"`
	FutureFormEnd       string `yaml:"future_form_end"      env:"FUTURE_FORM_END"`
}

// DefaultCards returns the built-in card configuration.
func DefaultCards() CardsConfig {
	return CardsConfig{
		Nouns: CardConfig{
			NoteTypeName: "nouns",
			Fields:       FieldsConfig{Primary: "czech", Annotation: "gender", Processed: "processed"},
		},
		Verbs: CardConfig{
			NoteTypeName: "verbs",
			Fields:       FieldsConfig{Primary: "czech", Annotation: "pac", Processed: "processed"},
		},
		Adjectives: CardConfig{
			NoteTypeName: "adjectives",
			Fields:       FieldsConfig{Primary: "czech", Annotation: "cocd", Processed: "processed"},
		},
	}
}

// Kinds returns the card configurations keyed by kind name
// ("nouns", "verbs", "adjectives").
func (c CardsConfig) Kinds() map[string]CardConfig {
	return map[string]CardConfig{
		"nouns":      c.Nouns,
		"verbs":      c.Verbs,
		"adjectives": c.Adjectives,
	}
}
