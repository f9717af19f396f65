// Package schema executes GraphQL operations against the note compiler
// schema on top of the gqlgen runtime.
package schema

import (
	"context"
	_ "embed"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/model"
)

//go:embed schema.graphqls
var sourceSDL string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: sourceSDL})

// ResolverRoot gives access to the resolvers of the root types.
type ResolverRoot interface {
	Query() QueryResolver
	Mutation() MutationResolver
}

type QueryResolver interface {
	Preview(ctx context.Context, noteType string, fields []model.FieldInput) (*model.Preview, error)
	Note(ctx context.Context, id uuid.UUID) (*model.Note, error)
	NoteTypes(ctx context.Context) ([]string, error)
}

type MutationResolver interface {
	CompileNote(ctx context.Context, id uuid.UUID, dryRun bool) (*model.NoteResult, error)
	CompileAll(ctx context.Context, noteTypes []string, dryRun bool) (*model.CompileAllResult, error)
}

// Config configures NewExecutableSchema.
type Config struct {
	Resolvers ResolverRoot
}

// NewExecutableSchema creates an ExecutableSchema for the gqlgen handler.
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{resolvers: cfg.Resolvers}
}

type executableSchema struct {
	resolvers ResolverRoot
}

var _ graphql.ExecutableSchema = (*executableSchema)(nil)

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

// Complexity leaves every field to the default estimate.
func (e *executableSchema) Complexity(_ context.Context, _, _ string, _ int, _ map[string]any) (int, bool) {
	return 0, false
}
