package resolver

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/czechplus-backend/internal/service/compiler"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/schema"
)

// compilerService defines what resolver needs from the compiler service.
type compilerService interface {
	Preview(ctx context.Context, input compiler.PreviewInput) (*compiler.PreviewResult, error)
	CompileNote(ctx context.Context, input compiler.CompileNoteInput) (*compiler.NoteResult, error)
	CompileAll(ctx context.Context, input compiler.CompileAllInput) (*compiler.Result, error)
}

// Resolver is the root resolver containing all service dependencies.
type Resolver struct {
	compiler  compilerService
	noteTypes []string
	log       *slog.Logger
}

// NewResolver creates a new Resolver. noteTypes are the registered note
// types reported by the noteTypes query.
func NewResolver(log *slog.Logger, compiler compilerService, noteTypes []string) *Resolver {
	return &Resolver{
		compiler:  compiler,
		noteTypes: noteTypes,
		log:       log.With("component", "graphql"),
	}
}

var _ schema.ResolverRoot = (*Resolver)(nil)

// Query returns the resolver of the Query type.
func (r *Resolver) Query() schema.QueryResolver { return &queryResolver{r} }

// Mutation returns the resolver of the Mutation type.
func (r *Resolver) Mutation() schema.MutationResolver { return &mutationResolver{r} }

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }
