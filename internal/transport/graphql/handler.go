// Package graphql serves the note compiler over GraphQL.
package graphql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"

	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/schema"
)

// maxComplexity bounds the size of one operation.
const maxComplexity = 200

// NewHandler returns the HTTP handler of the GraphQL endpoint. It accepts
// queries over GET and POST and mutations over POST only.
func NewHandler(log *slog.Logger, resolvers schema.ResolverRoot) http.Handler {
	srv := handler.New(schema.NewExecutableSchema(schema.Config{Resolvers: resolvers}))
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.Use(extension.FixedComplexityLimit(maxComplexity))

	srv.SetErrorPresenter(NewErrorPresenter(log))
	srv.SetRecoverFunc(func(ctx context.Context, p any) error {
		log.ErrorContext(ctx, "panic in resolver",
			slog.String("panic", fmt.Sprint(p)),
			slog.String("stack", string(debug.Stack())),
		)
		return errors.New("internal error")
	})
	return srv
}
