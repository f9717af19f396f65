package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
	"github.com/heartmarshall/czechplus-backend/pkg/ctxutil"
)

// NewErrorPresenter returns a gqlgen error presenter that maps domain errors
// to GraphQL error codes.
func NewErrorPresenter(log *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		// Parse and validation errors of the document carry no cause and
		// already have their code.
		var raw *gqlerror.Error
		if errors.As(err, &raw) && raw.Unwrap() == nil {
			return gqlErr
		}

		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			fields := make([]map[string]string, len(ve.Errors))
			for i, fe := range ve.Errors {
				fields[i] = map[string]string{"field": fe.Field, "message": fe.Message}
			}
			gqlErr.Extensions = map[string]any{"code": "VALIDATION", "fields": fields}

		case errors.Is(err, domain.ErrMissingField),
			errors.Is(err, domain.ErrMalformedAnnotation),
			errors.Is(err, domain.ErrInvalidCase),
			errors.Is(err, domain.ErrInvalidGender),
			errors.Is(err, domain.ErrUnsupportedNesting):
			gqlErr.Extensions = map[string]any{"code": "INVALID_NOTE"}

		case errors.Is(err, domain.ErrValidation):
			gqlErr.Extensions = map[string]any{"code": "VALIDATION"}

		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownCategory):
			gqlErr.Extensions = map[string]any{"code": "NOT_FOUND"}

		case errors.Is(err, domain.ErrAlreadyExists):
			gqlErr.Extensions = map[string]any{"code": "ALREADY_EXISTS"}

		case errors.Is(err, domain.ErrConflict):
			gqlErr.Message = "conflict, retry the request"
			gqlErr.Extensions = map[string]any{"code": "CONFLICT"}

		default:
			// Unexpected error - log it, return generic message to client
			log.ErrorContext(ctx, "unexpected GraphQL error",
				slog.String("error", err.Error()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
			gqlErr.Message = "internal error"
			gqlErr.Extensions = map[string]any{"code": "INTERNAL"}
		}

		return gqlErr
	}
}
