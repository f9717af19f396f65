package graphql

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

func TestErrorPresenter_Codes(t *testing.T) {
	presenter := NewErrorPresenter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "not found", err: fmt.Errorf("get note: %w", domain.ErrNotFound), code: "NOT_FOUND"},
		{name: "unknown note type", err: fmt.Errorf("%w: note type %q", domain.ErrUnknownCategory, "x"), code: "NOT_FOUND"},
		{name: "already exists", err: domain.ErrAlreadyExists, code: "ALREADY_EXISTS"},
		{name: "conflict", err: domain.ErrConflict, code: "CONFLICT"},
		{name: "missing field", err: fmt.Errorf("%w: czech", domain.ErrMissingField), code: "INVALID_NOTE"},
		{name: "malformed annotation", err: domain.ErrMalformedAnnotation, code: "INVALID_NOTE"},
		{name: "invalid case", err: domain.NewInvalidValueError(domain.ErrInvalidCase, "pac", "9"), code: "INVALID_NOTE"},
		{name: "nesting", err: domain.ErrUnsupportedNesting, code: "INVALID_NOTE"},
		{name: "validation sentinel", err: fmt.Errorf("%w: argument id", domain.ErrValidation), code: "VALIDATION"},
		{name: "unexpected", err: errors.New("db down"), code: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gqlErr := presenter(context.Background(), tt.err)

			if gqlErr.Extensions == nil {
				t.Fatal("expected extensions, got nil")
			}
			if code := gqlErr.Extensions["code"]; code != tt.code {
				t.Errorf("expected code %s, got %v", tt.code, code)
			}
		})
	}
}

func TestErrorPresenter_Validation(t *testing.T) {
	presenter := NewErrorPresenter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := domain.NewValidationErrors([]domain.FieldError{
		{Field: "note_type", Message: "required"},
		{Field: "fields", Message: "required"},
	})

	gqlErr := presenter(context.Background(), gqlerror.WrapPath(nil, err))

	if gqlErr.Extensions["code"] != "VALIDATION" {
		t.Fatalf("expected code VALIDATION, got %v", gqlErr.Extensions["code"])
	}
	fields, ok := gqlErr.Extensions["fields"].([]map[string]string)
	if !ok {
		t.Fatalf("expected fields in extensions, got %T", gqlErr.Extensions["fields"])
	}
	if len(fields) != 2 || fields[0]["field"] != "note_type" || fields[1]["message"] != "required" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestErrorPresenter_InternalHidesMessage(t *testing.T) {
	presenter := NewErrorPresenter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	gqlErr := presenter(context.Background(), errors.New("pq: password authentication failed"))

	if gqlErr.Message != "internal error" {
		t.Errorf("expected generic message, got %q", gqlErr.Message)
	}
}

func TestErrorPresenter_KeepsDocumentErrors(t *testing.T) {
	presenter := NewErrorPresenter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	docErr := gqlerror.Errorf("Cannot query field \"cards\" on type \"Query\".")
	docErr.Extensions = map[string]any{"code": "GRAPHQL_VALIDATION_FAILED"}

	gqlErr := presenter(context.Background(), docErr)

	if gqlErr.Message != docErr.Message {
		t.Errorf("message changed: %q", gqlErr.Message)
	}
	if gqlErr.Extensions["code"] != "GRAPHQL_VALIDATION_FAILED" {
		t.Errorf("code changed: %v", gqlErr.Extensions["code"])
	}
}
