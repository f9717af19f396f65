package schema

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/model"
)

type executionContext struct {
	*graphql.OperationContext
	resolvers ResolverRoot
}

// rootFunc resolves one root field and marshals its value.
type rootFunc func(ctx context.Context, field graphql.CollectedField, args map[string]any) (graphql.Marshaler, error)

// Exec runs the operation of ctx. Query fields resolve concurrently so that
// their loads share dataloader batches; mutation fields run in order.
func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ec := &executionContext{OperationContext: opCtx, resolvers: e.resolvers}

	var run func(ctx context.Context) graphql.Marshaler
	switch opCtx.Operation.Operation {
	case ast.Query:
		run = ec.query
	case ast.Mutation:
		run = ec.mutation
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		var buf bytes.Buffer
		run(ctx).MarshalGQL(&buf)
		return &graphql.Response{Data: buf.Bytes()}
	}
}

func (ec *executionContext) query(ctx context.Context) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, ec.Operation.SelectionSet, []string{"Query"})
	out := graphql.NewFieldSet(fields)

	var (
		wg      sync.WaitGroup
		invalid atomic.Bool
	)
	for i, f := range fields {
		if f.Name == "__typename" {
			out.Values[i] = graphql.MarshalString("Query")
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Values[i] = ec.resolveRoot(ctx, "Query", f, ec.queryField)
			if out.Values[i] == graphql.Null && f.Definition.Type.NonNull {
				invalid.Store(true)
			}
		}()
	}
	wg.Wait()

	if invalid.Load() {
		return graphql.Null
	}
	return out
}

func (ec *executionContext) mutation(ctx context.Context) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, ec.Operation.SelectionSet, []string{"Mutation"})
	out := graphql.NewFieldSet(fields)

	for i, f := range fields {
		if f.Name == "__typename" {
			out.Values[i] = graphql.MarshalString("Mutation")
			continue
		}
		out.Values[i] = ec.resolveRoot(ctx, "Mutation", f, ec.mutationField)
	}
	return out
}

// resolveRoot runs fn inside the field context of field. Errors and panics
// are recorded on the response and the field resolves to null.
func (ec *executionContext) resolveRoot(ctx context.Context, object string, field graphql.CollectedField, fn rootFunc) (ret graphql.Marshaler) {
	args := field.ArgumentMap(ec.Variables)
	ctx = graphql.WithFieldContext(ctx, &graphql.FieldContext{
		Object:     object,
		Field:      field,
		Args:       args,
		IsMethod:   true,
		IsResolver: true,
	})

	defer func() {
		if r := recover(); r != nil {
			graphql.AddError(ctx, ec.Recover(ctx, r))
			ret = graphql.Null
		}
	}()

	v, err := fn(ctx, field, args)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null
	}
	return v
}

func (ec *executionContext) queryField(ctx context.Context, field graphql.CollectedField, args map[string]any) (graphql.Marshaler, error) {
	q := ec.resolvers.Query()

	switch field.Name {
	case "preview":
		noteType, err := stringArg(args, "noteType")
		if err != nil {
			return nil, err
		}
		fields, err := fieldInputsArg(args, "fields")
		if err != nil {
			return nil, err
		}
		res, err := q.Preview(ctx, noteType, fields)
		if err != nil || res == nil {
			return graphql.Null, err
		}
		return ec.marshalPreview(field.Selections, res), nil

	case "note":
		id, err := uuidArg(args, "id")
		if err != nil {
			return nil, err
		}
		res, err := q.Note(ctx, id)
		if err != nil || res == nil {
			return graphql.Null, err
		}
		return ec.marshalNote(field.Selections, res), nil

	case "noteTypes":
		res, err := q.NoteTypes(ctx)
		if err != nil {
			return graphql.Null, err
		}
		return marshalStrings(res), nil
	}
	return nil, fmt.Errorf("field Query.%s is not implemented", field.Name)
}

func (ec *executionContext) mutationField(ctx context.Context, field graphql.CollectedField, args map[string]any) (graphql.Marshaler, error) {
	m := ec.resolvers.Mutation()

	dryRun, err := boolArg(args, "dryRun")
	if err != nil {
		return nil, err
	}

	switch field.Name {
	case "compileNote":
		id, err := uuidArg(args, "id")
		if err != nil {
			return nil, err
		}
		res, err := m.CompileNote(ctx, id, dryRun)
		if err != nil || res == nil {
			return graphql.Null, err
		}
		return ec.marshalNoteResult(field.Selections, res), nil

	case "compileAll":
		noteTypes, err := stringsArg(args, "noteTypes")
		if err != nil {
			return nil, err
		}
		res, err := m.CompileAll(ctx, noteTypes, dryRun)
		if err != nil || res == nil {
			return graphql.Null, err
		}
		return ec.marshalCompileAllResult(field.Selections, res), nil
	}
	return nil, fmt.Errorf("field Mutation.%s is not implemented", field.Name)
}

// ---------------------------------------------------------------------------
// Arguments
// ---------------------------------------------------------------------------

func argError(name string, err error) error {
	return fmt.Errorf("%w: argument %s: %v", domain.ErrValidation, name, err)
}

func stringArg(args map[string]any, name string) (string, error) {
	s, err := graphql.UnmarshalString(args[name])
	if err != nil {
		return "", argError(name, err)
	}
	return s, nil
}

func boolArg(args map[string]any, name string) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return false, nil
	}
	b, err := graphql.UnmarshalBoolean(v)
	if err != nil {
		return false, argError(name, err)
	}
	return b, nil
}

func uuidArg(args map[string]any, name string) (uuid.UUID, error) {
	id, err := model.UnmarshalUUID(args[name])
	if err != nil {
		return id, argError(name, err)
	}
	return id, nil
}

// list returns v as a list, applying input coercion of a single value.
func list(v any) []any {
	switch v := v.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

func stringsArg(args map[string]any, name string) ([]string, error) {
	items := list(args[name])
	if items == nil {
		return nil, nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, err := graphql.UnmarshalString(it)
		if err != nil {
			return nil, argError(name, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func fieldInputsArg(args map[string]any, name string) ([]model.FieldInput, error) {
	items := list(args[name])
	out := make([]model.FieldInput, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			return nil, argError(name, fmt.Errorf("%T is not an object", it))
		}
		fieldName, err := graphql.UnmarshalString(obj["name"])
		if err != nil {
			return nil, argError(name+".name", err)
		}
		value, err := graphql.UnmarshalString(obj["value"])
		if err != nil {
			return nil, argError(name+".value", err)
		}
		out = append(out, model.FieldInput{Name: fieldName, Value: value})
	}
	return out, nil
}
