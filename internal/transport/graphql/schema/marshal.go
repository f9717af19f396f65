package schema

import (
	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/model"
)

// object marshals the fields of sel selected on typeName. value returns the
// marshaled value of one field.
func (ec *executionContext) object(sel ast.SelectionSet, typeName string, value func(name string, sel ast.SelectionSet) graphql.Marshaler) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{typeName})
	out := graphql.NewFieldSet(fields)
	for i, f := range fields {
		if f.Name == "__typename" {
			out.Values[i] = graphql.MarshalString(typeName)
			continue
		}
		out.Values[i] = value(f.Name, f.Selections)
	}
	return out
}

func (ec *executionContext) marshalPreview(sel ast.SelectionSet, v *model.Preview) graphql.Marshaler {
	return ec.object(sel, "Preview", func(name string, _ ast.SelectionSet) graphql.Marshaler {
		switch name {
		case "field":
			return graphql.MarshalString(v.Field)
		case "processed":
			return graphql.MarshalString(v.Processed)
		}
		return graphql.Null
	})
}

func (ec *executionContext) marshalNote(sel ast.SelectionSet, v *model.Note) graphql.Marshaler {
	return ec.object(sel, "Note", func(name string, sel ast.SelectionSet) graphql.Marshaler {
		switch name {
		case "id":
			return model.MarshalUUID(v.ID)
		case "noteType":
			return graphql.MarshalString(v.NoteType)
		case "fields":
			out := make(graphql.Array, len(v.Fields))
			for i := range v.Fields {
				out[i] = ec.marshalField(sel, &v.Fields[i])
			}
			return out
		case "updatedAt":
			return model.MarshalDateTime(v.UpdatedAt)
		}
		return graphql.Null
	})
}

func (ec *executionContext) marshalField(sel ast.SelectionSet, v *model.Field) graphql.Marshaler {
	return ec.object(sel, "Field", func(name string, _ ast.SelectionSet) graphql.Marshaler {
		switch name {
		case "name":
			return graphql.MarshalString(v.Name)
		case "value":
			return graphql.MarshalString(v.Value)
		}
		return graphql.Null
	})
}

func (ec *executionContext) marshalNoteResult(sel ast.SelectionSet, v *model.NoteResult) graphql.Marshaler {
	return ec.object(sel, "NoteResult", func(name string, _ ast.SelectionSet) graphql.Marshaler {
		switch name {
		case "noteId":
			return model.MarshalUUID(v.NoteID)
		case "field":
			return graphql.MarshalString(v.Field)
		case "processed":
			return graphql.MarshalString(v.Processed)
		case "changed":
			return graphql.MarshalBoolean(v.Changed)
		}
		return graphql.Null
	})
}

func (ec *executionContext) marshalCompileAllResult(sel ast.SelectionSet, v *model.CompileAllResult) graphql.Marshaler {
	return ec.object(sel, "CompileAllResult", func(name string, sel ast.SelectionSet) graphql.Marshaler {
		switch name {
		case "total":
			return graphql.MarshalInt(v.Total)
		case "compiled":
			return graphql.MarshalInt(v.Compiled)
		case "unchanged":
			return graphql.MarshalInt(v.Unchanged)
		case "dryRun":
			return graphql.MarshalBoolean(v.DryRun)
		case "failures":
			out := make(graphql.Array, len(v.Failures))
			for i := range v.Failures {
				out[i] = ec.marshalFailure(sel, &v.Failures[i])
			}
			return out
		}
		return graphql.Null
	})
}

func (ec *executionContext) marshalFailure(sel ast.SelectionSet, v *model.Failure) graphql.Marshaler {
	return ec.object(sel, "Failure", func(name string, _ ast.SelectionSet) graphql.Marshaler {
		switch name {
		case "noteId":
			return model.MarshalUUID(v.NoteID)
		case "noteType":
			return graphql.MarshalString(v.NoteType)
		case "error":
			return graphql.MarshalString(v.Error)
		}
		return graphql.Null
	})
}

func marshalStrings(v []string) graphql.Marshaler {
	out := make(graphql.Array, len(v))
	for i, s := range v {
		out[i] = graphql.MarshalString(s)
	}
	return out
}
