// Package engine adapts github.com/graphql-go/graphql to the Engine contract
// consumed by the HTTP request pipeline.
package engine

import (
	"context"

	graphqlgo "github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"

	"github.com/graphbridge/graphql-http/pkg/graphql"
)

// requestSourceName labels parse error locations in client facing messages.
const requestSourceName = "GraphQL request"

type Engine struct {
	schema graphqlgo.Schema
}

// New binds a graphql-go schema. A field resolver is not configured here:
// graphql-go attaches resolvers to the schema fields themselves.
func New(schema graphqlgo.Schema) *Engine {
	return &Engine{schema: schema}
}

func (e *Engine) ValidateSchema() graphql.Errors {
	// graphql-go validates a schema while constructing it, so any schema
	// value with a query root has already passed validation. The zero Schema
	// never did.
	if e.schema.QueryType() == nil {
		return graphql.Errors{{Message: "Query root type must be provided."}}
	}
	return nil
}

func (e *Engine) Parse(query string) (graphql.Document, *graphql.Error) {
	document, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{
			Body: []byte(query),
			Name: requestSourceName,
		}),
	})
	if err != nil {
		syntaxErr := convertError(gqlerrors.FormatError(err))
		return nil, &syntaxErr
	}
	return document, nil
}

func (e *Engine) Validate(document graphql.Document, rules []graphql.ValidationRule) graphql.Errors {
	astDocument, ok := document.(*ast.Document)
	if !ok {
		return graphql.Errors{{Message: "Validation requires a document produced by this engine."}}
	}

	ruleFns := make([]graphqlgo.ValidationRuleFn, 0, len(graphqlgo.SpecifiedRules)+len(rules))
	ruleFns = append(ruleFns, graphqlgo.SpecifiedRules...)
	for i := range rules {
		if fn, ok := rules[i].(graphqlgo.ValidationRuleFn); ok {
			ruleFns = append(ruleFns, fn)
		}
	}

	validation := graphqlgo.ValidateDocument(&e.schema, astDocument, ruleFns)
	if validation.IsValid {
		return nil
	}
	return convertErrors(validation.Errors)
}

func (e *Engine) Operation(document graphql.Document, operationName string) (graphql.OperationKind, bool) {
	astDocument, ok := document.(*ast.Document)
	if !ok {
		return graphql.OperationKindUnknown, false
	}

	var operation *ast.OperationDefinition
	for _, definition := range astDocument.Definitions {
		candidate, ok := definition.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName == "" {
			if operation != nil {
				// Several operations and no name to pick one; execution
				// reports this as a context error.
				return graphql.OperationKindUnknown, false
			}
			operation = candidate
			continue
		}
		if candidate.Name != nil && candidate.Name.Value == operationName {
			operation = candidate
			break
		}
	}
	if operation == nil {
		return graphql.OperationKindUnknown, false
	}
	return operationKind(operation.Operation), true
}

func (e *Engine) Execute(ctx context.Context, document graphql.Document, params graphql.ExecutionParams) (*graphql.Result, *graphql.Error) {
	astDocument, ok := document.(*ast.Document)
	if !ok {
		return nil, &graphql.Error{Message: "Execution requires a document produced by this engine."}
	}

	result := graphqlgo.Execute(graphqlgo.ExecuteParams{
		Schema:        e.schema,
		Root:          params.RootValue,
		AST:           astDocument,
		OperationName: params.OperationName,
		Args:          params.Variables,
		Context:       ctx,
	})

	if result.Data == nil && result.HasErrors() && !hasFieldError(result.Errors) {
		// A nil data value is ambiguous: graphql-go reports execution context
		// failures, such as an unknown operation name or variable coercion
		// errors, without data, but a failed non-null field also bubbles the
		// whole data value up to null. Field errors carry the path of the
		// failed field, context failures never do.
		contextErr := convertError(result.Errors[0])
		return nil, &contextErr
	}

	return &graphql.Result{
		Data:       result.Data,
		HasData:    true,
		Errors:     convertErrors(result.Errors),
		Extensions: result.Extensions,
	}, nil
}

func hasFieldError(errs []gqlerrors.FormattedError) bool {
	for i := range errs {
		if len(errs[i].Path) > 0 {
			return true
		}
	}
	return false
}

func operationKind(operation string) graphql.OperationKind {
	switch operation {
	case ast.OperationTypeQuery:
		return graphql.OperationKindQuery
	case ast.OperationTypeMutation:
		return graphql.OperationKindMutation
	case ast.OperationTypeSubscription:
		return graphql.OperationKindSubscription
	default:
		return graphql.OperationKindUnknown
	}
}

func convertErrors(errs []gqlerrors.FormattedError) graphql.Errors {
	if len(errs) == 0 {
		return nil
	}
	out := make(graphql.Errors, len(errs))
	for i := range errs {
		out[i] = convertError(errs[i])
	}
	return out
}

func convertError(err gqlerrors.FormattedError) graphql.Error {
	converted := graphql.Error{
		Message:    err.Message,
		Path:       graphql.Path(err.Path),
		Extensions: err.Extensions,
	}
	for _, location := range err.Locations {
		converted.Locations = append(converted.Locations, graphql.Location{
			Line:   location.Line,
			Column: location.Column,
		})
	}
	return converted
}
