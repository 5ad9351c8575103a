package http

import (
	"context"
	"errors"
	"testing"

	graphqlgo "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"

	"github.com/graphbridge/graphql-http/pkg/engine"
	"github.com/graphbridge/graphql-http/pkg/graphql"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	queryType := graphqlgo.NewObject(graphqlgo.ObjectConfig{
		Name: "Query",
		Fields: graphqlgo.Fields{
			"hello": &graphqlgo.Field{
				Type: graphqlgo.String,
				Resolve: func(p graphqlgo.ResolveParams) (interface{}, error) {
					return "world", nil
				},
			},
			"echo": &graphqlgo.Field{
				Type: graphqlgo.String,
				Args: graphqlgo.FieldConfigArgument{
					"message": &graphqlgo.ArgumentConfig{
						Type: graphqlgo.NewNonNull(graphqlgo.String),
					},
				},
				Resolve: func(p graphqlgo.ResolveParams) (interface{}, error) {
					return p.Args["message"], nil
				},
			},
			"boom": &graphqlgo.Field{
				Type: graphqlgo.NewNonNull(graphqlgo.String),
				Resolve: func(p graphqlgo.ResolveParams) (interface{}, error) {
					return nil, errors.New("resolver failed")
				},
			},
		},
	})

	mutationType := graphqlgo.NewObject(graphqlgo.ObjectConfig{
		Name: "Mutation",
		Fields: graphqlgo.Fields{
			"setMessage": &graphqlgo.Field{
				Type: graphqlgo.String,
				Args: graphqlgo.FieldConfigArgument{
					"message": &graphqlgo.ArgumentConfig{
						Type: graphqlgo.NewNonNull(graphqlgo.String),
					},
				},
				Resolve: func(p graphqlgo.ResolveParams) (interface{}, error) {
					return p.Args["message"], nil
				},
			},
		},
	})

	schema, err := graphqlgo.NewSchema(graphqlgo.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	require.NoError(t, err)
	return engine.New(schema)
}

func newTestHandler(t *testing.T, options Options) *Handler {
	t.Helper()
	if options.Engine == nil {
		options.Engine = newTestEngine(t)
	}
	handler, err := NewGraphQLHTTPHandler(StaticOptions(options), nil)
	require.NoError(t, err)
	return handler
}

// stubEngine drives the pipeline through paths a real engine cannot easily
// reach, e.g. schema validation failures.
type stubEngine struct {
	schemaErrors  graphql.Errors
	syntaxError   *graphql.Error
	validation    graphql.Errors
	operationKind graphql.OperationKind
	operationOK   bool
	result        *graphql.Result
	contextError  *graphql.Error
}

func (s *stubEngine) ValidateSchema() graphql.Errors {
	return s.schemaErrors
}

func (s *stubEngine) Parse(query string) (graphql.Document, *graphql.Error) {
	if s.syntaxError != nil {
		return nil, s.syntaxError
	}
	return query, nil
}

func (s *stubEngine) Validate(document graphql.Document, rules []graphql.ValidationRule) graphql.Errors {
	return s.validation
}

func (s *stubEngine) Operation(document graphql.Document, operationName string) (graphql.OperationKind, bool) {
	return s.operationKind, s.operationOK
}

func (s *stubEngine) Execute(ctx context.Context, document graphql.Document, params graphql.ExecutionParams) (*graphql.Result, *graphql.Error) {
	if s.contextError != nil {
		return nil, s.contextError
	}
	if s.result != nil {
		return s.result, nil
	}
	return &graphql.Result{HasData: true, Data: map[string]interface{}{"stub": true}}, nil
}
