package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/graphbridge/graphql-http/pkg/graphql"
)

// outcome is the terminal result of the request pipeline: the status code to
// respond with, an optional Allow header value, the result to serialize and,
// after a successful parse, the document for the extensions hook.
type outcome struct {
	statusCode int
	allow      string
	result     *graphql.Result
	document   graphql.Document
}

func errorOutcome(reqErr *requestError) *outcome {
	return &outcome{
		statusCode: reqErr.statusCode,
		allow:      reqErr.allow,
		result:     &graphql.Result{Errors: reqErr.errors},
	}
}

// runPipeline drives one request through the method, schema, parse, validate,
// operation-kind and execute steps. Every step either continues or produces
// the terminal outcome; nothing is retried.
func (h *Handler) runPipeline(ctx context.Context, r *http.Request, options *Options, params graphql.Params) *outcome {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		return errorOutcome(&requestError{
			statusCode: http.StatusMethodNotAllowed,
			allow:      "GET, POST",
			errors:     graphql.Errors{{Message: "GraphQL only supports GET and POST requests."}},
		})
	}

	engine := options.Engine
	if schemaErrors := engine.ValidateSchema(); len(schemaErrors) > 0 {
		return &outcome{
			statusCode: http.StatusInternalServerError,
			result:     &graphql.Result{Errors: schemaErrors},
		}
	}

	if params.QueryString() == "" {
		return errorOutcome(newRequestError(http.StatusBadRequest, "Must provide query string."))
	}

	document, syntaxErr := engine.Parse(params.QueryString())
	if syntaxErr != nil {
		return &outcome{
			statusCode: http.StatusBadRequest,
			result:     &graphql.Result{Errors: graphql.Errors{*syntaxErr}},
		}
	}

	if validationErrors := engine.Validate(document, options.ValidationRules); len(validationErrors) > 0 {
		return &outcome{
			statusCode: http.StatusBadRequest,
			result:     &graphql.Result{Errors: validationErrors},
		}
	}

	operationName := params.OperationNameString()

	if r.Method == http.MethodGet {
		// GET may only run read operations. An unresolvable operation falls
		// through so that execution reports the selection error instead.
		if kind, ok := engine.Operation(document, operationName); ok && kind != graphql.OperationKindQuery {
			return &outcome{
				statusCode: http.StatusMethodNotAllowed,
				allow:      "POST",
				result: &graphql.Result{Errors: graphql.Errors{{
					Message: fmt.Sprintf("Can only perform a %s operation from a POST request.", kind),
				}}},
			}
		}
	}

	result, contextErr := engine.Execute(ctx, document, graphql.ExecutionParams{
		RootValue:     options.rootValue(r),
		Variables:     params.Variables,
		OperationName: operationName,
	})
	if contextErr != nil {
		return &outcome{
			statusCode: http.StatusBadRequest,
			result:     &graphql.Result{Errors: graphql.Errors{*contextErr}},
			document:   document,
		}
	}

	return &outcome{
		statusCode: http.StatusOK,
		result:     result,
		document:   document,
	}
}
