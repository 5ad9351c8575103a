// Package graphql defines the types shared between the HTTP request pipeline
// and the GraphQL engine executing the parsed documents.
package graphql

import (
	"context"
)

// Document is the engine-owned parsed representation of a query. The request
// pipeline never inspects it, it only hands it back to the engine.
type Document interface{}

// ValidationRule is an engine-owned rule extending the engine's default
// validation rule set.
type ValidationRule interface{}

// OperationKind determines the side-effect policy of an operation and with it
// the HTTP methods it may be executed through.
type OperationKind int

const (
	OperationKindUnknown OperationKind = iota
	OperationKindQuery
	OperationKindMutation
	OperationKindSubscription
)

func (o OperationKind) String() string {
	switch o {
	case OperationKindQuery:
		return "query"
	case OperationKindMutation:
		return "mutation"
	case OperationKindSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// ExecutionParams carry the per-request execution inputs into the engine.
type ExecutionParams struct {
	RootValue     interface{}
	Variables     map[string]interface{}
	OperationName string
}

// Engine is the contract between the HTTP layer and a GraphQL implementation.
// An Engine is bound to one schema; implementations must be safe for
// concurrent use across requests.
type Engine interface {
	// ValidateSchema reports schema level errors. Any error makes every
	// request against this engine fail with an internal server error.
	ValidateSchema() Errors
	// Parse turns query source text into a Document or a syntax error.
	Parse(query string) (Document, *Error)
	// Validate checks the document against the schema using the engine's
	// default rule set extended by rules.
	Validate(document Document, rules []ValidationRule) Errors
	// Operation resolves the operation selected by operationName, falling
	// back to the sole operation of the document. The second return value is
	// false when no operation can be resolved unambiguously.
	Operation(document Document, operationName string) (OperationKind, bool)
	// Execute runs the document. A non-nil *Error reports a failure to build
	// the execution context (unknown operation, variable coercion), as
	// opposed to field errors which are carried inside the Result.
	Execute(ctx context.Context, document Document, params ExecutionParams) (*Result, *Error)
}
