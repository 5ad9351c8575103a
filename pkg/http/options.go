package http

import (
	"context"
	"net/http"

	"github.com/graphbridge/graphql-http/pkg/graphql"
)

// Options configure the handling of a single request.
type Options struct {
	// Engine executes GraphQL documents against its bound schema. Required.
	Engine graphql.Engine
	// RootValue is passed through to the engine's execute call.
	RootValue interface{}
	// RootValueFn derives a per-request root value and wins over RootValue.
	RootValueFn func(r *http.Request) interface{}
	// Pretty switches the response body to indented JSON.
	Pretty bool
	// FormatError rewrites every response error before serialization.
	FormatError graphql.FormatErrorFn
	// ValidationRules extend the engine's default validation rule set.
	ValidationRules []graphql.ValidationRule
	// Extensions computes response extensions after execution.
	Extensions graphql.ExtensionsFn
}

func (o *Options) rootValue(r *http.Request) interface{} {
	if o.RootValueFn != nil {
		return o.RootValueFn(r)
	}
	return o.RootValue
}

// OptionsProvider resolves the Options for one request. It is invoked exactly
// once per request and may block, for example to look up a per-tenant schema.
type OptionsProvider interface {
	Resolve(ctx context.Context, r *http.Request) (*Options, error)
}

// StaticOptions is the fixed-value variant of OptionsProvider.
type StaticOptions Options

func (s StaticOptions) Resolve(ctx context.Context, r *http.Request) (*Options, error) {
	options := Options(s)
	return &options, nil
}

// OptionsProviderFunc is the callable variant of OptionsProvider.
type OptionsProviderFunc func(ctx context.Context, r *http.Request) (*Options, error)

func (f OptionsProviderFunc) Resolve(ctx context.Context, r *http.Request) (*Options, error) {
	return f(ctx, r)
}
