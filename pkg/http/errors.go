package http

import (
	"github.com/graphbridge/graphql-http/pkg/graphql"
)

// requestError is a terminal request failure carrying the HTTP status to
// respond with, an optional Allow header value and the errors to render.
type requestError struct {
	statusCode int
	allow      string
	errors     graphql.Errors
}

func (r *requestError) Error() string {
	if len(r.errors) == 1 {
		return r.errors[0].Message
	}
	return r.errors.Error()
}

func newRequestError(statusCode int, message string) *requestError {
	return &requestError{
		statusCode: statusCode,
		errors:     graphql.Errors{{Message: message}},
	}
}
