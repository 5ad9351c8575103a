package graphql

import (
	"fmt"
)

// Location points at a position in the original query source.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Path addresses the response field an error originated from.
type Path []interface{}

// Error is a single GraphQL error in response format: message plus optional
// locations, path and extensions.
type Error struct {
	Message    string                 `json:"message"`
	Locations  []Location             `json:"locations,omitempty"`
	Path       Path                   `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

type Errors []Error

func (e Errors) Error() string {
	return fmt.Sprintf("graphql: request contains %d error(s)", len(e))
}

// FormatErrorFn rewrites an error before it is serialized into the response.
type FormatErrorFn func(err Error) Error
