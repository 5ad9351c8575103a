package graphql

// Params are the canonical GraphQL parameters extracted from an HTTP request.
// Pointer fields keep an absent parameter distinct from an empty one, which
// the query-string precedence rules depend on.
type Params struct {
	// Query is the GraphQL document source, nil when absent.
	Query *string
	// Variables are the runtime variable bindings, nil when absent or when
	// the supplied value was not a JSON object.
	Variables map[string]interface{}
	// OperationName selects one operation when the document has several.
	OperationName *string
	// Raw is a client hint requesting an unformatted response. It is
	// extracted here and consumed by downstream collaborators.
	Raw bool
}

// QueryString returns the query text, empty when absent.
func (p Params) QueryString() string {
	if p.Query == nil {
		return ""
	}
	return *p.Query
}

// OperationNameString returns the operation name, empty when absent.
func (p Params) OperationNameString() string {
	if p.OperationName == nil {
		return ""
	}
	return *p.OperationName
}
