package graphql

import (
	"context"
	"encoding/json"

	"github.com/tidwall/sjson"
)

// Result is the outcome of one request: an optional data value, the error
// list and optional extensions.
type Result struct {
	Data interface{}
	// HasData distinguishes a null data value, which must serialize as
	// "data": null, from a response that carries no data key at all because
	// the request failed before execution.
	HasData    bool
	Errors     Errors
	Extensions map[string]interface{}
}

// Marshal renders the result as a JSON object with the keys in response
// order: data, errors, extensions. Absent members are omitted entirely.
func (r *Result) Marshal() ([]byte, error) {
	out := []byte("{}")

	if r.HasData {
		data, err := json.Marshal(r.Data)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, "data", data)
		if err != nil {
			return nil, err
		}
	}

	if len(r.Errors) > 0 {
		errs, err := json.Marshal(r.Errors)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, "errors", errs)
		if err != nil {
			return nil, err
		}
	}

	if len(r.Extensions) > 0 {
		extensions, err := json.Marshal(r.Extensions)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, "extensions", extensions)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ExtensionsParams is handed to the caller-supplied extensions hook after a
// successful execution.
type ExtensionsParams struct {
	Document      Document
	Variables     map[string]interface{}
	OperationName string
	Result        *Result
}

// ExtensionsFn computes the response extensions attached to a result before
// serialization. It may block; the request context bounds it.
type ExtensionsFn func(ctx context.Context, params ExtensionsParams) (map[string]interface{}, error)
