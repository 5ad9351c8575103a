package http

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/tidwall/gjson"

	"github.com/graphbridge/graphql-http/internal/pkg/unsafebytes"
)

const (
	mediaTypeGraphQL = "application/graphql"
	mediaTypeJSON    = "application/json"
	mediaTypeForm    = "application/x-www-form-urlencoded"
)

// jsonInsignificantBytes are the bytes the JSON grammar allows before a value.
const jsonInsignificantBytes = " \t\n\r"

type preParsedBodyKey struct{}

// WithPreParsedBody marks the request body as already consumed and parsed by
// upstream middleware. A map[string]interface{} is used verbatim as the body
// parameters, a []byte goes through the regular charset decoding, a string
// combined with an application/graphql content type is used as the query
// text, and any other value carries no parameters.
func WithPreParsedBody(ctx context.Context, body interface{}) context.Context {
	return context.WithValue(ctx, preParsedBodyKey{}, body)
}

func preParsedBody(ctx context.Context) (interface{}, bool) {
	value := ctx.Value(preParsedBodyKey{})
	return value, value != nil
}

// bodyParams extracts the request parameters carried in the body. Requests
// without a Content-Type header carry none, whatever the body contains.
func bodyParams(r *http.Request) (map[string]interface{}, *requestError) {
	pre, hasPre := preParsedBody(r.Context())
	if params, ok := pre.(map[string]interface{}); ok {
		return params, nil
	}

	contentType := r.Header.Get(httpHeaderContentType)
	if contentType == "" {
		return map[string]interface{}{}, nil
	}
	mediaType, mediaParams, err := mime.ParseMediaType(contentType)
	if err != nil {
		// An unparsable media type is treated like an unknown one.
		return map[string]interface{}{}, nil
	}

	if text, ok := pre.(string); ok {
		if mediaType == mediaTypeGraphQL {
			return map[string]interface{}{"query": text}, nil
		}
		return map[string]interface{}{}, nil
	}

	var (
		body   string
		reqErr *requestError
	)
	switch {
	case !hasPre:
		body, reqErr = decodeBody(r, mediaParams["charset"])
	default:
		raw, ok := pre.([]byte)
		if !ok {
			// Pre-parsed plain values other than strings and byte buffers
			// carry no parameters.
			return map[string]interface{}{}, nil
		}
		body, reqErr = decodeCharset(raw, mediaParams["charset"])
	}
	if reqErr != nil {
		return nil, reqErr
	}

	return interpretBody(body, mediaType)
}

// interpretBody maps the decoded body text to named parameters, dispatching
// strictly on the media type.
func interpretBody(body string, mediaType string) (map[string]interface{}, *requestError) {
	switch mediaType {
	case mediaTypeGraphQL:
		return map[string]interface{}{"query": body}, nil

	case mediaTypeJSON:
		return interpretJSONBody(body)

	case mediaTypeForm:
		// Form parsing is best effort: pairs with invalid escapes are
		// dropped, everything parsable is kept.
		values, _ := url.ParseQuery(body)
		params := make(map[string]interface{}, len(values))
		for key := range values {
			params[key] = values.Get(key)
		}
		return params, nil

	default:
		return map[string]interface{}{}, nil
	}
}

func interpretJSONBody(body string) (map[string]interface{}, *requestError) {
	trimmed := strings.TrimLeft(body, jsonInsignificantBytes)
	// An empty or non-object body fails without a parse attempt.
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, newRequestError(http.StatusBadRequest, "POST body sent invalid JSON.")
	}

	data := unsafebytes.StringToBytes(trimmed)
	if !json.Valid(data) {
		return nil, newRequestError(http.StatusBadRequest, "POST body sent invalid JSON.")
	}

	params := make(map[string]interface{})
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		switch dataType {
		case jsonparser.String:
			text, err := jsonparser.ParseString(value)
			if err != nil {
				return err
			}
			params[string(key)] = text
		case jsonparser.Null:
			params[string(key)] = nil
		default:
			params[string(key)] = gjson.ParseBytes(value).Value()
		}
		return nil
	})
	if err != nil {
		return nil, newRequestError(http.StatusBadRequest, "POST body sent invalid JSON.")
	}
	return params, nil
}
