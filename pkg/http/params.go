package http

import (
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/graphbridge/graphql-http/pkg/graphql"
)

// resolveParams merges the URL query string with the body parameters into
// canonical Params. It is a pure function over its two inputs. Query string
// presence always wins, even when the query string value is empty text.
func resolveParams(query url.Values, body map[string]interface{}) (graphql.Params, *requestError) {
	params := graphql.Params{
		Query:         textParam(query, body, "query"),
		OperationName: textParam(query, body, "operationName"),
	}

	variables, hasVariables := mergedParam(query, body, "variables")
	if hasVariables {
		switch value := variables.(type) {
		case string:
			if !gjson.Valid(value) {
				return graphql.Params{}, newRequestError(http.StatusBadRequest, "Variables are invalid JSON.")
			}
			if object, ok := gjson.Parse(value).Value().(map[string]interface{}); ok {
				params.Variables = object
			}
		case map[string]interface{}:
			params.Variables = value
		}
		// Anything that is not an object after this point stays absent.
	}

	if _, ok := query["raw"]; ok {
		params.Raw = true
	} else if _, ok := body["raw"]; ok {
		params.Raw = true
	}

	return params, nil
}

// textParam resolves a textual parameter: the query string entry if the key
// is present, else the body entry if it is text, else absent.
func textParam(query url.Values, body map[string]interface{}, name string) *string {
	if _, ok := query[name]; ok {
		value := query.Get(name)
		return &value
	}
	if value, ok := body[name].(string); ok {
		return &value
	}
	return nil
}

func mergedParam(query url.Values, body map[string]interface{}, name string) (interface{}, bool) {
	if _, ok := query[name]; ok {
		return query.Get(name), true
	}
	value, ok := body[name]
	return value, ok
}
