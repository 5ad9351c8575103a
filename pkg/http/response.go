package http

import (
	"bytes"
	"context"
	"net/http"

	log "github.com/jensneuse/abstractlogger"
	"github.com/tidwall/pretty"

	"github.com/graphbridge/graphql-http/pkg/graphql"
	"github.com/graphbridge/graphql-http/pkg/pool"
)

// writeOutcome applies the extensions hook, error formatting, the
// no-data escalation rule and serializes the response.
func (h *Handler) writeOutcome(ctx context.Context, w http.ResponseWriter, out *outcome, options *Options, params graphql.Params) {
	statusCode := out.statusCode
	result := out.result

	if statusCode == http.StatusOK && !result.HasData {
		// Execution reported a runtime error only through errors, without a
		// data member.
		statusCode = http.StatusInternalServerError
	}

	if options != nil && options.Extensions != nil && result.HasData {
		extensions, err := options.Extensions(ctx, graphql.ExtensionsParams{
			Document:      out.document,
			Variables:     params.Variables,
			OperationName: params.OperationNameString(),
			Result:        result,
		})
		if err != nil {
			h.log.Error("Handler.writeOutcome: extensions hook failed",
				log.Error(err),
			)
			result.Errors = append(result.Errors, graphql.Error{Message: err.Error()})
		} else if len(extensions) > 0 {
			result.Extensions = extensions
		}
	}

	if options != nil && options.FormatError != nil {
		for i := range result.Errors {
			result.Errors[i] = options.FormatError(result.Errors[i])
		}
	}

	payload, err := result.Marshal()
	if err != nil {
		h.log.Error("Handler.writeOutcome: marshal result",
			log.Error(err),
		)
		respondInternalError(w)
		return
	}

	if out.allow != "" {
		w.Header().Set(httpHeaderAllow, out.allow)
	}
	w.Header().Set(httpHeaderContentType, httpContentTypeApplicationJson)
	w.WriteHeader(statusCode)

	buf := pool.BytesBuffer.Get()
	defer pool.BytesBuffer.Put(buf)

	if options != nil && options.Pretty {
		// pretty defaults to two space indentation but terminates the output
		// with a newline the compact mode does not have.
		buf.Write(bytes.TrimSuffix(pretty.Pretty(payload), []byte("\n")))
	} else {
		buf.Write(payload)
	}
	_, _ = buf.WriteTo(w)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, options *Options, reqErr *requestError) {
	h.writeOutcome(ctx, w, errorOutcome(reqErr), options, graphql.Params{})
}

// respondInternalError is the last resort response when serialization itself
// failed or a collaborator panicked.
func respondInternalError(w http.ResponseWriter) {
	w.Header().Set(httpHeaderContentType, httpContentTypeApplicationJson)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"errors":[{"message":"Internal server error"}]}`))
}
