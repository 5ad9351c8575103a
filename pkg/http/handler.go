// Package http adapts GraphQL engines to HTTP: it extracts the GraphQL
// parameters from query string and body following the GraphQL over HTTP
// convention, enforces the GET/POST operation rules and maps every outcome to
// a status code and a JSON payload.
package http

import (
	"net/http"

	log "github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"
)

const (
	httpHeaderContentType     = "Content-Type"
	httpHeaderContentEncoding = "Content-Encoding"
	httpHeaderAllow           = "Allow"

	httpContentTypeApplicationJson = "application/json"
)

// ErrNilOptionsProvider reports a handler constructed without an options
// provider. This is a setup defect, not a request failure.
var ErrNilOptionsProvider = errors.New("graphql http handler requires an options provider")

// Handler serves GraphQL over HTTP. All state is request scoped; a single
// Handler is safe for concurrent use.
type Handler struct {
	log     log.Logger
	options OptionsProvider
}

// NewGraphQLHTTPHandler builds the handler. A nil logger falls back to the
// noop logger.
func NewGraphQLHTTPHandler(options OptionsProvider, logger log.Logger) (*Handler, error) {
	if options == nil {
		return nil, ErrNilOptionsProvider
	}
	if logger == nil {
		logger = log.NoopLogger
	}
	return &Handler{
		log:     logger,
		options: options,
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if recovered := recover(); recovered != nil {
			h.log.Error("Handler.ServeHTTP: recovered from panic",
				log.Any("panic", recovered),
			)
			respondInternalError(w)
		}
	}()
	h.serveGraphQL(w, r)
}

func (h *Handler) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	options, err := h.options.Resolve(ctx, r)
	if err != nil {
		h.log.Error("Handler.serveGraphQL: resolve options",
			log.Error(err),
		)
		h.writeError(ctx, w, nil, newRequestError(http.StatusInternalServerError, err.Error()))
		return
	}
	if options == nil || options.Engine == nil {
		h.log.Error("Handler.serveGraphQL: options are missing an engine")
		h.writeError(ctx, w, options, newRequestError(http.StatusInternalServerError, "GraphQL middleware options must contain a schema."))
		return
	}

	body, reqErr := bodyParams(r)
	if reqErr != nil {
		h.writeError(ctx, w, options, reqErr)
		return
	}

	params, reqErr := resolveParams(r.URL.Query(), body)
	if reqErr != nil {
		h.writeError(ctx, w, options, reqErr)
		return
	}

	out := h.runPipeline(ctx, r, options, params)
	h.writeOutcome(ctx, w, out, options, params)
}
