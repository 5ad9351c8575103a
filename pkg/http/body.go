package http

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/graphbridge/graphql-http/internal/pkg/unsafebytes"
)

// maxBodySize limits the decoded request body to 100 KiB, measured after
// decompression.
const maxBodySize = 100 * 1024

const (
	contentEncodingIdentity = "identity"
	contentEncodingGzip     = "gzip"
	contentEncodingDeflate  = "deflate"
)

// readBody consumes the request body stream exactly once, reversing the
// declared Content-Encoding. The limit applies to the decoded stream, so a
// small compressed body cannot expand past it. Content-Length is only a
// preallocation hint and only trusted for identity encoding.
func readBody(r *http.Request) ([]byte, *requestError) {
	var (
		reader   io.Reader
		sizeHint int
	)

	encodingName := r.Header.Get(httpHeaderContentEncoding)
	switch strings.ToLower(encodingName) {
	case "", contentEncodingIdentity:
		reader = r.Body
		if r.ContentLength > 0 && r.ContentLength <= maxBodySize {
			sizeHint = int(r.ContentLength)
		}
	case contentEncodingGzip:
		gzipReader, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, newRequestError(http.StatusBadRequest, fmt.Sprintf("Invalid body: %s.", err))
		}
		defer gzipReader.Close()
		reader = gzipReader
	case contentEncodingDeflate:
		deflateReader := flate.NewReader(r.Body)
		defer deflateReader.Close()
		reader = deflateReader
	default:
		return nil, newRequestError(http.StatusUnsupportedMediaType, fmt.Sprintf("Unsupported content-encoding %q.", encodingName))
	}

	buf := bytes.NewBuffer(make([]byte, 0, sizeHint))
	// Read one byte past the limit so that an exactly full body still passes.
	n, err := io.Copy(buf, io.LimitReader(reader, maxBodySize+1))
	if err != nil {
		return nil, newRequestError(http.StatusBadRequest, fmt.Sprintf("Invalid body: %s.", err))
	}
	if n > maxBodySize {
		return nil, newRequestError(http.StatusBadRequest, "Invalid body: request entity too large.")
	}
	return buf.Bytes(), nil
}

// decodeCharset turns the raw body bytes into text using the charset declared
// in the Content-Type parameters. JSON transport requires a Unicode
// transformation format, so everything outside the utf- family is rejected.
func decodeCharset(raw []byte, charsetName string) (string, *requestError) {
	name := strings.ToLower(charsetName)
	if name == "" {
		name = "utf-8"
	}

	var decoder *encoding.Decoder
	switch name {
	case "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", newRequestError(http.StatusBadRequest, "Invalid body: invalid utf-8 encoding.")
		}
		return unsafebytes.BytesToString(raw), nil
	case "utf-16", "utf16":
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case "utf-16le":
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case "utf-16be":
		decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case "utf-32", "utf32":
		decoder = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewDecoder()
	case "utf-32le":
		decoder = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
	case "utf-32be":
		decoder = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()
	default:
		return "", newRequestError(http.StatusUnsupportedMediaType, fmt.Sprintf("Unsupported charset %q.", strings.ToUpper(charsetName)))
	}

	decoded, err := decoder.Bytes(raw)
	if err != nil {
		return "", newRequestError(http.StatusBadRequest, fmt.Sprintf("Invalid body: invalid %s encoding.", name))
	}
	return unsafebytes.BytesToString(decoded), nil
}

// decodeBody reads and charset-decodes the request body.
func decodeBody(r *http.Request, charsetName string) (string, *requestError) {
	raw, reqErr := readBody(r)
	if reqErr != nil {
		return "", reqErr
	}
	return decodeCharset(raw, charsetName)
}
