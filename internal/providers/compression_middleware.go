package providers

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionMiddleware gzips page and JSON responses for clients that
// accept it. Already-compressed bodies such as PNG are passed through by
// gzhttp's content type filter.
func CompressionMiddleware(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
