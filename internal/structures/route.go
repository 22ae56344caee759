package structures

import "net/http"

// Route is one registered endpoint. Streaming routes bypass response
// compression so events reach the client as they are flushed.
type Route struct {
	Url       string
	Handler   http.Handler
	Streaming bool
}
