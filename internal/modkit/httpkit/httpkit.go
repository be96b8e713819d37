// Package httpkit is what service modules import for routing and handler glue
// so that none of them depend on the platform transport packages directly
package httpkit

import (
	"net/http"

	phttp "spoilerguard/internal/platform/net/http"
	"spoilerguard/internal/platform/net/http/bind"
)

type (
	// Router is the routing surface modules mount on
	Router = phttp.Router

	// Handler is a plain handler func
	Handler = phttp.Handler

	// Envelope is the JSON body every endpoint writes
	Envelope = phttp.Envelope

	// Response lets a handler pick its own status, e.g. NoContent
	Response = phttp.Response
)

// NoContent is a 204 handlers can return in place of data
func NoContent() Response { return phttp.NoContent() }

// Param returns a path parameter of the matched route
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// Get mounts a GET handler whose result is wrapped in an envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBodyHandler(h))
}

// Delete mounts a DELETE handler, any body is ignored
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.NoBodyHandler(h))
}

// PostJSON mounts a POST handler that binds a strict JSON body into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PostJSONWith is PostJSON with explicit bind options
func PostJSONWith[T any](r Router, path string, opts bind.JSONOptions, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandlerWith(opts, h))
}

// PutJSON mounts a PUT handler that binds a strict JSON body into T
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}
