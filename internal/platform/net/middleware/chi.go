// Package middleware adapts chi and go-chi/cors handlers and adds the
// request scoped logging and panic handling used by the API stack
package middleware

import (
	"net/http"
	"time"

	pstrings "spoilerguard/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Func is the standard middleware shape
type Func = func(http.Handler) http.Handler

// RequestID assigns X-Request-ID when missing and stores it on the context
func RequestID() Func { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Forwarded-For or X-Real-IP
func RealIP() Func { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Func { return chimw.Timeout(d) }

// NoCache disables client and proxy caching of API responses
func NoCache() Func { return chimw.NoCache }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// RedirectSlashes redirects /runs/ to /runs
func RedirectSlashes() Func { return chimw.RedirectSlashes }

// StripSlashes drops a trailing slash before routing
func StripSlashes() Func { return chimw.StripSlashes }

// Compress encodes responses at level for clients that accept it
func Compress(level int) Func {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// CORSOptions is the subset of go-chi/cors settings the API exposes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", "X-Request-ID", ClientIDHeader}
)

// CORS applies go-chi/cors; empty method and header lists fall back to what the API serves
func CORS(o CORSOptions) Func {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
