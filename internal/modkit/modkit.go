// Package modkit assembles API modules from shared deps and build options
package modkit

import (
	"net/http"
	"time"

	"spoilerguard/internal/modkit/httpkit"
	"spoilerguard/internal/modkit/module"
	str "spoilerguard/internal/platform/strings"
)

// Module is what the API composes
type Module = module.Module

// Option adjusts a module build
type Option func(*Built)

// Built is the resolved module configuration
type Built struct {
	Name       string
	Prefix     string
	Middleware []func(http.Handler) http.Handler
	Ports      any

	// Timeout bounds requests under Prefix, 0 inherits the API deadline
	Timeout time.Duration
}

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// WithName names the module for logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the route prefix the module owns
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware applied under the module prefix
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Middleware = append(b.Middleware, mw...) }
}

// WithPorts hands the module collaborators whose concrete type the module defines
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithTimeout sets the per module request deadline
func WithTimeout(d time.Duration) Option { return func(b *Built) { b.Timeout = d } }

// ModuleName is Name, panicking when it was never set
func (b Built) ModuleName() string { return str.MustString(b.Name, "module name") }

// Mount opens a subrouter at Prefix, applies the timeout then middleware, and lets routes register
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(sub httpkit.Router) {
		if b.Timeout > 0 {
			sub.Use(httpkit.Timeout(b.Timeout))
		}
		sub.Use(b.Middleware...)
		routes(sub)
	})
}
