// Package strings holds the few string helpers the standard library lacks
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes a route prefix to one leading slash and no trailing slash
// it panics on an empty or root prefix since a module must own a subtree
func MustPrefix(s string) string {
	p := "/" + std.Trim(std.TrimSpace(s), "/")
	if p == "/" {
		panic("route prefix is required")
	}
	return p
}

// MustString returns s, panicking with what when s is blank
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}
