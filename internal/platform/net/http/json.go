package http

import (
	"net/http"

	"spoilerguard/internal/platform/net/http/bind"
)

// JSONHandler binds the body into T, calls fn and wraps the result in an envelope
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return JSONHandlerWith(bind.JSONOptions{}, fn)
}

// JSONHandlerWith is JSONHandler with explicit bind options
func JSONHandlerWith[T any](opts bind.JSONOptions, fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// NoBodyHandler calls fn without reading the body
func NoBodyHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return result(fn(r)) })
}

// result passes a handler made Response through untouched
func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
