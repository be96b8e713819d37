package http

import (
	"encoding/json"
	"net/http"

	perr "spoilerguard/internal/platform/errors"
	pnet "spoilerguard/internal/platform/net"
)

// Envelope wraps every JSON response body
type Envelope struct {
	Success    bool           `json:"success"`
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return style handlers produce
// a Body holding an error is written as an error envelope with the mapped status
type Response struct {
	Status int
	Body   any
	Header http.Header
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: http.StatusOK, Body: data} }

// NoContent is a bodiless 204
func NoContent() Response { return Response{Status: http.StatusNoContent} }

// Error is an error envelope, the status comes from the error code
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a return style handler
func Handle(h func(*http.Request) Response) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		h(r).Write(w, r)
	}
}

// Write renders resp on w
func (resp Response) Write(w http.ResponseWriter, r *http.Request) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wire := perr.WireFrom(err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	} else {
		env.Success = true
		env.Data = resp.Body
	}
	env.StatusCode = status
	env.Status = http.StatusText(status)
	WriteJSON(w, status, env)
}

// WriteJSON encodes v with status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
