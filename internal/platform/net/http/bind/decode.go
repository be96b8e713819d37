package bind

import (
	"encoding/json"
	stderrs "errors"
	"io"
	"net/http"

	perr "spoilerguard/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxBytes bounds a body when JSONOptions.MaxBytes is zero
const DefaultMaxBytes = 1 << 20

// JSONOptions tunes ParseJSON, the zero value is strict with a 1MB cap
type JSONOptions struct {
	MaxBytes int64

	// AllowUnknown accepts fields the target type does not declare
	AllowUnknown bool

	// AllowEmpty returns the zero value for an empty body on any method
	AllowEmpty bool
}

// ParseJSON decodes one JSON value from the request body into T and validates it
// GET DELETE and HEAD tolerate an empty body
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var (
		out T
		o   JSONOptions
	)
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, o.MaxBytes))
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(&out); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case stderrs.Is(err, io.EOF) && (o.AllowEmpty || bodyless(r.Method)):
			return out, nil
		case stderrs.Is(err, io.EOF):
			return out, perr.JSONErrf("empty body")
		case stderrs.As(err, &tooBig):
			return out, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		default:
			return out, perr.JSONErrf("invalid JSON: %v", err)
		}
	}
	if dec.More() {
		return out, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().V.Struct(out); err != nil {
		var inv *validator.InvalidValidationError
		if stderrs.As(err, &inv) {
			// non struct targets carry no rules
			return out, nil
		}
		field, msg := FirstViolation(err)
		return out, perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
	}
	return out, nil
}

func bodyless(method string) bool {
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		return true
	}
	return false
}
