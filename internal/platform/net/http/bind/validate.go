// Package bind decodes request bodies and validates them with go-playground/validator
package bind

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// Validator pairs the shared validate instance with its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

var (
	shared     *Validator
	sharedOnce sync.Once
)

// Get returns the process wide Validator
func Get() *Validator {
	sharedOnce.Do(func() { shared = newValidator() })
	return shared
}

func newValidator() *Validator {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(v, trans)

	// the defaults word min and max differently per kind; one phrasing reads better in the envelope
	short(v, trans, "min", "{0} must be at least {1}")
	short(v, trans, "max", "{0} must be at most {1}")

	return &Validator{V: v, Trans: trans}
}

// jsonName reports fields by their json key so messages match the payload
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "":
		return f.Name
	case "-":
		return ""
	}
	return name
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// FirstViolation returns the namespace and message of the first failed rule
// namespace drops the root type, so a nested comment reads danmakuList[3].id
func FirstViolation(err error) (field, msg string) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		if err == nil {
			return "", ""
		}
		return "", err.Error()
	}
	fe := verrs[0]
	ns := fe.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		ns = rest
	}
	return ns, fe.Translate(Get().Trans)
}
