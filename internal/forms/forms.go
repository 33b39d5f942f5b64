// Package forms binds submitted HTML form values into typed forms and
// validates them before anything reaches the store.
package forms

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their form name so messages read "image_link-..."
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("showtime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	return v
}

// FieldError is one failed check on one form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists every failed field check of a submission in
// field order.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns one "<field>-<message>" line per failure.
func (e ValidationErrors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field+"-"+fe.Message)
	}
	return out
}

func check(form interface{}) ValidationErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "form", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Kind() == reflect.Slice {
			return "Select at least one option."
		}
		return "Field is too short."
	case "number":
		return "Not a valid integer value."
	case "showtime":
		return "Not a valid datetime value."
	default:
		return "Invalid value."
	}
}

// Layouts accepted for a show's start time. Values without a zone are UTC.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseStartTime parses a submitted show start time.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// optional returns nil when key was not submitted at all and a pointer to
// the trimmed value otherwise, even when that value is empty.
func optional(values url.Values, key string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	s := text(values, key)
	return &s
}

// checked interprets a checkbox. Browsers omit unchecked boxes entirely.
func checked(values url.Values, key string) bool {
	switch strings.ToLower(text(values, key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

// list returns the non-empty values of a multi-value field in submission
// order.
func list(values url.Values, key string) []string {
	out := []string{}
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
