package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var loginPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names, not Go ones.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return loginPattern.MatchString(fl.Field().String())
	})

	// Validate the text inside an optional string; null counts as empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		o := field.Interface().(optional[*string])
		if o.Value == nil {
			return ""
		}
		return *o.Value
	}, optional[*string]{})

	return v
}

// validationError carries one message per offending field.
type validationError struct {
	Fields map[string]string
}

func (e *validationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// validateStruct checks s against its validate tags. Failures come back
// as *validationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return &validationError{Fields: fields}
}

// fieldPath drops the top-level struct name from the namespace, keeping
// slice indexes such as tag_ids[1].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	case "login":
		return "must contain only letters, digits, dots, hyphens and underscores"
	}
	return "is invalid"
}
