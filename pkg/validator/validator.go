// Package validator wraps go-playground/validator with the custom tags used by request DTOs
// and turns the first failing field into a user-facing message.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, spaces, apostrophes and hyphens; 2 to 50 characters.
	personNameRegex = regexp.MustCompile(`^[a-zA-Z\s'-]{2,50}$`)
	emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names instead of Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister("personname", func(fl validator.FieldLevel) bool {
		return personNameRegex.MatchString(fl.Field().String())
	})
	mustRegister("emailshape", func(fl validator.FieldLevel) bool {
		return emailShapeRegex.MatchString(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %s: %v", tag, err))
	}
}

// Default messages per tag; a struct may override them with a `msg` tag.
var defaultMessages = map[string]string{
	"required":   "%s is required",
	"min":        "%s must be at least %s characters",
	"max":        "%s must be at most %s characters",
	"personname": "%s should only contain letters and be 2-50 characters",
	"emailshape": "Invalid %s format",
}

// FieldError is the first failing field of a struct.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Struct validates s (a pointer to struct) and returns a *FieldError for the first failing
// field, in declaration order, or nil.
//
// Messages come from the field's `msg` tag when present (`msg:"required=Name is required"`,
// several pairs separated by ';'), otherwise from the default table.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	return &FieldError{
		Field:   e.Field(),
		Tag:     e.Tag(),
		Message: messageFor(s, e),
	}
}

func messageFor(s any, e validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(e.StructField()); ok {
		for _, pair := range strings.Split(f.Tag.Get("msg"), ";") {
			tag, msg, found := strings.Cut(pair, "=")
			if found && strings.TrimSpace(tag) == e.Tag() {
				return msg
			}
		}
	}
	format, ok := defaultMessages[e.Tag()]
	if !ok {
		return fmt.Sprintf("Field '%s' is invalid: %s", e.Field(), e.Tag())
	}
	if strings.Count(format, "%s") == 2 {
		return fmt.Sprintf(format, e.Field(), e.Param())
	}
	return fmt.Sprintf(format, e.Field())
}
