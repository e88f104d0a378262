package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// phoneSeparators may appear anywhere in a phone number and are ignored.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

// Validator wraps go-playground/validator with the portal's custom tags:
// date (2006-01-02), clock (15:04) and phone (7 to 15 digits, optional
// leading +, spaces, dashes, dots and parentheses ignored).
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse("15:04", value)
		return err == nil
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return phoneRegex.MatchString(phoneSeparators.Replace(value))
	})

	return &Validator{v: v}
}

func (v *Validator) Struct(s any) error {
	return v.v.Struct(s)
}

// FieldError is one failed rule, shaped for API error details.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Details flattens validation errors found anywhere in err's chain.
// It returns nil when err carries none.
func Details(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
