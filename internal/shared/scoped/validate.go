package scoped

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// engine returns the shared validator, building it on first use.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON name so clients can map errors back to inputs.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("caldate", func(fl validator.FieldLevel) bool {
			_, err := ParseCalendarDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(time.RFC3339, fl.Field().String())
			return err == nil
		})

		validate = v
	})
	return validate
}

// Validate checks a payload's `validate` tags and returns a *ValidationError listing every
// failed field, or nil when the payload is valid.
func Validate(payload any) error {
	err := engine().Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// ParseCalendarDate accepts either a bare date (2006-01-02) or an RFC 3339 timestamp and
// returns the calendar date it names, formatted as DateLayout.
func ParseCalendarDate(s string) (string, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d.Format(DateLayout), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", fmt.Errorf("invalid calendar date %q", s)
	}
	return ts.Format(DateLayout), nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "caldate":
		return "must be a calendar date (YYYY-MM-DD)"
	case "timestamp":
		return "must be an RFC 3339 timestamp"
	default:
		return "is invalid"
	}
}
