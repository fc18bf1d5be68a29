package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ProgrammerShajib/fullstack/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateFields checks that name, email and age are all present.
func ValidateFields(fields types.UserFields) error {
	err := validate.Struct(fields)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate user: %w", err)
	}
	missing := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		missing = append(missing, fe.Field())
	}
	return &ValidationError{Fields: missing}
}

// now returns the store timestamp, truncated to the millisecond precision
// of the document store so that responses equal what is read back.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
