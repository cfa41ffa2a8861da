package client

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/morezero/gamestats/pkg/params"
)

// CodeInvalidArgument marks a ValidationError.
const CodeInvalidArgument = "INVALID_ARGUMENT"

// ValidationError is a local, immediate failure raised before any network call.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", CodeInvalidArgument, e.Message)
}

// Code returns CodeInvalidArgument.
func (e *ValidationError) Code() string {
	return CodeInvalidArgument
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// params.Value validates as its normalized string, null as "".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(params.Value); ok {
			if val.IsNull() {
				return ""
			}
			return val.Normalize()
		}
		return nil
	}, params.Value{})
	return v
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return &ValidationError{Message: err.Error()}
	}
	fields := make(map[string]string, len(valErrs))
	for _, ve := range valErrs {
		fields[ve.Field()] = formatValidationError(ve)
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	messages := make([]string, 0, len(names))
	for _, name := range names {
		messages = append(messages, name+": "+fields[name])
	}
	return &ValidationError{Message: strings.Join(messages, "; "), Fields: fields}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "gtefield":
		return fmt.Sprintf("must not be lower than %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
