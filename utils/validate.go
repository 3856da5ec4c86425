package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nourishnet/nourishnet-api/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.Role(fl.Field().String()))
	})
	return v
}

// Messages overrides the generated message for a field path such as "cardDetails.cvv".
type Messages map[string]string

// ValidateStruct runs the `validate` tags on s and converts failures into a validation AppError.
func ValidateStruct(s interface{}, overrides Messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		msg, ok := overrides[path]
		if !ok {
			msg = describe(fe)
		}
		fields = append(fields, FieldError{Field: path, Msg: msg})
	}
	return NewValidationError(fields...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return fmt.Sprintf("Valid %s required", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "role":
		return fmt.Sprintf("%s must be one of: donor, recipient, provider, admin", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
