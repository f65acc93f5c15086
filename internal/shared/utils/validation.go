package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	paymentvo "f3manager/internal/domain/payment/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	RegisterJSONTagNames(validate)
	if err := RegisterCustomValidators(validate); err != nil {
		panic(err)
	}
}

// RegisterGinValidators installs the JSON tag names and custom rules on the
// validator gin uses for ShouldBind*.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	RegisterJSONTagNames(v)
	return RegisterCustomValidators(v)
}

// RegisterCustomValidators adds payment_method and civil_date. Empty values
// pass both so they combine with omitempty semantics.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		_, err := paymentvo.NewPaymentMethod(raw)
		return err == nil
	}); err != nil {
		return fmt.Errorf("failed to register payment_method: %w", err)
	}
	if err := v.RegisterValidation("civil_date", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		_, err := biztime.ParseDate(raw)
		return err == nil
	}); err != nil {
		return fmt.Errorf("failed to register civil_date: %w", err)
	}
	return nil
}

// RegisterJSONTagNames makes validation errors report JSON field names.
func RegisterJSONTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if appErr := TranslateBindingError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// TranslateBindingError converts request decoding and validator failures into
// a validation AppError. Any other error yields nil.
func TranslateBindingError(err error) *errors.AppError {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fe))
		}
		return errors.NewValidationError(
			"Validation failed",
			strings.Join(messages, "; "),
		)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	switch {
	case stderrors.As(err, &syntaxErr):
		return errors.NewValidationError("Malformed JSON body", syntaxErr.Error())
	case stderrors.As(err, &typeErr):
		return errors.NewValidationError("Invalid field type", fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type))
	case stderrors.As(err, &timeErr):
		return errors.NewValidationError("Invalid date or time", timeErr.Error())
	case err != nil && strings.Contains(err.Error(), "EOF"):
		return errors.NewValidationError("Request body is required")
	}
	return nil
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "payment_method":
		return fmt.Sprintf("%s must be one of [cash card transfer other]", field)
	case "civil_date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
