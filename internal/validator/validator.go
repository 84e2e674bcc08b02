package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/shopspring/decimal"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared validator, building it on first use
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", validators.NotBlank)

		// report fields by their JSON name so details match the request body
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// decimals validate as floats so numeric tags (required, gt) apply
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// DefaultHint is the user-facing message for a rejected request
const DefaultHint = "Datos incompletos en la solicitud"

// ValidateRequest validates req and returns an ErrValidation error listing every failed field
func ValidateRequest(req interface{}) error {
	return ValidateWithHint(req, "", DefaultHint)
}

// ValidateWithHint is ValidateRequest with a field prefix (e.g. "productos[2]")
// and a custom user-facing message.
func ValidateWithHint(req interface{}, prefix, hint string) error {
	if err := GetValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fe := range validateErrs {
				details[fieldPath(prefix, fe.Field())] = describe(fe)
			}
		}
		return ierr.WithError(err).
			WithHint(hint).
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func fieldPath(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
	case "email":
		return "must be a valid email address"
	case "notblank":
		return "must not be blank"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
