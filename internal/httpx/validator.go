package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// ValidateStruct runs the validate tags of s and returns one detail per
// failing field, or nil.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Field: "", Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		param := fe.Param()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "notblank":
			message = fmt.Sprintf("%s must not be blank", field)
		case "min":
			message = fmt.Sprintf("%s must have at least %s item(s) or characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{
			Field:   lowerFirst(field),
			Message: message,
		})
	}
	return details
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
