package klingo

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all request types. A validator.Validate is stateless
// after registration and safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterStructValidation(validateCameraControl, CameraControl{})
	return v
}

// validateStruct runs tag and struct-level validation and converts failures
// into a validation-kind APIError with per-field details.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &APIError{Kind: ErrKindValidation, Message: err.Error()}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return &APIError{
		Kind:    ErrKindValidation,
		Message: "invalid request parameters",
		Fields:  fields,
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "camera_single_axis":
		return "exactly one camera movement parameter must be non-zero when type is simple"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
