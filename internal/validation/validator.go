package validation

import (
	"errors"
	"reflect"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"

	"github.com/go-playground/validator/v10"
)

// Validator checks inbound request bodies against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{validate: v}
}

// ValidateGenerateQuestionsRequest trims the topic and reports every rejected field.
func (v *Validator) ValidateGenerateQuestionsRequest(req *dto.GenerateQuestionsRequest) domain.ValidationErrors {
	req.Topic = strings.TrimSpace(req.Topic)
	req.Type = strings.TrimSpace(req.Type)
	return v.Struct(req)
}

// Struct validates s and converts validator failures into domain.ValidationErrors.
func (v *Validator) Struct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "body", Message: err.Error()}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(fe.Field())
	case "min", "max":
		if fe.Kind() == reflect.String {
			return domain.ValidationError{
				Field:   fe.Field(),
				Message: "length must satisfy " + fe.Tag() + "=" + fe.Param(),
				Value:   fe.Value(),
			}
		}
		return domain.ValidationError{
			Field:   fe.Field(),
			Message: "must satisfy " + fe.Tag() + "=" + fe.Param(),
			Value:   fe.Value(),
		}
	case "oneof":
		return domain.ValidationError{
			Field:   fe.Field(),
			Message: "must be one of: " + fe.Param(),
			Value:   fe.Value(),
		}
	default:
		return domain.NewInvalidFormatError(fe.Field(), fe.Value())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
