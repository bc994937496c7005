package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
)

// Custom validation tags
const (
	TagSlug             = "slug"
	TagImageContentType = "image_content_type"
)

// SetupValidator configures gin's validator: JSON field names in errors and
// the storefront's custom tags.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return RegisterValidators(v)
}

// RegisterValidators adds the custom tags to v.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	if err := v.RegisterValidation(TagSlug, validateSlug); err != nil {
		return err
	}
	return v.RegisterValidation(TagImageContentType, validateImageContentType)
}

// validateSlug accepts values that are valid once trimmed and lowercased.
func validateSlug(fl validator.FieldLevel) bool {
	return catalog.IsValidSlug(catalog.NormalizeSlug(fl.Field().String()))
}

func validateImageContentType(fl validator.FieldLevel) bool {
	return catalog.IsAllowedImageContentType(strings.TrimSpace(fl.Field().String()))
}

// ValidationDetails turns validator errors into per-field messages. Other
// errors give nil.
func ValidationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case TagSlug:
		return "Slug may only contain lowercase letters, digits and single hyphens"
	case TagImageContentType:
		return "Only JPEG, PNG and WEBP images are allowed"
	default:
		return "Invalid value"
	}
}
