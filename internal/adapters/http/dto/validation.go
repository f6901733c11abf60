package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/quotevault/quotevault/internal/domain"
)

var (
	// ErrValidation wraps request bodies that decoded but broke a rule.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps request bodies that could not be decoded.
	ErrBinding = errors.New("binding failed")
)

// Validator returns the request validator. Fields are reported by their JSON
// names and the "category" rule accepts any selector label.
var Validator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCategory(fl.Field().String())
		return err == nil
	})

	return v
})

func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and checks it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

// ValidationErrors maps each offending JSON field to a readable message.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out
	}

	for _, fe := range fieldErrs {
		out[fe.Field()] = fieldMessage(fe)
	}

	return out
}

func categoryList() string {
	labels := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		labels = append(labels, string(c))
	}

	return strings.Join(labels, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "category":
		return "must be one of: " + categoryList()
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must be at most " + fe.Param() + unit
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed validation: " + fe.Tag()
	}
}
