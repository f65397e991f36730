package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"dinein/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom tags used by request payloads on
// gin's validator and makes field errors report json names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
			return model.PaymentStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("category_status", func(fl validator.FieldLevel) bool {
			return model.CategoryStatus(fl.Field().String()).Valid()
		})
	})
}

// ValidationErrors converts a binding error into a field -> message map.
// ok is false when err is not a validation failure.
func ValidationErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "payment_status":
		return fmt.Sprintf("must be one of: %s", joinStatuses())
	case "category_status":
		return "must be one of: Enabled Disabled Deleted"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "eq":
		return "must be " + fe.Param()
	}
	return "is invalid"
}

func joinStatuses() string {
	parts := make([]string, len(model.PaymentStatuses))
	for i, s := range model.PaymentStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}
