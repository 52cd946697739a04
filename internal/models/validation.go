package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationErrors maps a JSON field name to a human readable message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("foodtype", func(fl validator.FieldLevel) bool {
			return FoodType(fl.Field().String()).IsValid()
		})
		_ = validate.RegisterValidation("packaging", func(fl validator.FieldLevel) bool {
			return Packaging(fl.Field().String()).IsValid()
		})
	})
	return validate
}

// ValidateInput checks the bounds a new food item must satisfy before it
// reaches the inventory store.
func ValidateInput(in FoodItemInput) error {
	return toValidationErrors(validatorInstance().Struct(in))
}

// ValidatePatch checks the fields present in a partial update
func ValidatePatch(p FoodItemPatch) error {
	return toValidationErrors(validatorInstance().Struct(p))
}

// ValidateConditions checks storage conditions submitted for an estimate
func ValidateConditions(c Conditions) error {
	return toValidationErrors(validatorInstance().Struct(c))
}

func toValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		switch fe.Field() {
		case "temperature":
			return "Temperature is required"
		case "humidity":
			return "Humidity is required"
		}
		return "is required"
	}
	switch fe.Field() {
	case "name":
		return "Food name is required"
	case "temperature":
		return "Temperature must be between -30°C and 50°C"
	case "humidity":
		return "Humidity must be between 0% and 100%"
	case "foodType":
		return fmt.Sprintf("unknown food type %q", fe.Value())
	case "packaging":
		return fmt.Sprintf("unknown packaging %q", fe.Value())
	}
	return fmt.Sprintf("failed on %s", fe.Tag())
}
