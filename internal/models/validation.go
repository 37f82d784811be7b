package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so messages match the request payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// A blank URL counts as absent.
	mustRegister(v, "httpurl", func(fl validator.FieldLevel) bool {
		url := strings.TrimSpace(fl.Field().String())
		return url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
	})
	mustRegister(v, "finite", func(fl validator.FieldLevel) bool {
		return IsFinite(fl.Field().Float())
	})
	mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
		enum, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && enum.Valid()
	})

	v.RegisterStructValidation(suggestionBandRule, GiftSuggestionInput{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// suggestionBandRule is the class-level price band check. Missing or
// non-positive bounds are already reported by the field tags.
func suggestionBandRule(sl validator.StructLevel) {
	in := sl.Current().Interface().(GiftSuggestionInput)
	if in.MinPrice == nil || in.MaxPrice == nil {
		return
	}
	var rangeErr *PriceRangeError
	if errors.As(CheckPriceRange(in.MinPrice, in.MaxPrice), &rangeErr) && rangeErr.Reason == InvertedRange {
		sl.ReportError(*in.MinPrice, rangeErr.Field, "MinPrice", "pricerange", "")
	}
}

// ValidateStruct validates v and converts the result into a *ValidationError
// naming the first offending field. All violations are kept in Violations.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %T: %w", v, err)
	}

	violations := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, ValidationError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	first := violations[0]
	first.Violations = violations
	return &first
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", fe.Field())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "finite":
		return fmt.Sprintf("%s must be a finite number", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be positive", fe.Field())
	case "enum":
		return fmt.Sprintf("%s has unknown value %v", fe.Field(), fe.Value())
	case "httpurl":
		return fmt.Sprintf("%s must start with http:// or https://", fe.Field())
	case "pricerange":
		return "minimum price cannot be greater than maximum price"
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
}
