package models

import (
	"fmt"
	"math"
)

// RangeViolation names the rule a price interval broke.
type RangeViolation string

const (
	InvalidRange     RangeViolation = "InvalidRange"
	NonPositiveBound RangeViolation = "NonPositiveBound"
	InvertedRange    RangeViolation = "InvertedRange"
	NonFiniteBound   RangeViolation = "NonFiniteBound"
)

// PriceRangeError reports why [min, max] is not a usable price interval.
// Field is "minPrice" or "maxPrice" so callers can attach it to the input.
type PriceRangeError struct {
	Reason RangeViolation
	Field  string
}

func (e *PriceRangeError) Error() string {
	switch e.Reason {
	case InvalidRange:
		return fmt.Sprintf("%s is required", e.Field)
	case NonPositiveBound:
		if e.Field == "minPrice" {
			return "minimum price must be positive"
		}
		return "maximum price must be positive"
	case NonFiniteBound:
		return fmt.Sprintf("%s must be a finite number", e.Field)
	default:
		return "minimum price cannot be greater than maximum price"
	}
}

// CheckPriceRange validates a closed price interval. Nil bounds count as missing.
func CheckPriceRange(minPrice, maxPrice *float64) error {
	if minPrice == nil {
		return &PriceRangeError{Reason: InvalidRange, Field: "minPrice"}
	}
	if maxPrice == nil {
		return &PriceRangeError{Reason: InvalidRange, Field: "maxPrice"}
	}
	if err := checkFinite(minPrice, maxPrice); err != nil {
		return err
	}
	if *minPrice <= 0 {
		return &PriceRangeError{Reason: NonPositiveBound, Field: "minPrice"}
	}
	if *maxPrice <= 0 {
		return &PriceRangeError{Reason: NonPositiveBound, Field: "maxPrice"}
	}
	if *minPrice > *maxPrice {
		return &PriceRangeError{Reason: InvertedRange, Field: "minPrice"}
	}
	return nil
}

// CheckPriceBounds is CheckPriceRange for search filters where either bound may
// be absent. Present bounds must be positive and, if both are set, ordered.
func CheckPriceBounds(minPrice, maxPrice *float64) error {
	if err := checkFinite(minPrice, maxPrice); err != nil {
		return err
	}
	if minPrice != nil && *minPrice <= 0 {
		return &PriceRangeError{Reason: NonPositiveBound, Field: "minPrice"}
	}
	if maxPrice != nil && *maxPrice <= 0 {
		return &PriceRangeError{Reason: NonPositiveBound, Field: "maxPrice"}
	}
	if minPrice != nil && maxPrice != nil {
		return CheckPriceRange(minPrice, maxPrice)
	}
	return nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkFinite(minPrice, maxPrice *float64) error {
	if minPrice != nil && !IsFinite(*minPrice) {
		return &PriceRangeError{Reason: NonFiniteBound, Field: "minPrice"}
	}
	if maxPrice != nil && !IsFinite(*maxPrice) {
		return &PriceRangeError{Reason: NonFiniteBound, Field: "maxPrice"}
	}
	return nil
}
