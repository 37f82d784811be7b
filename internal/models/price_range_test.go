package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestCheckPriceRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		reason   RangeViolation
		field    string
	}{
		{name: "valid", min: price(10), max: price(100)},
		{name: "equal bounds", min: price(25), max: price(25)},
		{name: "missing min", max: price(10), reason: InvalidRange, field: "minPrice"},
		{name: "missing max", min: price(10), reason: InvalidRange, field: "maxPrice"},
		{name: "zero min", min: price(0), max: price(10), reason: NonPositiveBound, field: "minPrice"},
		{name: "negative max", min: price(1), max: price(-5), reason: NonPositiveBound, field: "maxPrice"},
		{name: "inverted", min: price(100), max: price(10), reason: InvertedRange, field: "minPrice"},
		{name: "NaN bounds", min: price(math.NaN()), max: price(math.NaN()), reason: NonFiniteBound, field: "minPrice"},
		{name: "NaN max", min: price(1), max: price(math.NaN()), reason: NonFiniteBound, field: "maxPrice"},
		{name: "infinite max", min: price(1), max: price(math.Inf(1)), reason: NonFiniteBound, field: "maxPrice"},
		{name: "negative infinite min", min: price(math.Inf(-1)), max: price(10), reason: NonFiniteBound, field: "minPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPriceRange(tt.min, tt.max)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			var rangeErr *PriceRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.reason, rangeErr.Reason)
			assert.Equal(t, tt.field, rangeErr.Field)
		})
	}
}

func TestCheckPriceBounds_AllowsMissingBounds(t *testing.T) {
	assert.NoError(t, CheckPriceBounds(nil, nil))
	assert.NoError(t, CheckPriceBounds(price(5), nil))
	assert.NoError(t, CheckPriceBounds(nil, price(5)))
	assert.Error(t, CheckPriceBounds(price(-1), nil))
	assert.Error(t, CheckPriceBounds(price(50), price(5)))
	assert.Error(t, CheckPriceBounds(price(math.NaN()), nil))
	assert.Error(t, CheckPriceBounds(nil, price(math.Inf(1))))
	assert.Contains(t, CheckPriceBounds(nil, price(math.NaN())).Error(), "maxPrice must be a finite number")
}

func TestGiftSuggestion_Contains_IsInclusive(t *testing.T) {
	s := &GiftSuggestion{MinPrice: 10, MaxPrice: 100}

	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(100))
	assert.True(t, s.Contains(55.5))
	assert.False(t, s.Contains(9.99))
	assert.False(t, s.Contains(100.01))
}

func TestGiftSuggestion_CheckBand(t *testing.T) {
	assert.NoError(t, (&GiftSuggestion{MinPrice: 1, MaxPrice: 2}).CheckBand())

	err := (&GiftSuggestion{MinPrice: 20, MaxPrice: 2}).CheckBand()
	assert.ErrorIs(t, err, ErrValidation)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "minPrice", validationErr.Field)
}

func TestErrorMessages(t *testing.T) {
	above := &PriceOutOfRangeError{Price: 200, Bound: "maximum", Limit: 100}
	assert.Contains(t, above.Error(), "above maximum price")
	assert.Contains(t, above.Error(), "200.00")
	assert.ErrorIs(t, above, ErrPriceOutOfRange)

	below := &PriceOutOfRangeError{Price: 5, Bound: "minimum", Limit: 10}
	assert.Contains(t, below.Error(), "below minimum price (10.00)")

	notFound := NewNotFoundError("gift suggestion", "abc")
	assert.Equal(t, "gift suggestion with ID abc not found", notFound.Error())
	assert.ErrorIs(t, notFound, ErrNotFound)

	assert.ErrorIs(t, InvalidArgument("bad %s", "input"), ErrInvalidArgument)
}
