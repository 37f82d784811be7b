package query

import (
	"strings"

	"giftcatalog/internal/models"
)

// GiftRow is a concrete gift together with the suggestion it belongs to.
// In-memory matchers need the parent for suggestion-joined predicates.
type GiftRow struct {
	Gift       *models.ConcreteGift
	Suggestion *models.GiftSuggestion
}

// GiftFilter filters concrete gifts.
type GiftFilter = Filter[GiftRow]

func InSuggestion(id string) Predicate[GiftRow] {
	return Where("gift_suggestion_id = ?", func(r GiftRow) bool { return r.Gift.GiftSuggestionID == id }, id)
}

func VendorIs(name string) Predicate[GiftRow] {
	return Where("vendor_name = ?", func(r GiftRow) bool { return r.Gift.VendorName == name }, name)
}

func AvailableIs(available bool) Predicate[GiftRow] {
	return Where("available = ?", func(r GiftRow) bool { return r.Gift.Available == available }, available)
}

// PriceAtLeast and PriceAtMost test the exact price as a point, bounds included.
func PriceAtLeast(lo float64) Predicate[GiftRow] {
	return Where("exact_price >= ?", func(r GiftRow) bool { return r.Gift.ExactPrice >= lo }, lo)
}

func PriceAtMost(hi float64) Predicate[GiftRow] {
	return Where("exact_price <= ?", func(r GiftRow) bool { return r.Gift.ExactPrice <= hi }, hi)
}

// SuggestionMatches joins through the parent suggestion: the gift matches when
// its suggestion satisfies f.
func SuggestionMatches(f SuggestionFilter) Predicate[GiftRow] {
	clause, args := f.SQL()
	return Where("gift_suggestion_id IN (SELECT id FROM gift_suggestions WHERE "+clause+")",
		func(r GiftRow) bool { return r.Suggestion != nil && f.Matches(r.Suggestion) },
		args...)
}

// GiftCriteria is the flat advanced gift search. Nil fields match anything.
type GiftCriteria struct {
	GiftSuggestionID *string  `json:"giftSuggestionId,omitempty"`
	VendorName       *string  `json:"vendorName,omitempty"`
	Available        *bool    `json:"available,omitempty"`
	MinPrice         *float64 `json:"minPrice,omitempty"`
	MaxPrice         *float64 `json:"maxPrice,omitempty"`
}

// Validate rejects blank text filters and unusable price bounds.
func (c GiftCriteria) Validate() error {
	if c.GiftSuggestionID != nil && strings.TrimSpace(*c.GiftSuggestionID) == "" {
		return models.InvalidArgument("giftSuggestionId cannot be blank")
	}
	if c.VendorName != nil && strings.TrimSpace(*c.VendorName) == "" {
		return models.InvalidArgument("vendorName cannot be blank")
	}
	return models.RangeAsArgument(models.CheckPriceBounds(c.MinPrice, c.MaxPrice))
}

// Filter turns the criteria into a filter.
func (c GiftCriteria) Filter() GiftFilter {
	var f GiftFilter
	if c.GiftSuggestionID != nil {
		f = f.And(InSuggestion(*c.GiftSuggestionID))
	}
	if c.VendorName != nil {
		f = f.And(VendorIs(*c.VendorName))
	}
	if c.Available != nil {
		f = f.And(AvailableIs(*c.Available))
	}
	if c.MinPrice != nil {
		f = f.And(PriceAtLeast(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		f = f.And(PriceAtMost(*c.MaxPrice))
	}
	return f
}

// JoinedGiftCriteria combines gift criteria with category criteria on the parent suggestion.
type JoinedGiftCriteria struct {
	Suggestion SuggestionCriteria `json:"suggestion"`
	Gift       GiftCriteria       `json:"gift"`
}

func (c JoinedGiftCriteria) Validate() error {
	if err := c.Suggestion.Validate(); err != nil {
		return err
	}
	return c.Gift.Validate()
}

// Filter adds the suggestion join only when a suggestion criterion is set.
func (c JoinedGiftCriteria) Filter() GiftFilter {
	f := c.Gift.Filter()
	if sf := c.Suggestion.Filter(); sf.Len() > 0 {
		f = f.And(SuggestionMatches(sf))
	}
	return f
}
