package query

import (
	"strings"

	"giftcatalog/internal/models"
)

// SuggestionFilter filters gift suggestions.
type SuggestionFilter = Filter[*models.GiftSuggestion]

func AgeGroupIs(v models.AgeGroup) Predicate[*models.GiftSuggestion] {
	return Where("age_group = ?", func(s *models.GiftSuggestion) bool { return s.AgeGroup == v }, string(v))
}

func GenderIs(v models.Gender) Predicate[*models.GiftSuggestion] {
	return Where("gender = ?", func(s *models.GiftSuggestion) bool { return s.Gender == v }, string(v))
}

func InterestIs(v models.Interest) Predicate[*models.GiftSuggestion] {
	return Where("interest = ?", func(s *models.GiftSuggestion) bool { return s.Interest == v }, string(v))
}

func OccasionIs(v models.Occasion) Predicate[*models.GiftSuggestion] {
	return Where("occasion = ?", func(s *models.GiftSuggestion) bool { return s.Occasion == v }, string(v))
}

func RelationshipIs(v models.Relationship) Predicate[*models.GiftSuggestion] {
	return Where("relationship = ?", func(s *models.GiftSuggestion) bool { return s.Relationship == v }, string(v))
}

func PersonalityTypeIs(v models.PersonalityType) Predicate[*models.GiftSuggestion] {
	return Where("personality_type = ?", func(s *models.GiftSuggestion) bool { return s.PersonalityType == v }, string(v))
}

// BandOverlaps matches suggestions whose [minPrice, maxPrice] intersects
// [lo, hi]: maxPrice >= lo AND minPrice <= hi.
func BandOverlaps(lo, hi float64) Predicate[*models.GiftSuggestion] {
	return Where("max_price >= ? AND min_price <= ?", func(s *models.GiftSuggestion) bool {
		return s.MaxPrice >= lo && s.MinPrice <= hi
	}, lo, hi)
}

// MinPriceAtMost matches suggestions that can be bought for budget or less.
func MinPriceAtMost(budget float64) Predicate[*models.GiftSuggestion] {
	return Where("min_price <= ?", func(s *models.GiftSuggestion) bool { return s.MinPrice <= budget }, budget)
}

// MaxPriceAtLeast matches suggestions whose band reaches at least floor.
func MaxPriceAtLeast(floor float64) Predicate[*models.GiftSuggestion] {
	return Where("max_price >= ?", func(s *models.GiftSuggestion) bool { return s.MaxPrice >= floor }, floor)
}

// SuggestionCriteria is the advanced suggestion search. Nil fields match anything.
type SuggestionCriteria struct {
	AgeGroup        *models.AgeGroup        `json:"ageGroup,omitempty"`
	Gender          *models.Gender          `json:"gender,omitempty"`
	Interest        *models.Interest        `json:"interest,omitempty"`
	Occasion        *models.Occasion        `json:"occasion,omitempty"`
	Relationship    *models.Relationship    `json:"relationship,omitempty"`
	PersonalityType *models.PersonalityType `json:"personalityType,omitempty"`
	MaxBudget       *float64                `json:"maxBudget,omitempty"`
}

// Validate rejects unknown enum values and a non-positive budget.
func (c SuggestionCriteria) Validate() error {
	var unknown []string
	if c.AgeGroup != nil && !c.AgeGroup.Valid() {
		unknown = append(unknown, "ageGroup")
	}
	if c.Gender != nil && !c.Gender.Valid() {
		unknown = append(unknown, "gender")
	}
	if c.Interest != nil && !c.Interest.Valid() {
		unknown = append(unknown, "interest")
	}
	if c.Occasion != nil && !c.Occasion.Valid() {
		unknown = append(unknown, "occasion")
	}
	if c.Relationship != nil && !c.Relationship.Valid() {
		unknown = append(unknown, "relationship")
	}
	if c.PersonalityType != nil && !c.PersonalityType.Valid() {
		unknown = append(unknown, "personalityType")
	}
	if len(unknown) > 0 {
		return models.InvalidArgument("unknown value for %s", strings.Join(unknown, ", "))
	}
	if c.MaxBudget != nil && !models.IsFinite(*c.MaxBudget) {
		return models.InvalidArgument("maxBudget must be a finite number")
	}
	if c.MaxBudget != nil && *c.MaxBudget <= 0 {
		return models.InvalidArgument("maxBudget must be positive")
	}
	return nil
}

// Filter turns the criteria into a filter; maxBudget applies as minPrice <= maxBudget.
func (c SuggestionCriteria) Filter() SuggestionFilter {
	var f SuggestionFilter
	if c.AgeGroup != nil {
		f = f.And(AgeGroupIs(*c.AgeGroup))
	}
	if c.Gender != nil {
		f = f.And(GenderIs(*c.Gender))
	}
	if c.Interest != nil {
		f = f.And(InterestIs(*c.Interest))
	}
	if c.Occasion != nil {
		f = f.And(OccasionIs(*c.Occasion))
	}
	if c.Relationship != nil {
		f = f.And(RelationshipIs(*c.Relationship))
	}
	if c.PersonalityType != nil {
		f = f.And(PersonalityTypeIs(*c.PersonalityType))
	}
	if c.MaxBudget != nil {
		f = f.And(MinPriceAtMost(*c.MaxBudget))
	}
	return f
}
