package handlers

import (
	"strconv"
	"strings"

	"giftcatalog/internal/models"
	"giftcatalog/internal/query"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePageable reads page (zero-based), size and any number of
// sort=field[,asc|desc] parameters.
func parsePageable(c *fiber.Ctx) (query.Pageable, error) {
	page, err := intParam(c, "page", 0)
	if err != nil {
		return query.Pageable{}, err
	}
	size, err := intParam(c, "size", defaultPageSize)
	if err != nil {
		return query.Pageable{}, err
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var sort []query.Order
	for _, raw := range c.Context().QueryArgs().PeekMulti("sort") {
		field, dir, _ := strings.Cut(string(raw), ",")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := query.Order{Field: field, Direction: query.Asc}
		if dir = strings.TrimSpace(dir); dir != "" {
			order.Direction = query.Direction(strings.ToUpper(dir))
		}
		sort = append(sort, order)
	}
	return query.PageOf(page, size, sort...), nil
}

func intParam(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.InvalidArgument("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func floatParam(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || !models.IsFinite(f) {
		return nil, models.InvalidArgument("%s must be a number, got %q", key, raw)
	}
	return &f, nil
}

func requiredFloat(c *fiber.Ctx, key string) (float64, error) {
	f, err := floatParam(c, key)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return 0, models.InvalidArgument("%s is required", key)
	}
	return *f, nil
}

func boolParam(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, models.InvalidArgument("%s must be true or false, got %q", key, raw)
	}
	return &b, nil
}

func stringParam(c *fiber.Ctx, key string) *string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	return &raw
}

// enumParam reads an upper-cased enum value; validity is checked by the criteria.
func enumParam[E ~string](c *fiber.Ctx, key string) *E {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v := E(strings.ToUpper(raw))
	return &v
}

func parseSuggestionCriteria(c *fiber.Ctx) (query.SuggestionCriteria, error) {
	budget, err := floatParam(c, "maxBudget")
	if err != nil {
		return query.SuggestionCriteria{}, err
	}
	return query.SuggestionCriteria{
		AgeGroup:        enumParam[models.AgeGroup](c, "ageGroup"),
		Gender:          enumParam[models.Gender](c, "gender"),
		Interest:        enumParam[models.Interest](c, "interest"),
		Occasion:        enumParam[models.Occasion](c, "occasion"),
		Relationship:    enumParam[models.Relationship](c, "relationship"),
		PersonalityType: enumParam[models.PersonalityType](c, "personalityType"),
		MaxBudget:       budget,
	}, nil
}

func parseGiftCriteria(c *fiber.Ctx) (query.GiftCriteria, error) {
	available, err := boolParam(c, "available")
	if err != nil {
		return query.GiftCriteria{}, err
	}
	minPrice, err := floatParam(c, "minPrice")
	if err != nil {
		return query.GiftCriteria{}, err
	}
	maxPrice, err := floatParam(c, "maxPrice")
	if err != nil {
		return query.GiftCriteria{}, err
	}
	return query.GiftCriteria{
		GiftSuggestionID: stringParam(c, "giftSuggestionId"),
		VendorName:       stringParam(c, "vendorName"),
		Available:        available,
		MinPrice:         minPrice,
		MaxPrice:         maxPrice,
	}, nil
}
