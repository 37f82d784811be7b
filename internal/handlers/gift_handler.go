package handlers

import (
	"giftcatalog/internal/models"
	"giftcatalog/internal/query"
	"giftcatalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GiftHandler handles HTTP requests for concrete gifts.
type GiftHandler struct {
	service *services.ConcreteGiftService
}

// NewGiftHandler creates a new GiftHandler.
func NewGiftHandler(service *services.ConcreteGiftService) *GiftHandler {
	return &GiftHandler{
		service: service,
	}
}

// RegisterRoutes registers the concrete gift routes. writeGuards run before
// every mutating route.
func (h *GiftHandler) RegisterRoutes(router fiber.Router, writeGuards ...fiber.Handler) {
	routes := router.Group("/gifts")
	routes.Get("/", h.HandleGetGifts)
	routes.Get("/search", h.HandleSearchGifts)
	routes.Get("/count", h.HandleCountGifts)
	routes.Get("/matching", h.HandleMatchingGifts)
	routes.Get("/price-range", h.HandlePriceRange)
	routes.Get("/:id", h.HandleGetGiftByID)
	routes.Post("/", guarded(writeGuards, h.HandleCreateGift)...)
	routes.Put("/:id", guarded(writeGuards, h.HandleUpdateGift)...)
	routes.Delete("/:id", guarded(writeGuards, h.HandleDeleteGift)...)
}

// HandleGetGifts returns one page of all concrete gifts.
func (h *GiftHandler) HandleGetGifts(c *fiber.Ctx) error {
	page, err := parsePageable(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve concrete gifts")
	}
	result, err := h.service.GetGiftPage(page)
	if err != nil {
		return respondError(c, err, "Could not retrieve concrete gifts")
	}
	return c.JSON(result)
}

// HandleSearchGifts runs the flat advanced criteria search.
func (h *GiftHandler) HandleSearchGifts(c *fiber.Ctx) error {
	criteria, err := parseGiftCriteria(c)
	if err != nil {
		return respondError(c, err, "Could not search concrete gifts")
	}
	page, err := parsePageable(c)
	if err != nil {
		return respondError(c, err, "Could not search concrete gifts")
	}
	result, err := h.service.FindByAdvancedCriteria(criteria, page)
	if err != nil {
		return respondError(c, err, "Could not search concrete gifts")
	}
	return c.JSON(result)
}

// HandleCountGifts counts with the flat advanced criteria.
func (h *GiftHandler) HandleCountGifts(c *fiber.Ctx) error {
	criteria, err := parseGiftCriteria(c)
	if err != nil {
		return respondError(c, err, "Could not count concrete gifts")
	}
	count, err := h.service.CountByAdvancedCriteria(criteria)
	if err != nil {
		return respondError(c, err, "Could not count concrete gifts")
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleMatchingGifts searches gifts by their own fields and the categories of
// their suggestion.
func (h *GiftHandler) HandleMatchingGifts(c *fiber.Ctx) error {
	suggestion, err := parseSuggestionCriteria(c)
	if err != nil {
		return respondError(c, err, "Could not search concrete gifts")
	}
	gift, err := parseGiftCriteria(c)
	if err != nil {
		return respondError(c, err, "Could not search concrete gifts")
	}
	page, err := parsePageable(c)
	if err != nil {
		return respondError(c, err, "Could not search concrete gifts")
	}
	result, err := h.service.FindBySuggestionAndCriteria(query.JoinedGiftCriteria{Suggestion: suggestion, Gift: gift}, page)
	if err != nil {
		return respondError(c, err, "Could not search concrete gifts")
	}
	return c.JSON(result)
}

// HandlePriceRange returns gifts priced within [min, max].
func (h *GiftHandler) HandlePriceRange(c *fiber.Ctx) error {
	minPrice, err := requiredFloat(c, "min")
	if err != nil {
		return respondError(c, err, "Could not find concrete gifts by price")
	}
	maxPrice, err := requiredFloat(c, "max")
	if err != nil {
		return respondError(c, err, "Could not find concrete gifts by price")
	}
	gifts, err := h.service.FindByPriceRange(minPrice, maxPrice)
	if err != nil {
		return respondError(c, err, "Could not find concrete gifts by price")
	}
	return c.JSON(gifts)
}

// HandleGetGiftByID retrieves a single concrete gift.
func (h *GiftHandler) HandleGetGiftByID(c *fiber.Ctx) error {
	gift, err := h.service.GetGiftByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve concrete gift")
	}
	return c.JSON(gift)
}

// HandleCreateGift creates a concrete gift under an existing suggestion.
func (h *GiftHandler) HandleCreateGift(c *fiber.Ctx) error {
	var in models.ConcreteGiftInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	gift, err := h.service.CreateGift(in)
	if err != nil {
		return respondError(c, err, "Could not create concrete gift")
	}
	return c.Status(fiber.StatusCreated).JSON(gift)
}

// HandleUpdateGift replaces an existing concrete gift.
func (h *GiftHandler) HandleUpdateGift(c *fiber.Ctx) error {
	var in models.ConcreteGiftInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	gift, err := h.service.UpdateGift(c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "Could not update concrete gift")
	}
	return c.JSON(gift)
}

// HandleDeleteGift deletes a concrete gift.
func (h *GiftHandler) HandleDeleteGift(c *fiber.Ctx) error {
	if err := h.service.DeleteGift(c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete concrete gift")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
