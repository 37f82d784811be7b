package handlers

import (
	"giftcatalog/internal/models"
	"giftcatalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SuggestionHandler handles HTTP requests for gift suggestions.
type SuggestionHandler struct {
	suggestions *services.GiftSuggestionService
	gifts       *services.ConcreteGiftService
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestions *services.GiftSuggestionService, gifts *services.ConcreteGiftService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestions: suggestions,
		gifts:       gifts,
	}
}

// RegisterRoutes registers the suggestion routes. writeGuards run before every
// mutating route.
func (h *SuggestionHandler) RegisterRoutes(router fiber.Router, writeGuards ...fiber.Handler) {
	routes := router.Group("/suggestions")
	routes.Get("/", h.HandleGetSuggestions)
	routes.Get("/search", h.HandleSearchSuggestions)
	routes.Get("/count", h.HandleCountSuggestions)
	routes.Get("/budget", h.HandleWithinBudget)
	routes.Get("/affordable", h.HandleAffordable)
	routes.Get("/:id", h.HandleGetSuggestionByID)
	routes.Get("/:id/gifts", h.HandleGetSuggestionGifts)
	routes.Post("/", guarded(writeGuards, h.HandleCreateSuggestion)...)
	routes.Put("/:id", guarded(writeGuards, h.HandleUpdateSuggestion)...)
	routes.Delete("/:id", guarded(writeGuards, h.HandleDeleteSuggestion)...)
}

// HandleGetSuggestions returns one page of all suggestions.
func (h *SuggestionHandler) HandleGetSuggestions(c *fiber.Ctx) error {
	page, err := parsePageable(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve gift suggestions")
	}
	result, err := h.suggestions.GetSuggestionPage(page)
	if err != nil {
		return respondError(c, err, "Could not retrieve gift suggestions")
	}
	return c.JSON(result)
}

// HandleSearchSuggestions runs the advanced criteria search.
func (h *SuggestionHandler) HandleSearchSuggestions(c *fiber.Ctx) error {
	criteria, err := parseSuggestionCriteria(c)
	if err != nil {
		return respondError(c, err, "Could not search gift suggestions")
	}
	page, err := parsePageable(c)
	if err != nil {
		return respondError(c, err, "Could not search gift suggestions")
	}
	result, err := h.suggestions.FindByAdvancedCriteria(criteria, page)
	if err != nil {
		return respondError(c, err, "Could not search gift suggestions")
	}
	return c.JSON(result)
}

// HandleCountSuggestions counts with the advanced criteria.
func (h *SuggestionHandler) HandleCountSuggestions(c *fiber.Ctx) error {
	criteria, err := parseSuggestionCriteria(c)
	if err != nil {
		return respondError(c, err, "Could not count gift suggestions")
	}
	count, err := h.suggestions.CountByAdvancedCriteria(criteria)
	if err != nil {
		return respondError(c, err, "Could not count gift suggestions")
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleWithinBudget returns the suggestions whose band overlaps [min, max].
func (h *SuggestionHandler) HandleWithinBudget(c *fiber.Ctx) error {
	minBudget, err := requiredFloat(c, "min")
	if err != nil {
		return respondError(c, err, "Could not find gift suggestions within budget")
	}
	maxBudget, err := requiredFloat(c, "max")
	if err != nil {
		return respondError(c, err, "Could not find gift suggestions within budget")
	}
	page, err := parsePageable(c)
	if err != nil {
		return respondError(c, err, "Could not find gift suggestions within budget")
	}
	result, err := h.suggestions.FindGiftsWithinBudgetPage(minBudget, maxBudget, page)
	if err != nil {
		return respondError(c, err, "Could not find gift suggestions within budget")
	}
	return c.JSON(result)
}

// HandleAffordable returns the suggestions with minPrice at most budget.
func (h *SuggestionHandler) HandleAffordable(c *fiber.Ctx) error {
	budget, err := requiredFloat(c, "budget")
	if err != nil {
		return respondError(c, err, "Could not find affordable gift suggestions")
	}
	result, err := h.suggestions.FindAffordableGifts(budget)
	if err != nil {
		return respondError(c, err, "Could not find affordable gift suggestions")
	}
	return c.JSON(result)
}

// HandleGetSuggestionByID retrieves a single suggestion.
func (h *SuggestionHandler) HandleGetSuggestionByID(c *fiber.Ctx) error {
	suggestion, err := h.suggestions.GetSuggestionByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve gift suggestion")
	}
	return c.JSON(suggestion)
}

// HandleGetSuggestionGifts pages through a suggestion's concrete gifts,
// optionally filtered by availability.
func (h *SuggestionHandler) HandleGetSuggestionGifts(c *fiber.Ctx) error {
	id := c.Params("id")
	available, err := boolParam(c, "available")
	if err != nil {
		return respondError(c, err, "Could not retrieve concrete gifts")
	}
	page, err := parsePageable(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve concrete gifts")
	}
	if available != nil {
		result, err := h.gifts.FindBySuggestionIDAndAvailablePage(id, *available, page)
		if err != nil {
			return respondError(c, err, "Could not retrieve concrete gifts")
		}
		return c.JSON(result)
	}
	result, err := h.gifts.FindBySuggestionIDPage(id, page)
	if err != nil {
		return respondError(c, err, "Could not retrieve concrete gifts")
	}
	return c.JSON(result)
}

// HandleCreateSuggestion creates a new suggestion.
func (h *SuggestionHandler) HandleCreateSuggestion(c *fiber.Ctx) error {
	var in models.GiftSuggestionInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	suggestion, err := h.suggestions.CreateSuggestion(in)
	if err != nil {
		return respondError(c, err, "Could not create gift suggestion")
	}
	return c.Status(fiber.StatusCreated).JSON(suggestion)
}

// HandleUpdateSuggestion replaces an existing suggestion.
func (h *SuggestionHandler) HandleUpdateSuggestion(c *fiber.Ctx) error {
	var in models.GiftSuggestionInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	suggestion, err := h.suggestions.UpdateSuggestion(c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "Could not update gift suggestion")
	}
	return c.JSON(suggestion)
}

// HandleDeleteSuggestion deletes a suggestion and its concrete gifts.
func (h *SuggestionHandler) HandleDeleteSuggestion(c *fiber.Ctx) error {
	if err := h.suggestions.DeleteSuggestion(c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete gift suggestion")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, h)
}
