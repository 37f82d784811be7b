package handlers

import (
	"errors"
	"log"

	"giftcatalog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusOf maps a domain error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrPriceOutOfRange):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as a JSON body. message is the summary shown for
// server errors; client errors show the error text itself.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s: %v", message, err)
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}

	body := fiber.Map{"message": err.Error()}
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		body["message"] = "Validation failed"
		errs := make(map[string]string, len(validationErr.Violations))
		for _, v := range validationErr.Violations {
			if _, seen := errs[v.Field]; !seen {
				errs[v.Field] = v.Message
			}
		}
		if len(errs) == 0 {
			errs[validationErr.Field] = validationErr.Message
		}
		body["field"] = validationErr.Field
		body["errors"] = errs
	}
	var priceErr *models.PriceOutOfRangeError
	if errors.As(err, &priceErr) {
		body["bound"] = priceErr.Bound
		body["limit"] = priceErr.Limit
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
