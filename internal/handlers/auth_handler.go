package handlers

import (
	"log"

	"giftcatalog/internal/models"
	"giftcatalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for curator authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", guarded(guards, h.HandleRegister)...)
	authRoutes.Post("/login", guarded(guards, h.HandleLogin)...)
}

// HandleRegister handles new curator registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var curator models.Curator
	if err := c.BodyParser(&curator); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	if err := h.authService.RegisterCurator(&curator); err != nil {
		log.Printf("Error registering curator: %v", err)
		return respondError(c, err, "Could not register curator")
	}

	curator.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Curator registered successfully",
		"curator": curator,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles curator login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := models.ValidateStruct(req); err != nil {
		return respondError(c, err, "Could not log in")
	}

	token, err := h.authService.LoginCurator(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for curator %s: %v", req.Username, err)
		return c.Status(statusOf(err)).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
