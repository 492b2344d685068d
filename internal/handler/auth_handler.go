package handler

import (
	"ucstore-inventory/internal/middleware"
	"ucstore-inventory/internal/service"
	"ucstore-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	tokens      *jwt.Manager
}

func NewAuthHandler(authService service.AuthService, tokens *jwt.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(response)
}

// Me returns the caller's profile
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
	}

	user, err := h.authService.Me(userID)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(user)
}

// ValidateToken reports whether a token is still accepted
// POST /api/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Token is required"})
	}

	claims, err := h.tokens.ValidateToken(req.Token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"valid": false, "error": "Invalid or expired token"})
	}
	return c.JSON(fiber.Map{
		"valid":    true,
		"userId":   claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
