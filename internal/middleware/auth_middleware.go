package middleware

import (
	"strings"

	"ucstore-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set for downstream handlers.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalUserRole = "user_role"
)

// Auth gates routes behind bearer tokens. With Enabled false tokens are still
// read when sent, but nothing is rejected.
type Auth struct {
	Tokens  *jwt.Manager
	Enabled bool
}

func NewAuth(tokens *jwt.Manager, enabled bool) *Auth {
	return &Auth{Tokens: tokens, Enabled: enabled}
}

// bearer extracts the token from "Bearer <token>".
func bearer(c *fiber.Ctx) (string, bool) {
	parts := strings.Split(c.Get(fiber.HeaderAuthorization), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth validates the JWT and sets user info in context.
func (a *Auth) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			if !a.Enabled {
				return c.Next()
			}
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		tokenString, ok := bearer(c)
		if !ok {
			if !a.Enabled {
				return c.Next()
			}
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := a.Tokens.ValidateToken(tokenString)
		if err != nil {
			if !a.Enabled {
				return c.Next()
			}
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserName, claims.Username)
		c.Locals(LocalUserRole, claims.Role)
		return c.Next()
	}
}

// RequireRole checks the role placed in context by RequireAuth.
func (a *Auth) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !a.Enabled {
			return c.Next()
		}
		role, ok := c.Locals(LocalUserRole).(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(roles, ", ") + " roles",
		})
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
