package handler

import (
	"log/slog"
	"os"
	"path/filepath"

	"ucstore-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
	uploadsDir  string
}

func NewUserHandler(userService service.UserService, uploadsDir string) *UserHandler {
	return &UserHandler{userService: userService, uploadsDir: uploadsDir}
}

// GetUser returns a single profile
// GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Params("id"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(user)
}

// UpsertUser creates or replaces a profile by id
// POST /api/users
func (h *UserHandler) UpsertUser(c *fiber.Ctx) error {
	var req service.UpsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.UpsertUser(&req)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(user)
}

// UploadAvatar stores the multipart "avatar" file under the uploads dir
// POST /api/users/:id/avatar
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	id := c.Params("id")

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file"})
	}
	if _, err := h.userService.GetUser(id); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	name := h.userService.AvatarFileName(id, file.Filename)
	if err := c.SaveFile(file, filepath.Join(h.uploadsDir, name)); err != nil {
		slog.Error("save avatar", "user_id", id, "error", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save file"})
	}

	user, err := h.userService.SetAvatar(id, name)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(user)
}
