package handler

import (
	"ucstore-inventory/internal/middleware"
	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Inventory *InventoryHandler
	Stats     *StatsHandler
	Reports   *ReportHandler
	Users     *UserHandler
	Auth      *AuthHandler

	AuthGate   *middleware.Auth
	LoginLimit fiber.Handler // optional
	Hub        *ws.Hub       // optional
	UploadsDir string
}

// Register mounts the /api routes, the /ws feed and static /uploads on app.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	login := []fiber.Handler{h.Auth.Login}
	if h.LoginLimit != nil {
		login = append([]fiber.Handler{h.LoginLimit}, login...)
	}
	auth.Post("/login", login...)
	auth.Post("/validate-token", h.Auth.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", h.AuthGate.RequireAuth())
	admin := h.AuthGate.RequireRole(model.RoleAdmin)

	protected.Get("/auth/me", h.Auth.Me)

	protected.Get("/products", h.Inventory.GetProducts)
	protected.Get("/products/low-stock", h.Inventory.GetLowStock)
	protected.Get("/products/:id", h.Inventory.GetProduct)
	protected.Post("/products", admin, h.Inventory.CreateProduct)
	protected.Put("/products/:id", admin, h.Inventory.UpdateProduct)
	protected.Delete("/products/:id", admin, h.Inventory.DeleteProduct)

	protected.Get("/sales", h.Inventory.GetSales)
	protected.Post("/sales", h.Inventory.CreateSale)

	protected.Get("/purchases", h.Inventory.GetPurchases)
	protected.Post("/purchases", admin, h.Inventory.CreatePurchase)

	protected.Get("/stats/summary", h.Stats.GetSummary)
	protected.Get("/stats/recent", h.Stats.GetRecent)
	protected.Get("/stats/movement", h.Stats.GetMovement)
	protected.Get("/stats/top-products", h.Stats.GetTopProducts)
	protected.Get("/stats/monthly", h.Stats.GetMonthly)

	protected.Get("/reports/products.csv", h.Reports.Products)
	protected.Get("/reports/sales.csv", h.Reports.Sales)
	protected.Get("/reports/financials.csv", h.Reports.Financials)

	protected.Get("/users/:id", h.Users.GetUser)
	protected.Post("/users", h.Users.UpsertUser)
	protected.Post("/users/:id/avatar", h.Users.UploadAvatar)

	if h.UploadsDir != "" {
		app.Static("/uploads", h.UploadsDir)
	}

	if h.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(h.Hub.Serve))
	}
}
