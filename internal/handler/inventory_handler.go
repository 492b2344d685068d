package handler

import (
	"ucstore-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GET /api/products
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(products)
}

// GET /api/products/low-stock
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.ListLowStock()
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(product)
}

// POST /api/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// PUT /api/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.UpdateProduct(c.Params("id"), &req)
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(product)
}

// DELETE /api/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GET /api/sales?productId=
func (h *InventoryHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.ListSales(c.Query("productId"))
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(sales)
}

// POST /api/sales
func (h *InventoryHandler) CreateSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	result, err := h.service.RecordSale(&req)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GET /api/purchases?productId=
func (h *InventoryHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.ListPurchases(c.Query("productId"))
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(purchases)
}

// POST /api/purchases
func (h *InventoryHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.RecordPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	result, err := h.service.RecordPurchase(&req)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
