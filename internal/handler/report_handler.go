package handler

import (
	"bytes"
	"io"
	"log/slog"

	"ucstore-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) csv(c *fiber.Ctx, name string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		slog.Error("csv report", "report", name, "error", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) Products(c *fiber.Ctx) error {
	return h.csv(c, "products.csv", h.service.WriteProducts)
}

func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	return h.csv(c, "sales.csv", h.service.WriteSales)
}

func (h *ReportHandler) Financials(c *fiber.Ctx) error {
	return h.csv(c, "financials.csv", h.service.WriteFinancials)
}
