package inventory

import (
	"errors"

	"github.com/ilmsadmin/zbase-sub005/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles inventory HTTP handlers.
type Handlers struct {
	Service *Service
}

// ViewStock GET /api/v1/inventory/view-stock
func (h *Handlers) ViewStock(c *fiber.Ctx) error {
	views, err := h.Service.ViewStock(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stock fetched successfully", views, nil)
}

type adjustStockRequest struct {
	ProductID    uint `json:"product_id"`
	Delta        int  `json:"delta"`
	ReorderPoint *int `json:"reorder_point"`
}

// AdjustStock POST /api/v1/inventory/adjust-stock
func (h *Handlers) AdjustStock(c *fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == 0 {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	level, err := h.Service.AdjustStock(c.Context(), req.ProductID, req.Delta, req.ReorderPoint)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductMissing):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrNegativeStock):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Stock adjusted successfully", level, nil)
}
