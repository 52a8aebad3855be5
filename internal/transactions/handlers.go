package transactions

import (
	"errors"
	"strconv"

	"github.com/ilmsadmin/zbase-sub005/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles transaction HTTP handlers.
type Handlers struct {
	Service *Service
}

// Create POST /api/v1/transactions
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateTransactionInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	tx, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvoiceMissing):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidDirection), errors.Is(err, ErrMethodRequired):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Transaction recorded successfully", tx, nil)
}

// List GET /api/v1/transactions?invoice_id=
func (h *Handlers) List(c *fiber.Ctx) error {
	var invoiceID *uint
	if raw := c.Query("invoice_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return response.Error(c, "Invalid invoice_id", fiber.StatusBadRequest, nil)
		}
		v := uint(id)
		invoiceID = &v
	}
	txs, err := h.Service.List(c.Context(), invoiceID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Transactions fetched successfully", txs, nil)
}
