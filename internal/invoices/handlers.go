package invoices

import (
	"errors"
	"strconv"
	"time"

	"github.com/ilmsadmin/zbase-sub005/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles invoice HTTP handlers.
type Handlers struct {
	Service *Service
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, ErrCodeRequired),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrCodeTaken),
		errors.Is(err, ErrCustomerMissing):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	return uint(id), err == nil && id != 0
}

// Create POST /api/v1/invoices
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateInvoiceInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessCreated(c, "Invoice created successfully", inv, nil)
}

// List GET /api/v1/invoices?customer_id=&status=&start_date=&end_date=
func (h *Handlers) List(c *fiber.Ctx) error {
	var f ListFilters
	if raw := c.Query("customer_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return response.Error(c, "Invalid customer_id", fiber.StatusBadRequest, nil)
		}
		id := uint(v)
		f.CustomerID = &id
	}
	f.Status = c.Query("status")
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return response.Error(c, "Invalid start_date", fiber.StatusBadRequest, nil)
		}
		f.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return response.Error(c, "Invalid end_date", fiber.StatusBadRequest, nil)
		}
		f.EndDate = &t
	}

	invs, err := h.Service.List(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Invoices fetched successfully", invs, nil)
}

// Get GET /api/v1/invoices/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid invoice ID", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Invoice fetched successfully", inv, nil)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus PATCH /api/v1/invoices/:id/status
func (h *Handlers) SetStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid invoice ID", fiber.StatusBadRequest, nil)
	}
	var req setStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.SetStatus(c.Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Invoice status updated successfully", inv, nil)
}

// Remove DELETE /api/v1/invoices/:id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid invoice ID", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Remove(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Invoice deleted successfully", nil, nil)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
