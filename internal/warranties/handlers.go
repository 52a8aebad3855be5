package warranties

import (
	"errors"
	"strconv"
	"time"

	"github.com/ilmsadmin/zbase-sub005/internal/middleware"
	"github.com/ilmsadmin/zbase-sub005/internal/models"
	"github.com/ilmsadmin/zbase-sub005/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles warranty HTTP handlers.
type Handlers struct {
	Service *Service
}

// respondServiceError maps the service error taxonomy to HTTP statuses:
// validation and conflict failures are 400, not-found is 404, the rest 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	var ce *ConflictError
	var nfe *NotFoundError
	switch {
	case errors.As(err, &ve):
		return response.Error(c, ve.Message, fiber.StatusBadRequest, nil)
	case errors.As(err, &ce):
		return response.Error(c, ce.Message, fiber.StatusBadRequest, nil)
	case errors.As(err, &nfe):
		return response.NotFound(c, nfe.Message)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("Invalid warranty ID")
	}
	return uint(id), nil
}

// Create POST /api/v1/warranties
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateWarrantyInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if in.CreatorID == nil {
		if uid := middleware.GetSessionUserID(c); uid != 0 {
			in.CreatorID = &uid
		}
	}
	w, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.SuccessCreated(c, "Warranty created successfully", w, nil)
}

// FindAll GET /api/v1/warranties
func (h *Handlers) FindAll(c *fiber.Ctx) error {
	filters, err := parseListFilters(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	ws, err := h.Service.FindAll(c.Context(), filters)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Warranties fetched successfully", ws, nil)
}

// FindOne GET /api/v1/warranties/:id
func (h *Handlers) FindOne(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	w, err := h.Service.FindOne(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Warranty fetched successfully", w, nil)
}

// FindByCode GET /api/v1/warranties/code/:code
func (h *Handlers) FindByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return response.Error(c, "Warranty code is required", fiber.StatusBadRequest, nil)
	}
	w, err := h.Service.FindByCode(c.Context(), code)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Warranty fetched successfully", w, nil)
}

// Update PATCH /api/v1/warranties/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	var in UpdateWarrantyInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if uid := middleware.GetSessionUserID(c); uid != 0 {
		in.ActorUserID = &uid
	}
	w, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Warranty updated successfully", w, nil)
}

// Remove DELETE /api/v1/warranties/:id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	w, err := h.Service.Remove(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Warranty deleted successfully", w, nil)
}

// ListEvents GET /api/v1/warranties/:id/events
func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	events, err := h.Service.ListEvents(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return response.Success(c, "Warranty events fetched successfully", events, nil)
}

// parseListFilters reads the open set of optional query criteria. ID fields
// arrive as strings and parse to uint; dates accept RFC3339 or YYYY-MM-DD.
func parseListFilters(c *fiber.Ctx) (ListFilters, error) {
	f := ListFilters{
		Code:         c.Query("code"),
		SerialNumber: c.Query("serial_number"),
	}
	if st := c.Query("status"); st != "" {
		status := models.WarrantyStatus(st)
		if !models.IsValidStatus(status) {
			return f, errors.New("Invalid warranty status: " + st)
		}
		f.Status = status
	}
	for name, dst := range map[string]**uint{
		"customer_id":   &f.CustomerID,
		"product_id":    &f.ProductID,
		"invoice_id":    &f.InvoiceID,
		"technician_id": &f.TechnicianID,
		"creator_id":    &f.CreatorID,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, errors.New("Invalid " + name)
		}
		id := uint(v)
		*dst = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, errors.New("Invalid start_date")
		}
		f.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, errors.New("Invalid end_date")
		}
		f.EndDate = &t
	}
	return f, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
