package products

import (
	"errors"
	"strconv"

	"github.com/ilmsadmin/zbase-sub005/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles product HTTP handlers.
type Handlers struct {
	Service *Service
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrSKURequired),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrSKUTaken),
		errors.Is(err, ErrPartnerMissing),
		errors.Is(err, ErrNoUpdateFields):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	return uint(id), err == nil && id != 0
}

// Create POST /api/v1/products
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateProductInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessCreated(c, "Product created successfully", p, nil)
}

// List GET /api/v1/products?search=
func (h *Handlers) List(c *fiber.Ctx) error {
	ps, err := h.Service.List(c.Context(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Products fetched successfully", ps, nil)
}

// Get GET /api/v1/products/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid product ID", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Product fetched successfully", p, nil)
}

// Update PATCH /api/v1/products/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid product ID", fiber.StatusBadRequest, nil)
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Update(c.Context(), id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Product updated successfully", p, nil)
}

// Remove DELETE /api/v1/products/:id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid product ID", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Remove(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Product deleted successfully", nil, nil)
}
