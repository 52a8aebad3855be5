package users

import (
	"errors"
	"strconv"

	"github.com/ilmsadmin/zbase-sub005/internal/middleware"
	"github.com/ilmsadmin/zbase-sub005/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles user HTTP handlers.
type Handlers struct {
	Service *Service
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrTargetUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, ErrUsernameRequired),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrFullnameRequired),
		errors.Is(err, ErrInvalidFullname),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrNoUpdateFields),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrMustKeepOneSuperadmin),
		errors.Is(err, ErrCannotRemoveLastSuperuser):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, ErrOnlyAdminsAssignAdmins), errors.Is(err, ErrCannotModifyOwnRole):
		return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	return uint(id), err == nil && id != 0
}

// Create POST /api/v1/users
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.CreateUser(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessCreated(c, "User created successfully", u, nil)
}

// List GET /api/v1/users
func (h *Handlers) List(c *fiber.Ctx) error {
	us, err := h.Service.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Users fetched successfully", us, nil)
}

// Get GET /api/v1/users/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid user ID", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.ViewUser(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "User fetched successfully", u, nil)
}

// Update PATCH /api/v1/users/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid user ID", fiber.StatusBadRequest, nil)
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.UpdateUser(c.Context(), id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "User updated successfully", u, nil)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole PATCH /api/v1/users/:id/role
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid user ID", fiber.StatusBadRequest, nil)
	}
	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.UpdateUserRole(c.Context(), RoleAssignmentParams{
		ActorUserID:  middleware.GetSessionUserID(c),
		ActorRole:    middleware.GetSessionRole(c),
		TargetUserID: id,
		TargetRole:   req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "User role updated successfully", u, nil)
}

// Remove DELETE /api/v1/users/:id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, "Invalid user ID", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.RemoveUser(c.Context(), middleware.GetSessionUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "User removed successfully", nil, nil)
}
