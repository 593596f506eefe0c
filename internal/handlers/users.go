package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/dto"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

// UserAdminHandler serves the staff-only user management endpoints.
type UserAdminHandler struct {
	authService *services.AuthService
}

func NewUserAdminHandler(authService *services.AuthService) *UserAdminHandler {
	return &UserAdminHandler{authService: authService}
}

// ListUsers lists every user ordered by id descending.
func (h *UserAdminHandler) ListUsers(c *gin.Context) {
	users, total, err := h.authService.ListUsers(utils.OptionalPagination(c))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respondList(c, total, dto.ToAdminUserDTOs(users))
}

func (h *UserAdminHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(id)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminUserDTO(*user))
}

// UpdateUser changes the profile and flags of a user.
func (h *UserAdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	type AdminUpdateRequest struct {
		Email       *string        `json:"email"`
		Name        *string        `json:"name"`
		Gender      *models.Gender `json:"gender"`
		IsActive    *bool          `json:"is_active"`
		IsStaff     *bool          `json:"is_staff"`
		IsSuperuser *bool          `json:"is_superuser"`
	}

	var req AdminUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, isFullUpdate(c), map[string]bool{"email": req.Email != nil}) {
		return
	}

	user, err := h.authService.AdminUpdateUser(id, services.AdminUpdateInput{
		Email:       req.Email,
		Name:        req.Name,
		Gender:      req.Gender,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminUserDTO(*user))
}

// DeleteUser removes a user and everything the user owns.
func (h *UserAdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteUser(id); err != nil {
		respondAuthError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
