package dto

import (
	"time"

	"github.com/yukikurage/diet-tracker-api/internal/models"
)

// UserDTO represents the caller's own account in API responses
type UserDTO struct {
	Email          string        `json:"email"`
	Name           string        `json:"name"`
	Gender         models.Gender `json:"gender"`
	ProfilePicture string        `json:"profile_picture"`
}

// AdminUserDTO represents a user in staff-only responses
type AdminUserDTO struct {
	ID          uint64        `json:"id"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	Gender      models.Gender `json:"gender"`
	LastLogin   *time.Time    `json:"last_login"`
	IsActive    bool          `json:"is_active"`
	IsStaff     bool          `json:"is_staff"`
	IsSuperuser bool          `json:"is_superuser"`
}

// TokenResponse is returned by the token endpoints
type TokenResponse struct {
	Token string `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Email:          user.Email,
		Name:           user.Name,
		Gender:         user.Gender,
		ProfilePicture: user.ProfilePicture,
	}
}

// ToAdminUserDTO converts a User model to AdminUserDTO
func ToAdminUserDTO(user models.User) AdminUserDTO {
	return AdminUserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Gender:      user.Gender,
		LastLogin:   user.LastLogin,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}

// ToAdminUserDTOs converts a slice of users
func ToAdminUserDTOs(users []models.User) []AdminUserDTO {
	items := make([]AdminUserDTO, len(users))
	for i, u := range users {
		items[i] = ToAdminUserDTO(u)
	}
	return items
}
