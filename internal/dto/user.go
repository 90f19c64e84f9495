package dto

import (
	"time"

	"github.com/adisharma/job-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	IsActive      bool       `json:"is_active"`
	IsStaff       bool       `json:"is_staff"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		IsActive:      user.IsActive,
		IsStaff:       user.IsStaff,
		EmailVerified: user.EmailVerified,
		LastLogin:     user.LastLogin,
	}
}
