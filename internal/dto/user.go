package dto

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AdminUserDTO is a user as shown to admins
type AdminUserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt"`
}

// UpdateUserFlagsRequest changes the flags that are present
type UpdateUserFlagsRequest struct {
	IsActive *bool `json:"isActive"`
	IsAdmin  *bool `json:"isAdmin"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User, withEmail bool) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
	if withEmail {
		dto.Email = user.Email
	}
	return dto
}

func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u, false)
	}
	return dtos
}

func ToAdminUserDTOs(users []models.User) []AdminUserDTO {
	dtos := make([]AdminUserDTO, len(users))
	for i, u := range users {
		dtos[i] = AdminUserDTO{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			IsActive:  u.IsActive,
			IsAdmin:   u.IsAdmin,
			CreatedAt: utils.FormatDate(u.CreatedAt),
		}
	}
	return dtos
}
