package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Username  string  `json:"username" binding:"required,min=3"`
	Password  string  `json:"password" binding:"required,min=8"`
	Phone     string  `json:"phone" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	Notes     string  `json:"notes"`
	CompanyID *string `json:"companyID"`
}

// UpdateUserRequest defines the updatable user fields. Password, when set,
// is re-hashed before persistence.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Notes     *string `json:"notes"`
	CompanyID *string `json:"companyID"`
}

// LoginRequest defines the credentials for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID        string    `json:"userID"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Username      string    `json:"username"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	Notes         string    `json:"notes,omitempty"`
	CompanyID     *string   `json:"companyID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Username:      u.Username,
		Phone:         u.Phone,
		Role:          u.Role,
		Notes:         u.Notes,
		CompanyID:     u.CompanyID,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to []UserResponse.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
