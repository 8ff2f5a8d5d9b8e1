package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
)

// CreateSubscriptionRequestRequest defines a prospective tenant's signup data.
type CreateSubscriptionRequestRequest struct {
	CompanyName    string `json:"companyName" binding:"required"`
	CompanyAvatar  string `json:"companyAvatar"`
	ContactName    string `json:"contactName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	Country        string `json:"country" binding:"required"`
	CompanySize    string `json:"companySize" binding:"required"`
	Industry       string `json:"industry" binding:"required"`
	Plan           string `json:"plan" binding:"required"`
	AdditionalInfo string `json:"additionalInfo"`
}

// ProcessSubscriptionRequestRequest approves or rejects a pending request.
type ProcessSubscriptionRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ListSubscriptionRequestsParams defines query parameters for listing requests.
type ListSubscriptionRequestsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// SubscriptionRequestResponse defines the data returned for a request.
type SubscriptionRequestResponse struct {
	RequestID      string     `json:"requestID"`
	CompanyName    string     `json:"companyName"`
	CompanyAvatar  string     `json:"companyAvatar,omitempty"`
	ContactName    string     `json:"contactName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Country        string     `json:"country"`
	CompanySize    string     `json:"companySize"`
	Industry       string     `json:"industry"`
	Plan           string     `json:"plan"`
	AdditionalInfo string     `json:"additionalInfo,omitempty"`
	Status         string     `json:"status"`
	ProcessedBy    *string    `json:"processedBy,omitempty"`
	ProcessedAt    *time.Time `json:"processedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ToSubscriptionRequestResponse converts a domain.SubscriptionRequest to its DTO.
func ToSubscriptionRequestResponse(r *domain.SubscriptionRequest) SubscriptionRequestResponse {
	return SubscriptionRequestResponse{
		RequestID:      r.RequestID,
		CompanyName:    r.CompanyName,
		CompanyAvatar:  r.CompanyAvatar,
		ContactName:    r.ContactName,
		Email:          r.Email,
		Phone:          r.Phone,
		Country:        r.Country,
		CompanySize:    r.CompanySize,
		Industry:       r.Industry,
		Plan:           r.Plan,
		AdditionalInfo: r.AdditionalInfo,
		Status:         string(r.Status),
		ProcessedBy:    r.ProcessedBy,
		ProcessedAt:    r.ProcessedAt,
		CreatedAt:      r.CreatedAt,
	}
}

// ToSubscriptionRequestResponses converts a slice of domain.SubscriptionRequest.
func ToSubscriptionRequestResponses(requests []domain.SubscriptionRequest) []SubscriptionRequestResponse {
	responses := make([]SubscriptionRequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToSubscriptionRequestResponse(&requests[i])
	}
	return responses
}
