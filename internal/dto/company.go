package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
)

// CompanySettingsRequest overrides per-tenant preferences; omitted fields keep
// their defaults.
type CompanySettingsRequest struct {
	Theme           *string `json:"theme"`
	Currency        *string `json:"currency"`
	Language        *string `json:"language"`
	Timezone        *string `json:"timezone"`
	InvoicePrefix   *string `json:"invoicePrefix"`
	FiscalYearStart *string `json:"fiscalYearStart"`
}

// CreateCompanyRequest defines the data needed to register a tenant company.
type CreateCompanyRequest struct {
	Name                string                  `json:"name" binding:"required"`
	Logo                string                  `json:"logo"`
	Address             string                  `json:"address"`
	SubscriptionEndDate time.Time               `json:"subscriptionEndDate" binding:"required"`
	SubscriptionType    string                  `json:"subscriptionType"`
	ContactEmail        string                  `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone        string                  `json:"contactPhone"`
	Website             string                  `json:"website"`
	TaxNumber           string                  `json:"taxNumber"`
	Notes               string                  `json:"notes"`
	Settings            *CompanySettingsRequest `json:"settings"`
}

// UpdateCompanyRequest defines the updatable company fields.
type UpdateCompanyRequest struct {
	Name                *string                 `json:"name"`
	Logo                *string                 `json:"logo"`
	Address             *string                 `json:"address"`
	SubscriptionEndDate *time.Time              `json:"subscriptionEndDate"`
	SubscriptionType    *string                 `json:"subscriptionType"`
	ContactEmail        *string                 `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone        *string                 `json:"contactPhone"`
	Website             *string                 `json:"website"`
	TaxNumber           *string                 `json:"taxNumber"`
	Notes               *string                 `json:"notes"`
	Settings            *CompanySettingsRequest `json:"settings"`
}

// ListCompaniesParams defines query parameters for listing companies.
// ExpiringWithinDays narrows the list to companies whose subscription ends
// within that many days and is not already expired.
type ListCompaniesParams struct {
	ExpiringWithinDays int `form:"expiringWithinDays" binding:"omitempty,gt=0"`
}

// AuthorizeUserRequest grants a user access to the company.
type AuthorizeUserRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID           string                 `json:"companyID"`
	Name                string                 `json:"name"`
	Logo                string                 `json:"logo,omitempty"`
	Address             string                 `json:"address,omitempty"`
	RegistrationDate    time.Time              `json:"registrationDate"`
	SubscriptionEndDate time.Time              `json:"subscriptionEndDate"`
	SubscriptionType    string                 `json:"subscriptionType"`
	SubscriptionStatus  string                 `json:"subscriptionStatus"`
	ContactEmail        string                 `json:"contactEmail,omitempty"`
	ContactPhone        string                 `json:"contactPhone,omitempty"`
	Website             string                 `json:"website,omitempty"`
	TaxNumber           string                 `json:"taxNumber,omitempty"`
	AuthorizedUsers     []string               `json:"authorizedUsers"`
	Notes               string                 `json:"notes,omitempty"`
	Settings            domain.CompanySettings `json:"settings"`
	CreatedAt           time.Time              `json:"createdAt"`
	LastUpdatedAt       time.Time              `json:"lastUpdatedAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:           c.CompanyID,
		Name:                c.Name,
		Logo:                c.Logo,
		Address:             c.Address,
		RegistrationDate:    c.RegistrationDate,
		SubscriptionEndDate: c.SubscriptionEndDate,
		SubscriptionType:    c.SubscriptionType,
		SubscriptionStatus:  string(c.SubscriptionStatus),
		ContactEmail:        c.ContactEmail,
		ContactPhone:        c.ContactPhone,
		Website:             c.Website,
		TaxNumber:           c.TaxNumber,
		AuthorizedUsers:     c.AuthorizedUsers,
		Notes:               c.Notes,
		Settings:            c.Settings,
		CreatedAt:           c.CreatedAt,
		LastUpdatedAt:       c.LastUpdatedAt,
	}
}

// ToCompanyResponses converts a slice of domain.Company to []CompanyResponse.
func ToCompanyResponses(companies []domain.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}
