package domain

import "time"

// SubscriptionStatus is the billing state of a company's subscription.
type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// CompanySettings holds per-tenant presentation and bookkeeping preferences.
type CompanySettings struct {
	Theme           string `json:"theme"`
	Currency        string `json:"currency"`
	Language        string `json:"language"`
	Timezone        string `json:"timezone"`
	InvoicePrefix   string `json:"invoicePrefix"`
	FiscalYearStart string `json:"fiscalYearStart"`
}

// DefaultCompanySettings returns the settings applied to a new company.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		Theme:           "light",
		Currency:        "USD",
		Language:        "en",
		Timezone:        "UTC",
		InvoicePrefix:   "INV-",
		FiscalYearStart: "01-01",
	}
}

// Company is the tenant entity that owns customers, suppliers, products and users.
type Company struct {
	CompanyID           string             `json:"companyID"` // Primary Key (UUID)
	Name                string             `json:"name"`
	Logo                string             `json:"logo,omitempty"`
	Address             string             `json:"address,omitempty"`
	RegistrationDate    time.Time          `json:"registrationDate"`
	SubscriptionEndDate time.Time          `json:"subscriptionEndDate"`
	SubscriptionType    string             `json:"subscriptionType"`
	SubscriptionStatus  SubscriptionStatus `json:"subscriptionStatus"`
	ContactEmail        string             `json:"contactEmail,omitempty"`
	ContactPhone        string             `json:"contactPhone,omitempty"`
	Website             string             `json:"website,omitempty"`
	TaxNumber           string             `json:"taxNumber,omitempty"`
	AuthorizedUsers     []string           `json:"authorizedUsers"`
	Notes               string             `json:"notes,omitempty"`
	Settings            CompanySettings    `json:"settings"`
	AuditFields
}

// RefreshSubscriptionStatus marks the subscription expired once the end date has
// passed. Runs before every persist.
func (c *Company) RefreshSubscriptionStatus(now time.Time) {
	if c.SubscriptionEndDate.Before(now) {
		c.SubscriptionStatus = SubscriptionExpired
	}
}
