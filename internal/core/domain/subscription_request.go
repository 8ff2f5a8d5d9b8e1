package domain

import "time"

// RequestStatus is the review state of a subscription request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// SubscriptionRequest is a prospective tenant's signup request, reviewed by an
// operator.
type SubscriptionRequest struct {
	RequestID      string        `json:"requestID"` // Primary Key (UUID)
	CompanyName    string        `json:"companyName"`
	CompanyAvatar  string        `json:"companyAvatar,omitempty"`
	ContactName    string        `json:"contactName"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Country        string        `json:"country"`
	CompanySize    string        `json:"companySize"`
	Industry       string        `json:"industry"`
	Plan           string        `json:"plan"`
	AdditionalInfo string        `json:"additionalInfo,omitempty"`
	Status         RequestStatus `json:"status"`
	ProcessedBy    *string       `json:"processedBy,omitempty"`
	ProcessedAt    *time.Time    `json:"processedAt,omitempty"`
	AuditFields
}

// ValidRequestStatus reports whether s is an allowed subscription-request status.
func ValidRequestStatus(s string) bool {
	switch RequestStatus(s) {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}
