package domain

// User represents an application user. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Phone        string  `json:"phone"`
	Role         string  `json:"role"`
	Notes        string  `json:"notes,omitempty"`
	CompanyID    *string `json:"companyID,omitempty"`
	AuditFields
}
