package account

import "time"

// User is a registered account. The password hash never leaves the service.
type User struct {
	UserID       string    `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Organisation is a tenant/group entity. One is created automatically for
// every new user; more can be created explicitly.
type Organisation struct {
	OrgID       string    `json:"orgId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Membership links a user to an organisation and gates organisation access.
type Membership struct {
	UserID    string    `json:"userId"`
	OrgID     string    `json:"orgId"`
	CreatedAt time.Time `json:"-"`
}
