package domain

import "time"

// User models a registered account. Accounts are never physically deleted;
// deactivation is signalled via IsActive.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Preferences holds per-user assistant defaults (preferred language,
// test framework, documentation style).
type Preferences struct {
	UserID    string            `json:"user_id"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
