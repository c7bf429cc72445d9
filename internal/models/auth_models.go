package models

import "time"

// Team represents one club (the scoping unit for every other record).
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" db:"name"`
	City      *string   `json:"city,omitempty" db:"city"`
	LogoURL   *string   `json:"logo_url,omitempty" db:"logo_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// User represents an operator account for a team dashboard.
type User struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"team_id" db:"team_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Email        *string   `json:"email,omitempty" db:"email"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Role         string    `json:"role" db:"role"` // "Admin" or "Staff"
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Team         *Team     `json:"team,omitempty"` // For joining with Team details
}

// User roles
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// AuthContext carries the authenticated caller's identity into the service
// layer. It is built by the auth middleware from JWT claims and passed
// explicitly; services never read ambient auth state.
type AuthContext struct {
	UserID   int64  `json:"user_id"`
	TeamID   int64  `json:"team_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
