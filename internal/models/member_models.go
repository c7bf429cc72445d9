package models

import "time"

// Member status values
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

// Member kinds, used where a payment or document references either entity.
const (
	MemberKindPlayer = "player"
	MemberKindCoach  = "coach"
)

// Player represents a registered player of the club.
type Player struct {
	ID                int64     `json:"id"`
	TeamID            int64     `json:"team_id" db:"team_id"`
	FirstName         string    `json:"first_name" db:"first_name" binding:"required"`
	LastName          string    `json:"last_name" db:"last_name" binding:"required"`
	BirthDate         *string   `json:"birth_date,omitempty" db:"birth_date"` // Format YYYY-MM-DD
	PhoneNumber       *string   `json:"phone_number,omitempty" db:"phone_number"`
	Email             *string   `json:"email,omitempty" db:"email"`
	Category          *string   `json:"category,omitempty" db:"category"` // Age category, e.g. "U15", "Senior"
	Position          *string   `json:"position,omitempty" db:"position"`
	PhotoURL          *string   `json:"photo_url,omitempty" db:"photo_url"`
	MedicalCertURL    *string   `json:"medical_cert_url,omitempty" db:"medical_cert_url"`
	MedicalCertExpiry *string   `json:"medical_cert_expiry,omitempty" db:"medical_cert_expiry"` // Format YYYY-MM-DD
	EntryDate         *string   `json:"entry_date,omitempty" db:"entry_date"`
	ExitDate          *string   `json:"exit_date,omitempty" db:"exit_date"`
	Status            string    `json:"status" db:"status"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the display name used on leaderboards and documents.
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Coach represents a coach employed by the club.
type Coach struct {
	ID          int64     `json:"id"`
	TeamID      int64     `json:"team_id" db:"team_id"`
	FirstName   string    `json:"first_name" db:"first_name" binding:"required"`
	LastName    string    `json:"last_name" db:"last_name" binding:"required"`
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Specialty   *string   `json:"specialty,omitempty" db:"specialty"` // e.g. "Goalkeeping", "Fitness"
	Salary      *float64  `json:"salary,omitempty" db:"salary"`
	PhotoURL    *string   `json:"photo_url,omitempty" db:"photo_url"`
	EntryDate   *string   `json:"entry_date,omitempty" db:"entry_date"`
	ExitDate    *string   `json:"exit_date,omitempty" db:"exit_date"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the coach display name.
func (c *Coach) FullName() string {
	return c.FirstName + " " + c.LastName
}
