package models

import "time"

// Payment statuses derived from remaining balance and due date.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
	PaymentStatusOverdue = "Overdue"
)

// Payment types
const (
	PaymentTypeMembership = "membership" // member owes the club
	PaymentTypeSalary     = "salary"     // club owes a coach
)

// Payment represents one billing cycle for one member (player or coach).
// Invariants maintained by the ledger logic in the service layer:
//   - Remaining == TotalAmount - Advance, never negative
//   - sum(History[].Amount) == Advance
//   - Status is Paid iff Remaining == 0, else Overdue when DueDate has
//     passed, else Pending.
type Payment struct {
	ID          int64                `json:"id"`
	TeamID      int64                `json:"team_id" db:"team_id"`
	MemberID    int64                `json:"member_id" db:"member_id"`
	MemberKind  string               `json:"member_kind" db:"member_kind"` // "player" or "coach"
	MemberName  string               `json:"member_name" db:"member_name"` // denormalized snapshot
	PaymentType string               `json:"payment_type" db:"payment_type"`
	TotalAmount float64              `json:"total_amount" db:"total_amount"`
	Advance     float64              `json:"advance" db:"advance"`
	Remaining   float64              `json:"remaining" db:"remaining"`
	DueDate     time.Time            `json:"due_date" db:"due_date"`
	Status      string               `json:"status" db:"status"`
	History     []PaymentTransaction `json:"history,omitempty"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" db:"updated_at"`
}

// PaymentTransaction is one partial-payment entry in a Payment's history.
type PaymentTransaction struct {
	ID        int64     `json:"id"`
	PaymentID int64     `json:"payment_id" db:"payment_id"`
	Date      time.Time `json:"date" db:"date"`
	Amount    float64   `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
