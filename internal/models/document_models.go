package models

import "time"

// Receipt is the print-ready payload for a payment receipt. The QR code
// encodes the receipt number so a printed copy can be verified later.
type Receipt struct {
	ReceiptNumber string               `json:"receipt_number"`
	IssuedAt      time.Time            `json:"issued_at"`
	TeamName      string               `json:"team_name"`
	TeamCity      *string              `json:"team_city,omitempty"`
	MemberName    string               `json:"member_name"`
	MemberKind    string               `json:"member_kind"`
	PaymentType   string               `json:"payment_type"`
	TotalAmount   float64              `json:"total_amount"`
	Advance       float64              `json:"advance"`
	Remaining     float64              `json:"remaining"`
	Status        string               `json:"status"`
	History       []PaymentTransaction `json:"history"`
	QRCodePNG     string               `json:"qr_code_png"` // base64-encoded PNG
}

// RegistrationForm is the print-ready payload for a player registration form.
type RegistrationForm struct {
	TeamName    string    `json:"team_name"`
	TeamCity    *string   `json:"team_city,omitempty"`
	PlayerName  string    `json:"player_name"`
	BirthDate   *string   `json:"birth_date,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Position    *string   `json:"position,omitempty"`
	EntryDate   *string   `json:"entry_date,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// MedicalCertificateSheet is the print-ready payload for a player's medical
// certificate page, pointing at the stored certificate image.
type MedicalCertificateSheet struct {
	TeamName       string    `json:"team_name"`
	PlayerName     string    `json:"player_name"`
	BirthDate      *string   `json:"birth_date,omitempty"`
	Category       *string   `json:"category,omitempty"`
	CertificateURL *string   `json:"certificate_url,omitempty"`
	ExpiryDate     *string   `json:"expiry_date,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}
