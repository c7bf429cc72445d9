package services

import (
	"errors"
	"time"

	"club_manager_backend/internal/models"
)

// --- Ledger validation errors ---
var (
	ErrInvalidTotalAmount     = errors.New("total amount must be positive")
	ErrAdvanceExceedsTotal    = errors.New("advance exceeds total")
	ErrNonPositiveAmount      = errors.New("payment amount must be positive")
	ErrAmountExceedsRemaining = errors.New("amount exceeds remaining balance")
)

// The ledger functions below are pure: they validate before mutating, so a
// rejected call leaves the payment untouched, and a successful call updates
// advance, remaining, history and status together. Persistence is the
// caller's concern.

// DerivePaymentStatus classifies a payment from its remaining balance and due
// date. A settled payment is Paid; an unsettled one is Overdue once the due
// date has passed, Pending otherwise.
func DerivePaymentStatus(remaining float64, dueDate, now time.Time) string {
	if remaining == 0 {
		return models.PaymentStatusPaid
	}
	if now.After(dueDate) {
		return models.PaymentStatusOverdue
	}
	return models.PaymentStatusPending
}

// NewLedgerPayment builds a payment for one billing cycle. The initial
// advance may be zero; when positive it is recorded as the first history
// entry. An advance above the total is rejected.
func NewLedgerPayment(memberID int64, memberKind, memberName, paymentType string, totalAmount, initialAdvance float64, dueDate, now time.Time) (*models.Payment, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidTotalAmount
	}
	if initialAdvance < 0 {
		return nil, ErrNonPositiveAmount
	}
	if initialAdvance > totalAmount {
		return nil, ErrAdvanceExceedsTotal
	}

	remaining := totalAmount - initialAdvance
	payment := &models.Payment{
		MemberID:    memberID,
		MemberKind:  memberKind,
		MemberName:  memberName,
		PaymentType: paymentType,
		TotalAmount: totalAmount,
		Advance:     initialAdvance,
		Remaining:   remaining,
		DueDate:     dueDate,
		Status:      DerivePaymentStatus(remaining, dueDate, now),
	}
	if initialAdvance > 0 {
		payment.History = append(payment.History, models.PaymentTransaction{
			Date:   now,
			Amount: initialAdvance,
		})
	}
	return payment, nil
}

// ApplyPartialPayment records a partial payment against the ledger entry and
// returns the history transaction it produced. The amount must be positive
// and must not exceed the remaining balance; on rejection the payment is left
// unchanged.
func ApplyPartialPayment(payment *models.Payment, amount float64, now time.Time) (models.PaymentTransaction, error) {
	if amount <= 0 {
		return models.PaymentTransaction{}, ErrNonPositiveAmount
	}
	if amount > payment.Remaining {
		return models.PaymentTransaction{}, ErrAmountExceedsRemaining
	}

	payment.Advance += amount
	payment.Remaining = payment.TotalAmount - payment.Advance
	payment.Status = DerivePaymentStatus(payment.Remaining, payment.DueDate, now)

	txn := models.PaymentTransaction{
		PaymentID: payment.ID,
		Date:      now,
		Amount:    amount,
	}
	payment.History = append(payment.History, txn)
	return txn, nil
}

// SettlePayment marks the payment fully paid. When a balance was still
// outstanding, the closing transaction for that remainder is returned;
// settling an already-paid payment returns nil.
func SettlePayment(payment *models.Payment, now time.Time) *models.PaymentTransaction {
	outstanding := payment.Remaining
	payment.Advance = payment.TotalAmount
	payment.Remaining = 0
	payment.Status = models.PaymentStatusPaid

	if outstanding <= 0 {
		return nil
	}
	txn := models.PaymentTransaction{
		PaymentID: payment.ID,
		Date:      now,
		Amount:    outstanding,
	}
	payment.History = append(payment.History, txn)
	return &txn
}
