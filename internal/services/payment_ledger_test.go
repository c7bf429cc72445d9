package services

import (
	"testing"
	"time"

	"club_manager_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ledgerNow     = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	futureDueDate = ledgerNow.AddDate(0, 1, 0)
	pastDueDate   = ledgerNow.AddDate(0, -1, 0)
)

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, models.PaymentStatusPaid, DerivePaymentStatus(0, pastDueDate, ledgerNow))
	assert.Equal(t, models.PaymentStatusPending, DerivePaymentStatus(50, futureDueDate, ledgerNow))
	assert.Equal(t, models.PaymentStatusOverdue, DerivePaymentStatus(50, pastDueDate, ledgerNow))

	// The due date itself is not yet overdue.
	assert.Equal(t, models.PaymentStatusPending, DerivePaymentStatus(50, ledgerNow, ledgerNow))
}

func TestNewLedgerPayment(t *testing.T) {
	t.Run("without advance", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 300, 0, futureDueDate, ledgerNow)
		require.NoError(t, err)
		assert.Equal(t, 300.0, p.TotalAmount)
		assert.Equal(t, 0.0, p.Advance)
		assert.Equal(t, 300.0, p.Remaining)
		assert.Equal(t, models.PaymentStatusPending, p.Status)
		assert.Empty(t, p.History)
	})

	t.Run("initial advance seeds history", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 300, 100, futureDueDate, ledgerNow)
		require.NoError(t, err)
		assert.Equal(t, 100.0, p.Advance)
		assert.Equal(t, 200.0, p.Remaining)
		require.Len(t, p.History, 1)
		assert.Equal(t, 100.0, p.History[0].Amount)
		assert.Equal(t, ledgerNow, p.History[0].Date)
	})

	t.Run("advance covering the total is immediately paid", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 300, 300, pastDueDate, ledgerNow)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, p.Status)
	})

	t.Run("rejections", func(t *testing.T) {
		_, err := NewLedgerPayment(7, models.MemberKindPlayer, "x", models.PaymentTypeMembership, 0, 0, futureDueDate, ledgerNow)
		assert.ErrorIs(t, err, ErrInvalidTotalAmount)

		_, err = NewLedgerPayment(7, models.MemberKindPlayer, "x", models.PaymentTypeMembership, -10, 0, futureDueDate, ledgerNow)
		assert.ErrorIs(t, err, ErrInvalidTotalAmount)

		_, err = NewLedgerPayment(7, models.MemberKindPlayer, "x", models.PaymentTypeMembership, 300, -5, futureDueDate, ledgerNow)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)

		_, err = NewLedgerPayment(7, models.MemberKindPlayer, "x", models.PaymentTypeMembership, 300, 301, futureDueDate, ledgerNow)
		assert.ErrorIs(t, err, ErrAdvanceExceedsTotal)
	})
}

func TestApplyPartialPayment(t *testing.T) {
	t.Run("two halves settle a 300 payment", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 300, 0, futureDueDate, ledgerNow)
		require.NoError(t, err)

		txn, err := ApplyPartialPayment(p, 150, ledgerNow)
		require.NoError(t, err)
		assert.Equal(t, 150.0, txn.Amount)
		assert.Equal(t, 150.0, p.Remaining)
		assert.Equal(t, models.PaymentStatusPending, p.Status)

		later := ledgerNow.Add(48 * time.Hour)
		_, err = ApplyPartialPayment(p, 150, later)
		require.NoError(t, err)
		assert.Equal(t, 0.0, p.Remaining)
		assert.Equal(t, 300.0, p.Advance)
		assert.Equal(t, models.PaymentStatusPaid, p.Status)
		require.Len(t, p.History, 2)
		assert.Equal(t, ledgerNow, p.History[0].Date)
		assert.Equal(t, later, p.History[1].Date)
	})

	t.Run("rejected amounts leave the payment untouched", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 300, 100, futureDueDate, ledgerNow)
		require.NoError(t, err)

		_, err = ApplyPartialPayment(p, 0, ledgerNow)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
		_, err = ApplyPartialPayment(p, -20, ledgerNow)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
		_, err = ApplyPartialPayment(p, 200.01, ledgerNow)
		assert.ErrorIs(t, err, ErrAmountExceedsRemaining)

		assert.Equal(t, 100.0, p.Advance)
		assert.Equal(t, 200.0, p.Remaining)
		assert.Len(t, p.History, 1)
	})

	t.Run("late payment clears overdue status", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 100, 0, pastDueDate, ledgerNow)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusOverdue, p.Status)

		_, err = ApplyPartialPayment(p, 100, ledgerNow)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, p.Status)
	})
}

func TestSettlePayment(t *testing.T) {
	t.Run("outstanding balance closes with a transaction", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 300, 120, pastDueDate, ledgerNow)
		require.NoError(t, err)

		txn := SettlePayment(p, ledgerNow)
		require.NotNil(t, txn)
		assert.Equal(t, 180.0, txn.Amount)
		assert.Equal(t, 0.0, p.Remaining)
		assert.Equal(t, 300.0, p.Advance)
		assert.Equal(t, models.PaymentStatusPaid, p.Status)
		assert.Len(t, p.History, 2)
	})

	t.Run("settling twice is a no-op", func(t *testing.T) {
		p, err := NewLedgerPayment(7, models.MemberKindPlayer, "Karim Benali", models.PaymentTypeMembership, 300, 300, futureDueDate, ledgerNow)
		require.NoError(t, err)

		txn := SettlePayment(p, ledgerNow)
		assert.Nil(t, txn)
		assert.Equal(t, models.PaymentStatusPaid, p.Status)
		assert.Len(t, p.History, 1)
	})
}
