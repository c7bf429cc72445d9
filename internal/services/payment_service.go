package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/realtime"
	"club_manager_backend/internal/repositories"
)

// --- Custom Service Errors for Payments ---
var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvalidMemberKind  = errors.New("member kind must be 'player' or 'coach'")
	ErrInvalidPaymentType = errors.New("payment type must be 'membership' or 'salary'")
)

// --- Payment DTOs ---
type CreatePaymentRequest struct {
	MemberID       int64   `json:"member_id" binding:"required"`
	MemberKind     string  `json:"member_kind" binding:"required"`
	PaymentType    string  `json:"payment_type" binding:"required"`
	TotalAmount    float64 `json:"total_amount" binding:"required"`
	InitialAdvance float64 `json:"initial_advance"`
	DueDate        string  `json:"due_date" binding:"required"` // Format YYYY-MM-DD
}

type PartialPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// --- PaymentService Interface ---
type PaymentService interface {
	CreatePayment(actor models.AuthContext, req CreatePaymentRequest) (*models.Payment, error)
	GetPaymentByID(actor models.AuthContext, paymentID int64) (*models.Payment, error)
	GetPayments(actor models.AuthContext, page, pageSize int, memberKind *string, memberID *int64, status *string) ([]models.Payment, int, error)
	RecordPartialPayment(actor models.AuthContext, paymentID int64, amount float64) (*models.Payment, error)
	MarkFullyPaid(actor models.AuthContext, paymentID int64) (*models.Payment, error)
	DeletePayment(actor models.AuthContext, paymentID int64) error
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	playerRepo  repositories.PlayerRepository
	coachRepo   repositories.CoachRepository
	db          *sql.DB
	broker      *realtime.Broker
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, playerRepo repositories.PlayerRepository, coachRepo repositories.CoachRepository, db *sql.DB, broker *realtime.Broker) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		playerRepo:  playerRepo,
		coachRepo:   coachRepo,
		db:          db,
		broker:      broker,
	}
}

// resolveMemberName looks up the member the payment is billed against and
// returns the denormalized name snapshot stored on the payment.
func (s *paymentService) resolveMemberName(actor models.AuthContext, memberKind string, memberID int64) (string, error) {
	switch memberKind {
	case models.MemberKindPlayer:
		player, err := s.playerRepo.GetPlayerByID(actor.TeamID, memberID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return "", ErrMemberNotFound
			}
			return "", fmt.Errorf("failed to resolve player for payment: %w", err)
		}
		return player.FullName(), nil
	case models.MemberKindCoach:
		coach, err := s.coachRepo.GetCoachByID(actor.TeamID, memberID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return "", ErrMemberNotFound
			}
			return "", fmt.Errorf("failed to resolve coach for payment: %w", err)
		}
		return coach.FullName(), nil
	default:
		return "", ErrInvalidMemberKind
	}
}

func (s *paymentService) CreatePayment(actor models.AuthContext, req CreatePaymentRequest) (*models.Payment, error) {
	if req.PaymentType != models.PaymentTypeMembership && req.PaymentType != models.PaymentTypeSalary {
		return nil, ErrInvalidPaymentType
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, ErrDateFormat
	}

	memberName, err := s.resolveMemberName(actor, req.MemberKind, req.MemberID)
	if err != nil {
		return nil, err
	}

	payment, err := NewLedgerPayment(req.MemberID, req.MemberKind, memberName, req.PaymentType,
		req.TotalAmount, req.InitialAdvance, dueDate, time.Now())
	if err != nil {
		return nil, err
	}
	payment.TeamID = actor.TeamID

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for payment creation: %w", err)
	}
	defer tx.Rollback()

	paymentID, err := s.paymentRepo.CreatePayment(tx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment in repository: %w", err)
	}
	for i := range payment.History {
		payment.History[i].PaymentID = paymentID
		if _, err := s.paymentRepo.AddTransaction(tx, &payment.History[i]); err != nil {
			return nil, fmt.Errorf("failed to record initial advance transaction: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment creation: %w", err)
	}

	s.broker.Publish(realtime.CollectionPayments)
	return s.paymentRepo.GetPaymentByID(actor.TeamID, paymentID)
}

func (s *paymentService) GetPaymentByID(actor models.AuthContext, paymentID int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(actor.TeamID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by ID: %w", err)
	}
	// Status depends on the current date; refresh it on read so a Pending
	// payment shows Overdue once its due date passes, without a write.
	payment.Status = DerivePaymentStatus(payment.Remaining, payment.DueDate, time.Now())
	return payment, nil
}

func (s *paymentService) GetPayments(actor models.AuthContext, page, pageSize int, memberKind *string, memberID *int64, status *string) ([]models.Payment, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize < 0 {
		pageSize = 10
	}

	payments, totalCount, err := s.paymentRepo.GetPayments(actor.TeamID, page, pageSize, memberKind, memberID, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get payments: %w", err)
	}
	now := time.Now()
	for i := range payments {
		payments[i].Status = DerivePaymentStatus(payments[i].Remaining, payments[i].DueDate, now)
	}
	return payments, totalCount, nil
}

// RecordPartialPayment applies a partial payment to the ledger. The payment
// row update and the history insert commit in one transaction so the
// remaining == total - advance and sum(history) == advance invariants can
// never be observed broken.
func (s *paymentService) RecordPartialPayment(actor models.AuthContext, paymentID int64, amount float64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(actor.TeamID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment for partial payment: %w", err)
	}

	txn, err := ApplyPartialPayment(payment, amount, time.Now())
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for partial payment: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.UpdatePaymentAmounts(tx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment amounts: %w", err)
	}
	if _, err := s.paymentRepo.AddTransaction(tx, &txn); err != nil {
		return nil, fmt.Errorf("failed to record payment transaction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit partial payment: %w", err)
	}

	s.broker.Publish(realtime.CollectionPayments)
	return s.paymentRepo.GetPaymentByID(actor.TeamID, paymentID)
}

// MarkFullyPaid settles the payment, recording the outstanding remainder as a
// closing history entry when one exists.
func (s *paymentService) MarkFullyPaid(actor models.AuthContext, paymentID int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(actor.TeamID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment to settle: %w", err)
	}

	txn := SettlePayment(payment, time.Now())

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for settlement: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.UpdatePaymentAmounts(tx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment amounts: %w", err)
	}
	if txn != nil {
		if _, err := s.paymentRepo.AddTransaction(tx, txn); err != nil {
			return nil, fmt.Errorf("failed to record settlement transaction: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	s.broker.Publish(realtime.CollectionPayments)
	return s.paymentRepo.GetPaymentByID(actor.TeamID, paymentID)
}

func (s *paymentService) DeletePayment(actor models.AuthContext, paymentID int64) error {
	err := s.paymentRepo.DeletePayment(s.db, actor.TeamID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	s.broker.Publish(realtime.CollectionPayments)
	return nil
}
