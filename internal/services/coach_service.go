package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/realtime"
	"club_manager_backend/internal/repositories"
)

var ErrCoachNotFound = errors.New("coach not found")

// --- Coach DTOs ---
type CreateCoachRequest struct {
	FirstName   string   `json:"first_name" binding:"required"`
	LastName    string   `json:"last_name" binding:"required"`
	PhoneNumber *string  `json:"phone_number"`
	Email       *string  `json:"email"`
	Specialty   *string  `json:"specialty"`
	Salary      *float64 `json:"salary"`
	EntryDate   *string  `json:"entry_date"`
}

type UpdateCoachRequest struct {
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	PhoneNumber *string  `json:"phone_number"`
	Email       *string  `json:"email"`
	Specialty   *string  `json:"specialty"`
	Salary      *float64 `json:"salary"`
	EntryDate   *string  `json:"entry_date"`
	ExitDate    *string  `json:"exit_date"`
	Status      *string  `json:"status"`
}

// --- CoachService Interface ---
type CoachService interface {
	CreateCoach(actor models.AuthContext, req CreateCoachRequest) (*models.Coach, error)
	GetCoachByID(actor models.AuthContext, coachID int64) (*models.Coach, error)
	GetCoaches(actor models.AuthContext, page, pageSize int, searchTerm *string) ([]models.Coach, int, error)
	UpdateCoach(actor models.AuthContext, coachID int64, req UpdateCoachRequest) (*models.Coach, error)
	DeleteCoach(actor models.AuthContext, coachID int64) error
	SetCoachPhotoURL(actor models.AuthContext, coachID int64, url string) (*models.Coach, error)
}

type coachService struct {
	coachRepo   repositories.CoachRepository
	paymentRepo repositories.PaymentRepository
	db          *sql.DB
	broker      *realtime.Broker
}

// NewCoachService creates a new instance of CoachService.
func NewCoachService(coachRepo repositories.CoachRepository, paymentRepo repositories.PaymentRepository, db *sql.DB, broker *realtime.Broker) CoachService {
	return &coachService{
		coachRepo:   coachRepo,
		paymentRepo: paymentRepo,
		db:          db,
		broker:      broker,
	}
}

func (s *coachService) CreateCoach(actor models.AuthContext, req CreateCoachRequest) (*models.Coach, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrMemberValidation)
	}
	if err := validateOptionalEmail(req.Email); err != nil {
		return nil, err
	}
	if err := parseOptionalDate(req.EntryDate); err != nil {
		return nil, err
	}
	if req.Salary != nil && *req.Salary < 0 {
		return nil, fmt.Errorf("%w: salary cannot be negative", ErrMemberValidation)
	}

	coach := &models.Coach{
		TeamID:      actor.TeamID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Specialty:   req.Specialty,
		Salary:      req.Salary,
		EntryDate:   req.EntryDate,
		Status:      models.MemberStatusActive,
	}

	id, err := s.coachRepo.CreateCoach(s.db, coach)
	if err != nil {
		return nil, fmt.Errorf("failed to create coach in repository: %w", err)
	}

	s.broker.Publish(realtime.CollectionCoaches)
	return s.coachRepo.GetCoachByID(actor.TeamID, id)
}

func (s *coachService) GetCoachByID(actor models.AuthContext, coachID int64) (*models.Coach, error) {
	coach, err := s.coachRepo.GetCoachByID(actor.TeamID, coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to get coach by ID: %w", err)
	}
	return coach, nil
}

func (s *coachService) GetCoaches(actor models.AuthContext, page, pageSize int, searchTerm *string) ([]models.Coach, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	coaches, totalCount, err := s.coachRepo.GetCoaches(actor.TeamID, page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get coaches: %w", err)
	}
	return coaches, totalCount, nil
}

func (s *coachService) UpdateCoach(actor models.AuthContext, coachID int64, req UpdateCoachRequest) (*models.Coach, error) {
	coach, err := s.coachRepo.GetCoachByID(actor.TeamID, coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to find coach for update: %w", err)
	}

	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name cannot be empty if provided", ErrMemberValidation)
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		return nil, fmt.Errorf("%w: last name cannot be empty if provided", ErrMemberValidation)
	}
	if err := validateOptionalEmail(req.Email); err != nil {
		return nil, err
	}
	if err := parseOptionalDate(req.EntryDate); err != nil {
		return nil, err
	}
	if err := parseOptionalDate(req.ExitDate); err != nil {
		return nil, err
	}
	if req.Salary != nil && *req.Salary < 0 {
		return nil, fmt.Errorf("%w: salary cannot be negative", ErrMemberValidation)
	}
	if req.Status != nil && *req.Status != models.MemberStatusActive && *req.Status != models.MemberStatusInactive {
		return nil, fmt.Errorf("%w: status must be '%s' or '%s'", ErrMemberValidation, models.MemberStatusActive, models.MemberStatusInactive)
	}

	if req.FirstName != nil {
		coach.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		coach.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		coach.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		coach.Email = req.Email
	}
	if req.Specialty != nil {
		coach.Specialty = req.Specialty
	}
	if req.Salary != nil {
		coach.Salary = req.Salary
	}
	if req.EntryDate != nil {
		coach.EntryDate = req.EntryDate
	}
	if req.ExitDate != nil {
		coach.ExitDate = req.ExitDate
	}
	if req.Status != nil {
		coach.Status = *req.Status
	}

	if err := s.coachRepo.UpdateCoach(s.db, coach); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to update coach in repository: %w", err)
	}

	s.broker.Publish(realtime.CollectionCoaches)
	return s.coachRepo.GetCoachByID(actor.TeamID, coachID)
}

// DeleteCoach removes a coach together with their salary payments in one
// transaction, mirroring the player-delete cascade.
func (s *coachService) DeleteCoach(actor models.AuthContext, coachID int64) error {
	if _, err := s.coachRepo.GetCoachByID(actor.TeamID, coachID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCoachNotFound
		}
		return fmt.Errorf("failed to find coach for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for coach deletion: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.DeletePaymentsByMember(tx, actor.TeamID, models.MemberKindCoach, coachID); err != nil {
		return fmt.Errorf("failed to delete coach payments: %w", err)
	}
	if err := s.coachRepo.DeleteCoach(tx, actor.TeamID, coachID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCoachNotFound
		}
		return fmt.Errorf("failed to delete coach: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit coach deletion: %w", err)
	}

	s.broker.Publish(realtime.CollectionCoaches)
	s.broker.Publish(realtime.CollectionPayments)
	return nil
}

func (s *coachService) SetCoachPhotoURL(actor models.AuthContext, coachID int64, url string) (*models.Coach, error) {
	coach, err := s.GetCoachByID(actor, coachID)
	if err != nil {
		return nil, err
	}
	coach.PhotoURL = &url
	if err := s.coachRepo.UpdateCoach(s.db, coach); err != nil {
		return nil, fmt.Errorf("failed to store coach photo URL: %w", err)
	}
	s.broker.Publish(realtime.CollectionCoaches)
	return coach, nil
}
