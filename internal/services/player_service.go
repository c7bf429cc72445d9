package services

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/realtime"
	"club_manager_backend/internal/repositories"
)

// --- Custom Service Errors for Members ---
var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrMemberValidation = errors.New("member data validation error")
	ErrDateFormat       = errors.New("invalid date format, please use YYYY-MM-DD")
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

// parseOptionalDate validates an optional YYYY-MM-DD field.
func parseOptionalDate(value *string) error {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *value); err != nil {
		return ErrDateFormat
	}
	return nil
}

func validateOptionalEmail(email *string) error {
	if email == nil || *email == "" {
		return nil
	}
	if !emailRegex.MatchString(strings.ToLower(strings.TrimSpace(*email))) {
		return fmt.Errorf("%w: email format is invalid", ErrMemberValidation)
	}
	return nil
}

// --- Player DTOs ---
type CreatePlayerRequest struct {
	FirstName         string  `json:"first_name" binding:"required"`
	LastName          string  `json:"last_name" binding:"required"`
	BirthDate         *string `json:"birth_date"` // Format YYYY-MM-DD
	PhoneNumber       *string `json:"phone_number"`
	Email             *string `json:"email"`
	Category          *string `json:"category"`
	Position          *string `json:"position"`
	MedicalCertExpiry *string `json:"medical_cert_expiry"`
	EntryDate         *string `json:"entry_date"`
}

type UpdatePlayerRequest struct {
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	BirthDate         *string `json:"birth_date"`
	PhoneNumber       *string `json:"phone_number"`
	Email             *string `json:"email"`
	Category          *string `json:"category"`
	Position          *string `json:"position"`
	MedicalCertExpiry *string `json:"medical_cert_expiry"`
	EntryDate         *string `json:"entry_date"`
	ExitDate          *string `json:"exit_date"`
	Status            *string `json:"status"`
}

// --- PlayerService Interface ---
type PlayerService interface {
	CreatePlayer(actor models.AuthContext, req CreatePlayerRequest) (*models.Player, error)
	GetPlayerByID(actor models.AuthContext, playerID int64) (*models.Player, error)
	GetPlayers(actor models.AuthContext, page, pageSize int, searchTerm *string) ([]models.Player, int, error)
	UpdatePlayer(actor models.AuthContext, playerID int64, req UpdatePlayerRequest) (*models.Player, error)
	DeletePlayer(actor models.AuthContext, playerID int64) error
	SetPlayerPhotoURL(actor models.AuthContext, playerID int64, url string) (*models.Player, error)
	SetPlayerMedicalCert(actor models.AuthContext, playerID int64, url string, expiry *string) (*models.Player, error)
}

type playerService struct {
	playerRepo  repositories.PlayerRepository
	paymentRepo repositories.PaymentRepository
	db          *sql.DB
	broker      *realtime.Broker
}

// NewPlayerService creates a new instance of PlayerService.
func NewPlayerService(playerRepo repositories.PlayerRepository, paymentRepo repositories.PaymentRepository, db *sql.DB, broker *realtime.Broker) PlayerService {
	return &playerService{
		playerRepo:  playerRepo,
		paymentRepo: paymentRepo,
		db:          db,
		broker:      broker,
	}
}

func (s *playerService) validatePlayerDates(dates ...*string) error {
	for _, d := range dates {
		if err := parseOptionalDate(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *playerService) CreatePlayer(actor models.AuthContext, req CreatePlayerRequest) (*models.Player, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrMemberValidation)
	}
	if err := validateOptionalEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePlayerDates(req.BirthDate, req.MedicalCertExpiry, req.EntryDate); err != nil {
		return nil, err
	}

	player := &models.Player{
		TeamID:            actor.TeamID,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		BirthDate:         req.BirthDate,
		PhoneNumber:       req.PhoneNumber,
		Email:             req.Email,
		Category:          req.Category,
		Position:          req.Position,
		MedicalCertExpiry: req.MedicalCertExpiry,
		EntryDate:         req.EntryDate,
		Status:            models.MemberStatusActive,
	}

	id, err := s.playerRepo.CreatePlayer(s.db, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create player in repository: %w", err)
	}

	s.broker.Publish(realtime.CollectionPlayers)
	return s.playerRepo.GetPlayerByID(actor.TeamID, id)
}

func (s *playerService) GetPlayerByID(actor models.AuthContext, playerID int64) (*models.Player, error) {
	player, err := s.playerRepo.GetPlayerByID(actor.TeamID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayers(actor models.AuthContext, page, pageSize int, searchTerm *string) ([]models.Player, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	players, totalCount, err := s.playerRepo.GetPlayers(actor.TeamID, page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get players: %w", err)
	}
	return players, totalCount, nil
}

func (s *playerService) UpdatePlayer(actor models.AuthContext, playerID int64, req UpdatePlayerRequest) (*models.Player, error) {
	player, err := s.playerRepo.GetPlayerByID(actor.TeamID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to find player for update: %w", err)
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
	if err := s.validatePlayerDates(req.BirthDate, req.MedicalCertExpiry, req.EntryDate, req.ExitDate); err != nil {
		return nil, err
	}
	if req.Status != nil && *req.Status != models.MemberStatusActive && *req.Status != models.MemberStatusInactive {
		return nil, fmt.Errorf("%w: status must be '%s' or '%s'", ErrMemberValidation, models.MemberStatusActive, models.MemberStatusInactive)
	}

	if req.FirstName != nil {
		player.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		player.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.BirthDate != nil {
		player.BirthDate = req.BirthDate
	}
	if req.PhoneNumber != nil {
		player.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		player.Email = req.Email
	}
	if req.Category != nil {
		player.Category = req.Category
	}
	if req.Position != nil {
		player.Position = req.Position
	}
	if req.MedicalCertExpiry != nil {
		player.MedicalCertExpiry = req.MedicalCertExpiry
	}
	if req.EntryDate != nil {
		player.EntryDate = req.EntryDate
	}
	if req.ExitDate != nil {
		player.ExitDate = req.ExitDate
	}
	if req.Status != nil {
		player.Status = *req.Status
	}

	if err := s.playerRepo.UpdatePlayer(s.db, player); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player in repository: %w", err)
	}

	s.broker.Publish(realtime.CollectionPlayers)
	return s.playerRepo.GetPlayerByID(actor.TeamID, playerID)
}

// DeletePlayer removes a player and every payment billed against them in one
// transaction, so the roster and the ledger never disagree.
func (s *playerService) DeletePlayer(actor models.AuthContext, playerID int64) error {
	if _, err := s.playerRepo.GetPlayerByID(actor.TeamID, playerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to find player for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for player deletion: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.DeletePaymentsByMember(tx, actor.TeamID, models.MemberKindPlayer, playerID); err != nil {
		return fmt.Errorf("failed to delete player payments: %w", err)
	}
	if err := s.playerRepo.DeletePlayer(tx, actor.TeamID, playerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player deletion: %w", err)
	}

	s.broker.Publish(realtime.CollectionPlayers)
	s.broker.Publish(realtime.CollectionPayments)
	return nil
}

func (s *playerService) SetPlayerPhotoURL(actor models.AuthContext, playerID int64, url string) (*models.Player, error) {
	player, err := s.GetPlayerByID(actor, playerID)
	if err != nil {
		return nil, err
	}
	player.PhotoURL = &url
	if err := s.playerRepo.UpdatePlayer(s.db, player); err != nil {
		return nil, fmt.Errorf("failed to store player photo URL: %w", err)
	}
	s.broker.Publish(realtime.CollectionPlayers)
	return player, nil
}

func (s *playerService) SetPlayerMedicalCert(actor models.AuthContext, playerID int64, url string, expiry *string) (*models.Player, error) {
	if err := parseOptionalDate(expiry); err != nil {
		return nil, err
	}
	player, err := s.GetPlayerByID(actor, playerID)
	if err != nil {
		return nil, err
	}
	player.MedicalCertURL = &url
	if expiry != nil {
		player.MedicalCertExpiry = expiry
	}
	if err := s.playerRepo.UpdatePlayer(s.db, player); err != nil {
		return nil, fmt.Errorf("failed to store medical certificate URL: %w", err)
	}
	s.broker.Publish(realtime.CollectionPlayers)
	return player, nil
}
