package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const receiptQRSize = 256

// --- DocumentService Interface ---
// Documents are returned as structured payloads; the dashboard renders and
// prints them. No PDF generation happens server-side.
type DocumentService interface {
	BuildReceipt(actor models.AuthContext, paymentID int64) (*models.Receipt, error)
	BuildRegistrationForm(actor models.AuthContext, playerID int64) (*models.RegistrationForm, error)
	BuildMedicalCertificateSheet(actor models.AuthContext, playerID int64) (*models.MedicalCertificateSheet, error)
}

type documentService struct {
	paymentRepo repositories.PaymentRepository
	playerRepo  repositories.PlayerRepository
	authRepo    repositories.AuthRepository
}

// NewDocumentService creates a new instance of DocumentService.
func NewDocumentService(paymentRepo repositories.PaymentRepository, playerRepo repositories.PlayerRepository, authRepo repositories.AuthRepository) DocumentService {
	return &documentService{
		paymentRepo: paymentRepo,
		playerRepo:  playerRepo,
		authRepo:    authRepo,
	}
}

// BuildReceipt assembles a printable receipt for a payment. Each call issues
// a fresh receipt number; the QR code encodes it together with the amounts so
// a printed copy can be checked against the ledger.
func (s *documentService) BuildReceipt(actor models.AuthContext, paymentID int64) (*models.Receipt, error) {
	payment, err := s.paymentRepo.GetPaymentByID(actor.TeamID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment for receipt: %w", err)
	}
	team, err := s.authRepo.GetTeamByID(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team for receipt: %w", err)
	}

	now := time.Now()
	receiptNumber := uuid.NewString()
	qrPayload := fmt.Sprintf("receipt:%s;payment:%d;advance:%.2f;remaining:%.2f",
		receiptNumber, payment.ID, payment.Advance, payment.Remaining)
	png, err := qrcode.Encode(qrPayload, qrcode.Medium, receiptQRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt QR code: %w", err)
	}

	return &models.Receipt{
		ReceiptNumber: receiptNumber,
		IssuedAt:      now,
		TeamName:      team.Name,
		TeamCity:      team.City,
		MemberName:    payment.MemberName,
		MemberKind:    payment.MemberKind,
		PaymentType:   payment.PaymentType,
		TotalAmount:   payment.TotalAmount,
		Advance:       payment.Advance,
		Remaining:     payment.Remaining,
		Status:        DerivePaymentStatus(payment.Remaining, payment.DueDate, now),
		History:       payment.History,
		QRCodePNG:     base64.StdEncoding.EncodeToString(png),
	}, nil
}

// BuildRegistrationForm assembles a printable registration form for a player.
func (s *documentService) BuildRegistrationForm(actor models.AuthContext, playerID int64) (*models.RegistrationForm, error) {
	player, err := s.playerRepo.GetPlayerByID(actor.TeamID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player for registration form: %w", err)
	}
	team, err := s.authRepo.GetTeamByID(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team for registration form: %w", err)
	}

	return &models.RegistrationForm{
		TeamName:    team.Name,
		TeamCity:    team.City,
		PlayerName:  player.FullName(),
		BirthDate:   player.BirthDate,
		PhoneNumber: player.PhoneNumber,
		Email:       player.Email,
		Category:    player.Category,
		Position:    player.Position,
		EntryDate:   player.EntryDate,
		PhotoURL:    player.PhotoURL,
		GeneratedAt: time.Now(),
	}, nil
}

// BuildMedicalCertificateSheet assembles the printable medical certificate
// page pointing at the stored certificate image.
func (s *documentService) BuildMedicalCertificateSheet(actor models.AuthContext, playerID int64) (*models.MedicalCertificateSheet, error) {
	player, err := s.playerRepo.GetPlayerByID(actor.TeamID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player for medical certificate: %w", err)
	}
	team, err := s.authRepo.GetTeamByID(actor.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team for medical certificate: %w", err)
	}

	return &models.MedicalCertificateSheet{
		TeamName:       team.Name,
		PlayerName:     player.FullName(),
		BirthDate:      player.BirthDate,
		Category:       player.Category,
		CertificateURL: player.MedicalCertURL,
		ExpiryDate:     player.MedicalCertExpiry,
		GeneratedAt:    time.Now(),
	}, nil
}
