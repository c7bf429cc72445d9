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

// --- Custom Service Errors for Events ---
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrEventValidation = errors.New("event data validation error")
	ErrInvalidStatLine = errors.New("stat count must be at least 1")
)

// --- Event DTOs ---
type StatLineRequest struct {
	PlayerID int64 `json:"player_id" binding:"required"`
	Count    int   `json:"count" binding:"required"`
}

type CreateEventRequest struct {
	EventType   string            `json:"event_type" binding:"required"`
	Date        string            `json:"date" binding:"required"` // Format YYYY-MM-DD
	Time        *string           `json:"time"`                    // Format HH:MM
	Location    *string           `json:"location"`
	Category    *string           `json:"category"`
	Description *string           `json:"description"`
	Opponent    *string           `json:"opponent"`
	Result      *string           `json:"result"`
	Scorers     []StatLineRequest `json:"scorers"`
	Assists     []StatLineRequest `json:"assists"`
}

type UpdateEventRequest struct {
	EventType   *string           `json:"event_type"`
	Date        *string           `json:"date"`
	Time        *string           `json:"time"`
	Location    *string           `json:"location"`
	Category    *string           `json:"category"`
	Description *string           `json:"description"`
	Opponent    *string           `json:"opponent"`
	Result      *string           `json:"result"`
	Scorers     []StatLineRequest `json:"scorers"` // nil leaves stats untouched, empty slice clears them
	Assists     []StatLineRequest `json:"assists"`
}

// --- EventService Interface ---
type EventService interface {
	CreateEvent(actor models.AuthContext, req CreateEventRequest) (*models.ClubEvent, error)
	GetEventByID(actor models.AuthContext, eventID int64) (*models.ClubEvent, error)
	GetEvents(actor models.AuthContext, page, pageSize int, eventType *string) ([]models.ClubEvent, int, error)
	UpdateEvent(actor models.AuthContext, eventID int64, req UpdateEventRequest) (*models.ClubEvent, error)
	DeleteEvent(actor models.AuthContext, eventID int64) error
}

type eventService struct {
	eventRepo repositories.EventRepository
	db        *sql.DB
	broker    *realtime.Broker
}

// NewEventService creates a new instance of EventService.
func NewEventService(eventRepo repositories.EventRepository, db *sql.DB, broker *realtime.Broker) EventService {
	return &eventService{
		eventRepo: eventRepo,
		db:        db,
		broker:    broker,
	}
}

func isValidEventType(eventType string) bool {
	switch eventType {
	case models.EventTypeMatch, models.EventTypeTraining, models.EventTypeMeeting, models.EventTypeOther:
		return true
	}
	return false
}

// validateStatLines enforces the count >= 1 rule on every stat line. A line
// referencing a player that no longer exists is accepted here; the aggregator
// tolerates dangling references downstream.
func validateStatLines(lines []StatLineRequest) error {
	for _, line := range lines {
		if line.Count < 1 {
			return ErrInvalidStatLine
		}
	}
	return nil
}

func statLinesToModel(eventID int64, kind string, lines []StatLineRequest) []models.StatEvent {
	stats := make([]models.StatEvent, 0, len(lines))
	for _, line := range lines {
		stats = append(stats, models.StatEvent{
			EventID:  eventID,
			PlayerID: line.PlayerID,
			Kind:     kind,
			Count:    line.Count,
		})
	}
	return stats
}

// validateMatchFields rejects match-only fields on non-match events.
func validateMatchFields(eventType string, opponent, result *string, scorers, assists []StatLineRequest) error {
	if eventType == models.EventTypeMatch {
		return nil
	}
	if opponent != nil || result != nil || len(scorers) > 0 || len(assists) > 0 {
		return fmt.Errorf("%w: opponent, result and stats are only valid for matches", ErrEventValidation)
	}
	return nil
}

func (s *eventService) CreateEvent(actor models.AuthContext, req CreateEventRequest) (*models.ClubEvent, error) {
	if !isValidEventType(req.EventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrEventValidation, req.EventType)
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrDateFormat
	}
	if req.Time != nil && *req.Time != "" {
		if _, err := time.Parse("15:04", *req.Time); err != nil {
			return nil, fmt.Errorf("%w: time must be HH:MM", ErrEventValidation)
		}
	}
	if err := validateMatchFields(req.EventType, req.Opponent, req.Result, req.Scorers, req.Assists); err != nil {
		return nil, err
	}
	if err := validateStatLines(req.Scorers); err != nil {
		return nil, err
	}
	if err := validateStatLines(req.Assists); err != nil {
		return nil, err
	}

	event := &models.ClubEvent{
		TeamID:      actor.TeamID,
		EventType:   req.EventType,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Description: req.Description,
		Opponent:    req.Opponent,
		Result:      req.Result,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for event creation: %w", err)
	}
	defer tx.Rollback()

	eventID, err := s.eventRepo.CreateEvent(tx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event in repository: %w", err)
	}
	if len(req.Scorers) > 0 || len(req.Assists) > 0 {
		scorers := statLinesToModel(eventID, models.StatKindGoal, req.Scorers)
		assists := statLinesToModel(eventID, models.StatKindAssist, req.Assists)
		if err := s.eventRepo.ReplaceStatEvents(tx, eventID, scorers, assists); err != nil {
			return nil, fmt.Errorf("failed to record match stats: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event creation: %w", err)
	}

	s.broker.Publish(realtime.CollectionEvents)
	return s.eventRepo.GetEventByID(actor.TeamID, eventID)
}

func (s *eventService) GetEventByID(actor models.AuthContext, eventID int64) (*models.ClubEvent, error) {
	event, err := s.eventRepo.GetEventByID(actor.TeamID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by ID: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvents(actor models.AuthContext, page, pageSize int, eventType *string) ([]models.ClubEvent, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if eventType != nil && *eventType != "" && !isValidEventType(*eventType) {
		return nil, 0, fmt.Errorf("%w: unknown event type %q", ErrEventValidation, *eventType)
	}

	events, totalCount, err := s.eventRepo.GetEvents(actor.TeamID, page, pageSize, eventType)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get events: %w", err)
	}
	return events, totalCount, nil
}

func (s *eventService) UpdateEvent(actor models.AuthContext, eventID int64, req UpdateEventRequest) (*models.ClubEvent, error) {
	event, err := s.eventRepo.GetEventByID(actor.TeamID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event for update: %w", err)
	}

	if req.EventType != nil {
		if !isValidEventType(*req.EventType) {
			return nil, fmt.Errorf("%w: unknown event type %q", ErrEventValidation, *req.EventType)
		}
		event.EventType = *req.EventType
	}
	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			return nil, ErrDateFormat
		}
		event.Date = *req.Date
	}
	if req.Time != nil {
		if *req.Time != "" {
			if _, err := time.Parse("15:04", *req.Time); err != nil {
				return nil, fmt.Errorf("%w: time must be HH:MM", ErrEventValidation)
			}
		}
		event.Time = req.Time
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.Category != nil {
		event.Category = req.Category
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Opponent != nil {
		event.Opponent = req.Opponent
	}
	if req.Result != nil {
		event.Result = req.Result
	}

	if err := validateMatchFields(event.EventType, event.Opponent, event.Result, req.Scorers, req.Assists); err != nil {
		return nil, err
	}
	if err := validateStatLines(req.Scorers); err != nil {
		return nil, err
	}
	if err := validateStatLines(req.Assists); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for event update: %w", err)
	}
	defer tx.Rollback()

	if err := s.eventRepo.UpdateEvent(tx, event); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event in repository: %w", err)
	}
	if req.Scorers != nil || req.Assists != nil {
		scorers := event.Scorers
		if req.Scorers != nil {
			scorers = statLinesToModel(eventID, models.StatKindGoal, req.Scorers)
		}
		assists := event.Assists
		if req.Assists != nil {
			assists = statLinesToModel(eventID, models.StatKindAssist, req.Assists)
		}
		if err := s.eventRepo.ReplaceStatEvents(tx, eventID, scorers, assists); err != nil {
			return nil, fmt.Errorf("failed to update match stats: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event update: %w", err)
	}

	s.broker.Publish(realtime.CollectionEvents)
	return s.eventRepo.GetEventByID(actor.TeamID, eventID)
}

func (s *eventService) DeleteEvent(actor models.AuthContext, eventID int64) error {
	err := s.eventRepo.DeleteEvent(s.db, actor.TeamID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.broker.Publish(realtime.CollectionEvents)
	return nil
}
