package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"club_manager_backend/internal/models"
)

// EventRepository defines the interface for event-related database operations.
type EventRepository interface {
	CreateEvent(executor SQLExecutor, event *models.ClubEvent) (int64, error)
	GetEventByID(teamID, id int64) (*models.ClubEvent, error)
	GetEvents(teamID int64, page, pageSize int, eventType *string) ([]models.ClubEvent, int, error)
	GetAllEventsWithStats(teamID int64) ([]models.ClubEvent, error)
	UpdateEvent(executor SQLExecutor, event *models.ClubEvent) error
	ReplaceStatEvents(executor SQLExecutor, eventID int64, scorers, assists []models.StatEvent) error
	DeleteEvent(executor SQLExecutor, teamID, id int64) error
}

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, team_id, event_type, date, time, location, category, description,
	opponent, result, created_at, updated_at`

// CreateEvent inserts a new event. Stat events are written separately via
// ReplaceStatEvents inside the same transaction.
func (r *eventRepository) CreateEvent(executor SQLExecutor, event *models.ClubEvent) (int64, error) {
	query := `INSERT INTO events (team_id, event_type, date, time, location, category, description,
	            opponent, result, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = currentTime
	}
	event.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		event.TeamID, event.EventType, event.Date, event.Time, event.Location,
		event.Category, event.Description, event.Opponent, event.Result,
		event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating event: %v", ErrDatabaseError, err)
	}
	return event.ID, nil
}

// GetEventByID retrieves an event with its stat events loaded.
func (r *eventRepository) GetEventByID(teamID, id int64) (*models.ClubEvent, error) {
	event := &models.ClubEvent{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND team_id = $2`

	err := r.db.QueryRow(query, id, teamID).Scan(
		&event.ID, &event.TeamID, &event.EventType, &event.Date, &event.Time,
		&event.Location, &event.Category, &event.Description, &event.Opponent,
		&event.Result, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting event by ID %d: %v", ErrDatabaseError, id, err)
	}

	if err := r.loadStatEvents(map[int64]*models.ClubEvent{event.ID: event}); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvents retrieves a page of events for a team, optionally filtered by type.
// Stat events are not loaded for list views.
func (r *eventRepository) GetEvents(teamID int64, page, pageSize int, eventType *string) ([]models.ClubEvent, int, error) {
	events := []models.ClubEvent{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + eventColumns + `, COUNT(*) OVER() as total_count FROM events`)

	conditions := []string{"team_id = $1"}
	args := []interface{}{teamID}
	argCount := 2

	if eventType != nil && *eventType != "" {
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", argCount))
		args = append(args, *eventType)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY date DESC, id DESC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			offset := (page - 1) * pageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying events: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.ClubEvent
		if err := rows.Scan(
			&e.ID, &e.TeamID, &e.EventType, &e.Date, &e.Time, &e.Location, &e.Category,
			&e.Description, &e.Opponent, &e.Result, &e.CreatedAt, &e.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning event: %v", ErrDatabaseError, err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating event rows: %v", ErrDatabaseError, err)
	}
	return events, totalCount, nil
}

// GetAllEventsWithStats retrieves every event of a team with scorers and
// assists loaded. This is the snapshot the statistics aggregator consumes.
func (r *eventRepository) GetAllEventsWithStats(teamID int64) ([]models.ClubEvent, error) {
	events := []models.ClubEvent{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE team_id = $1 ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying events with stats: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	byID := map[int64]*models.ClubEvent{}
	for rows.Next() {
		var e models.ClubEvent
		if err := rows.Scan(
			&e.ID, &e.TeamID, &e.EventType, &e.Date, &e.Time, &e.Location, &e.Category,
			&e.Description, &e.Opponent, &e.Result, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning event: %v", ErrDatabaseError, err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating event rows: %v", ErrDatabaseError, err)
	}

	for i := range events {
		byID[events[i].ID] = &events[i]
	}
	if err := r.loadStatEvents(byID); err != nil {
		return nil, err
	}
	return events, nil
}

// loadStatEvents fills Scorers and Assists for the given events in one query.
func (r *eventRepository) loadStatEvents(events map[int64]*models.ClubEvent) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]interface{}, 0, len(events))
	placeholders := make([]string, 0, len(events))
	i := 1
	for id := range events {
		ids = append(ids, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i))
		i++
	}

	query := `SELECT id, event_id, player_id, kind, count FROM stat_events
	          WHERE event_id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY id ASC`

	rows, err := r.db.Query(query, ids...)
	if err != nil {
		return fmt.Errorf("%w: querying stat events: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.StatEvent
		if err := rows.Scan(&s.ID, &s.EventID, &s.PlayerID, &s.Kind, &s.Count); err != nil {
			return fmt.Errorf("%w: scanning stat event: %v", ErrDatabaseError, err)
		}
		event, ok := events[s.EventID]
		if !ok {
			continue
		}
		switch s.Kind {
		case models.StatKindGoal:
			event.Scorers = append(event.Scorers, s)
		case models.StatKindAssist:
			event.Assists = append(event.Assists, s)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating stat event rows: %v", ErrDatabaseError, err)
	}
	return nil
}

// UpdateEvent updates an existing event's own fields.
func (r *eventRepository) UpdateEvent(executor SQLExecutor, event *models.ClubEvent) error {
	query := `UPDATE events SET
	            event_type = $1, date = $2, time = $3, location = $4, category = $5,
	            description = $6, opponent = $7, result = $8, updated_at = $9
	          WHERE id = $10 AND team_id = $11`

	event.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		event.EventType, event.Date, event.Time, event.Location, event.Category,
		event.Description, event.Opponent, event.Result, event.UpdatedAt,
		event.ID, event.TeamID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating event ID %d: %v", ErrDatabaseError, event.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating event ID %d: %v", ErrDatabaseError, event.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceStatEvents rewrites the scorers and assists of an event.
func (r *eventRepository) ReplaceStatEvents(executor SQLExecutor, eventID int64, scorers, assists []models.StatEvent) error {
	if _, err := executor.Exec(`DELETE FROM stat_events WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("%w: clearing stat events for event ID %d: %v", ErrDatabaseError, eventID, err)
	}

	insert := `INSERT INTO stat_events (event_id, player_id, kind, count) VALUES ($1, $2, $3, $4)`
	for _, s := range scorers {
		if _, err := executor.Exec(insert, eventID, s.PlayerID, models.StatKindGoal, s.Count); err != nil {
			return fmt.Errorf("%w: inserting scorer stat for event ID %d: %v", ErrDatabaseError, eventID, err)
		}
	}
	for _, s := range assists {
		if _, err := executor.Exec(insert, eventID, s.PlayerID, models.StatKindAssist, s.Count); err != nil {
			return fmt.Errorf("%w: inserting assist stat for event ID %d: %v", ErrDatabaseError, eventID, err)
		}
	}
	return nil
}

// DeleteEvent removes an event. Stat events cascade via the schema.
func (r *eventRepository) DeleteEvent(executor SQLExecutor, teamID, id int64) error {
	query := `DELETE FROM events WHERE id = $1 AND team_id = $2`
	result, err := executor.Exec(query, id, teamID)
	if err != nil {
		return fmt.Errorf("%w: deleting event ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting event ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
