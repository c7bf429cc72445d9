package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"club_manager_backend/internal/models"
)

// CoachRepository defines the interface for coach-related database operations.
type CoachRepository interface {
	CreateCoach(executor SQLExecutor, coach *models.Coach) (int64, error)
	GetCoachByID(teamID, id int64) (*models.Coach, error)
	GetCoaches(teamID int64, page, pageSize int, searchTerm *string) ([]models.Coach, int, error)
	UpdateCoach(executor SQLExecutor, coach *models.Coach) error
	DeleteCoach(executor SQLExecutor, teamID, id int64) error
}

type coachRepository struct {
	db *sql.DB
}

// NewCoachRepository creates a new instance of CoachRepository.
func NewCoachRepository(db *sql.DB) CoachRepository {
	return &coachRepository{db: db}
}

const coachColumns = `id, team_id, first_name, last_name, phone_number, email, specialty, salary,
	photo_url, entry_date, exit_date, status, created_at, updated_at`

// CreateCoach inserts a new coach into the database.
func (r *coachRepository) CreateCoach(executor SQLExecutor, coach *models.Coach) (int64, error) {
	query := `INSERT INTO coaches (team_id, first_name, last_name, phone_number, email, specialty, salary,
	            photo_url, entry_date, exit_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id`

	currentTime := time.Now()
	if coach.CreatedAt.IsZero() {
		coach.CreatedAt = currentTime
	}
	coach.UpdatedAt = currentTime
	if coach.Status == "" {
		coach.Status = models.MemberStatusActive
	}

	err := executor.QueryRow(query,
		coach.TeamID, coach.FirstName, coach.LastName, coach.PhoneNumber, coach.Email,
		coach.Specialty, coach.Salary, coach.PhotoURL, coach.EntryDate, coach.ExitDate,
		coach.Status, coach.CreatedAt, coach.UpdatedAt,
	).Scan(&coach.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating coach: %v", ErrDatabaseError, err)
	}
	return coach.ID, nil
}

// GetCoachByID retrieves a coach by ID, scoped to a team.
func (r *coachRepository) GetCoachByID(teamID, id int64) (*models.Coach, error) {
	coach := &models.Coach{}
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE id = $1 AND team_id = $2`

	err := r.db.QueryRow(query, id, teamID).Scan(
		&coach.ID, &coach.TeamID, &coach.FirstName, &coach.LastName, &coach.PhoneNumber,
		&coach.Email, &coach.Specialty, &coach.Salary, &coach.PhotoURL, &coach.EntryDate,
		&coach.ExitDate, &coach.Status, &coach.CreatedAt, &coach.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting coach by ID %d: %v", ErrDatabaseError, id, err)
	}
	return coach, nil
}

// GetCoaches retrieves a page of coaches for a team with optional name search.
func (r *coachRepository) GetCoaches(teamID int64, page, pageSize int, searchTerm *string) ([]models.Coach, int, error) {
	coaches := []models.Coach{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + coachColumns + `, COUNT(*) OVER() as total_count FROM coaches`)

	conditions := []string{"team_id = $1"}
	args := []interface{}{teamID}
	argCount := 2

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(*searchTerm) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(specialty) LIKE $%d)", argCount, argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY last_name ASC, first_name ASC")

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
		return nil, 0, fmt.Errorf("%w: querying coaches: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Coach
		if err := rows.Scan(
			&c.ID, &c.TeamID, &c.FirstName, &c.LastName, &c.PhoneNumber, &c.Email,
			&c.Specialty, &c.Salary, &c.PhotoURL, &c.EntryDate, &c.ExitDate, &c.Status,
			&c.CreatedAt, &c.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning coach: %v", ErrDatabaseError, err)
		}
		coaches = append(coaches, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating coach rows: %v", ErrDatabaseError, err)
	}
	return coaches, totalCount, nil
}

// UpdateCoach updates an existing coach in the database.
func (r *coachRepository) UpdateCoach(executor SQLExecutor, coach *models.Coach) error {
	query := `UPDATE coaches SET
	            first_name = $1, last_name = $2, phone_number = $3, email = $4, specialty = $5,
	            salary = $6, photo_url = $7, entry_date = $8, exit_date = $9, status = $10, updated_at = $11
	          WHERE id = $12 AND team_id = $13`

	coach.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		coach.FirstName, coach.LastName, coach.PhoneNumber, coach.Email, coach.Specialty,
		coach.Salary, coach.PhotoURL, coach.EntryDate, coach.ExitDate, coach.Status,
		coach.UpdatedAt, coach.ID, coach.TeamID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating coach ID %d: %v", ErrDatabaseError, coach.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating coach ID %d: %v", ErrDatabaseError, coach.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCoach removes a coach from the database.
func (r *coachRepository) DeleteCoach(executor SQLExecutor, teamID, id int64) error {
	query := `DELETE FROM coaches WHERE id = $1 AND team_id = $2`
	result, err := executor.Exec(query, id, teamID)
	if err != nil {
		return fmt.Errorf("%w: deleting coach ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting coach ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
