package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"club_manager_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// PlayerRepository defines the interface for player-related database operations.
type PlayerRepository interface {
	CreatePlayer(executor SQLExecutor, player *models.Player) (int64, error)
	GetPlayerByID(teamID, id int64) (*models.Player, error)
	GetPlayers(teamID int64, page, pageSize int, searchTerm *string) ([]models.Player, int, error) // Players, total count, error
	GetAllPlayers(teamID int64) ([]models.Player, error)
	UpdatePlayer(executor SQLExecutor, player *models.Player) error
	DeletePlayer(executor SQLExecutor, teamID, id int64) error
}

type playerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new instance of PlayerRepository.
func NewPlayerRepository(db *sql.DB) PlayerRepository {
	return &playerRepository{db: db}
}

const playerColumns = `id, team_id, first_name, last_name, birth_date, phone_number, email, category, position,
	photo_url, medical_cert_url, medical_cert_expiry, entry_date, exit_date, status, created_at, updated_at`

func scanPlayer(row interface{ Scan(dest ...interface{}) error }, p *models.Player) error {
	return row.Scan(
		&p.ID, &p.TeamID, &p.FirstName, &p.LastName, &p.BirthDate, &p.PhoneNumber, &p.Email,
		&p.Category, &p.Position, &p.PhotoURL, &p.MedicalCertURL, &p.MedicalCertExpiry,
		&p.EntryDate, &p.ExitDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
}

// CreatePlayer inserts a new player into the database.
func (r *playerRepository) CreatePlayer(executor SQLExecutor, player *models.Player) (int64, error) {
	query := `INSERT INTO players (team_id, first_name, last_name, birth_date, phone_number, email, category, position,
	            photo_url, medical_cert_url, medical_cert_expiry, entry_date, exit_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id`

	currentTime := time.Now()
	if player.CreatedAt.IsZero() {
		player.CreatedAt = currentTime
	}
	player.UpdatedAt = currentTime
	if player.Status == "" {
		player.Status = models.MemberStatusActive
	}

	err := executor.QueryRow(query,
		player.TeamID, player.FirstName, player.LastName, player.BirthDate, player.PhoneNumber,
		player.Email, player.Category, player.Position, player.PhotoURL, player.MedicalCertURL,
		player.MedicalCertExpiry, player.EntryDate, player.ExitDate, player.Status,
		player.CreatedAt, player.UpdatedAt,
	).Scan(&player.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating player: %v", ErrDatabaseError, err)
	}
	return player.ID, nil
}

// GetPlayerByID retrieves a player by ID, scoped to a team.
func (r *playerRepository) GetPlayerByID(teamID, id int64) (*models.Player, error) {
	player := &models.Player{}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1 AND team_id = $2`

	err := scanPlayer(r.db.QueryRow(query, id, teamID), player)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting player by ID %d: %v", ErrDatabaseError, id, err)
	}
	return player, nil
}

// GetPlayers retrieves a page of players for a team with optional name search.
func (r *playerRepository) GetPlayers(teamID int64, page, pageSize int, searchTerm *string) ([]models.Player, int, error) {
	players := []models.Player{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + playerColumns + `, COUNT(*) OVER() as total_count FROM players`)

	conditions := []string{"team_id = $1"}
	args := []interface{}{teamID}
	argCount := 2

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(*searchTerm) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(category) LIKE $%d)", argCount, argCount, argCount))
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
		return nil, 0, fmt.Errorf("%w: querying players: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Player
		if err := rows.Scan(
			&p.ID, &p.TeamID, &p.FirstName, &p.LastName, &p.BirthDate, &p.PhoneNumber, &p.Email,
			&p.Category, &p.Position, &p.PhotoURL, &p.MedicalCertURL, &p.MedicalCertExpiry,
			&p.EntryDate, &p.ExitDate, &p.Status, &p.CreatedAt, &p.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning player: %v", ErrDatabaseError, err)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating player rows: %v", ErrDatabaseError, err)
	}
	return players, totalCount, nil
}

// GetAllPlayers retrieves every player of a team. Used by the statistics
// aggregator, which needs the full roster snapshot.
func (r *playerRepository) GetAllPlayers(teamID int64) ([]models.Player, error) {
	players := []models.Player{}
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY last_name ASC, first_name ASC`

	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all players: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanning player: %v", ErrDatabaseError, err)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating player rows: %v", ErrDatabaseError, err)
	}
	return players, nil
}

// UpdatePlayer updates an existing player in the database.
func (r *playerRepository) UpdatePlayer(executor SQLExecutor, player *models.Player) error {
	query := `UPDATE players SET
	            first_name = $1, last_name = $2, birth_date = $3, phone_number = $4, email = $5,
	            category = $6, position = $7, photo_url = $8, medical_cert_url = $9,
	            medical_cert_expiry = $10, entry_date = $11, exit_date = $12, status = $13, updated_at = $14
	          WHERE id = $15 AND team_id = $16`

	player.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		player.FirstName, player.LastName, player.BirthDate, player.PhoneNumber, player.Email,
		player.Category, player.Position, player.PhotoURL, player.MedicalCertURL,
		player.MedicalCertExpiry, player.EntryDate, player.ExitDate, player.Status,
		player.UpdatedAt, player.ID, player.TeamID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating player ID %d: %v", ErrDatabaseError, player.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating player ID %d: %v", ErrDatabaseError, player.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlayer removes a player from the database.
func (r *playerRepository) DeletePlayer(executor SQLExecutor, teamID, id int64) error {
	query := `DELETE FROM players WHERE id = $1 AND team_id = $2`
	result, err := executor.Exec(query, id, teamID)
	if err != nil {
		return fmt.Errorf("%w: deleting player ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting player ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
