package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"club_manager_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// AuthRepository defines the interface for authentication-related database operations.
type AuthRepository interface {
	CreateTeam(executor SQLExecutor, team *models.Team) (int64, error)
	GetTeamByID(teamID int64) (*models.Team, error)
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(username string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID int64) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

// CreateTeam inserts a new team (club) into the database.
func (r *authRepository) CreateTeam(executor SQLExecutor, team *models.Team) (int64, error) {
	query := `INSERT INTO teams (name, city, logo_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	currentTime := time.Now()
	var teamID int64
	err := executor.QueryRow(query, team.Name, team.City, team.LogoURL, currentTime, currentTime).Scan(&teamID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating team: %v", ErrDatabaseError, err)
	}
	return teamID, nil
}

// GetTeamByID retrieves a team by its ID.
func (r *authRepository) GetTeamByID(teamID int64) (*models.Team, error) {
	team := &models.Team{}
	query := `SELECT id, name, city, logo_url, created_at, updated_at FROM teams WHERE id = $1`

	err := r.db.QueryRow(query, teamID).Scan(
		&team.ID, &team.Name, &team.City, &team.LogoURL, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting team by ID %d: %v", ErrDatabaseError, teamID, err)
	}
	return team, nil
}

// CreateUser inserts a new user into the database.
// It expects an SQLExecutor which can be a *sql.DB or *sql.Tx so that user
// creation can share a transaction with team creation on registration.
func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (team_id, username, password_hash, email, full_name, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	isActive := true // New users are active by default

	var userID int64
	err := executor.QueryRow(
		query,
		user.TeamID,
		user.Username,
		hashedPassword,
		user.Email,    // Can be nil
		user.FullName, // Can be nil
		user.Role,
		isActive,
		currentTime,
		currentTime,
	).Scan(&userID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return userID, nil
}

// FindUserByUsername retrieves a user by their username.
// It returns the user model, their hashed password, and an error if any.
func (r *authRepository) FindUserByUsername(username string) (*models.User, string, error) {
	user := &models.User{}
	var hashedPassword string
	query := `SELECT id, team_id, username, password_hash, email, full_name, role, is_active, created_at, updated_at
	          FROM users WHERE username = $1`

	err := r.db.QueryRow(query, username).Scan(
		&user.ID, &user.TeamID, &user.Username, &hashedPassword, &user.Email,
		&user.FullName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, hashedPassword, nil
}

// FindUserByID retrieves a user by their ID, with team details joined.
func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	user := &models.User{Team: &models.Team{}}
	query := `SELECT u.id, u.team_id, u.username, u.email, u.full_name, u.role, u.is_active, u.created_at, u.updated_at,
	                 t.id, t.name, t.city, t.logo_url, t.created_at, t.updated_at
	          FROM users u
	          JOIN teams t ON t.id = u.team_id
	          WHERE u.id = $1`

	err := r.db.QueryRow(query, userID).Scan(
		&user.ID, &user.TeamID, &user.Username, &user.Email, &user.FullName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		&user.Team.ID, &user.Team.Name, &user.Team.City, &user.Team.LogoURL,
		&user.Team.CreatedAt, &user.Team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}
