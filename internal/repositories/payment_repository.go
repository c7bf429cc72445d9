package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"club_manager_backend/internal/models"
)

// PaymentRepository defines the interface for payment-related database operations.
// Write methods take an SQLExecutor so the ledger update and its history entry
// can be committed in one transaction.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentByID(teamID, id int64) (*models.Payment, error)
	GetPayments(teamID int64, page, pageSize int, memberKind *string, memberID *int64, status *string) ([]models.Payment, int, error)
	UpdatePaymentAmounts(executor SQLExecutor, payment *models.Payment) error
	AddTransaction(executor SQLExecutor, txn *models.PaymentTransaction) (int64, error)
	GetTransactions(paymentID int64) ([]models.PaymentTransaction, error)
	DeletePayment(executor SQLExecutor, teamID, id int64) error
	DeletePaymentsByMember(executor SQLExecutor, teamID int64, memberKind string, memberID int64) error
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, team_id, member_id, member_kind, member_name, payment_type,
	total_amount, advance, remaining, due_date, status, created_at, updated_at`

// CreatePayment inserts a new payment into the database.
func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments (team_id, member_id, member_kind, member_name, payment_type,
	            total_amount, advance, remaining, due_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`

	currentTime := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = currentTime
	}
	payment.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		payment.TeamID, payment.MemberID, payment.MemberKind, payment.MemberName,
		payment.PaymentType, payment.TotalAmount, payment.Advance, payment.Remaining,
		payment.DueDate, payment.Status, payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

// GetPaymentByID retrieves a payment with its full transaction history.
func (r *paymentRepository) GetPaymentByID(teamID, id int64) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND team_id = $2`

	err := r.db.QueryRow(query, id, teamID).Scan(
		&payment.ID, &payment.TeamID, &payment.MemberID, &payment.MemberKind, &payment.MemberName,
		&payment.PaymentType, &payment.TotalAmount, &payment.Advance, &payment.Remaining,
		&payment.DueDate, &payment.Status, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting payment by ID %d: %v", ErrDatabaseError, id, err)
	}

	history, err := r.GetTransactions(payment.ID)
	if err != nil {
		return nil, err
	}
	payment.History = history
	return payment, nil
}

// GetPayments retrieves a page of payments for a team with optional filters.
func (r *paymentRepository) GetPayments(teamID int64, page, pageSize int, memberKind *string, memberID *int64, status *string) ([]models.Payment, int, error) {
	payments := []models.Payment{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + paymentColumns + `, COUNT(*) OVER() as total_count FROM payments`)

	conditions := []string{"team_id = $1"}
	args := []interface{}{teamID}
	argCount := 2

	if memberKind != nil && *memberKind != "" {
		conditions = append(conditions, fmt.Sprintf("member_kind = $%d", argCount))
		args = append(args, *memberKind)
		argCount++
	}
	if memberID != nil {
		conditions = append(conditions, fmt.Sprintf("member_id = $%d", argCount))
		args = append(args, *memberID)
		argCount++
	}
	if status != nil && *status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *status)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY due_date ASC, id ASC")

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
		return nil, 0, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.TeamID, &p.MemberID, &p.MemberKind, &p.MemberName, &p.PaymentType,
			&p.TotalAmount, &p.Advance, &p.Remaining, &p.DueDate, &p.Status,
			&p.CreatedAt, &p.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, totalCount, nil
}

// UpdatePaymentAmounts persists the ledger fields (advance, remaining, status)
// of a payment. It deliberately does not touch identity or total fields.
func (r *paymentRepository) UpdatePaymentAmounts(executor SQLExecutor, payment *models.Payment) error {
	query := `UPDATE payments SET advance = $1, remaining = $2, status = $3, updated_at = $4
	          WHERE id = $5 AND team_id = $6`

	payment.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		payment.Advance, payment.Remaining, payment.Status, payment.UpdatedAt,
		payment.ID, payment.TeamID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating payment ID %d: %v", ErrDatabaseError, payment.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating payment ID %d: %v", ErrDatabaseError, payment.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddTransaction appends a partial-payment entry to a payment's history.
func (r *paymentRepository) AddTransaction(executor SQLExecutor, txn *models.PaymentTransaction) (int64, error) {
	query := `INSERT INTO payment_transactions (payment_id, date, amount, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query, txn.PaymentID, txn.Date, txn.Amount, txn.CreatedAt).Scan(&txn.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: adding payment transaction: %v", ErrDatabaseError, err)
	}
	return txn.ID, nil
}

// GetTransactions returns a payment's history ordered oldest first.
func (r *paymentRepository) GetTransactions(paymentID int64) ([]models.PaymentTransaction, error) {
	transactions := []models.PaymentTransaction{}
	query := `SELECT id, payment_id, date, amount, created_at FROM payment_transactions
	          WHERE payment_id = $1 ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payment transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.PaymentTransaction
		if err := rows.Scan(&t.ID, &t.PaymentID, &t.Date, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning payment transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment transaction rows: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}

// DeletePayment removes a payment. Its history rows go with it via the
// ON DELETE CASCADE constraint on payment_transactions.
func (r *paymentRepository) DeletePayment(executor SQLExecutor, teamID, id int64) error {
	query := `DELETE FROM payments WHERE id = $1 AND team_id = $2`
	result, err := executor.Exec(query, id, teamID)
	if err != nil {
		return fmt.Errorf("%w: deleting payment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting payment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePaymentsByMember removes every payment tied to one member. Used by the
// member-delete cascade; zero affected rows is not an error here.
func (r *paymentRepository) DeletePaymentsByMember(executor SQLExecutor, teamID int64, memberKind string, memberID int64) error {
	query := `DELETE FROM payments WHERE team_id = $1 AND member_kind = $2 AND member_id = $3`
	if _, err := executor.Exec(query, teamID, memberKind, memberID); err != nil {
		return fmt.Errorf("%w: deleting payments for %s ID %d: %v", ErrDatabaseError, memberKind, memberID, err)
	}
	return nil
}
