package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/traderisk/trade-risk-backend/internal/model"
)

// ATHRepository provides data access methods for all-time-high submissions.
type ATHRepository struct {
	db *sql.DB
}

// NewATHRepository creates a new ATHRepository with the provided database
// connection.
func NewATHRepository(db *sql.DB) *ATHRepository {
	return &ATHRepository{db: db}
}

// Create stores a new submission and returns it with its generated ID and
// timestamps filled in.
func (r *ATHRepository) Create(sub model.ATHSubmission) (model.ATHSubmission, error) {
	sub.ID = uuid.NewString()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO ath_submission (id, account_id, portfolio_ath_value, portfolio_ath_date,
		                            current_nav_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sub.ID,
		sub.AccountID,
		sub.PortfolioATHValue,
		sub.PortfolioATHDate.Format("2006-01-02"),
		sub.CurrentNAVValue,
		sub.CreatedAt.Format(time.RFC3339),
		sub.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.ATHSubmission{}, fmt.Errorf("failed to insert ath submission: %w", err)
	}

	return sub, nil
}

// GetAll retrieves every submission, newest first.
func (r *ATHRepository) GetAll() ([]model.ATHSubmission, error) {
	rows, err := r.db.Query(`
		SELECT id, account_id, portfolio_ath_value, portfolio_ath_date,
		       current_nav_value, created_at, updated_at
		FROM ath_submission
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ath submissions: %w", err)
	}
	defer rows.Close()

	var subs []model.ATHSubmission
	for rows.Next() {
		var sub model.ATHSubmission
		var athDate, createdAt, updatedAt string
		err := rows.Scan(
			&sub.ID,
			&sub.AccountID,
			&sub.PortfolioATHValue,
			&athDate,
			&sub.CurrentNAVValue,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ath submission: %w", err)
		}

		if sub.PortfolioATHDate, err = ParseTime(athDate); err != nil {
			return nil, fmt.Errorf("failed to parse ath date: %w", err)
		}
		if sub.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if sub.UpdatedAt, err = ParseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ath submissions: %w", err)
	}

	return subs, nil
}
