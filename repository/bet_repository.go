package repository

import (
	"context"
	"fmt"
	"time"

	"xperiencia/database"
	"xperiencia/models"

	"github.com/jackc/pgx/v5"
)

// BetRepository implements the service.BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository bound to a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

const betColumns = "id, user_id, description, amount, result, placed_at"

func scanBet(row pgx.Row) (*models.Bet, error) {
	var bet models.Bet
	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.Description,
		&bet.Amount,
		&bet.Result,
		&bet.PlacedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *BetRepository) queryBets(ctx context.Context, query string, args ...any) ([]*models.Bet, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}

// Create inserts a new bet record and fills in its generated id
func (r *BetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (user_id, description, amount, result, placed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, placed_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.Description,
		bet.Amount,
		bet.Result,
		bet.PlacedAt,
	).Scan(&bet.ID, &bet.PlacedAt)
	if err != nil {
		return fmt.Errorf("failed to create bet for user %d: %w", bet.UserID, err)
	}

	return nil
}

// GetByID retrieves a bet by id; returns nil without error when absent
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*models.Bet, error) {
	bet, err := scanBet(r.q.QueryRow(ctx, `SELECT `+betColumns+` FROM bets WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}

	return bet, nil
}

// GetByUser returns all bets for a user ordered by id
func (r *BetRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Bet, error) {
	return r.queryBets(ctx, `SELECT `+betColumns+` FROM bets WHERE user_id = $1 ORDER BY id`, userID)
}

// GetAll returns all bets ordered by id
func (r *BetRepository) GetAll(ctx context.Context) ([]*models.Bet, error) {
	return r.queryBets(ctx, `SELECT `+betColumns+` FROM bets ORDER BY id`)
}

// GetByPeriod returns all bets placed within [start, end], both ends inclusive
func (r *BetRepository) GetByPeriod(ctx context.Context, start, end time.Time) ([]*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE placed_at >= $1 AND placed_at <= $2 ORDER BY id`
	return r.queryBets(ctx, query, start, end)
}

// GetByResult returns all bets whose result label matches, ignoring case
func (r *BetRepository) GetByResult(ctx context.Context, result string) ([]*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE LOWER(result) = LOWER($1) ORDER BY id`
	return r.queryBets(ctx, query, result)
}

// Update overwrites the full bet record
func (r *BetRepository) Update(ctx context.Context, bet *models.Bet) error {
	query := `
		UPDATE bets
		SET user_id = $1, description = $2, amount = $3, result = $4, placed_at = $5
		WHERE id = $6
	`

	result, err := r.q.Exec(ctx, query,
		bet.UserID,
		bet.Description,
		bet.Amount,
		bet.Result,
		bet.PlacedAt,
		bet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bet %d: %w", bet.ID, err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrBetNotFound
	}

	return nil
}

// Delete removes a bet
func (r *BetRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM bets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bet %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrBetNotFound
	}

	return nil
}

// DeleteByUser removes all bets belonging to a user
func (r *BetRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM bets WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete bets for user %d: %w", userID, err)
	}
	return nil
}
