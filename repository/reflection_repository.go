package repository

import (
	"context"
	"fmt"

	"xperiencia/database"
	"xperiencia/models"

	"github.com/jackc/pgx/v5"
)

// ReflectionRepository implements the service.ReflectionRepository interface
type ReflectionRepository struct {
	q queryable
}

// NewReflectionRepository creates a new reflection repository
func NewReflectionRepository(db *database.DB) *ReflectionRepository {
	return &ReflectionRepository{q: db.Pool}
}

// newReflectionRepositoryWithTx creates a new reflection repository bound to a transaction
func newReflectionRepositoryWithTx(tx queryable) *ReflectionRepository {
	return &ReflectionRepository{q: tx}
}

const reflectionColumns = "id, user_id, sentiment, recorded_at"

func scanReflection(row pgx.Row) (*models.Reflection, error) {
	var reflection models.Reflection
	err := row.Scan(
		&reflection.ID,
		&reflection.UserID,
		&reflection.Sentiment,
		&reflection.RecordedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reflection, nil
}

func (r *ReflectionRepository) queryReflections(ctx context.Context, query string, args ...any) ([]*models.Reflection, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reflections: %w", err)
	}
	defer rows.Close()

	var reflections []*models.Reflection
	for rows.Next() {
		reflection, err := scanReflection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reflection: %w", err)
		}
		reflections = append(reflections, reflection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reflections: %w", err)
	}

	return reflections, nil
}

// Create inserts a new reflection and fills in its generated id
func (r *ReflectionRepository) Create(ctx context.Context, reflection *models.Reflection) error {
	query := `
		INSERT INTO reflections (user_id, sentiment, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id, recorded_at
	`

	err := r.q.QueryRow(ctx, query,
		reflection.UserID,
		reflection.Sentiment,
		reflection.RecordedAt,
	).Scan(&reflection.ID, &reflection.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to create reflection for user %d: %w", reflection.UserID, err)
	}

	return nil
}

// GetByID retrieves a reflection by id; returns nil without error when absent
func (r *ReflectionRepository) GetByID(ctx context.Context, id int64) (*models.Reflection, error) {
	reflection, err := scanReflection(r.q.QueryRow(ctx, `SELECT `+reflectionColumns+` FROM reflections WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reflection %d: %w", id, err)
	}

	return reflection, nil
}

// GetByUser returns all reflections for a user ordered by id
func (r *ReflectionRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Reflection, error) {
	return r.queryReflections(ctx, `SELECT `+reflectionColumns+` FROM reflections WHERE user_id = $1 ORDER BY id`, userID)
}

// GetAll returns all reflections ordered by id
func (r *ReflectionRepository) GetAll(ctx context.Context) ([]*models.Reflection, error) {
	return r.queryReflections(ctx, `SELECT `+reflectionColumns+` FROM reflections ORDER BY id`)
}

// GetBySentiment returns all reflections whose sentiment contains the given
// text, ignoring case. The match is a literal substring, not a pattern.
func (r *ReflectionRepository) GetBySentiment(ctx context.Context, sentiment string) ([]*models.Reflection, error) {
	query := `SELECT ` + reflectionColumns + ` FROM reflections WHERE STRPOS(LOWER(sentiment), LOWER($1)) > 0 ORDER BY id`
	return r.queryReflections(ctx, query, sentiment)
}

// Update overwrites the full reflection record
func (r *ReflectionRepository) Update(ctx context.Context, reflection *models.Reflection) error {
	query := `
		UPDATE reflections
		SET user_id = $1, sentiment = $2, recorded_at = $3
		WHERE id = $4
	`

	result, err := r.q.Exec(ctx, query,
		reflection.UserID,
		reflection.Sentiment,
		reflection.RecordedAt,
		reflection.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reflection %d: %w", reflection.ID, err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrReflectionNotFound
	}

	return nil
}

// Delete removes a reflection
func (r *ReflectionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM reflections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reflection %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrReflectionNotFound
	}

	return nil
}

// DeleteByUser removes all reflections belonging to a user
func (r *ReflectionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM reflections WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete reflections for user %d: %w", userID, err)
	}
	return nil
}
