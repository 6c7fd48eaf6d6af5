package postgres

import (
	"context"
	"fmt"
	"time"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/repository"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// moodRepository implements repository.MoodRepository
type moodRepository struct {
	pool *pgxpool.Pool
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(pool *pgxpool.Pool) repository.MoodRepository {
	return &moodRepository{
		pool: pool,
	}
}

// GetByUserAndRange retrieves mood records whose date falls inside rng
func (r *moodRepository) GetByUserAndRange(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.MoodRecord, error) {
	query := `SELECT record_date, score, note FROM mood_records WHERE user_id = $1`
	args := []any{userID}
	if !rng.IsZero() {
		query += ` AND record_date BETWEEN $2 AND $3`
		args = append(args, dateParam(rng.Start), dateParam(rng.End))
	}
	query += ` ORDER BY record_date`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood records: %w", err)
	}
	defer rows.Close()

	moods := make([]entity.MoodRecord, 0)
	for rows.Next() {
		var (
			mood entity.MoodRecord
			date time.Time
		)
		if err := rows.Scan(&date, &mood.Score, &mood.Note); err != nil {
			return nil, fmt.Errorf("failed to scan mood record: %w", err)
		}
		mood.Date = civil.DateOf(date)
		moods = append(moods, mood)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mood records: %w", err)
	}

	return moods, nil
}

// goalRepository implements repository.GoalRepository
type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(pool *pgxpool.Pool) repository.GoalRepository {
	return &goalRepository{
		pool: pool,
	}
}

// CountActiveByUserID counts goals that are neither completed nor cancelled
func (r *goalRepository) CountActiveByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = 'active'`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active goals: %w", err)
	}

	return count, nil
}
