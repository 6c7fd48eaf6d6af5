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

// habitRepository implements repository.HabitRepository
type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{
		pool: pool,
	}
}

// GetByUserID retrieves all habits for a user
func (r *habitRepository) GetByUserID(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]entity.Habit, error) {
	query := `
		SELECT id, user_id, name, description, measurement, unit, daily_goal, is_active, created_at, updated_at
		FROM habits
		WHERE user_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}
	defer rows.Close()

	habits := make([]entity.Habit, 0)
	for rows.Next() {
		var (
			habit       entity.Habit
			measurement string
		)
		err := rows.Scan(
			&habit.ID,
			&habit.UserID,
			&habit.Name,
			&habit.Description,
			&measurement,
			&habit.Unit,
			&habit.DailyGoal,
			&habit.IsActive,
			&habit.CreatedAt,
			&habit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habit.Measurement = entity.Measurement(measurement)
		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habits: %w", err)
	}

	return habits, nil
}

// habitRecordRepository implements repository.HabitRecordRepository
type habitRecordRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRecordRepository creates a new habit record repository
func NewHabitRecordRepository(pool *pgxpool.Pool) repository.HabitRecordRepository {
	return &habitRecordRepository{
		pool: pool,
	}
}

// GetByUserAndRange retrieves records whose date falls inside rng.
// The zero range returns every record of the user.
func (r *habitRecordRepository) GetByUserAndRange(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.HabitRecord, error) {
	query := `
		SELECT r.habit_id, r.record_date, r.completed, r.quantity, r.notes
		FROM habit_records r
		JOIN habits h ON h.id = r.habit_id
		WHERE h.user_id = $1
	`
	args := []any{userID}
	if !rng.IsZero() {
		query += ` AND r.record_date BETWEEN $2 AND $3`
		args = append(args, dateParam(rng.Start), dateParam(rng.End))
	}
	query += ` ORDER BY r.record_date, r.habit_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit records: %w", err)
	}
	defer rows.Close()

	records := make([]entity.HabitRecord, 0)
	for rows.Next() {
		var (
			rec  entity.HabitRecord
			date time.Time
		)
		if err := rows.Scan(&rec.HabitID, &date, &rec.Completed, &rec.Quantity, &rec.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan habit record: %w", err)
		}
		rec.Date = civil.DateOf(date)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habit records: %w", err)
	}

	return records, nil
}
