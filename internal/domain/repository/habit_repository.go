package repository

import (
	"context"

	"mindtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// HabitRepository reads the habit catalog
type HabitRepository interface {
	// GetByUserID retrieves all habits for a user
	GetByUserID(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]entity.Habit, error)
}

// HabitRecordRepository reads daily habit observations
type HabitRecordRepository interface {
	// GetByUserAndRange retrieves records whose date falls inside rng
	GetByUserAndRange(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.HabitRecord, error)
}

// MoodRepository reads mood assessments
type MoodRepository interface {
	GetByUserAndRange(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.MoodRecord, error)
}

// GoalRepository reads goal counters
type GoalRepository interface {
	// CountActiveByUserID counts goals that are neither completed nor cancelled
	CountActiveByUserID(ctx context.Context, userID uuid.UUID) (int, error)
}
