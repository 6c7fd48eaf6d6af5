package service

import (
	"context"
	"fmt"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/repository"
	"mindtrack/internal/domain/service"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// recordService implements service.RecordService
type recordService struct {
	habitRepo  repository.HabitRepository
	recordRepo repository.HabitRecordRepository
	moodRepo   repository.MoodRepository
	goalRepo   repository.GoalRepository
}

// NewRecordService creates a new record service
func NewRecordService(
	habitRepo repository.HabitRepository,
	recordRepo repository.HabitRecordRepository,
	moodRepo repository.MoodRepository,
	goalRepo repository.GoalRepository,
) service.RecordService {
	return &recordService{
		habitRepo:  habitRepo,
		recordRepo: recordRepo,
		moodRepo:   moodRepo,
		goalRepo:   goalRepo,
	}
}

// Catalog returns every habit of the user, inactive ones included, plus the open goal count
func (s *recordService) Catalog(ctx context.Context, userID uuid.UUID) (*entity.Catalog, error) {
	var catalog entity.Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		habits, err := s.habitRepo.GetByUserID(gctx, userID, false)
		if err != nil {
			return fmt.Errorf("failed to get habits: %w", err)
		}
		catalog.Habits = habits
		return nil
	})
	g.Go(func() error {
		goals, err := s.goalRepo.CountActiveByUserID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to count goals: %w", err)
		}
		catalog.ActiveGoals = goals
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if catalog.Habits == nil {
		catalog.Habits = []entity.Habit{}
	}
	return &catalog, nil
}

// HabitRecords returns the user's habit records inside rng
func (s *recordService) HabitRecords(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.HabitRecord, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.GetByUserAndRange(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit records: %w", err)
	}
	if records == nil {
		records = []entity.HabitRecord{}
	}
	return records, nil
}

// MoodRecords returns the user's mood records inside rng
func (s *recordService) MoodRecords(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.MoodRecord, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	moods, err := s.moodRepo.GetByUserAndRange(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood records: %w", err)
	}
	if moods == nil {
		moods = []entity.MoodRecord{}
	}
	return moods, nil
}
