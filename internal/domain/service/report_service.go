package service

import (
	"context"

	"mindtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// RecordService serves raw catalog and record sets
type RecordService interface {
	Catalog(ctx context.Context, userID uuid.UUID) (*entity.Catalog, error)
	HabitRecords(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.HabitRecord, error)
	MoodRecords(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.MoodRecord, error)
}

// ReportService builds derived reports for a user
type ReportService interface {
	// DefaultRange is the dashboard window ending today
	DefaultRange() entity.DateRange

	DashboardSummary(ctx context.Context, userID uuid.UUID, rng entity.DateRange) (*entity.DashboardSummary, error)
	CorrelationReport(ctx context.Context, userID uuid.UUID, rng entity.DateRange, habitIDs []uuid.UUID) (*entity.CorrelationReport, error)
	DailyData(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.DayDetail, error)
}
