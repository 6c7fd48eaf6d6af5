package service

import (
	"context"
	"time"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
	"mindtrack/internal/metrics"
	"mindtrack/internal/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report kinds used as metric labels
const (
	reportSummary     = "dashboard_summary"
	reportCorrelation = "correlation"
	reportDaily       = "daily_data"
)

// reportService implements service.ReportService
type reportService struct {
	records service.RecordService
	loc     *time.Location
	days    int
	now     func() time.Time
	logger  *zap.Logger
}

// NewReportService creates a new report service.
// loc decides which calendar day "today" is; days is the default dashboard window.
func NewReportService(records service.RecordService, loc *time.Location, days int, logger *zap.Logger) service.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if days <= 0 {
		days = report.WeeklyWindow
	}
	return &reportService{
		records: records,
		loc:     loc,
		days:    days,
		now:     time.Now,
		logger:  logger.Named("reports"),
	}
}

// DefaultRange is the dashboard window ending today
func (s *reportService) DefaultRange() entity.DateRange {
	return entity.LastDays(s.now(), s.loc, s.days)
}

func (s *reportService) DashboardSummary(ctx context.Context, userID uuid.UUID, rng entity.DateRange) (*entity.DashboardSummary, error) {
	if rng.IsZero() {
		rng = s.DefaultRange()
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	ds, err := s.dataset(ctx, userID, rng)
	if err != nil {
		return nil, s.fail(reportSummary, userID, err)
	}

	defer s.observe(reportSummary, time.Now())
	summary, err := report.Summarize(*ds, rng)
	if err != nil {
		return nil, s.fail(reportSummary, userID, err)
	}
	return summary, nil
}

func (s *reportService) CorrelationReport(
	ctx context.Context,
	userID uuid.UUID,
	rng entity.DateRange,
	habitIDs []uuid.UUID,
) (*entity.CorrelationReport, error) {
	if len(habitIDs) == 0 {
		return nil, errs.New(errs.ErrInvalidSelection, "At least one habit must be selected for the correlation.")
	}
	if rng.IsZero() {
		rng = s.DefaultRange()
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	ds, err := s.dataset(ctx, userID, rng)
	if err != nil {
		return nil, s.fail(reportCorrelation, userID, err)
	}

	defer s.observe(reportCorrelation, time.Now())
	entries, err := report.Correlate(*ds, rng, habitIDs)
	if err != nil {
		return nil, s.fail(reportCorrelation, userID, err)
	}

	return &entity.CorrelationReport{
		PeriodStart: rng.Start,
		PeriodEnd:   rng.End,
		Entries:     entries,
	}, nil
}

func (s *reportService) DailyData(ctx context.Context, userID uuid.UUID, rng entity.DateRange) ([]entity.DayDetail, error) {
	if rng.IsZero() {
		rng = s.DefaultRange()
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	ds, err := s.dataset(ctx, userID, rng)
	if err != nil {
		return nil, s.fail(reportDaily, userID, err)
	}

	defer s.observe(reportDaily, time.Now())
	days, err := report.DailyDetails(*ds, rng)
	if err != nil {
		return nil, s.fail(reportDaily, userID, err)
	}
	return days, nil
}

// dataset loads catalog, habit records and moods concurrently
func (s *reportService) dataset(ctx context.Context, userID uuid.UUID, rng entity.DateRange) (*report.Dataset, error) {
	var ds report.Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		catalog, err := s.records.Catalog(gctx, userID)
		if err != nil {
			return err
		}
		ds.Catalog = *catalog
		return nil
	})
	g.Go(func() error {
		habits, err := s.records.HabitRecords(gctx, userID, rng)
		if err != nil {
			return err
		}
		ds.Habits = habits
		return nil
	})
	g.Go(func() error {
		moods, err := s.records.MoodRecords(gctx, userID, rng)
		if err != nil {
			return err
		}
		ds.Moods = moods
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (s *reportService) observe(kind string, start time.Time) {
	metrics.ReportDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (s *reportService) fail(kind string, userID uuid.UUID, err error) error {
	code := errs.Code(err)
	metrics.ReportErrors.WithLabelValues(kind, code).Inc()
	s.logger.Debug("report failed",
		zap.String("report", kind),
		zap.String("user_id", userID.String()),
		zap.String("code", code),
		zap.Error(err),
	)
	return err
}
