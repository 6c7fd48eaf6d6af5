package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubHabits struct {
	habits []entity.Habit
	err    error
}

func (s stubHabits) GetByUserID(context.Context, uuid.UUID, bool) ([]entity.Habit, error) {
	return s.habits, s.err
}

type stubRecords []entity.HabitRecord

func (s stubRecords) GetByUserAndRange(_ context.Context, _ uuid.UUID, rng entity.DateRange) ([]entity.HabitRecord, error) {
	var out []entity.HabitRecord
	for _, r := range s {
		if rng.IsZero() || rng.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubMoods []entity.MoodRecord

func (s stubMoods) GetByUserAndRange(_ context.Context, _ uuid.UUID, rng entity.DateRange) ([]entity.MoodRecord, error) {
	var out []entity.MoodRecord
	for _, m := range s {
		if rng.IsZero() || rng.Contains(m.Date) {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubGoals int

func (s stubGoals) CountActiveByUserID(context.Context, uuid.UUID) (int, error) {
	return int(s), nil
}

func jan(d int) civil.Date {
	return civil.Date{Year: 2024, Month: time.January, Day: d}
}

func TestReportServiceDashboardSummary(t *testing.T) {
	habitID := uuid.New()
	records := NewRecordService(
		stubHabits{habits: []entity.Habit{{ID: habitID, Name: "Read", Measurement: entity.MeasurementBoolean, IsActive: true}}},
		stubRecords{
			{HabitID: habitID, Date: jan(1), Completed: true},
			{HabitID: habitID, Date: jan(3), Completed: true},
		},
		stubMoods{{Date: jan(1), Score: 4}, {Date: jan(2), Score: 2}},
		stubGoals(2),
	)
	svc := NewReportService(records, time.UTC, 7, zap.NewNop())

	summary, err := svc.DashboardSummary(context.Background(), uuid.New(), entity.DateRange{Start: jan(1), End: jan(3)})
	require.NoError(t, err)

	require.Len(t, summary.Days, 3)
	assert.Equal(t, 1, summary.Days[0].HabitsCompletedCount)
	assert.Equal(t, 0, summary.Days[1].HabitsCompletedCount)
	assert.Nil(t, summary.Days[2].MeanMood)
	assert.Equal(t, 1, summary.TotalActiveHabits)
	assert.Equal(t, 2, summary.TotalActiveGoals)
	require.NotNil(t, summary.WeeklyMeanMood)
	assert.InDelta(t, 3.0, *summary.WeeklyMeanMood, 1e-9)
}

func TestReportServiceDefaultRange(t *testing.T) {
	records := NewRecordService(stubHabits{}, stubRecords{}, stubMoods{}, stubGoals(0))
	svc := NewReportService(records, time.UTC, 7, zap.NewNop()).(*reportService)
	svc.now = func() time.Time { return time.Date(2024, time.January, 10, 23, 30, 0, 0, time.UTC) }

	rng := svc.DefaultRange()
	assert.Equal(t, jan(4), rng.Start)
	assert.Equal(t, jan(10), rng.End)

	summary, err := svc.DashboardSummary(context.Background(), uuid.New(), entity.DateRange{})
	require.NoError(t, err)
	assert.Len(t, summary.Days, 7)
	assert.Equal(t, jan(10), summary.PeriodEnd)
}

func TestReportServiceCorrelation(t *testing.T) {
	habitID := uuid.New()
	records := NewRecordService(
		stubHabits{habits: []entity.Habit{{ID: habitID, Measurement: entity.MeasurementBoolean, IsActive: true}}},
		stubRecords{
			{HabitID: habitID, Date: jan(1), Completed: true},
			{HabitID: habitID, Date: jan(2), Completed: false},
		},
		stubMoods{{Date: jan(1), Score: 5}, {Date: jan(2), Score: 1}},
		stubGoals(0),
	)
	svc := NewReportService(records, time.UTC, 7, zap.NewNop())
	ctx := context.Background()
	rng := entity.DateRange{Start: jan(1), End: jan(2)}

	rep, err := svc.CorrelationReport(ctx, uuid.New(), rng, []uuid.UUID{habitID})
	require.NoError(t, err)
	entry := rep.Entries[habitID]
	assert.Equal(t, 1, entry.TotalCompletedDays)
	require.NotNil(t, entry.MeanMoodOnCompletedDays)
	assert.InDelta(t, 5.0, *entry.MeanMoodOnCompletedDays, 1e-9)

	_, err = svc.CorrelationReport(ctx, uuid.New(), rng, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidSelection)

	_, err = svc.CorrelationReport(ctx, uuid.New(), rng, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.CorrelationReport(ctx, uuid.New(), entity.DateRange{Start: jan(5), End: jan(1)}, []uuid.UUID{habitID})
	assert.ErrorIs(t, err, errs.ErrInvalidRange)
}

func TestReportServicePropagatesFetchErrors(t *testing.T) {
	boom := errors.New("db down")
	records := NewRecordService(stubHabits{err: boom}, stubRecords{}, stubMoods{}, stubGoals(0))
	svc := NewReportService(records, time.UTC, 7, zap.NewNop())

	_, err := svc.DailyData(context.Background(), uuid.New(), entity.DateRange{Start: jan(1), End: jan(2)})
	assert.ErrorIs(t, err, boom)
}

func TestRecordServiceEmptySets(t *testing.T) {
	records := NewRecordService(stubHabits{}, stubRecords{}, stubMoods{}, stubGoals(1))
	ctx := context.Background()

	catalog, err := records.Catalog(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, catalog.Habits)
	assert.Equal(t, 1, catalog.ActiveGoals)

	habits, err := records.HabitRecords(ctx, uuid.New(), entity.DateRange{Start: jan(1), End: jan(2)})
	require.NoError(t, err)
	assert.NotNil(t, habits)

	_, err = records.MoodRecords(ctx, uuid.New(), entity.DateRange{Start: jan(2), End: jan(1)})
	assert.ErrorIs(t, err, errs.ErrInvalidRange)
}
