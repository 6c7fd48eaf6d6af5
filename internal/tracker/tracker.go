// Package tracker exposes the report engines to an authenticated client
// session. It fetches the record sets concurrently and expires the session
// on a 401 from any call.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
	"mindtrack/internal/report"
	"mindtrack/internal/session"
)

// Tracker runs summaries and correlations for the session's user
type Tracker struct {
	store   *session.Store
	records service.RecordsAPI
	logger  *zap.Logger
}

// New creates a new tracker
func New(store *session.Store, records service.RecordsAPI, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:   store,
		records: records,
		logger:  logger.Named("tracker"),
	}
}

// Summarize returns the per-day dashboard series for rng
func (t *Tracker) Summarize(ctx context.Context, rng entity.DateRange) (*entity.DashboardSummary, error) {
	if err := t.precheck(rng); err != nil {
		return nil, err
	}

	ds, err := t.fetch(ctx, rng)
	if err != nil {
		return nil, err
	}
	return report.Summarize(*ds, rng)
}

// Correlate returns the conditional mood means of the selected habits over rng
func (t *Tracker) Correlate(ctx context.Context, habitIDs []uuid.UUID, rng entity.DateRange) (*entity.CorrelationReport, error) {
	if len(habitIDs) == 0 {
		return nil, errs.New(errs.ErrInvalidSelection, "At least one habit must be selected for the correlation.")
	}
	if err := t.precheck(rng); err != nil {
		return nil, err
	}

	ds, err := t.fetch(ctx, rng)
	if err != nil {
		return nil, err
	}

	entries, err := report.Correlate(*ds, rng, habitIDs)
	if err != nil {
		return nil, err
	}
	return &entity.CorrelationReport{
		PeriodStart: rng.Start,
		PeriodEnd:   rng.End,
		Entries:     entries,
	}, nil
}

// DailyDetails returns the consolidated per-day view for rng
func (t *Tracker) DailyDetails(ctx context.Context, rng entity.DateRange) ([]entity.DayDetail, error) {
	if err := t.precheck(rng); err != nil {
		return nil, err
	}
	if rng.IsZero() {
		return []entity.DayDetail{}, nil
	}

	ds, err := t.fetch(ctx, rng)
	if err != nil {
		return nil, err
	}
	return report.DailyDetails(*ds, rng)
}

func (t *Tracker) precheck(rng entity.DateRange) error {
	if !t.store.Snapshot().Authenticated() {
		return errs.ErrUnauthenticated
	}
	return rng.Validate()
}

// fetch loads the catalog and, unless rng is empty, the records inside rng
func (t *Tracker) fetch(ctx context.Context, rng entity.DateRange) (*report.Dataset, error) {
	var ds report.Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		catalog, err := t.records.FetchCatalog(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch catalog: %w", err)
		}
		if catalog != nil {
			ds.Catalog = *catalog
		}
		return nil
	})
	if !rng.IsZero() {
		g.Go(func() error {
			habits, err := t.records.FetchHabitRecords(gctx, rng)
			if err != nil {
				return fmt.Errorf("failed to fetch habit records: %w", err)
			}
			ds.Habits = habits
			return nil
		})
		g.Go(func() error {
			moods, err := t.records.FetchMoodRecords(gctx, rng)
			if err != nil {
				return fmt.Errorf("failed to fetch mood records: %w", err)
			}
			ds.Moods = moods
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, errs.ErrUnauthenticated) {
			t.store.Expire()
		}
		t.logger.Debug("record fetch failed", zap.Error(err))
		return nil, err
	}
	return &ds, nil
}
