package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mindtrack/internal/metrics"
)

// Sweeper removes expired sessions from durable storage
type Sweeper interface {
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// SessionSweeper periodically deletes expired sessions
type SessionSweeper struct {
	sweeper Sweeper
	cron    *cron.Cron
	spec    string
	logger  *zap.Logger
}

// NewSessionSweeper creates a new session sweeper. spec is a cron expression with a seconds field.
func NewSessionSweeper(sweeper Sweeper, spec string, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		sweeper: sweeper,
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		logger:  logger.Named("sweeper"),
	}
}

// Start schedules the sweep and starts the scheduler
func (s *SessionSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("session sweeper started", zap.String("spec", s.spec))
	return nil
}

// Stop stops the scheduler and waits for a running sweep
func (s *SessionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("session sweeper stopped")
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := s.sweeper.SweepExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("session sweep failed", zap.Error(err))
		return
	}

	metrics.SessionsSwept.Add(float64(removed))
	s.logger.Info("session sweep completed", zap.Int64("removed", removed))
}
