package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"go.uber.org/zap"
)

// PMScheduler periodically recomputes preventive maintenance due dates.
// Plans whose next due date has passed are logged so operators can act
// on them; the due date itself is derived from LastDoneAt + CycleDays
// and written back when missing.
type PMScheduler struct {
	logger   *zap.Logger
	db       database.Database
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	runningMu sync.Mutex
	running   bool
}

// NewPMScheduler creates a scheduler that sweeps PM plans at the given interval
func NewPMScheduler(logger *zap.Logger, db database.Database, interval time.Duration) *PMScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &PMScheduler{
		logger:   logger.Named("scheduler.pm"),
		db:       db,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the background sweep loop. Calling Start twice is a no-op.
func (s *PMScheduler) Start() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.running {
		return
	}
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweep(s.ctx)
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep(s.ctx)
			}
		}
	}()
	s.logger.Info("pm scheduler started", zap.Duration("interval", s.interval))
}

// Stop terminates the sweep loop and waits for it to exit
func (s *PMScheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.running = false
	s.logger.Info("pm scheduler stopped")
}

func (s *PMScheduler) sweep(ctx context.Context) {
	plans, err := s.db.ListPMPlans(ctx, 0)
	if err != nil {
		s.logger.Error("failed to list pm plans", zap.Error(err))
		return
	}

	now := time.Now()
	overdue := 0
	for _, plan := range plans {
		if plan.NextDueAt == nil {
			due := Derive(plan, now)
			plan.NextDueAt = &due
			if err := s.db.UpdatePMPlan(ctx, plan); err != nil {
				s.logger.Error("failed to backfill pm due date",
					zap.Uint("plan_id", plan.ID),
					zap.Error(err))
				continue
			}
		}
		if plan.NextDueAt.Before(now) {
			overdue++
			s.logger.Warn("pm plan overdue",
				zap.Uint("plan_id", plan.ID),
				zap.Uint("equipment_id", plan.EquipmentID),
				zap.Time("next_due_at", *plan.NextDueAt))
		}
	}

	s.logger.Debug("pm sweep complete",
		zap.Int("plans", len(plans)),
		zap.Int("overdue", overdue))
}

// Derive computes the next due date of a plan. Plans never completed are
// due one cycle after creation.
func Derive(plan *database.PMPlan, now time.Time) time.Time {
	base := plan.CreatedAt
	if plan.LastDoneAt != nil {
		base = *plan.LastDoneAt
	}
	if base.IsZero() {
		base = now
	}
	return base.AddDate(0, 0, plan.CycleDays)
}
