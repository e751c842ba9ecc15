// Package scheduler triggers the engine's proactive work on a cron schedule:
// the meeting sweep and the auto-close of auctions whose bidding window passed.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"fanmeet-engine/internal/lifecycle"
	"fanmeet-engine/internal/metrics"
	"fanmeet-engine/utils"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	JobSweep        = "sweep"
	JobAuctionClose = "auction_close"

	DefaultSchedule = "@every 1m"
	DefaultLockTTL  = 50 * time.Second
)

// Engine is the work the scheduler triggers
type Engine interface {
	Sweep(ctx context.Context, now time.Time) (lifecycle.SweepReport, error)
	CloseDueAuctions(ctx context.Context) (int, error)
}

// Config holds the cron expressions and the lock lifetime
type Config struct {
	SweepSchedule        string
	AuctionCloseSchedule string
	LockTTL              time.Duration
}

// Scheduler manages the cron jobs
type Scheduler struct {
	cron   *cron.Cron
	engine Engine
	locker Locker
	config Config
	now    func() time.Time
}

// New creates a scheduler; a nil locker falls back to an in-process lock
func New(engine Engine, locker Locker, cfg Config) *Scheduler {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = DefaultSchedule
	}
	if cfg.AuctionCloseSchedule == "" {
		cfg.AuctionCloseSchedule = DefaultSchedule
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultLockTTL
	}

	cronLogger := cron.PrintfLogger(log.StandardLogger())
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &Scheduler{
		cron:   c,
		engine: engine,
		locker: locker,
		config: cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Start registers the jobs and starts the cron scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.AuctionCloseSchedule, func() { s.Run(context.Background(), JobAuctionClose) }); err != nil {
		return fmt.Errorf("scheduler: schedule %s job: %w", JobAuctionClose, err)
	}
	utils.Info("scheduled auction close job", map[string]any{"schedule": s.config.AuctionCloseSchedule})

	if _, err := s.cron.AddFunc(s.config.SweepSchedule, func() { s.Run(context.Background(), JobSweep) }); err != nil {
		return fmt.Errorf("scheduler: schedule %s job: %w", JobSweep, err)
	}
	utils.Info("scheduled meeting sweep job", map[string]any{"schedule": s.config.SweepSchedule})

	s.cron.Start()
	return nil
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Run executes one job if this instance wins the lock for it. It reports
// whether the job ran.
func (s *Scheduler) Run(ctx context.Context, job string) bool {
	ok, err := s.locker.TryLock(ctx, job, s.config.LockTTL)
	if err != nil {
		metrics.SweepRuns.WithLabelValues(job, "lock_error").Inc()
		utils.Error("scheduler: lock failed", map[string]any{"job": job, "error": err.Error()})
		return false
	}
	if !ok {
		metrics.SweepRuns.WithLabelValues(job, "skipped").Inc()
		utils.Debug("scheduler: job held by another instance", map[string]any{"job": job})
		return false
	}

	switch job {
	case JobSweep:
		_, err = s.engine.Sweep(ctx, s.now())
	case JobAuctionClose:
		var closed int
		closed, err = s.engine.CloseDueAuctions(ctx)
		if closed > 0 {
			utils.Info("auctions auto-closed", map[string]any{"closed": closed})
		}
	default:
		err = fmt.Errorf("unknown job %q", job)
	}

	metrics.SweepRuns.WithLabelValues(job, metrics.Result(err)).Inc()
	if err != nil {
		utils.Error("scheduler: job failed", map[string]any{"job": job, "error": err.Error()})
	}
	return true
}
