package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/config"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// RunTimeout bounds one daily digest run.
const RunTimeout = 5 * time.Minute

// DailySummarizer runs one pass of the daily digest.
type DailySummarizer interface {
	DailySummary(ctx context.Context) (models.DailySummaryResult, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	schedule   string
	summarizer DailySummarizer
	logger     *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone. The
// schedule is standard 5-field cron.
func NewScheduler(cfg config.NotificationsConfig, summarizer DailySummarizer, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}
	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", cfg.CronSchedule, err)
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		schedule:   cfg.CronSchedule,
		summarizer: summarizer,
		logger:     logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("daily_summary", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.RunDailySummary); err != nil {
		return fmt.Errorf("schedule daily summary: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunDailySummary runs the digest once, bounded by a timeout.
func (s *Scheduler) RunDailySummary() {
	s.logger.Info("running daily summary")
	ctx, cancel := context.WithTimeout(context.Background(), RunTimeout)
	defer cancel()

	res, err := s.summarizer.DailySummary(ctx)
	if err != nil {
		s.logger.Error("daily summary failed", zap.Error(err))
		return
	}

	s.logger.Info("daily summary completed",
		zap.Int("total_users", res.TotalUsers),
		zap.Int("sent", res.Sent))
}
