package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/ecolog/internal/config"
	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/observability"
)

const reportTimeout = 2 * time.Minute

// Reporter generates and distributes the weekly report.
type Reporter interface {
	GenerateWeeklyReport(ctx context.Context, now time.Time) (models.WeeklyReport, error)
	Publish(ctx context.Context, report models.WeeklyReport) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	cfg      config.ReportingConfig
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, loc *time.Location, reporter Reporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		reporter: reporter,
		cfg:      cfg,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the weekly report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.String("timezone", s.loc.String()))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendWeeklyReport); err != nil {
		return fmt.Errorf("schedule weekly report %q: %w", s.cfg.CronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	err := s.RunWeeklyReport(ctx)
	observability.RecordReportRun(err)
	if err != nil {
		s.logger.Error("weekly report run failed", zap.Error(err))
	}
}

// RunWeeklyReport generates the report for the week ending now and publishes it.
func (s *Scheduler) RunWeeklyReport(ctx context.Context) error {
	s.logger.Info("generating weekly report")

	report, err := s.reporter.GenerateWeeklyReport(ctx, s.now().In(s.loc))
	if err != nil {
		return fmt.Errorf("generate weekly report: %w", err)
	}

	if err := s.reporter.Publish(ctx, report); err != nil {
		return fmt.Errorf("publish weekly report: %w", err)
	}

	s.logger.Info("weekly report sent successfully",
		zap.String("start", report.Start),
		zap.String("end", report.End),
		zap.Float64("total_co2", report.TotalCO2))
	return nil
}
