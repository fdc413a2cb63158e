package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/emissions"
	"github.com/mamadbah2/ecolog/internal/service/dashboard"
)

// Lister is the read side of the activities backend.
type Lister interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
}

// Sink receives a generated weekly report.
type Sink interface {
	Name() string
	PublishWeeklyReport(ctx context.Context, report models.WeeklyReport) error
}

// Service builds weekly footprint reports and fans them out to the sinks.
type Service struct {
	lister Lister
	sinks  []Sink
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(lister Lister, sinks []Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{lister: lister, sinks: sinks, logger: logger}
}

// HasSinks reports whether publishing would reach anything.
func (s *Service) HasSinks() bool {
	return len(s.sinks) > 0
}

// GenerateWeeklyReport aggregates the 7 calendar days ending on now's date.
func (s *Service) GenerateWeeklyReport(ctx context.Context, now time.Time) (models.WeeklyReport, error) {
	list, err := s.lister.ListActivities(ctx)
	if err != nil {
		return models.WeeklyReport{}, fmt.Errorf("load activities: %w", err)
	}

	days := dashboard.Series(list, now, dashboard.ChartDays)
	start, end := days[0].Date, days[len(days)-1].Date

	byCategory := make(map[models.Category]float64, len(models.Categories))
	for _, c := range models.Categories {
		byCategory[c] = 0
	}

	var total float64
	var count int
	for _, a := range list {
		day, ok := a.Day()
		if !ok {
			s.logger.Debug("skip activity with invalid date", zap.Int("id", a.ID), zap.String("date", a.Date))
			continue
		}
		key := day.Format(models.DateLayout)
		if key < start || key > end {
			continue
		}
		total += a.CO2Estimate.Float()
		byCategory[a.Category] += a.CO2Estimate.Float()
		count++
	}

	for c, v := range byCategory {
		byCategory[c] = emissions.Round(v, 1)
	}

	return models.WeeklyReport{
		Start:         start,
		End:           end,
		Days:          days,
		ByCategory:    byCategory,
		TotalCO2:      emissions.Round(total, 1),
		DailyAverage:  emissions.Round(total/dashboard.ChartDays, 1),
		ActivityCount: count,
		CreatedAt:     now.UTC(),
	}, nil
}

// Publish hands the report to every sink. One failing sink does not stop the
// others; the failures are joined.
func (s *Service) Publish(ctx context.Context, report models.WeeklyReport) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.PublishWeeklyReport(ctx, report); err != nil {
			s.logger.Error("failed to publish weekly report", zap.String("sink", sink.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		s.logger.Info("weekly report published", zap.String("sink", sink.Name()))
	}
	return errors.Join(errs...)
}

// FormatDigest renders a short text summary of the report.
func FormatDigest(report models.WeeklyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "EcoLog weekly footprint (%s to %s)\n", report.Start, report.End)
	fmt.Fprintf(&b, "Total: %s kg CO2 across %d activities\n", emissions.Signed(report.TotalCO2, 1), report.ActivityCount)
	fmt.Fprintf(&b, "Daily average: %.1f kg\n", report.DailyAverage)

	categories := make([]string, 0, len(report.ByCategory))
	for c := range report.ByCategory {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s: %s kg\n", c, emissions.Signed(report.ByCategory[models.Category(c)], 1))
	}

	if day, ok := peakDay(report.Days); ok {
		fmt.Fprintf(&b, "Highest day: %s (%s) with %.1f kg", day.Label, day.Date, day.CO2)
	} else {
		b.WriteString("No emissions recorded this week.")
	}
	return b.String()
}

func peakDay(days []models.DailyTotal) (models.DailyTotal, bool) {
	var peak models.DailyTotal
	found := false
	for _, d := range days {
		if d.CO2 > 0 && (!found || d.CO2 > peak.CO2) {
			peak = d
			found = true
		}
	}
	return peak, found
}
