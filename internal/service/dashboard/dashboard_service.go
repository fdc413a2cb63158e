package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/emissions"
)

// ChartDays is the width of the emissions chart.
const ChartDays = 7

// averageDivisor is fixed: the daily average is the filtered total spread over
// a week, not over the days that happen to have entries.
const averageDivisor = 7

// Lister is the read side of the activities backend.
type Lister interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
}

// Filter holds the user-controlled dashboard filters.
type Filter struct {
	Search   string
	Category models.Category
}

// Entry is an activity prepared for display.
type Entry struct {
	models.Activity
	CO2       float64
	DateLabel string
	Emitted   bool
}

// View is everything the dashboard page renders.
type View struct {
	Filter       Filter
	Categories   []models.Category
	Entries      []Entry
	Count        int
	TotalCO2     float64
	DailyAverage float64
	Chart        []models.DailyTotal
	Empty        bool
}

// TotalLabel formats the total card.
func (v View) TotalLabel() string { return fmt.Sprintf("%.1f", v.TotalCO2) }

// AverageLabel formats the daily average card.
func (v View) AverageLabel() string { return fmt.Sprintf("%.1f", v.DailyAverage) }

// Service builds dashboard views from a fresh backend snapshot.
type Service struct {
	lister Lister
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new dashboard service instance.
func NewService(lister Lister, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{lister: lister, loc: loc, logger: logger, now: time.Now}
}

// Load fetches the activity list and derives the dashboard. A backend failure
// is logged and rendered as an empty list.
func (s *Service) Load(ctx context.Context, filter Filter) View {
	list, err := s.lister.ListActivities(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch activities, rendering empty dashboard", zap.Error(err))
		list = nil
	}
	return Build(list, filter, s.now().In(s.loc))
}

// Build derives the dashboard from a snapshot. The chart always covers the
// full snapshot; the filter only narrows the cards and the list.
func Build(list []models.Activity, filter Filter, today time.Time) View {
	filtered := Apply(list, filter)

	entries := make([]Entry, 0, len(filtered))
	for _, a := range filtered {
		entries = append(entries, NewEntry(a))
	}

	sum := Sum(filtered)
	return View{
		Filter:       filter,
		Categories:   models.Categories,
		Entries:      entries,
		Count:        len(filtered),
		TotalCO2:     emissions.Round(sum, 1),
		DailyAverage: emissions.Round(sum/averageDivisor, 1),
		Chart:        Series(list, today, ChartDays),
		Empty:        len(filtered) == 0,
	}
}

// Apply keeps activities whose details contain the search text
// (case-insensitively) and whose category matches, if one is selected.
func Apply(list []models.Activity, filter Filter) []models.Activity {
	search := strings.ToLower(filter.Search)
	out := make([]models.Activity, 0, len(list))
	for _, a := range list {
		if !strings.Contains(strings.ToLower(a.Details), search) {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Sum adds up the CO2 estimates.
func Sum(list []models.Activity) float64 {
	var total float64
	for _, a := range list {
		total += a.CO2Estimate.Float()
	}
	return total
}

// Series returns one total per calendar day for the `days` days ending on
// today, oldest first. Days without activities are zero.
func Series(list []models.Activity, today time.Time, days int) []models.DailyTotal {
	byDate := make(map[string]float64, len(list))
	for _, a := range list {
		day, ok := a.Day()
		if !ok {
			continue
		}
		byDate[day.Format(models.DateLayout)] += a.CO2Estimate.Float()
	}

	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	out := make([]models.DailyTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := start.AddDate(0, 0, -i)
		key := day.Format(models.DateLayout)
		out = append(out, models.DailyTotal{
			Date:  key,
			Label: day.Format("Mon"),
			CO2:   emissions.Round(byDate[key], 1),
		})
	}
	return out
}

// NewEntry prepares one activity card.
func NewEntry(a models.Activity) Entry {
	co2 := a.CO2Estimate.Float()
	return Entry{
		Activity:  a,
		CO2:       co2,
		DateLabel: DateLabel(a),
		Emitted:   emissions.Emitted(co2),
	}
}

// DateLabel renders "January 2, 2006", falling back to the raw value.
func DateLabel(a models.Activity) string {
	day, ok := a.Day()
	if !ok {
		return a.Date
	}
	return day.Format("January 2, 2006")
}
