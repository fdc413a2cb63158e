package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/ecolog/internal/config"
	"github.com/mamadbah2/ecolog/internal/domain/models"
)

// Repository defines the persistence operations supported by the Google Sheets adapter.
type Repository interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

// ReportExporter appends one row per weekly report to a sheet.
type ReportExporter struct {
	repo       Repository
	sheetRange string
}

// NewReportExporter builds a report sink writing into sheetRange.
func NewReportExporter(repo Repository, sheetRange string) *ReportExporter {
	return &ReportExporter{repo: repo, sheetRange: sheetRange}
}

// Name identifies the exporter as a report sink.
func (e *ReportExporter) Name() string { return "sheets" }

// PublishWeeklyReport implements reporting.Sink.
func (e *ReportExporter) PublishWeeklyReport(ctx context.Context, report models.WeeklyReport) error {
	return e.repo.WriteRow(ctx, e.sheetRange, ReportRow(report))
}

// ReportRow lays a report out as: start, end, total, daily average, count,
// then one column per category in display order.
func ReportRow(report models.WeeklyReport) []interface{} {
	row := []interface{}{
		report.Start,
		report.End,
		report.TotalCO2,
		report.DailyAverage,
		report.ActivityCount,
	}
	for _, c := range models.Categories {
		row = append(row, report.ByCategory[c])
	}
	return row
}
