package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository/sheets"
	"github.com/mamadbah2/livestock/internal/service/finance"
)

// ErrExportDisabled indicates no spreadsheet is configured for report export.
var ErrExportDisabled = errors.New("report export is not configured")

const financeSheetRange = "Finans!A:H"

// Store is the read surface used by reporting.
type Store interface {
	ListAnimals(ctx context.Context, userID string, f models.AnimalFilter) ([]models.Animal, error)
	ListInseminations(ctx context.Context, userID string, f models.InseminationFilter) ([]models.Insemination, error)
	ListVaccinations(ctx context.Context, userID, animalID string) ([]models.Vaccination, error)
	ListTransactions(ctx context.Context, userID string, rng calendar.Range) ([]models.Transaction, error)
	ListMilkRecords(ctx context.Context, userID string, rng calendar.Range) ([]models.MilkProduction, error)
}

// PriceResolver returns the milk price of an account.
type PriceResolver interface {
	PricePerLiter(ctx context.Context, userID string) (float64, error)
}

// Service builds dashboards and exports reports.
type Service struct {
	store  Store
	prices PriceResolver
	sheet  sheets.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance. sheet may be nil, in
// which case exports fail with ErrExportDisabled.
func NewService(store Store, prices PriceResolver, sheet sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, prices: prices, sheet: sheet, logger: logger, now: time.Now}
}

// ExportResult describes a completed export.
type ExportResult struct {
	Range  string               `json:"range"`
	Rows   int                  `json:"rows"`
	Totals models.FinanceTotals `json:"totals"`
}

// ExportFinancialReport appends one row per category and the totals rows of
// rng to the finance sheet.
func (s *Service) ExportFinancialReport(ctx context.Context, userID string, rng calendar.Range) (ExportResult, error) {
	if s.sheet == nil {
		return ExportResult{}, ErrExportDisabled
	}

	txs, err := s.store.ListTransactions(ctx, userID, rng)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list transactions: %w", err)
	}

	summary := finance.Summarize(txs, rng)
	rows := FinancialReportRows(userID, rng, summary, s.now())

	written, err := s.sheet.AppendRows(ctx, financeSheetRange, rows)
	if err != nil {
		return ExportResult{}, fmt.Errorf("export financial report: %w", err)
	}

	s.logger.Info("financial report exported",
		zap.String("user_id", userID),
		zap.String("range", written),
		zap.Int("rows", len(rows)))
	return ExportResult{Range: written, Rows: len(rows), Totals: summary.Totals}, nil
}

// FinancialReportRows lays out a summary as sheet rows:
// generated_at, user_id, from, to, type, category, count, amount.
func FinancialReportRows(userID string, rng calendar.Range, summary finance.Summary, generatedAt time.Time) [][]interface{} {
	stamp := generatedAt.Format(time.RFC3339)
	from, to := boundLabel(rng.From), boundLabel(rng.To)

	rows := make([][]interface{}, 0, len(summary.Categories)+3)
	for _, c := range summary.Categories {
		rows = append(rows, []interface{}{stamp, userID, from, to, string(c.Type), c.Category, c.Count, c.Amount})
	}
	rows = append(rows,
		[]interface{}{stamp, userID, from, to, "toplam", "gelir", "", summary.Totals.TotalIncome},
		[]interface{}{stamp, userID, from, to, "toplam", "gider", "", summary.Totals.TotalExpense},
		[]interface{}{stamp, userID, from, to, "toplam", "bakiye", "", summary.Totals.Balance},
	)
	return rows
}

func boundLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(calendar.Layout)
}
