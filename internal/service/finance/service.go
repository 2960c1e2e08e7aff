package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// Store is the persistence surface used by the finance service.
type Store interface {
	CreateTransaction(ctx context.Context, t models.Transaction) error
	ListTransactions(ctx context.Context, userID string, rng calendar.Range) ([]models.Transaction, error)
}

// Summary is the aggregated financial view of a date range.
type Summary struct {
	From       *time.Time             `json:"from,omitempty"`
	To         *time.Time             `json:"to,omitempty"`
	Totals     models.FinanceTotals   `json:"totals"`
	Categories []models.CategoryTotal `json:"categories"`
	Monthly    []models.MonthlyTotal  `json:"monthly"`
}

// Service records transactions and aggregates them.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new finance service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// RecordInput holds the fields of a transaction.
type RecordInput struct {
	Type        models.TransactionType
	Category    string
	Amount      float64
	Date        time.Time
	AnimalID    string
	Description string
}

// Record stores a transaction after checking its category against its type.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (models.Transaction, error) {
	if in.Type != models.TransactionIncome && in.Type != models.TransactionExpense {
		return models.Transaction{}, fmt.Errorf("%w: type must be income or expense", models.ErrInvalidInput)
	}
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if !models.ValidCategory(in.Type, category) {
		return models.Transaction{}, fmt.Errorf("%w: category %q is not valid for %s", models.ErrInvalidInput, in.Category, in.Type)
	}
	if in.Amount <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	t := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        in.Type,
		Category:    category,
		Amount:      in.Amount,
		Date:        calendar.Day(date),
		AnimalID:    strings.TrimSpace(in.AnimalID),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now.UTC(),
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return models.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.logger.Info("transaction recorded",
		zap.String("user_id", userID),
		zap.String("type", string(t.Type)),
		zap.String("category", t.Category),
		zap.Float64("amount", t.Amount))
	return t, nil
}

// List returns the transactions inside rng.
func (s *Service) List(ctx context.Context, userID string, rng calendar.Range) ([]models.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Summarize aggregates the transactions inside rng.
func (s *Service) Summarize(ctx context.Context, userID string, rng calendar.Range) (Summary, error) {
	txs, err := s.List(ctx, userID, rng)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(txs, rng), nil
}

// Summarize is the pure aggregation behind Service.Summarize.
func Summarize(txs []models.Transaction, rng calendar.Range) Summary {
	keep := InRange(rng)
	out := Summary{
		Totals:     Totals(txs, keep),
		Categories: ByCategory(txs, keep),
		Monthly:    Monthly(txs, keep),
	}
	if !rng.From.IsZero() {
		from := rng.From
		out.From = &from
	}
	if !rng.To.IsZero() {
		to := rng.To
		out.To = &to
	}
	return out
}
