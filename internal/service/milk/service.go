package milk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
)

// Store is the persistence surface used by the milk service.
type Store interface {
	GetAnimal(ctx context.Context, userID, id string) (models.Animal, error)
	CreateMilkRecord(ctx context.Context, m models.MilkProduction) error
	ListMilkRecords(ctx context.Context, userID string, rng calendar.Range) ([]models.MilkProduction, error)
	GetSettings(ctx context.Context, userID string) (models.Settings, error)
}

// Service records milk yields and summarizes them.
type Service struct {
	store        Store
	defaultPrice float64
	logger       *zap.Logger
	now          func() time.Time
}

// NewService wires a new milk service. defaultPrice applies to accounts
// without a stored milk price.
func NewService(store Store, defaultPrice float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, defaultPrice: defaultPrice, logger: logger, now: time.Now}
}

// RecordInput holds the fields of a daily milk record.
type RecordInput struct {
	AnimalID      string
	Date          time.Time
	MorningAmount float64
	EveningAmount float64
	Quality       string
	Notes         string
}

// Record stores the yield of one animal for one day. A second record for the
// same animal and day fails with repository.ErrDuplicate.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (models.MilkProduction, error) {
	if in.MorningAmount < 0 || in.EveningAmount < 0 {
		return models.MilkProduction{}, fmt.Errorf("%w: milk amounts cannot be negative", models.ErrInvalidInput)
	}
	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	if calendar.Day(date).After(calendar.Day(now)) {
		return models.MilkProduction{}, fmt.Errorf("%w: milk date cannot be in the future", models.ErrInvalidInput)
	}

	animal, err := s.store.GetAnimal(ctx, userID, in.AnimalID)
	if err != nil {
		return models.MilkProduction{}, fmt.Errorf("get animal %s: %w", in.AnimalID, err)
	}

	m := models.MilkProduction{
		ID:            uuid.NewString(),
		UserID:        userID,
		AnimalID:      animal.ID,
		Date:          calendar.Day(date),
		MorningAmount: in.MorningAmount,
		EveningAmount: in.EveningAmount,
		TotalAmount:   TotalAmount(in.MorningAmount, in.EveningAmount),
		Quality:       strings.TrimSpace(in.Quality),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now.UTC(),
	}
	if err := s.store.CreateMilkRecord(ctx, m); err != nil {
		return models.MilkProduction{}, fmt.Errorf("create milk record for %s on %s: %w", animal.EarTag, m.Date.Format(calendar.Layout), err)
	}

	s.logger.Debug("milk recorded",
		zap.String("user_id", userID),
		zap.String("animal_id", animal.ID),
		zap.Float64("total", m.TotalAmount))
	return m, nil
}

// List returns the milk records inside rng, newest first.
func (s *Service) List(ctx context.Context, userID string, rng calendar.Range) ([]models.MilkProduction, error) {
	items, err := s.store.ListMilkRecords(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("list milk records: %w", err)
	}
	return items, nil
}

// Summary returns the current-month production and its potential income at
// the account's milk price.
func (s *Service) Summary(ctx context.Context, userID string) (models.MilkSummary, error) {
	now := s.now()
	records, err := s.List(ctx, userID, calendar.Month(now))
	if err != nil {
		return models.MilkSummary{}, err
	}
	price, err := s.PricePerLiter(ctx, userID)
	if err != nil {
		return models.MilkSummary{}, err
	}
	return Summarize(records, now, price), nil
}

// PricePerLiter resolves the account's milk price, falling back to the default.
func (s *Service) PricePerLiter(ctx context.Context, userID string) (float64, error) {
	settings, err := s.store.GetSettings(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.defaultPrice, nil
	case err != nil:
		return 0, fmt.Errorf("get settings: %w", err)
	case settings.MilkPricePerLiter <= 0:
		return s.defaultPrice, nil
	default:
		return settings.MilkPricePerLiter, nil
	}
}
