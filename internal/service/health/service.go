package health

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

// Store is the persistence surface used by the health service.
type Store interface {
	GetAnimal(ctx context.Context, userID, id string) (models.Animal, error)
	CreateHealthRecord(ctx context.Context, h models.HealthRecord) error
	ListHealthRecords(ctx context.Context, userID, animalID string) ([]models.HealthRecord, error)
	CreateTransaction(ctx context.Context, t models.Transaction) error
}

var recordTypes = map[models.HealthRecordType]struct{}{
	models.HealthVetVisit:  {},
	models.HealthTreatment: {},
	models.HealthIllness:   {},
	models.HealthInjury:    {},
	models.HealthCheckup:   {},
	models.HealthOther:     {},
}

// Service stores health events of animals.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new health service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// RecordInput holds the fields of a health record. RecordExpense books a
// positive Cost as a veterinary expense.
type RecordInput struct {
	AnimalID      string
	RecordType    models.HealthRecordType
	Title         string
	Description   string
	Date          time.Time
	Cost          *float64
	VetName       string
	FollowUpDate  *time.Time
	RecordExpense bool
}

// Record stores a health record for an animal of the account.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (models.HealthRecord, error) {
	if _, ok := recordTypes[in.RecordType]; !ok {
		return models.HealthRecord{}, fmt.Errorf("%w: unknown record type %q", models.ErrInvalidInput, in.RecordType)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.HealthRecord{}, fmt.Errorf("%w: title is required", models.ErrInvalidInput)
	}
	if in.Cost != nil && *in.Cost < 0 {
		return models.HealthRecord{}, fmt.Errorf("%w: cost cannot be negative", models.ErrInvalidInput)
	}

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	date = calendar.Day(date)

	var followUp *time.Time
	if in.FollowUpDate != nil {
		d := calendar.Day(*in.FollowUpDate)
		if d.Before(date) {
			return models.HealthRecord{}, fmt.Errorf("%w: follow-up date cannot precede the record date", models.ErrInvalidInput)
		}
		followUp = &d
	}

	animal, err := s.store.GetAnimal(ctx, userID, in.AnimalID)
	if err != nil {
		return models.HealthRecord{}, fmt.Errorf("get animal %s: %w", in.AnimalID, err)
	}

	h := models.HealthRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		AnimalID:     animal.ID,
		RecordType:   in.RecordType,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Date:         date,
		Cost:         in.Cost,
		VetName:      strings.TrimSpace(in.VetName),
		FollowUpDate: followUp,
		CreatedAt:    now.UTC(),
	}
	if err := s.store.CreateHealthRecord(ctx, h); err != nil {
		return models.HealthRecord{}, fmt.Errorf("create health record: %w", err)
	}

	if in.RecordExpense && h.Cost != nil && *h.Cost > 0 {
		tx := models.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        models.TransactionExpense,
			Category:    models.CategoryVeterinary,
			Amount:      *h.Cost,
			Date:        date,
			AnimalID:    animal.ID,
			Description: fmt.Sprintf("%s: %s", animal.EarTag, title),
			CreatedAt:   now.UTC(),
		}
		if err := s.store.CreateTransaction(ctx, tx); err != nil {
			return models.HealthRecord{}, fmt.Errorf("record veterinary expense for %s: %w", animal.EarTag, err)
		}
	}

	s.logger.Info("health record stored",
		zap.String("user_id", userID),
		zap.String("animal_id", animal.ID),
		zap.String("type", string(h.RecordType)))
	return h, nil
}

// List returns health records, optionally for a single animal.
func (s *Service) List(ctx context.Context, userID, animalID string) ([]models.HealthRecord, error) {
	items, err := s.store.ListHealthRecords(ctx, userID, animalID)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	return items, nil
}
