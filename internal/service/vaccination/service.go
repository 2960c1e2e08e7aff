package vaccination

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

// Store is the persistence surface used by the vaccination service.
type Store interface {
	GetAnimal(ctx context.Context, userID, id string) (models.Animal, error)
	ListAnimals(ctx context.Context, userID string, f models.AnimalFilter) ([]models.Animal, error)
	CreateVaccination(ctx context.Context, v models.Vaccination) error
	UpdateVaccination(ctx context.Context, v models.Vaccination) error
	GetVaccination(ctx context.Context, userID, id string) (models.Vaccination, error)
	ListVaccinations(ctx context.Context, userID, animalID string) ([]models.Vaccination, error)
}

// View is a vaccination with its reminder status.
type View struct {
	models.Vaccination
	EarTag   string                   `json:"ear_tag"`
	Status   models.VaccinationStatus `json:"status"`
	DaysLeft *int                     `json:"days_left,omitempty"`
}

// Service records vaccinations and classifies their reminders.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new vaccination service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// RecordInput holds the fields of an administered dose.
type RecordInput struct {
	AnimalID string
	Name     string
	Date     time.Time
	NextDate *time.Time
	Notes    string
}

// Record stores an administered vaccination.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (View, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return View{}, fmt.Errorf("%w: vaccine name is required", models.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return View{}, fmt.Errorf("%w: vaccination date is required", models.ErrInvalidInput)
	}
	date := calendar.Day(in.Date)
	var next *time.Time
	if in.NextDate != nil {
		d := calendar.Day(*in.NextDate)
		if d.Before(date) {
			return View{}, fmt.Errorf("%w: next date cannot precede the vaccination date", models.ErrInvalidInput)
		}
		next = &d
	}

	animal, err := s.store.GetAnimal(ctx, userID, in.AnimalID)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", in.AnimalID, err)
	}

	now := s.now()
	v := models.Vaccination{
		ID:        uuid.NewString(),
		UserID:    userID,
		AnimalID:  animal.ID,
		Name:      name,
		Date:      date,
		NextDate:  next,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now.UTC(),
	}
	if err := s.store.CreateVaccination(ctx, v); err != nil {
		return View{}, fmt.Errorf("create vaccination: %w", err)
	}

	s.logger.Info("vaccination recorded", zap.String("user_id", userID), zap.String("animal_id", animal.ID), zap.String("name", name))
	return newView(v, animal.EarTag, now), nil
}

// List returns the account's vaccinations classified and sorted for display.
func (s *Service) List(ctx context.Context, userID, animalID string) ([]View, error) {
	items, err := s.store.ListVaccinations(ctx, userID, animalID)
	if err != nil {
		return nil, fmt.Errorf("list vaccinations: %w", err)
	}
	animals, err := s.store.ListAnimals(ctx, userID, models.AnimalFilter{})
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	tags := make(map[string]string, len(animals))
	for _, a := range animals {
		tags[a.ID] = a.EarTag
	}

	now := s.now()
	out := make([]View, 0, len(items))
	for _, v := range items {
		out = append(out, newView(v, tags[v.AnimalID], now))
	}
	Sort(out)
	return out, nil
}

// MarkCompleted flags the follow-up dose as done.
func (s *Service) MarkCompleted(ctx context.Context, userID, id string) (View, error) {
	v, err := s.store.GetVaccination(ctx, userID, id)
	if err != nil {
		return View{}, fmt.Errorf("get vaccination %s: %w", id, err)
	}
	v.Completed = true
	if err := s.store.UpdateVaccination(ctx, v); err != nil {
		return View{}, fmt.Errorf("update vaccination %s: %w", id, err)
	}

	animal, err := s.store.GetAnimal(ctx, userID, v.AnimalID)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", v.AnimalID, err)
	}
	return newView(v, animal.EarTag, s.now()), nil
}

func newView(v models.Vaccination, earTag string, now time.Time) View {
	view := View{Vaccination: v, EarTag: earTag, Status: StatusOf(v, now)}
	if v.NextDate != nil && !v.Completed {
		days := calendar.DaysBetween(now, *v.NextDate)
		view.DaysLeft = &days
	}
	return view
}
