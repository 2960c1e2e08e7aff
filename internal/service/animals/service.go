package animals

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

// Store is the persistence surface used by the animal service.
type Store interface {
	CreateAnimal(ctx context.Context, a models.Animal) error
	UpdateAnimal(ctx context.Context, a models.Animal) error
	GetAnimal(ctx context.Context, userID, id string) (models.Animal, error)
	ListAnimals(ctx context.Context, userID string, f models.AnimalFilter) ([]models.Animal, error)
	CreateTransaction(ctx context.Context, t models.Transaction) error
}

// View is an animal with its derived age and category.
type View struct {
	models.Animal
	AgeMonths int             `json:"age_months"`
	Category  models.Category `json:"category"`
}

// Service manages animal records and their lifecycle.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new animal service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// CreateInput holds the fields accepted when registering an animal.
type CreateInput struct {
	EarTag    string
	Name      string
	Species   string
	Breed     string
	Gender    models.Gender
	BirthDate time.Time
	MotherTag string
	ImageURL  string
	Notes     string
}

// Create registers a new active animal.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (View, error) {
	if strings.TrimSpace(userID) == "" {
		return View{}, fmt.Errorf("%w: user id is required", models.ErrInvalidInput)
	}
	tag := normalizeTag(in.EarTag)
	if tag == "" {
		return View{}, fmt.Errorf("%w: ear tag is required", models.ErrInvalidInput)
	}
	species := models.NormalizeSpecies(in.Species)
	if species == "" {
		return View{}, fmt.Errorf("%w: species is required", models.ErrInvalidInput)
	}
	if in.Gender != models.GenderMale && in.Gender != models.GenderFemale {
		return View{}, fmt.Errorf("%w: gender must be male or female", models.ErrInvalidInput)
	}
	now := s.now()
	if in.BirthDate.IsZero() || calendar.Day(in.BirthDate).After(calendar.Day(now)) {
		return View{}, fmt.Errorf("%w: birth date is required and cannot be in the future", models.ErrInvalidInput)
	}

	a := models.Animal{
		ID:        uuid.NewString(),
		UserID:    userID,
		EarTag:    tag,
		Name:      strings.TrimSpace(in.Name),
		Species:   species,
		Breed:     strings.TrimSpace(in.Breed),
		Gender:    in.Gender,
		BirthDate: calendar.Day(in.BirthDate),
		MotherTag: normalizeTag(in.MotherTag),
		Status:    models.AnimalActive,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := s.store.CreateAnimal(ctx, a); err != nil {
		return View{}, fmt.Errorf("create animal %s: %w", tag, err)
	}

	s.logger.Info("animal registered", zap.String("user_id", userID), zap.String("animal_id", a.ID), zap.String("ear_tag", tag))
	return s.view(a, now), nil
}

// Get loads one animal with its category.
func (s *Service) Get(ctx context.Context, userID, id string) (View, error) {
	a, err := s.store.GetAnimal(ctx, userID, id)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", id, err)
	}
	return s.view(a, s.now()), nil
}

// List returns the account's animals with their categories.
func (s *Service) List(ctx context.Context, userID string, f models.AnimalFilter) ([]View, error) {
	items, err := s.store.ListAnimals(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}

	now := s.now()
	out := make([]View, 0, len(items))
	for _, a := range items {
		out = append(out, s.view(a, now))
	}
	return out, nil
}

// UpdateInput holds editable identity fields. Nil fields are left unchanged.
// Lifecycle status is changed only through MarkSold and MarkDeceased.
type UpdateInput struct {
	EarTag    *string
	Name      *string
	Breed     *string
	BirthDate *time.Time
	MotherTag *string
	ImageURL  *string
	Notes     *string
}

// Update edits the identity fields of an animal.
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (View, error) {
	a, err := s.store.GetAnimal(ctx, userID, id)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", id, err)
	}

	now := s.now()
	if in.EarTag != nil {
		tag := normalizeTag(*in.EarTag)
		if tag == "" {
			return View{}, fmt.Errorf("%w: ear tag cannot be empty", models.ErrInvalidInput)
		}
		a.EarTag = tag
	}
	if in.BirthDate != nil {
		if calendar.Day(*in.BirthDate).After(calendar.Day(now)) {
			return View{}, fmt.Errorf("%w: birth date cannot be in the future", models.ErrInvalidInput)
		}
		a.BirthDate = calendar.Day(*in.BirthDate)
	}
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.MotherTag != nil {
		a.MotherTag = normalizeTag(*in.MotherTag)
	}
	if in.ImageURL != nil {
		a.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	a.UpdatedAt = now.UTC()

	if err := s.store.UpdateAnimal(ctx, a); err != nil {
		return View{}, fmt.Errorf("update animal %s: %w", id, err)
	}
	return s.view(a, now), nil
}

// SaleInput describes a sale. RecordIncome also books an animal-sale income transaction.
type SaleInput struct {
	SoldTo       string
	Date         time.Time
	Price        float64
	RecordIncome bool
}

// MarkSold moves an active animal to sold.
func (s *Service) MarkSold(ctx context.Context, userID, id string, in SaleInput) (View, error) {
	if in.Price < 0 {
		return View{}, fmt.Errorf("%w: sale price cannot be negative", models.ErrInvalidInput)
	}

	a, err := s.store.GetAnimal(ctx, userID, id)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", id, err)
	}

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	if err := Sell(&a, strings.TrimSpace(in.SoldTo), date, in.Price); err != nil {
		return View{}, err
	}
	a.UpdatedAt = now.UTC()

	if err := s.store.UpdateAnimal(ctx, a); err != nil {
		return View{}, fmt.Errorf("update animal %s: %w", id, err)
	}

	if in.RecordIncome && in.Price > 0 {
		tx := models.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        models.TransactionIncome,
			Category:    models.CategoryAnimalSale,
			Amount:      in.Price,
			Date:        calendar.Day(date),
			AnimalID:    a.ID,
			Description: fmt.Sprintf("%s satışı", a.EarTag),
			CreatedAt:   now.UTC(),
		}
		if err := s.store.CreateTransaction(ctx, tx); err != nil {
			return View{}, fmt.Errorf("record sale income for %s: %w", a.EarTag, err)
		}
	}

	s.logger.Info("animal sold", zap.String("user_id", userID), zap.String("animal_id", a.ID), zap.Float64("price", in.Price))
	return s.view(a, now), nil
}

// DeathInput describes a death.
type DeathInput struct {
	Date   time.Time
	Reason string
}

// MarkDeceased moves an active animal to deceased.
func (s *Service) MarkDeceased(ctx context.Context, userID, id string, in DeathInput) (View, error) {
	a, err := s.store.GetAnimal(ctx, userID, id)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", id, err)
	}

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	if err := Decease(&a, date, strings.TrimSpace(in.Reason)); err != nil {
		return View{}, err
	}
	a.UpdatedAt = now.UTC()

	if err := s.store.UpdateAnimal(ctx, a); err != nil {
		return View{}, fmt.Errorf("update animal %s: %w", id, err)
	}

	s.logger.Info("animal marked deceased", zap.String("user_id", userID), zap.String("animal_id", a.ID))
	return s.view(a, now), nil
}

func (s *Service) view(a models.Animal, now time.Time) View {
	age := AgeInMonths(a.BirthDate, now)
	return View{Animal: a, AgeMonths: age, Category: Classify(a.Species, a.Gender, age)}
}

func normalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}
