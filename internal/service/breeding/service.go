package breeding

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// Store is the persistence surface used by the breeding service.
type Store interface {
	GetAnimal(ctx context.Context, userID, id string) (models.Animal, error)
	ListAnimals(ctx context.Context, userID string, f models.AnimalFilter) ([]models.Animal, error)
	CreateInsemination(ctx context.Context, in models.Insemination) error
	CompleteInsemination(ctx context.Context, in models.Insemination) (bool, error)
	DeleteInsemination(ctx context.Context, userID, id string) error
	GetInsemination(ctx context.Context, userID, id string) (models.Insemination, error)
	ListInseminations(ctx context.Context, userID string, f models.InseminationFilter) ([]models.Insemination, error)
	CreateReminders(ctx context.Context, reminders []models.PregnancyReminder) error
	GetReminder(ctx context.Context, userID, id string) (models.PregnancyReminder, error)
	UpdateReminder(ctx context.Context, r models.PregnancyReminder) error
	ListReminders(ctx context.Context, userID string, pendingOnly bool) ([]models.PregnancyReminder, error)
}

// View is an insemination with its animal identity and derived pregnancy status.
type View struct {
	models.Insemination
	EarTag  string                 `json:"ear_tag"`
	Species string                 `json:"species"`
	Status  models.PregnancyStatus `json:"status"`
}

// Warning is one milk-withdrawal advisory for a pregnant animal.
type Warning struct {
	InseminationID string              `json:"insemination_id"`
	AnimalID       string              `json:"animal_id"`
	EarTag         string              `json:"ear_tag"`
	PregnancyMonth int                 `json:"pregnancy_month"`
	Advisory       models.AdvisoryKind `json:"advisory"`
	Message        string              `json:"message"`
}

// Service tracks inseminations, pregnancies and their reminders.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new breeding service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// RecordInput holds the fields of a breeding event.
type RecordInput struct {
	AnimalID string
	Date     time.Time
	Method   models.InseminationMethod
	BullInfo string
	Notes    string
}

// Record stores an insemination, projects the expected birth date from the
// animal's species and schedules the 6th and 7th month reminders.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (View, error) {
	if in.Method != models.MethodNatural && in.Method != models.MethodArtificial {
		return View{}, fmt.Errorf("%w: method must be natural or artificial", models.ErrInvalidInput)
	}
	now := s.now()
	if in.Date.IsZero() || calendar.Day(in.Date).After(calendar.Day(now)) {
		return View{}, fmt.Errorf("%w: insemination date is required and cannot be in the future", models.ErrInvalidInput)
	}

	animal, err := s.store.GetAnimal(ctx, userID, in.AnimalID)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", in.AnimalID, err)
	}
	if animal.Gender != models.GenderFemale {
		return View{}, fmt.Errorf("%w: only female animals can be inseminated", models.ErrInvalidInput)
	}
	if animal.Status != models.AnimalActive {
		return View{}, fmt.Errorf("%w: animal is %s", models.ErrInvalidInput, animal.Status)
	}

	open, err := s.store.ListInseminations(ctx, userID, models.InseminationFilter{AnimalID: animal.ID, PregnantOnly: true})
	if err != nil {
		return View{}, fmt.Errorf("list pregnancies of %s: %w", animal.EarTag, err)
	}
	if len(open) > 0 {
		return View{}, fmt.Errorf("%w: %s already has an active pregnancy", models.ErrInvalidInput, animal.EarTag)
	}

	date := calendar.Day(in.Date)
	record := models.Insemination{
		ID:                uuid.NewString(),
		UserID:            userID,
		AnimalID:          animal.ID,
		Date:              date,
		Method:            in.Method,
		BullInfo:          strings.TrimSpace(in.BullInfo),
		ExpectedBirthDate: ExpectedBirthDate(date, animal.Species),
		IsPregnant:        true,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}

	if err := s.store.CreateInsemination(ctx, record); err != nil {
		return View{}, fmt.Errorf("create insemination: %w", err)
	}

	reminders := make([]models.PregnancyReminder, 0, 2)
	for _, kind := range []models.ReminderType{models.Reminder6Month, models.Reminder7Month} {
		reminders = append(reminders, models.PregnancyReminder{
			ID:             uuid.NewString(),
			UserID:         userID,
			InseminationID: record.ID,
			AnimalID:       animal.ID,
			ReminderType:   kind,
			ReminderDate:   ReminderDates(date)[kind],
			CreatedAt:      now.UTC(),
		})
	}
	if err := s.store.CreateReminders(ctx, reminders); err != nil {
		if derr := s.store.DeleteInsemination(context.WithoutCancel(ctx), userID, record.ID); derr != nil {
			s.logger.Error("failed to roll back insemination", zap.String("insemination_id", record.ID), zap.Error(derr))
		}
		return View{}, fmt.Errorf("create pregnancy reminders: %w", err)
	}

	s.logger.Info("insemination recorded",
		zap.String("user_id", userID),
		zap.String("animal_id", animal.ID),
		zap.Time("expected_birth_date", record.ExpectedBirthDate))

	return newView(record, animal, now), nil
}

// List returns inseminations with their derived status.
func (s *Service) List(ctx context.Context, userID string, f models.InseminationFilter) ([]View, error) {
	items, err := s.store.ListInseminations(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list inseminations: %w", err)
	}
	animals, err := s.animalIndex(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]View, 0, len(items))
	for _, in := range items {
		out = append(out, newView(in, animals[in.AnimalID], now))
	}
	return out, nil
}

// Warnings re-derives the milk advisories of every pregnant animal still on
// the farm, ordered by pregnancy month descending.
func (s *Service) Warnings(ctx context.Context, userID string) ([]Warning, error) {
	items, err := s.store.ListInseminations(ctx, userID, models.InseminationFilter{PregnantOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list inseminations: %w", err)
	}
	animals, err := s.animalIndex(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]Warning, 0)
	for _, in := range items {
		animal, ok := animals[in.AnimalID]
		if !ok || animal.Status != models.AnimalActive {
			continue
		}
		v := newView(in, animal, now)
		for _, adv := range v.Status.Advisories {
			out = append(out, Warning{
				InseminationID: v.ID,
				AnimalID:       v.AnimalID,
				EarTag:         v.EarTag,
				PregnancyMonth: v.Status.PregnancyMonth,
				Advisory:       adv,
				Message:        AdvisoryMessage(v.EarTag, v.Status.PregnancyMonth, adv),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PregnancyMonth > out[j].PregnancyMonth })
	return out, nil
}

// CompleteBirth records the birth of a pregnant insemination. A record that is
// no longer pregnant, including one completed by a concurrent call, is
// rejected with models.ErrNotPregnant so the actual birth date is written once.
func (s *Service) CompleteBirth(ctx context.Context, userID, id string) (View, error) {
	record, err := s.store.GetInsemination(ctx, userID, id)
	if err != nil {
		return View{}, fmt.Errorf("get insemination %s: %w", id, err)
	}
	if !record.IsPregnant {
		return View{}, models.ErrNotPregnant
	}

	now := s.now()
	today := calendar.Day(now)
	record.IsPregnant = false
	record.ActualBirthDate = &today
	record.UpdatedAt = now.UTC()

	completed, err := s.store.CompleteInsemination(ctx, record)
	if err != nil {
		return View{}, fmt.Errorf("complete insemination %s: %w", id, err)
	}
	if !completed {
		return View{}, models.ErrNotPregnant
	}

	animal, err := s.store.GetAnimal(ctx, userID, record.AnimalID)
	if err != nil {
		return View{}, fmt.Errorf("get animal %s: %w", record.AnimalID, err)
	}

	s.logger.Info("birth completed", zap.String("user_id", userID), zap.String("insemination_id", id))
	return newView(record, animal, now), nil
}

// ListReminders returns the account's pregnancy reminders by date.
func (s *Service) ListReminders(ctx context.Context, userID string, pendingOnly bool) ([]models.PregnancyReminder, error) {
	items, err := s.store.ListReminders(ctx, userID, pendingOnly)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return items, nil
}

// MarkReminderSent flips the sent flag of a reminder.
func (s *Service) MarkReminderSent(ctx context.Context, userID, id string) (models.PregnancyReminder, error) {
	rem, err := s.store.GetReminder(ctx, userID, id)
	if err != nil {
		return models.PregnancyReminder{}, fmt.Errorf("get reminder %s: %w", id, err)
	}
	if rem.Sent {
		return rem, nil
	}

	rem.Sent = true
	if err := s.store.UpdateReminder(ctx, rem); err != nil {
		return models.PregnancyReminder{}, fmt.Errorf("update reminder %s: %w", id, err)
	}
	return rem, nil
}

func (s *Service) animalIndex(ctx context.Context, userID string) (map[string]models.Animal, error) {
	animals, err := s.store.ListAnimals(ctx, userID, models.AnimalFilter{})
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	index := make(map[string]models.Animal, len(animals))
	for _, a := range animals {
		index[a.ID] = a
	}
	return index, nil
}

func newView(in models.Insemination, animal models.Animal, now time.Time) View {
	return View{
		Insemination: in,
		EarTag:       animal.EarTag,
		Species:      animal.Species,
		Status:       Status(in, animal.Species, now),
	}
}

// AdvisoryMessage renders the farmer-facing text of an advisory.
func AdvisoryMessage(earTag string, month int, adv models.AdvisoryKind) string {
	switch adv {
	case models.AdvisoryStopMilk:
		return fmt.Sprintf("%s gebeliğin %d. ayında: süt sağımını kesin.", earTag, month)
	case models.AdvisoryReduceMilk:
		return fmt.Sprintf("%s gebeliğin %d. ayında: süt sağımını azaltın.", earTag, month)
	default:
		return ""
	}
}
