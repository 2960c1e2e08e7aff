// Package memory is an in-process storage adapter with the same semantics as
// the MongoDB repository, including its unique constraints. It backs local
// development without a database and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
)

// Repository keeps every collection in maps guarded by one lock.
type Repository struct {
	mu sync.RWMutex

	animals       map[string]models.Animal
	vaccinations  map[string]models.Vaccination
	inseminations map[string]models.Insemination
	reminders     map[string]models.PregnancyReminder
	transactions  map[string]models.Transaction
	milk          map[string]models.MilkProduction
	health        map[string]models.HealthRecord
	profiles      map[string]models.Profile
	settings      map[string]models.Settings
	notifications []models.NotificationLog
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{
		animals:       make(map[string]models.Animal),
		vaccinations:  make(map[string]models.Vaccination),
		inseminations: make(map[string]models.Insemination),
		reminders:     make(map[string]models.PregnancyReminder),
		transactions:  make(map[string]models.Transaction),
		milk:          make(map[string]models.MilkProduction),
		health:        make(map[string]models.HealthRecord),
		profiles:      make(map[string]models.Profile),
		settings:      make(map[string]models.Settings),
	}
}

// Animals

func (r *Repository) CreateAnimal(_ context.Context, a models.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.animals[a.ID]; ok {
		return repository.ErrDuplicate
	}
	if r.earTagTaken(a) {
		return repository.ErrDuplicate
	}
	r.animals[a.ID] = a
	return nil
}

func (r *Repository) UpdateAnimal(_ context.Context, a models.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.animals[a.ID]
	if !ok || cur.UserID != a.UserID {
		return repository.ErrNotFound
	}
	if r.earTagTaken(a) {
		return repository.ErrDuplicate
	}
	r.animals[a.ID] = a
	return nil
}

func (r *Repository) earTagTaken(a models.Animal) bool {
	for id, other := range r.animals {
		if id != a.ID && other.UserID == a.UserID && other.EarTag == a.EarTag {
			return true
		}
	}
	return false
}

func (r *Repository) GetAnimal(_ context.Context, userID, id string) (models.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.animals[id]
	if !ok || a.UserID != userID {
		return models.Animal{}, repository.ErrNotFound
	}
	return a, nil
}

func (r *Repository) ListAnimals(_ context.Context, userID string, f models.AnimalFilter) ([]models.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Animal, 0)
	for _, a := range r.animals {
		if a.UserID != userID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Species != "" && a.Species != f.Species {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EarTag < out[j].EarTag })
	return out, nil
}

// Vaccinations

func (r *Repository) CreateVaccination(_ context.Context, v models.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vaccinations[v.ID]; ok {
		return repository.ErrDuplicate
	}
	r.vaccinations[v.ID] = v
	return nil
}

func (r *Repository) UpdateVaccination(_ context.Context, v models.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.vaccinations[v.ID]
	if !ok || cur.UserID != v.UserID {
		return repository.ErrNotFound
	}
	r.vaccinations[v.ID] = v
	return nil
}

func (r *Repository) GetVaccination(_ context.Context, userID, id string) (models.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vaccinations[id]
	if !ok || v.UserID != userID {
		return models.Vaccination{}, repository.ErrNotFound
	}
	return v, nil
}

func (r *Repository) ListVaccinations(_ context.Context, userID, animalID string) ([]models.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Vaccination, 0)
	for _, v := range r.vaccinations {
		if v.UserID != userID || (animalID != "" && v.AnimalID != animalID) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Inseminations and reminders

func (r *Repository) CreateInsemination(_ context.Context, in models.Insemination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.inseminations[in.ID]; ok {
		return repository.ErrDuplicate
	}
	r.inseminations[in.ID] = in
	return nil
}

// CompleteInsemination stores in only while the current record is pregnant.
func (r *Repository) CompleteInsemination(_ context.Context, in models.Insemination) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.inseminations[in.ID]
	if !ok || cur.UserID != in.UserID || !cur.IsPregnant {
		return false, nil
	}
	r.inseminations[in.ID] = in
	return true, nil
}

func (r *Repository) DeleteInsemination(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.inseminations[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.inseminations, id)
	return nil
}

func (r *Repository) GetInsemination(_ context.Context, userID, id string) (models.Insemination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.inseminations[id]
	if !ok || in.UserID != userID {
		return models.Insemination{}, repository.ErrNotFound
	}
	return in, nil
}

func (r *Repository) ListInseminations(_ context.Context, userID string, f models.InseminationFilter) ([]models.Insemination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Insemination, 0)
	for _, in := range r.inseminations {
		if in.UserID != userID {
			continue
		}
		if f.AnimalID != "" && in.AnimalID != f.AnimalID {
			continue
		}
		if f.PregnantOnly && !in.IsPregnant {
			continue
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *Repository) CreateReminders(_ context.Context, reminders []models.PregnancyReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rem := range reminders {
		r.reminders[rem.ID] = rem
	}
	return nil
}

func (r *Repository) GetReminder(_ context.Context, userID, id string) (models.PregnancyReminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rem, ok := r.reminders[id]
	if !ok || rem.UserID != userID {
		return models.PregnancyReminder{}, repository.ErrNotFound
	}
	return rem, nil
}

func (r *Repository) UpdateReminder(_ context.Context, rem models.PregnancyReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.reminders[rem.ID]
	if !ok || cur.UserID != rem.UserID {
		return repository.ErrNotFound
	}
	r.reminders[rem.ID] = rem
	return nil
}

func (r *Repository) ListReminders(_ context.Context, userID string, pendingOnly bool) ([]models.PregnancyReminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PregnancyReminder, 0)
	for _, rem := range r.reminders {
		if rem.UserID != userID || (pendingOnly && rem.Sent) {
			continue
		}
		out = append(out, rem)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReminderDate.Equal(out[j].ReminderDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReminderDate.Before(out[j].ReminderDate)
	})
	return out, nil
}

// Transactions, milk and health

func (r *Repository) CreateTransaction(_ context.Context, t models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[t.ID]; ok {
		return repository.ErrDuplicate
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *Repository) ListTransactions(_ context.Context, userID string, rng calendar.Range) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transaction, 0)
	for _, t := range r.transactions {
		if t.UserID == userID && rng.Contains(t.Date) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *Repository) CreateMilkRecord(_ context.Context, m models.MilkProduction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := calendar.Day(m.Date)
	for _, other := range r.milk {
		if other.UserID == m.UserID && other.AnimalID == m.AnimalID && calendar.Day(other.Date).Equal(day) {
			return repository.ErrDuplicate
		}
	}
	r.milk[m.ID] = m
	return nil
}

func (r *Repository) ListMilkRecords(_ context.Context, userID string, rng calendar.Range) ([]models.MilkProduction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.MilkProduction, 0)
	for _, m := range r.milk {
		if m.UserID == userID && rng.Contains(m.Date) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *Repository) CreateHealthRecord(_ context.Context, h models.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.health[h.ID]; ok {
		return repository.ErrDuplicate
	}
	r.health[h.ID] = h
	return nil
}

func (r *Repository) ListHealthRecords(_ context.Context, userID, animalID string) ([]models.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.HealthRecord, 0)
	for _, h := range r.health {
		if h.UserID != userID || (animalID != "" && h.AnimalID != animalID) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Profiles and settings

func (r *Repository) GetProfile(_ context.Context, userID string) (models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return models.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *Repository) UpsertProfile(_ context.Context, p models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[p.UserID] = p
	return nil
}

func (r *Repository) ListDailySummaryProfiles(_ context.Context) ([]models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Profile, 0)
	for _, p := range r.profiles {
		if p.NotifyDailySummary && p.EmailNotifications && p.Email != "" {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *Repository) GetSettings(_ context.Context, userID string) (models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[userID]
	if !ok {
		return models.Settings{}, repository.ErrNotFound
	}
	return s, nil
}

func (r *Repository) UpsertSettings(_ context.Context, s models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[s.UserID] = s
	return nil
}

// Notification logs

func (r *Repository) CreateNotificationLog(_ context.Context, l models.NotificationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, l)
	return nil
}

func (r *Repository) UpdateNotificationStatus(_ context.Context, providerMessageID string, status models.DeliveryStatus, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ProviderMessageID != providerMessageID {
			continue
		}
		if !r.notifications[i].Status.CanAdvanceTo(status) {
			return nil
		}
		r.notifications[i].Status = status
		r.notifications[i].UpdatedAt = time.Now().UTC()
		if errMsg != "" {
			r.notifications[i].Error = errMsg
		}
		return nil
	}
	return repository.ErrNotFound
}

func (r *Repository) ListNotificationLogs(_ context.Context, userID string, limit int) ([]models.NotificationLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.NotificationLog, 0)
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID != userID {
			continue
		}
		out = append(out, r.notifications[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
