package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
)

// Store is the persistence surface used by the account service.
type Store interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	UpsertProfile(ctx context.Context, p models.Profile) error
	GetSettings(ctx context.Context, userID string) (models.Settings, error)
	UpsertSettings(ctx context.Context, s models.Settings) error
}

// Service manages account profiles and settings.
type Service struct {
	store        Store
	defaultPrice float64
	logger       *zap.Logger
	now          func() time.Time
}

// NewService wires a new account service.
func NewService(store Store, defaultPrice float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, defaultPrice: defaultPrice, logger: logger, now: time.Now}
}

// DefaultProfile is the profile of an account that never saved one: email
// notifications on for every category, WhatsApp off.
func DefaultProfile(userID string) models.Profile {
	return models.Profile{
		UserID:             userID,
		EmailNotifications: true,
		NotifyVaccinations: true,
		NotifyBirths:       true,
		NotifyPregnancy:    true,
		NotifyHealth:       true,
		NotifyDailySummary: true,
	}
}

// Profile returns the stored profile or the defaults.
func (s *Service) Profile(ctx context.Context, userID string) (models.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return DefaultProfile(userID), nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// ProfileInput holds profile edits. Nil fields are left unchanged.
type ProfileInput struct {
	FullName              *string
	FarmName              *string
	Email                 *string
	Phone                 *string
	EmailNotifications    *bool
	WhatsAppNotifications *bool
	NotifyVaccinations    *bool
	NotifyBirths          *bool
	NotifyPregnancy       *bool
	NotifyHealth          *bool
	NotifyDailySummary    *bool
}

// UpdateProfile applies in to the account's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (models.Profile, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return models.Profile{}, fmt.Errorf("%w: email %q is not valid", models.ErrInvalidInput, email)
			}
		}
		p.Email = email
	}
	if in.Phone != nil {
		p.Phone = NormalizePhone(*in.Phone)
	}
	setString(&p.FullName, in.FullName)
	setString(&p.FarmName, in.FarmName)
	setBool(&p.EmailNotifications, in.EmailNotifications)
	setBool(&p.WhatsAppNotifications, in.WhatsAppNotifications)
	setBool(&p.NotifyVaccinations, in.NotifyVaccinations)
	setBool(&p.NotifyBirths, in.NotifyBirths)
	setBool(&p.NotifyPregnancy, in.NotifyPregnancy)
	setBool(&p.NotifyHealth, in.NotifyHealth)
	setBool(&p.NotifyDailySummary, in.NotifyDailySummary)
	p.UpdatedAt = s.now().UTC()

	if err := s.store.UpsertProfile(ctx, p); err != nil {
		return models.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	s.logger.Info("profile updated", zap.String("user_id", userID))
	return p, nil
}

// Settings returns the account settings, filling the default milk price.
func (s *Service) Settings(ctx context.Context, userID string) (models.Settings, error) {
	st, err := s.store.GetSettings(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Settings{UserID: userID, MilkPricePerLiter: s.defaultPrice}, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if st.MilkPricePerLiter <= 0 {
		st.MilkPricePerLiter = s.defaultPrice
	}
	return st, nil
}

// UpdateSettings stores the account's milk price.
func (s *Service) UpdateSettings(ctx context.Context, userID string, milkPrice float64) (models.Settings, error) {
	if milkPrice <= 0 {
		return models.Settings{}, fmt.Errorf("%w: milk price must be positive", models.ErrInvalidInput)
	}
	st := models.Settings{UserID: userID, MilkPricePerLiter: milkPrice, UpdatedAt: s.now().UTC()}
	if err := s.store.UpsertSettings(ctx, st); err != nil {
		return models.Settings{}, fmt.Errorf("upsert settings: %w", err)
	}
	return st, nil
}

// NormalizePhone strips formatting so numbers can be passed to the WhatsApp
// API, which expects digits with the country code and no leading plus.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
