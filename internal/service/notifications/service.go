package notifications

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
	"github.com/mamadbah2/livestock/internal/service/accounts"
	"github.com/mamadbah2/livestock/internal/service/animals"
	"github.com/mamadbah2/livestock/internal/service/breeding"
	"github.com/mamadbah2/livestock/internal/service/vaccination"
	"github.com/mamadbah2/livestock/pkg/clients"
	emailclient "github.com/mamadbah2/livestock/pkg/clients/email"
	waclient "github.com/mamadbah2/livestock/pkg/clients/whatsapp"
)

// ErrMissingContact indicates neither the request nor the profile carries a
// destination address for the channel.
var ErrMissingContact = errors.New("missing contact")

const sendTimeout = 10 * time.Second

// Store is the persistence surface used by the notification composer.
type Store interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	ListDailySummaryProfiles(ctx context.Context) ([]models.Profile, error)
	ListAnimals(ctx context.Context, userID string, f models.AnimalFilter) ([]models.Animal, error)
	ListInseminations(ctx context.Context, userID string, f models.InseminationFilter) ([]models.Insemination, error)
	ListVaccinations(ctx context.Context, userID, animalID string) ([]models.Vaccination, error)
	CreateNotificationLog(ctx context.Context, l models.NotificationLog) error
	ListNotificationLogs(ctx context.Context, userID string, limit int) ([]models.NotificationLog, error)
}

// Service composes and dispatches email and WhatsApp notifications.
type Service struct {
	store    Store
	email    emailclient.Client
	whatsapp waclient.Client
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new notification composer. Dates are evaluated in loc.
func NewService(store Store, email emailclient.Client, whatsapp waclient.Client, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:    store,
		email:    email,
		whatsapp: whatsapp,
		logger:   logger,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// SendEmail delivers req by email unless the account disabled it.
func (s *Service) SendEmail(ctx context.Context, req models.EmailNotificationRequest) (models.DispatchResult, error) {
	if !ValidCategory(req.NotificationType) {
		return models.DispatchResult{}, fmt.Errorf("%w: unknown notification type %q", models.ErrInvalidInput, req.NotificationType)
	}
	profile, err := s.profile(ctx, req.UserID)
	if err != nil {
		return models.DispatchResult{}, err
	}

	to := firstNonEmpty(req.Email, profile.Email)
	if ok, reason := MayNotify(profile, models.ChannelEmail, req.NotificationType); !ok {
		return s.skip(ctx, profile.UserID, models.ChannelEmail, req.NotificationType, to, req.Message, reason), nil
	}
	if to == "" {
		err := fmt.Errorf("%w: no email address for %s", ErrMissingContact, req.UserID)
		s.fail(ctx, profile.UserID, models.ChannelEmail, req.NotificationType, to, req.Message, err)
		return models.DispatchResult{}, err
	}

	id, err := s.deliverEmail(ctx, profile, to, SubjectFor(req.NotificationType, req.Subject), req.NotificationType, req.Message)
	if err != nil {
		return models.DispatchResult{}, err
	}
	return models.DispatchResult{Success: true, EmailID: id}, nil
}

// SendWhatsApp delivers req as a WhatsApp text unless the account disabled it.
func (s *Service) SendWhatsApp(ctx context.Context, req models.WhatsAppNotificationRequest) (models.DispatchResult, error) {
	if !ValidCategory(req.NotificationType) {
		return models.DispatchResult{}, fmt.Errorf("%w: unknown notification type %q", models.ErrInvalidInput, req.NotificationType)
	}
	profile, err := s.profile(ctx, req.UserID)
	if err != nil {
		return models.DispatchResult{}, err
	}

	to := accounts.NormalizePhone(firstNonEmpty(req.PhoneNumber, profile.Phone))
	if ok, reason := MayNotify(profile, models.ChannelWhatsApp, req.NotificationType); !ok {
		return s.skip(ctx, profile.UserID, models.ChannelWhatsApp, req.NotificationType, to, req.Message, reason), nil
	}
	if to == "" {
		err := fmt.Errorf("%w: no phone number for %s", ErrMissingContact, req.UserID)
		s.fail(ctx, profile.UserID, models.ChannelWhatsApp, req.NotificationType, to, req.Message, err)
		return models.DispatchResult{}, err
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	id, err := s.whatsapp.SendText(sendCtx, to, req.Message)
	entry := s.newLog(profile.UserID, models.ChannelWhatsApp, req.NotificationType, to, req.Message)
	if err != nil {
		entry.Status = models.DeliveryFailed
		entry.Error = providerDetail(err)
		s.writeLog(ctx, entry)
		s.logger.Error("whatsapp notification failed", zap.String("user_id", profile.UserID), zap.Error(err))
		return models.DispatchResult{}, fmt.Errorf("send whatsapp notification: %w", err)
	}

	entry.Status = models.DeliverySent
	entry.ProviderMessageID = id
	s.writeLog(ctx, entry)
	s.logger.Info("whatsapp notification sent", zap.String("user_id", profile.UserID), zap.String("message_id", id))
	return models.DispatchResult{Success: true, MessageSID: id}, nil
}

// DailySummary emails the digest to every opted-in account, one at a time.
// A failure for one account is recorded and the run moves on.
func (s *Service) DailySummary(ctx context.Context) (models.DailySummaryResult, error) {
	profiles, err := s.store.ListDailySummaryProfiles(ctx)
	if err != nil {
		return models.DailySummaryResult{}, fmt.Errorf("list daily summary profiles: %w", err)
	}

	today := calendar.Day(s.now())
	result := models.DailySummaryResult{
		Success:    true,
		TotalUsers: len(profiles),
		Results:    make([]models.DailySummaryUserResult, 0, len(profiles)),
	}

	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("daily summary interrupted: %w", err)
		}
		res := s.summarizeAccount(ctx, p, today)
		if res.Status == models.DeliverySent {
			result.Sent++
		}
		result.Results = append(result.Results, res)
	}

	s.logger.Info("daily summary finished", zap.Int("total_users", result.TotalUsers), zap.Int("sent", result.Sent))
	return result, nil
}

// Logs returns the account's most recent delivery attempts.
func (s *Service) Logs(ctx context.Context, userID string, limit int) ([]models.NotificationLog, error) {
	items, err := s.store.ListNotificationLogs(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notification logs: %w", err)
	}
	return items, nil
}

func (s *Service) summarizeAccount(ctx context.Context, p models.Profile, today time.Time) models.DailySummaryUserResult {
	res := models.DailySummaryUserResult{UserID: p.UserID, Email: p.Email}

	if ok, reason := MayNotify(p, models.ChannelEmail, models.NotifyDailySummary); !ok {
		s.skip(ctx, p.UserID, models.ChannelEmail, models.NotifyDailySummary, p.Email, "", reason)
		res.Status = models.DeliverySkipped
		res.Error = reason
		return res
	}

	counts, err := s.Counts(ctx, p.UserID, today)
	if err != nil {
		s.logger.Error("daily summary counts failed", zap.String("user_id", p.UserID), zap.Error(err))
		s.fail(ctx, p.UserID, models.ChannelEmail, models.NotifyDailySummary, p.Email, "", err)
		res.Status = models.DeliveryFailed
		res.Error = err.Error()
		return res
	}
	res.Counts = counts

	if counts.Empty() {
		s.skip(ctx, p.UserID, models.ChannelEmail, models.NotifyDailySummary, p.Email, "", "nothing to report")
		res.Status = models.DeliverySkipped
		return res
	}

	id, err := s.deliverEmail(ctx, p, p.Email, SubjectFor(models.NotifyDailySummary, ""), models.NotifyDailySummary, DailySummaryText(counts))
	if err != nil {
		res.Status = models.DeliveryFailed
		res.Error = err.Error()
		return res
	}
	res.Status = models.DeliverySent
	res.EmailID = id
	return res
}

// Counts computes the digest figures of an account as of today. Animals that
// were sold or died are left out.
func (s *Service) Counts(ctx context.Context, userID string, today time.Time) (models.DailySummaryCounts, error) {
	var counts models.DailySummaryCounts

	herd, err := s.store.ListAnimals(ctx, userID, models.AnimalFilter{Status: models.AnimalActive})
	if err != nil {
		return counts, fmt.Errorf("list animals: %w", err)
	}
	active := animals.ActiveIDs(herd)

	pregnant, err := s.store.ListInseminations(ctx, userID, models.InseminationFilter{PregnantOnly: true})
	if err != nil {
		return counts, fmt.Errorf("list pregnancies: %w", err)
	}
	for _, in := range pregnant {
		if active[in.AnimalID] && breeding.BirthImminent(in, today) {
			counts.ImminentBirths++
		}
	}

	vaccinations, err := s.store.ListVaccinations(ctx, userID, "")
	if err != nil {
		return counts, fmt.Errorf("list vaccinations: %w", err)
	}
	for _, v := range vaccinations {
		if !active[v.AnimalID] {
			continue
		}
		switch vaccination.StatusOf(v, today) {
		case models.VaccinationOverdue:
			counts.OverdueVaccinations++
		case models.VaccinationUpcoming:
			counts.UpcomingVaccinations++
		}
	}
	return counts, nil
}

func (s *Service) deliverEmail(ctx context.Context, p models.Profile, to, subject string, category models.NotificationCategory, message string) (string, error) {
	entry := s.newLog(p.UserID, models.ChannelEmail, category, to, message)

	html, err := RenderEmail(p, subject, message)
	if err != nil {
		entry.Status = models.DeliveryFailed
		entry.Error = err.Error()
		s.writeLog(ctx, entry)
		return "", err
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	id, err := s.email.Send(sendCtx, emailclient.Message{To: to, Subject: subject, HTML: html})
	if err != nil {
		entry.Status = models.DeliveryFailed
		entry.Error = providerDetail(err)
		s.writeLog(ctx, entry)
		s.logger.Error("email notification failed", zap.String("user_id", p.UserID), zap.String("category", string(category)), zap.Error(err))
		return "", fmt.Errorf("send email notification: %w", err)
	}

	entry.Status = models.DeliverySent
	entry.ProviderMessageID = id
	s.writeLog(ctx, entry)
	s.logger.Info("email notification sent", zap.String("user_id", p.UserID), zap.String("category", string(category)), zap.String("email_id", id))
	return id, nil
}

func (s *Service) skip(ctx context.Context, userID string, channel models.Channel, category models.NotificationCategory, target, message, reason string) models.DispatchResult {
	entry := s.newLog(userID, channel, category, target, message)
	entry.Status = models.DeliverySkipped
	entry.Error = reason
	s.writeLog(ctx, entry)

	s.logger.Info("notification skipped",
		zap.String("user_id", userID),
		zap.String("channel", string(channel)),
		zap.String("category", string(category)),
		zap.String("reason", reason))
	return models.DispatchResult{Success: false, Skipped: true, Message: reason}
}

func (s *Service) fail(ctx context.Context, userID string, channel models.Channel, category models.NotificationCategory, target, message string, cause error) {
	entry := s.newLog(userID, channel, category, target, message)
	entry.Status = models.DeliveryFailed
	entry.Error = cause.Error()
	s.writeLog(ctx, entry)
}

func (s *Service) profile(ctx context.Context, userID string) (models.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Profile{}, fmt.Errorf("%w: user id is required", models.ErrInvalidInput)
	}
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return accounts.DefaultProfile(userID), nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return p, nil
}

func (s *Service) newLog(userID string, channel models.Channel, category models.NotificationCategory, target, message string) models.NotificationLog {
	now := s.now().UTC()
	return models.NotificationLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Channel:   channel,
		Category:  category,
		Target:    target,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// writeLog never fails the dispatch; a lost audit entry is only logged.
func (s *Service) writeLog(ctx context.Context, entry models.NotificationLog) {
	if err := s.store.CreateNotificationLog(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error("failed to write notification log", zap.String("user_id", entry.UserID), zap.Error(err))
	}
}

// providerDetail returns the raw provider body when available.
func providerDetail(err error) string {
	var perr *clients.ProviderError
	if errors.As(err, &perr) && perr.Raw != "" {
		return perr.Raw
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
