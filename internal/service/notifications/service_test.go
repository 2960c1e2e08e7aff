package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository/memory"
	"github.com/mamadbah2/livestock/pkg/clients"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }

type harness struct {
	svc      *Service
	repo     *memory.Repository
	email    *fakeEmail
	whatsapp *fakeWhatsApp
}

func newHarness(t *testing.T) harness {
	t.Helper()
	repo := memory.NewRepository()
	h := harness{repo: repo, email: &fakeEmail{fail: map[string]bool{}}, whatsapp: &fakeWhatsApp{}}
	h.svc = NewService(repo, h.email, h.whatsapp, time.UTC, nil)
	h.svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return h
}

func addAnimal(t *testing.T, repo *memory.Repository, userID, id string, status models.AnimalStatus) {
	t.Helper()
	require.NoError(t, repo.CreateAnimal(context.Background(), models.Animal{
		ID: id, UserID: userID, EarTag: "TR-" + id, Species: models.SpeciesCattle,
		Gender: models.GenderFemale, Status: status, BirthDate: day(2020, 1, 1),
	}))
}

func profile(userID, email string) models.Profile {
	return models.Profile{
		UserID: userID, Email: email, Phone: "905321112233", FarmName: "Yayla",
		EmailNotifications: true, WhatsAppNotifications: true,
		NotifyVaccinations: true, NotifyBirths: true, NotifyPregnancy: true, NotifyHealth: true, NotifyDailySummary: true,
	}
}

func TestSendEmailDisabledCategory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := profile("u1", "ali@example.com")
	p.NotifyVaccinations = false
	require.NoError(t, h.repo.UpsertProfile(ctx, p))

	res, err := h.svc.SendEmail(ctx, models.EmailNotificationRequest{UserID: "u1", NotificationType: models.NotifyVaccination, Message: "Şap aşısı yarın"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.Skipped)
	assert.Contains(t, res.Message, "disabled")
	assert.Empty(t, h.email.sent)

	logs, err := h.repo.ListNotificationLogs(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliverySkipped, logs[0].Status)
}

func TestSendEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u1", "ali@example.com")))

	res, err := h.svc.SendEmail(ctx, models.EmailNotificationRequest{UserID: "u1", NotificationType: models.NotifyBirth, Message: "TR-1 doğum yaptı"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "email-ali@example.com", res.EmailID)
	require.Len(t, h.email.sent, 1)
	assert.Equal(t, "Doğum Bildirimi", h.email.sent[0].Subject)
	assert.Contains(t, h.email.sent[0].HTML, "TR-1 doğum yaptı")

	res, err = h.svc.SendEmail(ctx, models.EmailNotificationRequest{UserID: "u1", NotificationType: models.NotifyBirth, Message: "x", Email: "veli@example.com", Subject: "Özel"})
	require.NoError(t, err)
	assert.Equal(t, "email-veli@example.com", res.EmailID)
	assert.Equal(t, "Özel", h.email.sent[1].Subject)
}

func TestSendEmailProviderFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u1", "bad@example.com")))
	h.email.fail["bad@example.com"] = true

	_, err := h.svc.SendEmail(ctx, models.EmailNotificationRequest{UserID: "u1", NotificationType: models.NotifyHealth, Message: "x"})
	var perr *clients.ProviderError
	require.True(t, errors.As(err, &perr))

	logs, err := h.repo.ListNotificationLogs(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliveryFailed, logs[0].Status)
	assert.Equal(t, `{"message":"invalid recipient"}`, logs[0].Error)
}

func TestSendEmailMissingContact(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.SendEmail(context.Background(), models.EmailNotificationRequest{UserID: "nobody", NotificationType: models.NotifyHealth, Message: "x"})
	assert.ErrorIs(t, err, ErrMissingContact)
	assert.Empty(t, h.email.sent)

	logs, err := h.repo.ListNotificationLogs(context.Background(), "nobody", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliveryFailed, logs[0].Status)
	assert.Equal(t, models.ChannelEmail, logs[0].Channel)
	assert.Contains(t, logs[0].Error, "no email address")
}

func TestSendWhatsAppMissingContact(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := profile("u1", "ali@example.com")
	p.Phone = ""
	require.NoError(t, h.repo.UpsertProfile(ctx, p))

	_, err := h.svc.SendWhatsApp(ctx, models.WhatsAppNotificationRequest{UserID: "u1", NotificationType: models.NotifyHealth, Message: "x"})
	assert.ErrorIs(t, err, ErrMissingContact)
	assert.Empty(t, h.whatsapp.sent)

	logs, err := h.repo.ListNotificationLogs(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliveryFailed, logs[0].Status)
	assert.Equal(t, models.ChannelWhatsApp, logs[0].Channel)
	assert.Contains(t, logs[0].Error, "no phone number")
}

func TestSendWhatsApp(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u1", "ali@example.com")))

	res, err := h.svc.SendWhatsApp(ctx, models.WhatsAppNotificationRequest{UserID: "u1", NotificationType: models.NotifyPregnancy, Message: "TR-1 7. ayda", PhoneNumber: "+90 532 999 88 77"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "wamid.1", res.MessageSID)
	require.Len(t, h.whatsapp.sent, 1)
	assert.Equal(t, "905329998877", h.whatsapp.sent[0].to)

	logs, err := h.repo.ListNotificationLogs(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", logs[0].ProviderMessageID)
}

func TestSendWhatsAppDisabledByDefault(t *testing.T) {
	h := newHarness(t)

	res, err := h.svc.SendWhatsApp(context.Background(), models.WhatsAppNotificationRequest{UserID: "u9", NotificationType: models.NotifyHealth, Message: "x", PhoneNumber: "905321112233"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.Skipped)
	assert.Empty(t, h.whatsapp.sent)
}

func TestSendWhatsAppProviderFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u1", "ali@example.com")))
	h.whatsapp.err = &clients.ProviderError{Provider: "whatsapp", StatusCode: 400, Message: "bad", Raw: `{"error":{"message":"bad"}}`}

	_, err := h.svc.SendWhatsApp(ctx, models.WhatsAppNotificationRequest{UserID: "u1", NotificationType: models.NotifyHealth, Message: "x"})
	assert.Error(t, err)

	logs, err := h.repo.ListNotificationLogs(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryFailed, logs[0].Status)
	assert.Equal(t, `{"error":{"message":"bad"}}`, logs[0].Error)
}

func TestDailySummary(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// u1 has a birth in 5 days, one overdue and one upcoming vaccination.
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u1", "ali@example.com")))
	addAnimal(t, h.repo, "u1", "a1", models.AnimalActive)
	addAnimal(t, h.repo, "u1", "a2", models.AnimalActive)
	require.NoError(t, h.repo.CreateInsemination(ctx, models.Insemination{ID: "i1", UserID: "u1", AnimalID: "a1", IsPregnant: true, ExpectedBirthDate: day(2024, 6, 6)}))
	require.NoError(t, h.repo.CreateInsemination(ctx, models.Insemination{ID: "i2", UserID: "u1", AnimalID: "a2", IsPregnant: true, ExpectedBirthDate: day(2024, 6, 20)}))
	require.NoError(t, h.repo.CreateVaccination(ctx, models.Vaccination{ID: "v1", UserID: "u1", AnimalID: "a1", Date: day(2024, 1, 1), NextDate: ptrTime(day(2024, 5, 30))}))
	require.NoError(t, h.repo.CreateVaccination(ctx, models.Vaccination{ID: "v2", UserID: "u1", AnimalID: "a1", Date: day(2024, 1, 1), NextDate: ptrTime(day(2024, 6, 8))}))

	// u2 has nothing to report.
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u2", "veli@example.com")))

	// u3's provider call fails; the run continues.
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u3", "bad@example.com")))
	addAnimal(t, h.repo, "u3", "a3", models.AnimalActive)
	require.NoError(t, h.repo.CreateVaccination(ctx, models.Vaccination{ID: "v3", UserID: "u3", AnimalID: "a3", Date: day(2024, 1, 1), NextDate: ptrTime(day(2024, 5, 1))}))
	h.email.fail["bad@example.com"] = true

	// u4 opted out of the digest.
	out := profile("u4", "out@example.com")
	out.NotifyDailySummary = false
	require.NoError(t, h.repo.UpsertProfile(ctx, out))

	res, err := h.svc.DailySummary(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.TotalUsers)
	assert.Equal(t, 1, res.Sent)
	require.Len(t, res.Results, 3)

	assert.Equal(t, models.DeliverySent, res.Results[0].Status)
	assert.Equal(t, models.DailySummaryCounts{ImminentBirths: 1, OverdueVaccinations: 1, UpcomingVaccinations: 1}, res.Results[0].Counts)
	assert.Equal(t, models.DeliverySkipped, res.Results[1].Status)
	assert.Equal(t, models.DeliveryFailed, res.Results[2].Status)
	assert.NotEmpty(t, res.Results[2].Error)

	require.Len(t, h.email.sent, 1)
	assert.Equal(t, "ali@example.com", h.email.sent[0].To)
	assert.Equal(t, "Günlük Çiftlik Özeti", h.email.sent[0].Subject)
}

func TestCountsSkipAnimalsOffTheFarm(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	today := day(2024, 6, 1)

	addAnimal(t, h.repo, "u1", "sold-1", models.AnimalSold)
	addAnimal(t, h.repo, "u1", "dead-1", models.AnimalDeceased)
	require.NoError(t, h.repo.CreateInsemination(ctx, models.Insemination{ID: "i1", UserID: "u1", AnimalID: "sold-1", IsPregnant: true, ExpectedBirthDate: day(2024, 6, 3)}))
	require.NoError(t, h.repo.CreateVaccination(ctx, models.Vaccination{ID: "v1", UserID: "u1", AnimalID: "dead-1", Date: day(2024, 1, 1), NextDate: ptrTime(day(2024, 5, 1))}))
	require.NoError(t, h.repo.CreateVaccination(ctx, models.Vaccination{ID: "v2", UserID: "u1", AnimalID: "sold-1", Date: day(2024, 1, 1), NextDate: ptrTime(day(2024, 6, 4))}))

	counts, err := h.svc.Counts(ctx, "u1", today)
	require.NoError(t, err)
	assert.True(t, counts.Empty(), "%+v", counts)
}

type failingVaccinations struct {
	*memory.Repository
}

func (failingVaccinations) ListVaccinations(context.Context, string, string) ([]models.Vaccination, error) {
	return nil, errors.New("cursor closed")
}

func TestDailySummaryLogsCountsFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.repo.UpsertProfile(ctx, profile("u1", "ali@example.com")))

	svc := NewService(failingVaccinations{h.repo}, h.email, h.whatsapp, time.UTC, nil)
	svc.now = h.svc.now

	res, err := svc.DailySummary(ctx)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, models.DeliveryFailed, res.Results[0].Status)
	assert.Empty(t, h.email.sent)

	logs, err := h.repo.ListNotificationLogs(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliveryFailed, logs[0].Status)
	assert.Equal(t, models.NotifyDailySummary, logs[0].Category)
	assert.Contains(t, logs[0].Error, "cursor closed")
}
