package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
)

func TestMilkRecordUniquePerAnimalAndDay(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	day := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	first := models.MilkProduction{ID: "m1", UserID: "u1", AnimalID: "a1", Date: day, MorningAmount: 10, EveningAmount: 8, TotalAmount: 18}
	require.NoError(t, repo.CreateMilkRecord(ctx, first))

	dup := first
	dup.ID = "m2"
	dup.Date = day.Add(6 * time.Hour)
	dup.MorningAmount = 1
	err := repo.CreateMilkRecord(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	records, err := repo.ListMilkRecords(ctx, "u1", calendar.Range{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 18.0, records[0].TotalAmount, "existing record must not be overwritten")

	otherAccount := first
	otherAccount.ID = "m3"
	otherAccount.UserID = "u2"
	assert.NoError(t, repo.CreateMilkRecord(ctx, otherAccount))
}

func TestAccountScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.CreateAnimal(ctx, models.Animal{ID: "a1", UserID: "u1", EarTag: "TR-1"}))

	_, err := repo.GetAnimal(ctx, "u2", "a1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.UpdateAnimal(ctx, models.Animal{ID: "a1", UserID: "u2", EarTag: "TR-1"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.CreateAnimal(ctx, models.Animal{ID: "a2", UserID: "u1", EarTag: "TR-1"}), repository.ErrDuplicate)
	assert.NoError(t, repo.CreateAnimal(ctx, models.Animal{ID: "a3", UserID: "u2", EarTag: "TR-1"}))
}

func TestNotificationStatusUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.CreateNotificationLog(ctx, models.NotificationLog{ID: "n1", UserID: "u1", ProviderMessageID: "wamid.1", Status: models.DeliverySent}))
	require.NoError(t, repo.UpdateNotificationStatus(ctx, "wamid.1", models.DeliveryRead, ""))

	logs, err := repo.ListNotificationLogs(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliveryRead, logs[0].Status)

	assert.ErrorIs(t, repo.UpdateNotificationStatus(ctx, "wamid.unknown", models.DeliveryRead, ""), repository.ErrNotFound)
}

func TestNotificationStatusOnlyMovesForward(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.CreateNotificationLog(ctx, models.NotificationLog{ID: "n1", UserID: "u1", ProviderMessageID: "wamid.1", Status: models.DeliverySent}))
	require.NoError(t, repo.UpdateNotificationStatus(ctx, "wamid.1", models.DeliveryRead, ""))
	require.NoError(t, repo.UpdateNotificationStatus(ctx, "wamid.1", models.DeliveryDelivered, ""), "late receipt is ignored")
	require.NoError(t, repo.UpdateNotificationStatus(ctx, "wamid.1", models.DeliverySent, ""))

	logs, err := repo.ListNotificationLogs(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliveryRead, logs[0].Status)
}
