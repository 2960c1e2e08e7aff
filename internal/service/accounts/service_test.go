package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository/memory"
)

func ptr[T any](v T) *T { return &v }

func TestProfileDefaults(t *testing.T) {
	svc := NewService(memory.NewRepository(), 30, nil)

	p, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile("u1"), p)
	assert.False(t, p.WhatsAppNotifications)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewRepository(), 30, nil)

	p, err := svc.UpdateProfile(ctx, "u1", ProfileInput{
		FarmName:              ptr(" Yayla Çiftliği "),
		Email:                 ptr("ali@example.com"),
		Phone:                 ptr("+90 (532) 111-22-33"),
		WhatsAppNotifications: ptr(true),
		NotifyHealth:          ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Yayla Çiftliği", p.FarmName)
	assert.Equal(t, "905321112233", p.Phone)
	assert.True(t, p.WhatsAppNotifications)
	assert.False(t, p.NotifyHealth)
	assert.True(t, p.NotifyBirths)

	stored, err := svc.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p, stored)

	_, err = svc.UpdateProfile(ctx, "u1", ProfileInput{Email: ptr("not-an-email")})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewRepository(), 30, nil)

	st, err := svc.Settings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 30.0, st.MilkPricePerLiter)

	_, err = svc.UpdateSettings(ctx, "u1", 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.UpdateSettings(ctx, "u1", 24.75)
	require.NoError(t, err)

	st, err = svc.Settings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 24.75, st.MilkPricePerLiter)
}
