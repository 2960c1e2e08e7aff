package animals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
	"github.com/mamadbah2/livestock/internal/repository/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validInput() CreateInput {
	return CreateInput{
		EarTag:    " tr-34-001 ",
		Species:   "Cattle",
		Gender:    models.GenderFemale,
		BirthDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	got, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)

	assert.Equal(t, "TR-34-001", got.EarTag)
	assert.Equal(t, models.SpeciesCattle, got.Species)
	assert.Equal(t, models.AnimalActive, got.Status)
	assert.Equal(t, 17, got.AgeMonths)
	assert.Equal(t, LabelYoungFemale, got.Category.Label)

	_, err = svc.Create(ctx, "u1", validInput())
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateMapsCommonSpeciesNames(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	in := validInput()
	in.Species = " Cow "
	got, err := svc.Create(ctx, "u1", in)
	require.NoError(t, err)

	assert.Equal(t, models.SpeciesCattle, got.Species)
	assert.Equal(t, LabelYoungFemale, got.Category.Label)
}

func TestActiveIDs(t *testing.T) {
	herd := []models.Animal{
		{ID: "a1", Status: models.AnimalActive},
		{ID: "a2", Status: models.AnimalSold},
		{ID: "a3", Status: models.AnimalDeceased},
	}
	assert.Equal(t, map[string]bool{"a1": true}, ActiveIDs(herd))
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := map[string]func(*CreateInput){
		"missing tag":    func(in *CreateInput) { in.EarTag = "  " },
		"missing specie": func(in *CreateInput) { in.Species = "" },
		"bad gender":     func(in *CreateInput) { in.Gender = "unknown" },
		"future birth":   func(in *CreateInput) { in.BirthDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
		"no birth":       func(in *CreateInput) { in.BirthDate = time.Time{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(ctx, "u1", in)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestMarkSoldIsOneWay(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)

	sold, err := svc.MarkSold(ctx, "u1", created.ID, SaleInput{SoldTo: "Ahmet", Price: 45000, RecordIncome: true})
	require.NoError(t, err)
	assert.Equal(t, models.AnimalSold, sold.Status)
	require.NotNil(t, sold.SoldPrice)
	assert.Equal(t, 45000.0, *sold.SoldPrice)
	assert.Nil(t, sold.DeathDate)

	txs, err := repo.ListTransactions(ctx, "u1", calendar.Range{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.CategoryAnimalSale, txs[0].Category)
	assert.Equal(t, models.TransactionIncome, txs[0].Type)

	_, err = svc.MarkSold(ctx, "u1", created.ID, SaleInput{Price: 1})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = svc.MarkDeceased(ctx, "u1", created.ID, DeathInput{Reason: "x"})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestMarkDeceased(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)

	dead, err := svc.MarkDeceased(ctx, "u1", created.ID, DeathInput{Reason: "şap"})
	require.NoError(t, err)
	assert.Equal(t, models.AnimalDeceased, dead.Status)
	require.NotNil(t, dead.DeathDate)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *dead.DeathDate)
	assert.Nil(t, dead.SoldDate)
}

func TestOtherAccountCannotSeeAnimal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, "u2", created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
