package milk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(animal string, date time.Time, morning, evening float64) models.MilkProduction {
	return models.MilkProduction{AnimalID: animal, Date: date, MorningAmount: morning, EveningAmount: evening, TotalAmount: TotalAmount(morning, evening)}
}

func TestDailyTotals(t *testing.T) {
	records := []models.MilkProduction{
		record("a", day(2024, 3, 1), 10, 8),
		record("b", day(2024, 3, 1), 5, 5),
		record("a", day(2024, 3, 2), 11, 9),
	}

	got := DailyTotals(records)
	require.Len(t, got, 2)
	assert.Equal(t, models.DailyMilkTotal{Date: day(2024, 3, 2), Total: 20}, got[0])
	assert.Equal(t, models.DailyMilkTotal{Date: day(2024, 3, 1), Total: 28}, got[1])
}

func TestMonthlyTotal(t *testing.T) {
	records := []models.MilkProduction{
		record("a", day(2024, 2, 29), 10, 10),
		record("a", day(2024, 3, 1), 10, 8),
		record("a", day(2024, 3, 31), 6, 6),
		record("a", day(2024, 4, 1), 50, 50),
	}

	assert.Equal(t, 30.0, MonthlyTotal(records, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)))
}

func TestMonthlyTotalUsesNowLocation(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	records := []models.MilkProduction{record("a", day(2024, 4, 1), 10, 0)}

	// 2024-03-31 22:30 UTC is already April in Istanbul.
	now := time.Date(2024, 4, 1, 1, 30, 0, 0, istanbul)
	assert.Equal(t, 10.0, MonthlyTotal(records, now))
}

func TestPotentialIncome(t *testing.T) {
	assert.Equal(t, 900.0, PotentialIncome(30, 30))
	assert.Equal(t, 0.0, PotentialIncome(0, 30))
	assert.Equal(t, 33.33, PotentialIncome(3.3333, 10))
}

func TestSummarize(t *testing.T) {
	records := []models.MilkProduction{
		record("a", day(2024, 3, 1), 10, 8),
		record("a", day(2024, 2, 1), 10, 8),
	}

	got := Summarize(records, day(2024, 3, 20), 25)
	assert.Equal(t, "2024-03", got.Month)
	assert.Equal(t, 18.0, got.MonthlyTotal)
	assert.Equal(t, 450.0, got.PotentialIncome)
	assert.Len(t, got.Daily, 1)
}
