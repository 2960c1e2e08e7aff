package breeding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGestationDays(t *testing.T) {
	assert.Equal(t, 283, GestationDays(models.SpeciesCattle))
	assert.Equal(t, 150, GestationDays(models.SpeciesSheep))
	assert.Equal(t, 150, GestationDays(models.SpeciesGoat))
	assert.Equal(t, 310, GestationDays(models.SpeciesBuffalo))
	assert.Equal(t, 340, GestationDays(models.SpeciesHorse))
	assert.Equal(t, 200, GestationDays("llama"))
	assert.Equal(t, 283, GestationDays(" CATTLE"))
}

func TestGestationDaysAcceptsCommonNames(t *testing.T) {
	assert.Equal(t, 283, GestationDays("cow"))
	assert.Equal(t, 283, GestationDays("INEK"))
	assert.Equal(t, 150, GestationDays("Koyun"))
	assert.Equal(t, 340, GestationDays("mare"))
	assert.Equal(t, day(2024, 10, 10), ExpectedBirthDate(day(2024, 1, 1), "cow"))
}

func TestBirthImminent(t *testing.T) {
	in := models.Insemination{ExpectedBirthDate: day(2024, 10, 10), IsPregnant: true}

	assert.True(t, BirthImminent(in, day(2024, 10, 10)))
	assert.True(t, BirthImminent(in, day(2024, 10, 3)))
	assert.False(t, BirthImminent(in, day(2024, 10, 2)))
	assert.False(t, BirthImminent(in, day(2024, 10, 11)), "overdue")

	in.IsPregnant = false
	assert.False(t, BirthImminent(in, day(2024, 10, 10)))
}

func TestExpectedBirthDateIsExactCalendarDays(t *testing.T) {
	for _, species := range []string{models.SpeciesCattle, models.SpeciesSheep, models.SpeciesBuffalo, models.SpeciesHorse, "other"} {
		for start := day(2023, 1, 1); start.Before(day(2025, 1, 1)); start = start.AddDate(0, 0, 17) {
			got := ExpectedBirthDate(start, species)
			assert.Equal(t, GestationDays(species), calendar.DaysBetween(start, got), "%s from %s", species, start.Format(calendar.Layout))
		}
	}
}

func TestCowScenario(t *testing.T) {
	insemination := models.Insemination{
		Date:       day(2024, 1, 1),
		IsPregnant: true,
	}
	insemination.ExpectedBirthDate = ExpectedBirthDate(insemination.Date, models.SpeciesCattle)
	assert.Equal(t, day(2024, 10, 10), insemination.ExpectedBirthDate)

	month6 := Status(insemination, models.SpeciesCattle, day(2024, 7, 2))
	assert.Equal(t, 6, month6.PregnancyMonth)
	assert.Equal(t, []models.AdvisoryKind{models.AdvisoryReduceMilk}, month6.Advisories)

	month7 := Status(insemination, models.SpeciesCattle, day(2024, 8, 2))
	assert.Equal(t, 7, month7.PregnancyMonth)
	assert.Equal(t, []models.AdvisoryKind{models.AdvisoryStopMilk}, month7.Advisories)
	assert.NotContains(t, month7.Advisories, models.AdvisoryReduceMilk)

	early := Status(insemination, models.SpeciesCattle, day(2024, 6, 30))
	assert.Equal(t, 5, early.PregnancyMonth)
	assert.Empty(t, early.Advisories)
}

func TestStatusProgressAndOverdue(t *testing.T) {
	in := models.Insemination{Date: day(2024, 1, 1), IsPregnant: true}
	in.ExpectedBirthDate = ExpectedBirthDate(in.Date, models.SpeciesCattle)

	due := Status(in, models.SpeciesCattle, day(2024, 10, 10))
	assert.Equal(t, 0, due.DaysRemaining)
	assert.Equal(t, 100.0, due.ProgressPercent)
	assert.False(t, due.Overdue)

	late := Status(in, models.SpeciesCattle, day(2024, 10, 15))
	assert.Equal(t, -5, late.DaysRemaining)
	assert.True(t, late.Overdue)
	assert.Equal(t, 100.0, late.ProgressPercent)

	before := Status(in, models.SpeciesCattle, day(2023, 12, 25))
	assert.Equal(t, 0.0, before.ProgressPercent)
	assert.Equal(t, 0, before.PregnancyMonth)

	half := Status(in, models.SpeciesCattle, calendar.AddDays(in.Date, 283/2))
	assert.InDelta(t, 49.8, half.ProgressPercent, 0.05)
}

func TestAdvisoriesOnlyForPregnant(t *testing.T) {
	assert.Nil(t, Advisories(6, false))
	assert.Nil(t, Advisories(9, false))
	assert.Nil(t, Advisories(5, true))
	assert.Equal(t, []models.AdvisoryKind{models.AdvisoryStopMilk}, Advisories(9, true))
}

func TestReminderDates(t *testing.T) {
	dates := ReminderDates(day(2024, 1, 1))
	assert.Equal(t, day(2024, 7, 1), dates[models.Reminder6Month])
	assert.Equal(t, day(2024, 8, 1), dates[models.Reminder7Month])
}
