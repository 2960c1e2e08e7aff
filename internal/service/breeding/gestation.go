package breeding

import (
	"math"
	"time"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

const defaultGestationDays = 200

// ImminentBirthDays is how many days ahead an expected birth counts as imminent.
const ImminentBirthDays = 7

var gestationDays = map[string]int{
	models.SpeciesCattle:  283,
	models.SpeciesSheep:   150,
	models.SpeciesGoat:    150,
	models.SpeciesBuffalo: 310,
	models.SpeciesHorse:   340,
}

// Milestone months for the milk-withdrawal advisories.
const (
	reduceMilkMonth = 6
	stopMilkMonth   = 7
)

// GestationDays returns the average gestation length of species in days.
func GestationDays(species string) int {
	if days, ok := gestationDays[models.NormalizeSpecies(species)]; ok {
		return days
	}
	return defaultGestationDays
}

// ExpectedBirthDate adds the species gestation length to the insemination date
// in calendar days.
func ExpectedBirthDate(inseminationDate time.Time, species string) time.Time {
	return calendar.AddDays(inseminationDate, GestationDays(species))
}

// Advisories returns the milk advisories for a pregnancy month. Only pregnant
// animals get advisories; month 6 reduces milk, month 7 and later stops it.
func Advisories(pregnancyMonth int, pregnant bool) []models.AdvisoryKind {
	if !pregnant {
		return nil
	}
	switch {
	case pregnancyMonth >= stopMilkMonth:
		return []models.AdvisoryKind{models.AdvisoryStopMilk}
	case pregnancyMonth == reduceMilkMonth:
		return []models.AdvisoryKind{models.AdvisoryReduceMilk}
	default:
		return nil
	}
}

// Status derives the pregnancy view of an insemination as of today.
func Status(in models.Insemination, species string, today time.Time) models.PregnancyStatus {
	gestation := GestationDays(species)
	elapsed := calendar.DaysBetween(in.Date, today)

	progress := float64(elapsed) / float64(gestation) * 100
	progress = math.Max(0, math.Min(100, progress))
	progress = math.Round(progress*10) / 10

	month := calendar.MonthsBetween(in.Date, today)
	if month < 0 {
		month = 0
	}

	remaining := calendar.DaysBetween(today, in.ExpectedBirthDate)

	return models.PregnancyStatus{
		ExpectedBirthDate: in.ExpectedBirthDate,
		DaysElapsed:       elapsed,
		DaysRemaining:     remaining,
		Overdue:           in.IsPregnant && remaining < 0,
		ProgressPercent:   progress,
		PregnancyMonth:    month,
		Advisories:        Advisories(month, in.IsPregnant),
	}
}

// BirthImminent reports whether a pregnant record is due within
// ImminentBirthDays of today. Overdue births are not imminent.
func BirthImminent(in models.Insemination, today time.Time) bool {
	if !in.IsPregnant {
		return false
	}
	days := calendar.DaysBetween(today, in.ExpectedBirthDate)
	return days >= 0 && days <= ImminentBirthDays
}

// ReminderDates returns the 6th and 7th month milestone dates.
func ReminderDates(inseminationDate time.Time) map[models.ReminderType]time.Time {
	day := calendar.Day(inseminationDate)
	return map[models.ReminderType]time.Time{
		models.Reminder6Month: day.AddDate(0, reduceMilkMonth, 0),
		models.Reminder7Month: day.AddDate(0, stopMilkMonth, 0),
	}
}
