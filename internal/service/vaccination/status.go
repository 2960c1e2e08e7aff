package vaccination

import (
	"sort"
	"time"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// UpcomingWindowDays is how far ahead a due date counts as upcoming.
const UpcomingWindowDays = 7

var statusRank = map[models.VaccinationStatus]int{
	models.VaccinationOverdue:   0,
	models.VaccinationUpcoming:  1,
	models.VaccinationScheduled: 2,
	models.VaccinationCompleted: 3,
}

// Classify returns the reminder status of a next due date relative to today.
func Classify(nextDate *time.Time, today time.Time) models.VaccinationStatus {
	if nextDate == nil {
		return models.VaccinationCompleted
	}
	days := calendar.DaysBetween(today, *nextDate)
	switch {
	case days < 0:
		return models.VaccinationOverdue
	case days <= UpcomingWindowDays:
		return models.VaccinationUpcoming
	default:
		return models.VaccinationScheduled
	}
}

// StatusOf classifies a stored vaccination. A dose marked completed is
// completed regardless of its next date.
func StatusOf(v models.Vaccination, today time.Time) models.VaccinationStatus {
	if v.Completed {
		return models.VaccinationCompleted
	}
	return Classify(v.NextDate, today)
}

// Sort orders views overdue, upcoming, scheduled, completed. Within a status
// the earliest next date comes first, then the most recent administration.
func Sort(items []View) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if statusRank[a.Status] != statusRank[b.Status] {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		if a.NextDate != nil && b.NextDate != nil && !a.NextDate.Equal(*b.NextDate) {
			return a.NextDate.Before(*b.NextDate)
		}
		if (a.NextDate == nil) != (b.NextDate == nil) {
			return a.NextDate != nil
		}
		return a.Date.After(b.Date)
	})
}
