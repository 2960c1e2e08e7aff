package milk

import (
	"math"
	"sort"
	"time"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// TotalAmount is the daily yield of one record.
func TotalAmount(morning, evening float64) float64 {
	return morning + evening
}

// DailyTotals sums the herd's production per calendar day, newest first.
func DailyTotals(records []models.MilkProduction) []models.DailyMilkTotal {
	sums := make(map[time.Time]float64)
	for _, r := range records {
		sums[calendar.Day(r.Date)] += r.TotalAmount
	}

	out := make([]models.DailyMilkTotal, 0, len(sums))
	for d, total := range sums {
		out = append(out, models.DailyMilkTotal{Date: d, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// MonthlyTotal sums the records that fall in the calendar month of now.
func MonthlyTotal(records []models.MilkProduction, now time.Time) float64 {
	month := calendar.Month(now)
	var total float64
	for _, r := range records {
		if month.Contains(r.Date) {
			total += r.TotalAmount
		}
	}
	return total
}

// PotentialIncome is the advisory value of volume liters at price per liter.
// It is never booked as a transaction.
func PotentialIncome(volume, price float64) float64 {
	return math.Round(volume*price*100) / 100
}

// Summarize builds the current-month view of the given records.
func Summarize(records []models.MilkProduction, now time.Time, price float64) models.MilkSummary {
	month := calendar.Month(now)
	inMonth := make([]models.MilkProduction, 0, len(records))
	for _, r := range records {
		if month.Contains(r.Date) {
			inMonth = append(inMonth, r)
		}
	}

	total := MonthlyTotal(inMonth, now)
	return models.MilkSummary{
		Month:           month.From.Format("2006-01"),
		MonthlyTotal:    total,
		PricePerLiter:   price,
		PotentialIncome: PotentialIncome(total, price),
		Daily:           DailyTotals(inMonth),
	}
}
