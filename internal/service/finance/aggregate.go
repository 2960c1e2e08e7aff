package finance

import (
	"sort"
	"time"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// Predicate selects the transactions an aggregation runs over.
type Predicate func(models.Transaction) bool

// InRange selects transactions dated inside rng.
func InRange(rng calendar.Range) Predicate {
	return func(t models.Transaction) bool { return rng.Contains(t.Date) }
}

// All selects every transaction.
func All(models.Transaction) bool { return true }

// Totals sums income and expense of the selected transactions.
func Totals(txs []models.Transaction, keep Predicate) models.FinanceTotals {
	var out models.FinanceTotals
	for _, t := range txs {
		if !keep(t) {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			out.TotalIncome += t.Amount
		case models.TransactionExpense:
			out.TotalExpense += t.Amount
		}
	}
	out.Balance = out.TotalIncome - out.TotalExpense
	return out
}

// ByCategory groups the selected transactions by type and category, largest
// amount first.
func ByCategory(txs []models.Transaction, keep Predicate) []models.CategoryTotal {
	type key struct {
		typ      models.TransactionType
		category string
	}
	index := make(map[key]int)
	out := make([]models.CategoryTotal, 0)

	for _, t := range txs {
		if !keep(t) {
			continue
		}
		k := key{t.Type, t.Category}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.CategoryTotal{Type: t.Type, Category: t.Category})
		}
		out[i].Amount += t.Amount
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == models.TransactionIncome
		}
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Monthly buckets the selected transactions by calendar month, oldest first.
func Monthly(txs []models.Transaction, keep Predicate) []models.MonthlyTotal {
	buckets := make(map[string]*models.MonthlyTotal)
	for _, t := range txs {
		if !keep(t) {
			continue
		}
		month := monthKey(t.Date)
		b, ok := buckets[month]
		if !ok {
			b = &models.MonthlyTotal{Month: month}
			buckets[month] = b
		}
		switch t.Type {
		case models.TransactionIncome:
			b.Income += t.Amount
		case models.TransactionExpense:
			b.Expense += t.Amount
		}
	}

	out := make([]models.MonthlyTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
