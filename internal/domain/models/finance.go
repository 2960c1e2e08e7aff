package models

import "time"

// TransactionType is either income or expense.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction categories. Income and expense categories are disjoint.
const (
	CategoryMilk        = "sut"
	CategoryAnimalSale  = "hayvan_satisi"
	CategoryOtherIncome = "diger_gelir"

	CategoryFeed         = "yem"
	CategoryVeterinary   = "veteriner"
	CategoryMedicine     = "ilac"
	CategoryVaccine      = "asi"
	CategoryLabor        = "iscilik"
	CategoryMaintenance  = "bakim"
	CategoryEquipment    = "ekipman"
	CategoryEnergy       = "enerji"
	CategoryOtherExpense = "diger_gider"
)

// TransactionCategories maps each type to its allowed categories.
var TransactionCategories = map[TransactionType][]string{
	TransactionIncome: {CategoryMilk, CategoryAnimalSale, CategoryOtherIncome},
	TransactionExpense: {
		CategoryFeed, CategoryVeterinary, CategoryMedicine, CategoryVaccine, CategoryLabor,
		CategoryMaintenance, CategoryEquipment, CategoryEnergy, CategoryOtherExpense,
	},
}

// ValidCategory reports whether category belongs to the given transaction type.
func ValidCategory(t TransactionType, category string) bool {
	for _, c := range TransactionCategories[t] {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction is one income or expense entry.
type Transaction struct {
	ID          string          `bson:"_id" json:"id"`
	UserID      string          `bson:"user_id" json:"user_id"`
	Type        TransactionType `bson:"type" json:"type"`
	Category    string          `bson:"category" json:"category"`
	Amount      float64         `bson:"amount" json:"amount"`
	Date        time.Time       `bson:"date" json:"date"`
	AnimalID    string          `bson:"animal_id,omitempty" json:"animal_id,omitempty"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
}

// FinanceTotals is the income/expense/balance reduction of a transaction set.
type FinanceTotals struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// CategoryTotal is one slice of a per-category breakdown.
type CategoryTotal struct {
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Amount   float64         `json:"amount"`
	Count    int             `json:"count"`
}

// MonthlyTotal is one YYYY-MM bucket of income and expense.
type MonthlyTotal struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}
