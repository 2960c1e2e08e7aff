package models

import "time"

// MilkProduction is the milk yield of one animal on one day.
type MilkProduction struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	AnimalID      string    `bson:"animal_id" json:"animal_id"`
	Date          time.Time `bson:"date" json:"date"`
	MorningAmount float64   `bson:"morning_amount" json:"morning_amount"`
	EveningAmount float64   `bson:"evening_amount" json:"evening_amount"`
	TotalAmount   float64   `bson:"total_amount" json:"total_amount"`
	Quality       string    `bson:"quality,omitempty" json:"quality,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// DailyMilkTotal is the herd total for a single day.
type DailyMilkTotal struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// MilkSummary is the current-month production view.
type MilkSummary struct {
	Month           string           `json:"month"`
	MonthlyTotal    float64          `json:"monthly_total"`
	PricePerLiter   float64          `json:"price_per_liter"`
	PotentialIncome float64          `json:"potential_income"`
	Daily           []DailyMilkTotal `json:"daily"`
}
