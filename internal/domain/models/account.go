package models

import "time"

// Profile holds per-account contact info and notification preferences.
type Profile struct {
	UserID                string    `bson:"_id" json:"user_id"`
	FullName              string    `bson:"full_name,omitempty" json:"full_name,omitempty"`
	FarmName              string    `bson:"farm_name,omitempty" json:"farm_name,omitempty"`
	Email                 string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone                 string    `bson:"phone,omitempty" json:"phone,omitempty"`
	EmailNotifications    bool      `bson:"email_notifications" json:"email_notifications"`
	WhatsAppNotifications bool      `bson:"whatsapp_notifications" json:"whatsapp_notifications"`
	NotifyVaccinations    bool      `bson:"notify_vaccinations" json:"notify_vaccinations"`
	NotifyBirths          bool      `bson:"notify_births" json:"notify_births"`
	NotifyPregnancy       bool      `bson:"notify_pregnancy" json:"notify_pregnancy"`
	NotifyHealth          bool      `bson:"notify_health" json:"notify_health"`
	NotifyDailySummary    bool      `bson:"notify_daily_summary" json:"notify_daily_summary"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updated_at"`
}

// Settings is the per-account configuration used by the aggregators.
type Settings struct {
	UserID            string    `bson:"_id" json:"user_id"`
	MilkPricePerLiter float64   `bson:"milk_price_per_liter" json:"milk_price_per_liter"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}
