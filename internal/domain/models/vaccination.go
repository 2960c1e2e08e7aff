package models

import "time"

// VaccinationStatus is the reminder classification of a vaccination.
type VaccinationStatus string

const (
	VaccinationOverdue   VaccinationStatus = "overdue"
	VaccinationUpcoming  VaccinationStatus = "upcoming"
	VaccinationScheduled VaccinationStatus = "scheduled"
	VaccinationCompleted VaccinationStatus = "completed"
)

// Vaccination records one administered dose and the optional next due date.
type Vaccination struct {
	ID        string     `bson:"_id" json:"id"`
	UserID    string     `bson:"user_id" json:"user_id"`
	AnimalID  string     `bson:"animal_id" json:"animal_id"`
	Name      string     `bson:"name" json:"name"`
	Date      time.Time  `bson:"date" json:"date"`
	NextDate  *time.Time `bson:"next_date,omitempty" json:"next_date,omitempty"`
	Completed bool       `bson:"completed" json:"completed"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
}
