package models

import "time"

// InseminationMethod distinguishes natural service from artificial insemination.
type InseminationMethod string

const (
	MethodNatural    InseminationMethod = "natural"
	MethodArtificial InseminationMethod = "artificial"
)

// Insemination is a breeding event that starts a pregnancy-tracking cycle.
type Insemination struct {
	ID                string             `bson:"_id" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	AnimalID          string             `bson:"animal_id" json:"animal_id"`
	Date              time.Time          `bson:"date" json:"date"`
	Method            InseminationMethod `bson:"method" json:"method"`
	BullInfo          string             `bson:"bull_info,omitempty" json:"bull_info,omitempty"`
	ExpectedBirthDate time.Time          `bson:"expected_birth_date" json:"expected_birth_date"`
	ActualBirthDate   *time.Time         `bson:"actual_birth_date,omitempty" json:"actual_birth_date,omitempty"`
	IsPregnant        bool               `bson:"is_pregnant" json:"is_pregnant"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// InseminationFilter narrows insemination listings.
type InseminationFilter struct {
	AnimalID     string
	PregnantOnly bool
}

// ReminderType identifies a pregnancy milestone reminder.
type ReminderType string

const (
	Reminder6Month ReminderType = "6_month"
	Reminder7Month ReminderType = "7_month"
)

// PregnancyReminder is a milestone reminder tied to an insemination. Sent is
// only flipped by an explicit action.
type PregnancyReminder struct {
	ID             string       `bson:"_id" json:"id"`
	UserID         string       `bson:"user_id" json:"user_id"`
	InseminationID string       `bson:"insemination_id" json:"insemination_id"`
	AnimalID       string       `bson:"animal_id" json:"animal_id"`
	ReminderType   ReminderType `bson:"reminder_type" json:"reminder_type"`
	ReminderDate   time.Time    `bson:"reminder_date" json:"reminder_date"`
	Sent           bool         `bson:"sent" json:"sent"`
	CreatedAt      time.Time    `bson:"created_at" json:"created_at"`
}

// AdvisoryKind is a milk-withdrawal advisory derived from the pregnancy month.
type AdvisoryKind string

const (
	AdvisoryReduceMilk AdvisoryKind = "reduce_milk"
	AdvisoryStopMilk   AdvisoryKind = "stop_milk"
)

// PregnancyStatus is the derived, never persisted view of an insemination.
type PregnancyStatus struct {
	ExpectedBirthDate time.Time      `json:"expected_birth_date"`
	DaysElapsed       int            `json:"days_elapsed"`
	DaysRemaining     int            `json:"days_remaining"`
	Overdue           bool           `json:"overdue"`
	ProgressPercent   float64        `json:"progress_percent"`
	PregnancyMonth    int            `json:"pregnancy_month"`
	Advisories        []AdvisoryKind `json:"advisories"`
}
