package models

import "time"

// HealthRecordType classifies a health record.
type HealthRecordType string

const (
	HealthVetVisit  HealthRecordType = "vet_visit"
	HealthTreatment HealthRecordType = "treatment"
	HealthIllness   HealthRecordType = "illness"
	HealthInjury    HealthRecordType = "injury"
	HealthCheckup   HealthRecordType = "checkup"
	HealthOther     HealthRecordType = "other"
)

// HealthRecord is a vet visit, treatment, illness or similar event for an animal.
type HealthRecord struct {
	ID           string           `bson:"_id" json:"id"`
	UserID       string           `bson:"user_id" json:"user_id"`
	AnimalID     string           `bson:"animal_id" json:"animal_id"`
	RecordType   HealthRecordType `bson:"record_type" json:"record_type"`
	Title        string           `bson:"title" json:"title"`
	Description  string           `bson:"description,omitempty" json:"description,omitempty"`
	Date         time.Time        `bson:"date" json:"date"`
	Cost         *float64         `bson:"cost,omitempty" json:"cost,omitempty"`
	VetName      string           `bson:"vet_name,omitempty" json:"vet_name,omitempty"`
	FollowUpDate *time.Time       `bson:"follow_up_date,omitempty" json:"follow_up_date,omitempty"`
	CreatedAt    time.Time        `bson:"created_at" json:"created_at"`
}
