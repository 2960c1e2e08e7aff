package models

import "time"

// Channel is an outbound notification medium.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// NotificationCategory is the preference bucket a notification belongs to.
type NotificationCategory string

const (
	NotifyVaccination  NotificationCategory = "vaccination"
	NotifyBirth        NotificationCategory = "birth"
	NotifyPregnancy    NotificationCategory = "pregnancy"
	NotifyHealth       NotificationCategory = "health"
	NotifyDailySummary NotificationCategory = "daily_summary"
)

// DeliveryStatus is the outcome recorded for a notification attempt.
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliverySkipped   DeliveryStatus = "skipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryRead      DeliveryStatus = "read"
)

var receiptOrder = []DeliveryStatus{DeliverySent, DeliveryDelivered, DeliveryFailed, DeliveryRead}

var receiptRank = map[DeliveryStatus]int{
	DeliverySent:      1,
	DeliveryDelivered: 2,
	DeliveryFailed:    2,
	DeliveryRead:      3,
}

// CanAdvanceTo reports whether a provider receipt may move s to next.
// Receipts only move forward: sent, then delivered or failed, then read.
func (s DeliveryStatus) CanAdvanceTo(next DeliveryStatus) bool {
	from, ok := receiptRank[s]
	return ok && receiptRank[next] > from
}

// StatusesBefore lists the statuses a receipt carrying next may replace.
func StatusesBefore(next DeliveryStatus) []DeliveryStatus {
	out := make([]DeliveryStatus, 0, len(receiptOrder))
	for _, s := range receiptOrder {
		if s.CanAdvanceTo(next) {
			out = append(out, s)
		}
	}
	return out
}

// NotificationLog is the audit trail entry for one delivery attempt.
type NotificationLog struct {
	ID                string               `bson:"_id" json:"id"`
	UserID            string               `bson:"user_id" json:"user_id"`
	Channel           Channel              `bson:"channel" json:"channel"`
	Category          NotificationCategory `bson:"category" json:"category"`
	Target            string               `bson:"target,omitempty" json:"target,omitempty"`
	Status            DeliveryStatus       `bson:"status" json:"status"`
	ProviderMessageID string               `bson:"provider_message_id,omitempty" json:"provider_message_id,omitempty"`
	Message           string               `bson:"message,omitempty" json:"message,omitempty"`
	Error             string               `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
}
