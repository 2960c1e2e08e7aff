package notifications

import (
	"fmt"

	"github.com/mamadbah2/livestock/internal/domain/models"
)

var categoryNames = map[models.NotificationCategory]string{
	models.NotifyVaccination:  "vaccination",
	models.NotifyBirth:        "birth",
	models.NotifyPregnancy:    "pregnancy",
	models.NotifyHealth:       "health",
	models.NotifyDailySummary: "daily summary",
}

// ValidCategory reports whether c is a known notification category.
func ValidCategory(c models.NotificationCategory) bool {
	_, ok := categoryNames[c]
	return ok
}

// MayNotify decides whether the profile accepts a notification of category on
// channel. When it returns false, reason says what is disabled.
func MayNotify(p models.Profile, channel models.Channel, category models.NotificationCategory) (bool, string) {
	switch channel {
	case models.ChannelEmail:
		if !p.EmailNotifications {
			return false, "email notifications are disabled"
		}
	case models.ChannelWhatsApp:
		if !p.WhatsAppNotifications {
			return false, "whatsapp notifications are disabled"
		}
	default:
		return false, fmt.Sprintf("channel %q is not supported", channel)
	}

	var enabled bool
	switch category {
	case models.NotifyVaccination:
		enabled = p.NotifyVaccinations
	case models.NotifyBirth:
		enabled = p.NotifyBirths
	case models.NotifyPregnancy:
		enabled = p.NotifyPregnancy
	case models.NotifyHealth:
		enabled = p.NotifyHealth
	case models.NotifyDailySummary:
		enabled = p.NotifyDailySummary
	default:
		return false, fmt.Sprintf("notification type %q is not supported", category)
	}
	if !enabled {
		return false, categoryNames[category] + " notifications are disabled"
	}
	return true, ""
}
