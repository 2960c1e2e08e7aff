package models

// EmailNotificationRequest is the payload of the send-email-notification function.
type EmailNotificationRequest struct {
	UserID           string               `json:"user_id" binding:"required"`
	NotificationType NotificationCategory `json:"notification_type" binding:"required"`
	Message          string               `json:"message" binding:"required"`
	Email            string               `json:"email"`
	Subject          string               `json:"subject"`
}

// WhatsAppNotificationRequest is the payload of the send-whatsapp-notification function.
type WhatsAppNotificationRequest struct {
	UserID           string               `json:"user_id" binding:"required"`
	NotificationType NotificationCategory `json:"notification_type" binding:"required"`
	Message          string               `json:"message" binding:"required"`
	PhoneNumber      string               `json:"phone_number"`
}

// DispatchResult is the response of a single notification dispatch.
type DispatchResult struct {
	Success    bool   `json:"success"`
	Skipped    bool   `json:"skipped,omitempty"`
	EmailID    string `json:"email_id,omitempty"`
	MessageSID string `json:"message_sid,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DailySummaryCounts are the digest figures for one account.
type DailySummaryCounts struct {
	ImminentBirths       int `json:"imminent_births"`
	OverdueVaccinations  int `json:"overdue_vaccinations"`
	UpcomingVaccinations int `json:"upcoming_vaccinations"`
}

// Empty reports whether there is nothing to report.
func (c DailySummaryCounts) Empty() bool {
	return c.ImminentBirths == 0 && c.OverdueVaccinations == 0 && c.UpcomingVaccinations == 0
}

// DailySummaryUserResult is the per-account outcome of a daily-notifications run.
type DailySummaryUserResult struct {
	UserID  string             `json:"user_id"`
	Email   string             `json:"email,omitempty"`
	Status  DeliveryStatus     `json:"status"`
	Counts  DailySummaryCounts `json:"counts"`
	EmailID string             `json:"email_id,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// DailySummaryResult is the response of the daily-notifications function.
type DailySummaryResult struct {
	Success    bool                     `json:"success"`
	Sent       int                      `json:"sent"`
	TotalUsers int                      `json:"total_users"`
	Results    []DailySummaryUserResult `json:"results"`
}
