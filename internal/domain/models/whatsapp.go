package models

// WebhookPayload is the subset of Meta's WhatsApp Cloud API callback body used
// to track delivery of outbound notifications.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry represents one entry payload within the webhook body.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange captures the actual notification contents.
type WebhookChange struct {
	Value WebhookValue `json:"value"`
	Field string       `json:"field"`
}

// WebhookValue carries the status receipts of previously sent messages.
type WebhookValue struct {
	MessagingProduct string          `json:"messaging_product"`
	Statuses         []MessageStatus `json:"statuses"`
}

// MessageStatus is a sent/delivered/read/failed receipt for one message id.
type MessageStatus struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	RecipientID string         `json:"recipient_id"`
	Errors      []WebhookError `json:"errors,omitempty"`
}

// WebhookError exposes errors returned from Meta for a failed delivery.
type WebhookError struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
