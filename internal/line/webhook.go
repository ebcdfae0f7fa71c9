package line

// Webhook payload types for the LINE Messaging API. Only the fields the
// command handlers read are modeled.

type WebhookRequest struct {
	Events []WebhookEvent `json:"events"`
}

type WebhookEvent struct {
	Type    string          `json:"type"`
	Source  *WebhookSource  `json:"source,omitempty"`
	Message *WebhookMessage `json:"message,omitempty"`
}

type WebhookSource struct {
	UserID string `json:"userId"`
}

type WebhookMessage struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

const (
	EventTypeFollow  = "follow"
	EventTypeMessage = "message"

	MessageTypeText  = "text"
	MessageTypeFile  = "file"
	MessageTypeImage = "image"
)
