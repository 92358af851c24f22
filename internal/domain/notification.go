package domain

type NotificationEvent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// InboxNotification is a stored notification returned by the inbox endpoint.
type InboxNotification struct {
	ID           string            `json:"id"`
	Notification NotificationEvent `json:"notification"`
}
