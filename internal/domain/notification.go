package domain

import "time"

type NotificationKind string

const (
	NotificationVerdict     NotificationKind = "verdict"
	NotificationNoHomeworks NotificationKind = "no_homeworks"
	NotificationFailure     NotificationKind = "failure"
)

// Notification is a journal row for a message delivered to the chat.
type Notification struct {
	ID     int64
	ChatID int64
	Kind   NotificationKind
	Text   string
	SentAt time.Time
}
