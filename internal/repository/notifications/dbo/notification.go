package dbo

import (
	"time"

	"github.com/nepa27/homework-bot/internal/domain"
)

type Notification struct {
	ID      int64
	ChatID  int64
	Kind    string
	Message string
	SentAt  time.Time
}

func FromDomain(notification *domain.Notification) *Notification {
	return &Notification{
		ID:      notification.ID,
		ChatID:  notification.ChatID,
		Kind:    string(notification.Kind),
		Message: notification.Text,
		SentAt:  notification.SentAt,
	}
}

func ToDomain(dboNotification *Notification) *domain.Notification {
	return &domain.Notification{
		ID:     dboNotification.ID,
		ChatID: dboNotification.ChatID,
		Kind:   domain.NotificationKind(dboNotification.Kind),
		Text:   dboNotification.Message,
		SentAt: dboNotification.SentAt,
	}
}
