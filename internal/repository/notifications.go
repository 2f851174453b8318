package repository

import (
	"context"

	"github.com/nepa27/homework-bot/internal/domain"
)

type Notifications interface {
	Save(ctx context.Context, notification *domain.Notification) error
	LastNotification(ctx context.Context, chatID int64) (*domain.Notification, error)
}
