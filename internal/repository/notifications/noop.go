package notifications

import (
	"context"

	"github.com/nepa27/homework-bot/internal/domain"
)

// noopRepo is used when the journal is disabled, the poll loop
// behaves exactly the same without persistence.
type noopRepo struct{}

func NewNoopRepository() *noopRepo {
	return &noopRepo{}
}

func (r *noopRepo) Save(_ context.Context, _ *domain.Notification) error {
	return nil
}

func (r *noopRepo) LastNotification(_ context.Context, _ int64) (*domain.Notification, error) {
	return nil, nil
}
