package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/nepa27/homework-bot/internal/database"
	"github.com/nepa27/homework-bot/internal/domain"
	"github.com/nepa27/homework-bot/internal/repository/notifications/dbo"
)

type repo struct {
	db database.PG
}

func NewRepository(ctx context.Context, db database.PG) (*repo, error) {
	r := &repo{
		db: db,
	}

	if err := r.createTable(ctx); err != nil {
		return nil, fmt.Errorf("createTable: %w", err)
	}

	return r, nil
}

func (r *repo) createTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS notifications (
		    id BIGSERIAL PRIMARY KEY,
		    chat_id BIGINT NOT NULL,
		    kind TEXT NOT NULL,
		    message TEXT NOT NULL,
		    sent_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func (r *repo) Save(ctx context.Context, notification *domain.Notification) error {
	dboNotification := dbo.FromDomain(notification)

	query := `
		INSERT INTO notifications (
		    chat_id,
		    kind,
		    message,
		    sent_at
		)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		dboNotification.ChatID,  // $1
		dboNotification.Kind,    // $2
		dboNotification.Message, // $3
		dboNotification.SentAt,  // $4
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func (r *repo) LastNotification(ctx context.Context, chatID int64) (*domain.Notification, error) {
	query := `
		SELECT
		    id,
		    chat_id,
		    kind,
		    message,
		    sent_at
		FROM
		    notifications
		WHERE chat_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`

	dboNotification := new(dbo.Notification)
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&dboNotification.ID,
		&dboNotification.ChatID,
		&dboNotification.Kind,
		&dboNotification.Message,
		&dboNotification.SentAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.QueryRow.Scan: %w", err)
	}

	return dbo.ToDomain(dboNotification), nil
}
