package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/nepa27/homework-bot/internal/config"
	"github.com/nepa27/homework-bot/internal/config/answers"
	"github.com/nepa27/homework-bot/internal/database"
	"github.com/nepa27/homework-bot/internal/database/pg"
	"github.com/nepa27/homework-bot/internal/domain"
	"github.com/nepa27/homework-bot/internal/repository"
	"github.com/nepa27/homework-bot/internal/repository/notifications"
	"github.com/nepa27/homework-bot/internal/service"
	"github.com/nepa27/homework-bot/internal/service/homework_changes"
	"github.com/nepa27/homework-bot/internal/service/telegram"
	"github.com/nepa27/homework-bot/pkg/practicum"
	"github.com/rs/zerolog/log"
)

const maxRequestTimeout = 30 * time.Second

type app struct {
	homeworkChangesSvc service.HomeworkChanges
	db                 database.PG
	mutedChats         *ttlcache.Cache[int64, int]
	cfg                *config.Config
}

type App interface {
	Run() error
}

func NewApp(cfg *config.Config) (App, error) {
	a := &app{cfg: cfg}

	log.Info().Msg("app initializing")

	notificationsRepo, err := a.createNotificationsRepo(cfg)
	if err != nil {
		return nil, fmt.Errorf("createNotificationsRepo: %w", err)
	}

	log.Info().Msg("telegram service initializing")
	a.mutedChats = ttlcache.New[int64, int]()
	telegramSvc, err := telegram.NewService(cfg.Telegram, a.mutedChats)
	if err != nil {
		return nil, fmt.Errorf("telegram.NewService: %w", err)
	}

	log.Info().Msg("practicum client initializing")
	practicumClient := practicum.NewClient(
		cfg.Practicum.Endpoint,
		cfg.Practicum.Token,
		requestTimeout(cfg.Practicum.PollDelay),
	)

	verdicts := map[domain.Status]string{
		domain.StatusApproved:  answers.VerdictApproved,
		domain.StatusReviewing: answers.VerdictReviewing,
		domain.StatusRejected:  answers.VerdictRejected,
	}

	log.Info().Msg("homework changes service initializing")
	a.homeworkChangesSvc = homework_changes.NewService(
		telegramSvc,
		practicumClient,
		notificationsRepo,
		verdicts,
		cfg.Practicum,
		cfg.Telegram.ChatID,
	)

	return a, nil
}

func (a *app) createNotificationsRepo(cfg *config.Config) (repository.Notifications, error) {
	if cfg.Postgres.DSN == "" {
		log.Info().Msg("notifications journal disabled, PG_DSN is not set")
		return notifications.NewNoopRepository(), nil
	}

	log.Info().Msg("postgresql client initializing")
	db, err := pg.New(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg.New: %w", err)
	}
	a.db = db

	notificationsRepo, err := notifications.NewRepository(context.Background(), db)
	if err != nil {
		return nil, fmt.Errorf("notifications.NewRepository: %w", err)
	}

	return notificationsRepo, nil
}

func (a *app) Run() error {
	log.Info().Msg("app launching")

	go a.mutedChats.Start()
	go a.homeworkChangesSvc.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("app shutting down")

	if err := a.homeworkChangesSvc.Stop(); err != nil {
		log.Error().Msgf("homeworkChangesSvc.Stop: %v", err.Error())
	}

	a.mutedChats.Stop()

	if a.db != nil {
		a.db.Close()
	}

	return nil
}

// requestTimeout подбирает таймаут запроса заметно меньше интервала опроса,
// чтобы зависший GET не пересёкся со следующей итерацией
func requestTimeout(pollDelay time.Duration) time.Duration {
	timeout := pollDelay / 2
	if timeout > maxRequestTimeout {
		timeout = maxRequestTimeout
	}
	return timeout
}
