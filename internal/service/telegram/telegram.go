package telegram

import (
	"errors"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/nepa27/homework-bot/internal/config"
	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

var ErrChatMuted = errors.New("chat is muted by telegram flood control")

// sender is the outbound surface of telebot the service needs.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type svc struct {
	bot        sender
	mutedChats *ttlcache.Cache[int64, int]
}

func NewService(cfg config.Telegram, mutedChats *ttlcache.Cache[int64, int]) (*svc, error) {
	bot, err := createBot(cfg)
	if err != nil {
		return nil, fmt.Errorf("createBot: %w", err)
	}

	return &svc{
		bot:        bot,
		mutedChats: mutedChats,
	}, nil
}

func createBot(cfg config.Telegram) (*tele.Bot, error) {
	pref := tele.Settings{
		Token: cfg.BotToken,
		OnError: func(err error, c tele.Context) {
			log.Error().Msgf("bot.OnError: %v", err.Error())
		},
	}

	abot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("tele.NewBot: %w", err)
	}

	return abot, nil
}

func (s *svc) SendMessageWithOpts(id int64, message string, opts ...interface{}) error {
	if item := s.mutedChats.Get(id); item != nil {
		return fmt.Errorf("%w: retry after %s", ErrChatMuted, time.Until(item.ExpiresAt()).Round(time.Second))
	}

	_, err := s.bot.Send(tele.ChatID(id), message, opts...)

	return s.middlewareError(id, err)
}

func (s *svc) middlewareError(targetChatID int64, err error) error {
	if err == nil {
		return nil
	}

	var floodErr tele.FloodError
	if errors.As(err, &floodErr) && floodErr.RetryAfter > 0 {
		s.mutedChats.Set(
			targetChatID,
			floodErr.RetryAfter,
			time.Duration(floodErr.RetryAfter)*time.Second,
		)
		log.Warn().
			Int64("chat", targetChatID).
			Msgf("flood control, sends muted for %d seconds", floodErr.RetryAfter)
	}

	return err
}
