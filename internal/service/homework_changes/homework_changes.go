package homework_changes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nepa27/homework-bot/internal/config"
	"github.com/nepa27/homework-bot/internal/config/answers"
	"github.com/nepa27/homework-bot/internal/domain"
	ierrors "github.com/nepa27/homework-bot/internal/errors"
	"github.com/nepa27/homework-bot/internal/repository"
	"github.com/nepa27/homework-bot/internal/service"
	"github.com/nepa27/homework-bot/pkg/practicum"
	"github.com/rs/zerolog/log"
)

type svc struct {
	telegramSvc       service.Telegram
	practicumClient   practicum.Client
	notificationsRepo repository.Notifications
	verdicts          map[domain.Status]string
	chatID            int64
	pollDelay         time.Duration

	// состояние цикла, принадлежит только горутине Start
	lastTimestamp int64
	lastMessage   string

	// ctx и stopFunc создаются в конструкторе,
	// Stop можно звать из другой горутины в любой момент
	ctx      context.Context
	stopFunc context.CancelFunc
}

func NewService(
	telegramSvc service.Telegram,
	practicumClient practicum.Client,
	notificationsRepo repository.Notifications,
	verdicts map[domain.Status]string,
	cfg config.Practicum,
	chatID int64,
) *svc {
	ctx, cancel := context.WithCancel(context.Background())

	return &svc{
		telegramSvc:       telegramSvc,
		practicumClient:   practicumClient,
		notificationsRepo: notificationsRepo,
		verdicts:          verdicts,
		chatID:            chatID,
		pollDelay:         cfg.PollDelay,
		ctx:               ctx,
		stopFunc:          cancel,
	}
}

func (s *svc) Start() {
	s.lastTimestamp = time.Now().Unix()
	s.seedLastMessage(s.ctx)

	log.Info().Msg("start homework changes polling")
	s.checkChanges(s.ctx)

	for {
		select {
		case <-time.After(s.pollDelay):
			s.checkChanges(s.ctx)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *svc) Stop() error {
	s.stopFunc()
	return nil
}

// seedLastMessage восстанавливает дедупликацию после рестарта,
// чтобы не отправить то же сообщение второй раз
func (s *svc) seedLastMessage(ctx context.Context) {
	notification, err := s.notificationsRepo.LastNotification(ctx, s.chatID)
	if err != nil {
		log.Error().Msgf("notificationsRepo.LastNotification: %v", err.Error())
		return
	}
	if notification == nil {
		return
	}

	s.lastMessage = notification.Text
}

func (s *svc) checkChanges(ctx context.Context) {
	startedAt := time.Now().Unix()

	message, kind, watermark, err := s.pollOnce(ctx)
	if err != nil {
		s.logPollError(err)
		message = answers.Failure(err)
		kind = domain.NotificationFailure
	}

	if message == s.lastMessage {
		log.Debug().Msg("homework status has not changed")
		if err == nil {
			s.advanceWatermark(watermark, startedAt)
		}
		return
	}

	if sendErr := s.telegramSvc.SendMessageWithOpts(s.chatID, message); sendErr != nil {
		// состояние не трогаем, отправка повторится в следующем цикле
		log.Error().
			Int64("chat", s.chatID).
			Msgf("telegramSvc.SendMessageWithOpts: %v", sendErr.Error())
		return
	}
	s.lastMessage = message

	s.saveNotification(ctx, kind, message)

	if err == nil {
		s.advanceWatermark(watermark, startedAt)
	}
}

func (s *svc) pollOnce(ctx context.Context) (string, domain.NotificationKind, int64, error) {
	body, err := s.practicumClient.HomeworkStatuses(ctx, s.lastTimestamp)
	if err != nil {
		return "", "", 0, fmt.Errorf("practicumClient.HomeworkStatuses: %w", err)
	}

	homeworks, currentDate, err := validateResponse(body)
	if err != nil {
		return "", "", 0, fmt.Errorf("validateResponse: %w", err)
	}

	if len(homeworks) == 0 {
		return answers.NoHomeworksInfo, domain.NotificationNoHomeworks, currentDate, nil
	}

	message, err := s.parseStatus(homeworks[0])
	if err != nil {
		return "", "", 0, fmt.Errorf("parseStatus: %w", err)
	}

	return message, domain.NotificationVerdict, currentDate, nil
}

func validateResponse(body json.RawMessage) ([]domain.Homework, int64, error) {
	// null и прочие не-объекты разбираются в пустой конверт без ошибки,
	// а это ошибка типа, не отсутствие данных
	if !bytes.HasPrefix(bytes.TrimLeft(body, " \t\r\n"), []byte("{")) {
		return nil, 0, fmt.Errorf("%w: body is not a JSON object", ierrors.ErrMalformedResponse)
	}

	var envelope struct {
		Homeworks   json.RawMessage `json:"homeworks"`
		CurrentDate int64           `json:"current_date"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ierrors.ErrMalformedResponse, err)
	}

	if len(envelope.Homeworks) == 0 || string(envelope.Homeworks) == "null" {
		return nil, 0, ierrors.ErrEmptyResponse
	}

	var homeworks []domain.Homework
	if err := json.Unmarshal(envelope.Homeworks, &homeworks); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ierrors.ErrMalformedResponse, err)
	}

	return homeworks, envelope.CurrentDate, nil
}

func (s *svc) parseStatus(homework domain.Homework) (string, error) {
	verdict, ok := s.verdicts[homework.Status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ierrors.ErrUnknownStatus, homework.Status)
	}

	if homework.HomeworkName == "" {
		return "", ierrors.ErrHomeworkNameMissing
	}

	return answers.StatusChanged(homework.HomeworkName, verdict), nil
}

func (s *svc) logPollError(err error) {
	var badStatusErr *practicum.BadStatusError
	switch {
	case errors.As(err, &badStatusErr):
		log.Error().
			Int("code", badStatusErr.Code).
			Msgf("homework statuses API returned bad status: %s", badStatusErr.Summary)
	case errors.Is(err, practicum.ErrRequestFailed):
		log.Error().Msgf("homework statuses API request failed: %v", err.Error())
	case errors.Is(err, ierrors.ErrMalformedResponse):
		log.Error().Msgf("homework statuses response is malformed: %v", err.Error())
	case errors.Is(err, ierrors.ErrEmptyResponse):
		log.Error().Msgf("homework statuses response has no homeworks: %v", err.Error())
	case errors.Is(err, ierrors.ErrUnknownStatus):
		log.Error().Msgf("homework has unknown status: %v", err.Error())
	case errors.Is(err, ierrors.ErrHomeworkNameMissing):
		log.Error().Msgf("homework has no name: %v", err.Error())
	default:
		log.Error().Msgf("unclassified poll error: %v", err.Error())
	}
}

func (s *svc) advanceWatermark(currentDate int64, startedAt int64) {
	if currentDate > 0 {
		s.lastTimestamp = currentDate
		return
	}
	s.lastTimestamp = startedAt
}

func (s *svc) saveNotification(ctx context.Context, kind domain.NotificationKind, message string) {
	err := s.notificationsRepo.Save(ctx, &domain.Notification{
		ChatID: s.chatID,
		Kind:   kind,
		Text:   message,
		SentAt: time.Now(),
	})
	if err != nil {
		// журнал не должен останавливать цикл
		log.Error().Msgf("notificationsRepo.Save: %v", err.Error())
	}
}
