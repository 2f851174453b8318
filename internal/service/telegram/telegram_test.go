package telegram

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, fmt.Sprint(what))
	return &tele.Message{}, nil
}

func newTestService(bot sender) *svc {
	return &svc{
		bot:        bot,
		mutedChats: ttlcache.New[int64, int](),
	}
}

func TestSendMessageWithOpts(t *testing.T) {
	bot := &fakeSender{}
	s := newTestService(bot)

	require.NoError(t, s.SendMessageWithOpts(115105, "Работа взята на проверку ревьюером."))
	assert.Equal(t, []string{"Работа взята на проверку ревьюером."}, bot.sent)
}

func TestSendMessageWithOpts_TransportError(t *testing.T) {
	transportErr := errors.New("telegram is down")
	bot := &fakeSender{err: transportErr}
	s := newTestService(bot)

	err := s.SendMessageWithOpts(115105, "msg")
	assert.ErrorIs(t, err, transportErr)
	assert.Nil(t, s.mutedChats.Get(115105))
}

func TestSendMessageWithOpts_MutedChatFailsFast(t *testing.T) {
	bot := &fakeSender{}
	s := newTestService(bot)
	s.mutedChats.Set(115105, 30, 30*time.Second)

	err := s.SendMessageWithOpts(115105, "msg")
	assert.ErrorIs(t, err, ErrChatMuted)
	assert.Empty(t, bot.sent)

	// другой чат не затронут
	require.NoError(t, s.SendMessageWithOpts(406, "msg"))
	assert.Equal(t, []string{"msg"}, bot.sent)
}

func TestSendMessageWithOpts_MuteExpires(t *testing.T) {
	bot := &fakeSender{}
	s := newTestService(bot)
	s.mutedChats.Set(115105, 1, 10*time.Millisecond)

	require.Error(t, s.SendMessageWithOpts(115105, "msg"))

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, s.SendMessageWithOpts(115105, "msg"))
	assert.Equal(t, []string{"msg"}, bot.sent)
}
