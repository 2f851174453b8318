package service

type Telegram interface {
	SendMessageWithOpts(id int64, message string, opts ...interface{}) error
}
