package errors

import "errors"

var (
	ErrCredentialsMissing  = errors.New("required credentials are missing")
	ErrMalformedResponse   = errors.New("homework statuses response is malformed")
	ErrEmptyResponse       = errors.New("homework statuses response has no homeworks field")
	ErrUnknownStatus       = errors.New("unknown homework status")
	ErrHomeworkNameMissing = errors.New("homework name is missing")
)
