package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"

	ErrParseUUID         = errors.New("failed to parse UUID")
	ErrUserNotAllowed    = errors.New("user not allowed")
	ErrTokenNotFound     = errors.New("token not found")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrPersistenceFailed = errors.New("unexpected persistence failure")
	ErrRecordNotFound    = errors.New("record not found")
)
