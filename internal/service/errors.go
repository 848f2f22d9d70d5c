package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrUnknownTeam         = errors.New("unknown team")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidTier      = errors.New("invalid tier")
	ErrSelfConnection   = errors.New("contact cannot connect to itself")
)
