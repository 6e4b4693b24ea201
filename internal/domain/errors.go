package domain

import "errors"

var (
	ErrTransport         = errors.New("transport failure")
	ErrAuthRejected      = errors.New("authentication rejected")
	ErrTwoFactorRequired = errors.New("two-factor code required")
	ErrTwoFactorRejected = errors.New("two-factor code rejected")
	ErrStorage           = errors.New("credential storage failure")
	ErrInvalidSpec       = errors.New("invalid launch spec")
	ErrSpawn             = errors.New("process spawn rejected")
	ErrNoSession         = errors.New("no saved session")
	ErrSessionExpired    = errors.New("session expired")
)
