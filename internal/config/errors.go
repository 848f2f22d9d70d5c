package config

import "errors"

// Sentinel errors returned by config validation. Callers can match against
// them with [errors.Is].
var (
	// ErrNoTokenSignKey is returned when no JWT signing key was provided by
	// any configuration source. The server cannot issue or verify tokens
	// without it.
	ErrNoTokenSignKey = errors.New("token sign key is not configured")

	// ErrNoDatabaseDSN is returned when no database DSN was provided by any
	// configuration source.
	ErrNoDatabaseDSN = errors.New("database DSN is not configured")
)
