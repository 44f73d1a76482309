package economy

import "errors"

// Sentinel errors for common failure scenarios. Provider (storage)
// failures are returned as wrapped errors on the second return value
// of engine operations; they never masquerade as result codes.
var (
	// Account errors
	ErrNoAccount     = errors.New("economy: no such account")
	ErrAccountExists = errors.New("economy: account already exists")
	ErrInvalidName   = errors.New("economy: invalid account name")

	// Ranking errors
	ErrRankOutOfRange = errors.New("economy: rank out of range")

	// Configuration errors
	ErrUnknownProvider = errors.New("economy: unknown provider")
	ErrInvalidConfig   = errors.New("economy: invalid configuration")

	// Store errors
	ErrStoreClosed     = errors.New("economy: store is closed")
	ErrMigrationFailed = errors.New("economy: migration failed")
)

// IsNotFound returns true if the error signals a missing account or an
// out-of-range rank query.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoAccount) ||
		errors.Is(err, ErrRankOutOfRange)
}
