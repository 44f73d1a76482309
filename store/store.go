// Package store defines the persistence contract consumed by the
// Economy engine. Exactly one concrete store is active at a time;
// any backend satisfying this interface is interchangeable.
package store

import (
	"context"

	"github.com/xraph/economy/types"
)

// Store is the durable name-to-balance mapping. All operations are
// keyed by the canonical lower-cased account name; the engine
// normalizes names before calling in.
//
// A missing account on a read is a normal condition reported as
// economy.ErrNoAccount, distinct from a zero balance. Rank queries
// past the end of the table report economy.ErrRankOutOfRange.
type Store interface {
	// Exists reports whether the account is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Balance returns the stored balance, or economy.ErrNoAccount.
	Balance(ctx context.Context, name string) (types.Amount, error)

	// Create adds an account with the given initial balance. Returns
	// economy.ErrAccountExists if the name is already taken; the engine
	// checks existence first, so that path indicates a caller bug.
	Create(ctx context.Context, name string, initial types.Amount) error

	// SetBalance overwrites the stored balance.
	SetBalance(ctx context.Context, name string, amount types.Amount) error

	// Add increases the stored balance by delta.
	Add(ctx context.Context, name string, delta types.Amount) error

	// Reduce decreases the stored balance by delta.
	Reduce(ctx context.Context, name string, delta types.Amount) error

	// All returns the full name-to-balance snapshot.
	All(ctx context.Context) (map[string]types.Amount, error)

	// Rank returns the 1-indexed rank of the account (balance
	// descending, name ascending), or economy.ErrNoAccount.
	Rank(ctx context.Context, name string) (int, error)

	// AtRank returns the account name holding the 1-indexed rank, or
	// economy.ErrRankOutOfRange.
	AtRank(ctx context.Context, rank int) (string, error)

	// Save flushes pending state to durable storage. Naturally durable
	// backends may implement this as a no-op.
	Save(ctx context.Context) error

	// Migrate prepares the backing schema or file.
	Migrate(ctx context.Context) error

	// Ping checks backend availability.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
