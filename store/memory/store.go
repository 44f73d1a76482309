// Package memory provides the reference in-memory store. It is the
// default backend for tests and embedded use; Save is a no-op.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/economy"
	"github.com/xraph/economy/account"
	"github.com/xraph/economy/rank"
	economystore "github.com/xraph/economy/store"
	"github.com/xraph/economy/types"
)

// compile-time interface check
var _ economystore.Store = (*Store)(nil)

// Store implements store.Store with a mutex-guarded map.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{accounts: make(map[string]account.Account)}
}

func (s *Store) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[name]
	return ok, nil
}

func (s *Store) Balance(_ context.Context, name string) (types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[name]
	if !ok {
		return types.Zero, economy.ErrNoAccount
	}
	return acc.Balance, nil
}

func (s *Store) Create(_ context.Context, name string, initial types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[name]; ok {
		return economy.ErrAccountExists
	}
	s.accounts[name] = account.New(name, initial)
	return nil
}

func (s *Store) SetBalance(_ context.Context, name string, amount types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[name]
	if !ok {
		return economy.ErrNoAccount
	}
	acc.Balance = amount
	acc.Touch()
	s.accounts[name] = acc
	return nil
}

func (s *Store) Add(_ context.Context, name string, delta types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[name]
	if !ok {
		return economy.ErrNoAccount
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.Touch()
	s.accounts[name] = acc
	return nil
}

func (s *Store) Reduce(_ context.Context, name string, delta types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[name]
	if !ok {
		return economy.ErrNoAccount
	}
	acc.Balance = acc.Balance.Sub(delta)
	acc.Touch()
	s.accounts[name] = acc
	return nil
}

func (s *Store) All(_ context.Context) (map[string]types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]types.Amount, len(s.accounts))
	for name, acc := range s.accounts {
		snapshot[name] = acc.Balance
	}
	return snapshot, nil
}

func (s *Store) Rank(ctx context.Context, name string) (int, error) {
	snapshot, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	r, ok := rank.Compute(snapshot).Rank(name)
	if !ok {
		return 0, economy.ErrNoAccount
	}
	return r, nil
}

func (s *Store) AtRank(ctx context.Context, n int) (string, error) {
	snapshot, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	e, ok := rank.Compute(snapshot).At(n)
	if !ok {
		return "", economy.ErrRankOutOfRange
	}
	return e.Name, nil
}

// Store management

func (s *Store) Save(_ context.Context) error {
	return nil // nothing to flush
}

func (s *Store) Migrate(_ context.Context) error {
	return nil // no schema for the memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // always available
}

func (s *Store) Close() error {
	return nil // nothing to close
}
