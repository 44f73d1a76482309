// Package yamlfile provides the flat-file YAML store. Balances live in
// memory and are flushed on Save; writes go to a temp file first and
// are renamed into place so a crash never leaves a torn ledger on disk.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xraph/economy"
	"github.com/xraph/economy/rank"
	economystore "github.com/xraph/economy/store"
	"github.com/xraph/economy/types"
)

// compile-time interface check
var _ economystore.Store = (*Store)(nil)

// Store implements store.Store over a single YAML file.
type Store struct {
	mu       sync.RWMutex
	path     string
	balances map[string]float64
	dirty    bool
	closed   bool
}

// New creates a YAML store persisting to the given path. Call Migrate
// (or economy.Economy.Start) to load existing data before use.
func New(path string) *Store {
	return &Store{
		path:     path,
		balances: make(map[string]float64),
	}
}

// Migrate loads the ledger file if it exists.
func (s *Store) Migrate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("economy/yamlfile: read %s: %w", s.path, err)
	}

	balances := make(map[string]float64)
	if err := yaml.Unmarshal(data, &balances); err != nil {
		return fmt.Errorf("economy/yamlfile: parse %s: %w", s.path, err)
	}
	s.balances = balances
	return nil
}

func (s *Store) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, economy.ErrStoreClosed
	}
	_, ok := s.balances[name]
	return ok, nil
}

func (s *Store) Balance(_ context.Context, name string) (types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.Zero, economy.ErrStoreClosed
	}
	v, ok := s.balances[name]
	if !ok {
		return types.Zero, economy.ErrNoAccount
	}
	return types.FromFloat(v), nil
}

func (s *Store) Create(_ context.Context, name string, initial types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return economy.ErrStoreClosed
	}
	if _, ok := s.balances[name]; ok {
		return economy.ErrAccountExists
	}
	s.balances[name] = initial.Float64()
	s.dirty = true
	return nil
}

func (s *Store) SetBalance(_ context.Context, name string, amount types.Amount) error {
	return s.write(name, func(types.Amount) types.Amount { return amount })
}

func (s *Store) Add(_ context.Context, name string, delta types.Amount) error {
	return s.write(name, func(cur types.Amount) types.Amount { return cur.Add(delta) })
}

func (s *Store) Reduce(_ context.Context, name string, delta types.Amount) error {
	return s.write(name, func(cur types.Amount) types.Amount { return cur.Sub(delta) })
}

func (s *Store) write(name string, apply func(types.Amount) types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return economy.ErrStoreClosed
	}
	v, ok := s.balances[name]
	if !ok {
		return economy.ErrNoAccount
	}
	s.balances[name] = apply(types.FromFloat(v)).Float64()
	s.dirty = true
	return nil
}

func (s *Store) All(_ context.Context) (map[string]types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, economy.ErrStoreClosed
	}
	snapshot := make(map[string]types.Amount, len(s.balances))
	for name, v := range s.balances {
		snapshot[name] = types.FromFloat(v)
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

// Save flushes the ledger to disk when it has unsaved changes.
func (s *Store) Save(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return economy.ErrStoreClosed
	}
	if !s.dirty {
		return nil
	}
	if err := s.flushLocked(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// flushLocked writes the ledger atomically: temp file in the same
// directory, then rename. Callers hold s.mu.
func (s *Store) flushLocked() error {
	data, err := yaml.Marshal(s.balances)
	if err != nil {
		return fmt.Errorf("economy/yamlfile: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("economy/yamlfile: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("economy/yamlfile: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("economy/yamlfile: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("economy/yamlfile: rename: %w", err)
	}
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return economy.ErrStoreClosed
	}
	return nil
}

// Close flushes pending changes and marks the store unusable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.dirty {
		return s.flushLocked()
	}
	return nil
}
