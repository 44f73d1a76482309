// Package sqlite implements the account store on SQLite via Grove ORM.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/economy"
	economystore "github.com/xraph/economy/store"
	"github.com/xraph/economy/types"
)

// compile-time interface check
var _ economystore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

type accountModel struct {
	grove.BaseModel `grove:"table:economy_accounts"`

	Name      string    `grove:"name,pk"`
	Balance   int64     `grove:"balance"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

// Migrate creates the accounts table using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("economy/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("economy/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := s.sdb.NewRaw(`
		SELECT COUNT(*) FROM economy_accounts WHERE name = ?
	`, name).Scan(ctx, &n)
	if err != nil {
		return false, fmt.Errorf("economy/sqlite: exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Balance(ctx context.Context, name string) (types.Amount, error) {
	m := new(accountModel)
	err := s.sdb.NewSelect(m).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return types.Zero, economy.ErrNoAccount
		}
		return types.Zero, fmt.Errorf("economy/sqlite: balance: %w", err)
	}
	return types.FromCents(m.Balance), nil
}

func (s *Store) Create(ctx context.Context, name string, initial types.Amount) error {
	t := now()
	m := &accountModel{
		Name:      name,
		Balance:   initial.Cents(),
		CreatedAt: t,
		UpdatedAt: t,
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("economy/sqlite: create account: %w", err)
	}
	return nil
}

func (s *Store) SetBalance(ctx context.Context, name string, amount types.Amount) error {
	res, err := s.sdb.NewUpdate((*accountModel)(nil)).
		Set("balance = ?", amount.Cents()).
		Set("updated_at = ?", now()).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("economy/sqlite: set balance: %w", err)
	}
	return requireRow(res)
}

func (s *Store) Add(ctx context.Context, name string, delta types.Amount) error {
	res, err := s.sdb.NewUpdate((*accountModel)(nil)).
		Set("balance = balance + ?", delta.Cents()).
		Set("updated_at = ?", now()).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("economy/sqlite: add balance: %w", err)
	}
	return requireRow(res)
}

func (s *Store) Reduce(ctx context.Context, name string, delta types.Amount) error {
	res, err := s.sdb.NewUpdate((*accountModel)(nil)).
		Set("balance = balance - ?", delta.Cents()).
		Set("updated_at = ?", now()).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("economy/sqlite: reduce balance: %w", err)
	}
	return requireRow(res)
}

func (s *Store) All(ctx context.Context) (map[string]types.Amount, error) {
	var models []accountModel
	if err := s.sdb.NewSelect(&models).Scan(ctx); err != nil {
		return nil, fmt.Errorf("economy/sqlite: all: %w", err)
	}

	snapshot := make(map[string]types.Amount, len(models))
	for i := range models {
		snapshot[models[i].Name] = types.FromCents(models[i].Balance)
	}
	return snapshot, nil
}

func (s *Store) Rank(ctx context.Context, name string) (int, error) {
	balance, err := s.Balance(ctx, name)
	if err != nil {
		return 0, err
	}

	// Richer accounts, plus equal-balance accounts that sort earlier by
	// name, all rank above this one.
	var ahead int64
	err = s.sdb.NewRaw(`
		SELECT COUNT(*) FROM economy_accounts
		WHERE balance > ? OR (balance = ? AND name < ?)
	`, balance.Cents(), balance.Cents(), name).Scan(ctx, &ahead)
	if err != nil {
		return 0, fmt.Errorf("economy/sqlite: rank: %w", err)
	}
	return int(ahead) + 1, nil
}

func (s *Store) AtRank(ctx context.Context, n int) (string, error) {
	if n < 1 {
		return "", economy.ErrRankOutOfRange
	}

	var name string
	err := s.sdb.NewRaw(`
		SELECT name FROM economy_accounts
		ORDER BY balance DESC, name ASC
		LIMIT 1 OFFSET ?
	`, n-1).Scan(ctx, &name)
	if err != nil {
		if isNoRows(err) {
			return "", economy.ErrRankOutOfRange
		}
		return "", fmt.Errorf("economy/sqlite: at rank: %w", err)
	}
	return name, nil
}

// Save is a no-op: SQLite writes are durable at commit.
func (s *Store) Save(_ context.Context) error {
	return nil
}

// requireRow maps a zero-row update to the missing-account sentinel.
func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return economy.ErrNoAccount
	}
	return nil
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func now() time.Time {
	return time.Now().UTC()
}
