// Package mongo implements the account store on MongoDB via Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/economy"
	economystore "github.com/xraph/economy/store"
	"github.com/xraph/economy/types"
)

const colAccounts = "economy_accounts"

// compile-time interface check
var _ economystore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// The account name doubles as the document id, so lookups and updates
// never need a secondary index.
type accountModel struct {
	grove.BaseModel `grove:"table:economy_accounts"`

	Name      string    `grove:"name,pk"    bson:"_id"`
	Balance   int64     `grove:"balance"    bson:"balance"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

// Migrate creates the ranking index on the accounts collection.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "balance", Value: -1}, {Key: "_id", Value: 1}}},
	}
	_, err := s.mdb.Collection(colAccounts).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("economy/mongo: migrate %s indexes: %w", colAccounts, err)
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
	n, err := s.mdb.Collection(colAccounts).CountDocuments(ctx, bson.M{"_id": name})
	if err != nil {
		return false, fmt.Errorf("economy/mongo: exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Balance(ctx context.Context, name string) (types.Amount, error) {
	var m accountModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": name}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return types.Zero, economy.ErrNoAccount
		}
		return types.Zero, fmt.Errorf("economy/mongo: balance: %w", err)
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
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("economy/mongo: create account: %w", err)
	}
	return nil
}

func (s *Store) SetBalance(ctx context.Context, name string, amount types.Amount) error {
	res, err := s.mdb.NewUpdate((*accountModel)(nil)).
		Filter(bson.M{"_id": name}).
		SetUpdate(bson.M{"$set": bson.M{
			"balance":    amount.Cents(),
			"updated_at": now(),
		}}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("economy/mongo: set balance: %w", err)
	}
	if res.MatchedCount() == 0 {
		return economy.ErrNoAccount
	}
	return nil
}

func (s *Store) Add(ctx context.Context, name string, delta types.Amount) error {
	return s.increment(ctx, name, delta.Cents(), "add balance")
}

func (s *Store) Reduce(ctx context.Context, name string, delta types.Amount) error {
	return s.increment(ctx, name, -delta.Cents(), "reduce balance")
}

func (s *Store) increment(ctx context.Context, name string, cents int64, op string) error {
	res, err := s.mdb.NewUpdate((*accountModel)(nil)).
		Filter(bson.M{"_id": name}).
		SetUpdate(bson.M{
			"$inc": bson.M{"balance": cents},
			"$set": bson.M{"updated_at": now()},
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("economy/mongo: %s: %w", op, err)
	}
	if res.MatchedCount() == 0 {
		return economy.ErrNoAccount
	}
	return nil
}

func (s *Store) All(ctx context.Context) (map[string]types.Amount, error) {
	var models []accountModel
	if err := s.mdb.NewFind(&models).Filter(bson.M{}).Scan(ctx); err != nil {
		return nil, fmt.Errorf("economy/mongo: all: %w", err)
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
	ahead, err := s.mdb.Collection(colAccounts).CountDocuments(ctx, bson.M{
		"$or": bson.A{
			bson.M{"balance": bson.M{"$gt": balance.Cents()}},
			bson.M{"balance": balance.Cents(), "_id": bson.M{"$lt": name}},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("economy/mongo: rank: %w", err)
	}
	return int(ahead) + 1, nil
}

func (s *Store) AtRank(ctx context.Context, n int) (string, error) {
	if n < 1 {
		return "", economy.ErrRankOutOfRange
	}

	var m accountModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "balance", Value: -1}, {Key: "_id", Value: 1}}).
		Skip(int64(n - 1)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return "", economy.ErrRankOutOfRange
		}
		return "", fmt.Errorf("economy/mongo: at rank: %w", err)
	}
	return m.Name, nil
}

// Save is a no-op: MongoDB writes are durable on acknowledgement.
func (s *Store) Save(_ context.Context) error {
	return nil
}

// isNoDocuments checks for the mongo no-documents sentinel.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func now() time.Time {
	return time.Now().UTC()
}
