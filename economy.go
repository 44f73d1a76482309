package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/economy/account"
	"github.com/xraph/economy/hook"
	"github.com/xraph/economy/store"
	"github.com/xraph/economy/types"
)

// Economy is the account-mutation engine. It owns the rules — balance
// invariants, rounding, veto handling — while the active store owns
// the data. Balances are never cached across calls; every read and
// write round-trips through the store.
//
// Mutations are serialized behind a single mutex so the read-validate-
// write sequence of AddBalance/ReduceBalance cannot interleave, and so
// a background flush never races an in-flight write.
type Economy struct {
	store  store.Store
	hooks  *hook.Registry
	logger *slog.Logger

	mu sync.Mutex // serializes mutations and flushes

	// Background autosave worker
	stopChan chan struct{}
	wg       sync.WaitGroup

	// Configuration
	unit             string
	defaultBalance   types.Amount
	maxBalance       types.Amount
	autoSaveInterval time.Duration
}

// New creates an Economy engine backed by the given store.
func New(s store.Store, opts ...Option) *Economy {
	e := &Economy{
		store:          s,
		hooks:          hook.NewRegistry(),
		logger:         slog.Default(),
		stopChan:       make(chan struct{}),
		unit:           DefaultMonetaryUnit,
		defaultBalance: types.FromInt(DefaultBalance),
		maxBalance:     types.FromInt(DefaultMaxBalance),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Economy instance.
type Option func(*Economy)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Economy) {
		e.logger = logger
		e.hooks.WithLogger(logger)
	}
}

// WithHook registers a hook.
func WithHook(h hook.Hook) Option {
	return func(e *Economy) {
		_ = e.hooks.Register(h) //nolint:errcheck // best-effort hook registration during init
	}
}

// WithMonetaryUnit sets the display symbol used by FormatBalance.
func WithMonetaryUnit(unit string) Option {
	return func(e *Economy) {
		e.unit = unit
	}
}

// WithDefaultBalance sets the initial balance for new accounts when
// the caller supplies none.
func WithDefaultBalance(a types.Amount) Option {
	return func(e *Economy) {
		e.defaultBalance = a
	}
}

// WithMaxBalance sets the process-wide balance ceiling.
func WithMaxBalance(a types.Amount) Option {
	return func(e *Economy) {
		e.maxBalance = a
	}
}

// WithAutoSave enables the periodic durability flush. A non-positive
// interval disables it.
func WithAutoSave(interval time.Duration) Option {
	return func(e *Economy) {
		e.autoSaveInterval = interval
	}
}

// WithConfig applies a loaded configuration surface in one step.
func WithConfig(cfg Config) Option {
	return func(e *Economy) {
		e.unit = cfg.MonetaryUnit
		e.defaultBalance = types.FromFloat(cfg.DefaultBalance)
		e.maxBalance = types.FromFloat(cfg.MaxBalance)
		e.autoSaveInterval = cfg.AutoSaveInterval
	}
}

// Hooks exposes the hook registry for runtime subscription.
func (e *Economy) Hooks() *hook.Registry { return e.hooks }

// MonetaryUnit returns the configured display symbol.
func (e *Economy) MonetaryUnit() string { return e.unit }

// MaxBalance returns the configured balance ceiling.
func (e *Economy) MaxBalance() types.Amount { return e.maxBalance }

// DefaultInitialBalance returns the configured initial balance for new
// accounts.
func (e *Economy) DefaultInitialBalance() types.Amount { return e.defaultBalance }

// FormatBalance renders an amount with the configured monetary unit.
func (e *Economy) FormatBalance(a types.Amount) string { return a.Format(e.unit) }

// Start migrates the store, notifies init hooks, and launches the
// autosave worker when enabled.
func (e *Economy) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return fmt.Errorf("economy: migrate store: %w", err)
	}

	e.hooks.EmitInit(ctx, e)

	if e.autoSaveInterval > 0 {
		e.wg.Add(1)
		go e.autoSaveWorker(ctx)
	}

	e.logger.Info("economy started",
		"monetary_unit", e.unit,
		"default_balance", e.defaultBalance.String(),
		"max_balance", e.maxBalance.String(),
		"auto_save_interval", e.autoSaveInterval,
	)

	return nil
}

// Stop flushes, shuts down the worker, and closes the store.
func (e *Economy) Stop() error {
	close(e.stopChan)
	e.wg.Wait()

	ctx := context.Background()
	if err := e.SaveAll(ctx); err != nil {
		e.logger.Error("final save failed", "error", err)
	}
	e.hooks.EmitShutdown(ctx)

	return e.store.Close()
}

// autoSaveWorker periodically flushes the store to durable storage.
// It takes the engine mutex per flush, so a save never overlaps a
// mutation.
func (e *Economy) autoSaveWorker(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.autoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		case <-ticker.C:
			if err := e.SaveAll(ctx); err != nil {
				e.logger.Error("autosave failed", "error", err)
			}
		}
	}
}

// ──────────────────────────────────────────────────
// Mutation options
// ──────────────────────────────────────────────────

const defaultIssuer = "none"

type mutateOptions struct {
	force   bool
	issuer  string
	initial *types.Amount
}

// MutateOption adjusts a single mutation call.
type MutateOption func(*mutateOptions)

// Force commits the mutation even if a hook cancels it. Used for
// system-initiated writes such as account bootstrapping on join.
func Force() MutateOption {
	return func(o *mutateOptions) { o.force = true }
}

// WithIssuer tags the mutation with its origin for auditing.
func WithIssuer(issuer string) MutateOption {
	return func(o *mutateOptions) { o.issuer = issuer }
}

// WithInitialBalance overrides the configured default balance for a
// CreateAccount call.
func WithInitialBalance(a types.Amount) MutateOption {
	return func(o *mutateOptions) { o.initial = &a }
}

func applyMutateOptions(opts []MutateOption) mutateOptions {
	o := mutateOptions{issuer: defaultIssuer}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ──────────────────────────────────────────────────
// Account operations
// ──────────────────────────────────────────────────

// CreateAccount creates the named account if it does not exist,
// resolving the initial balance from WithInitialBalance or the
// configured default. Creation raises a cancellable event whose hooks
// may veto it or adjust the initial balance. It reports whether the
// account exists afterwards; calling it on an existing account is a
// no-op and never raises a second event.
func (e *Economy) CreateAccount(ctx context.Context, name string, opts ...MutateOption) (bool, error) {
	if !account.ValidName(name) {
		return false, ErrInvalidName
	}
	name = account.Normalize(name)
	o := applyMutateOptions(opts)

	e.mu.Lock()
	defer e.mu.Unlock()

	exists, err := e.store.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("economy: existence check: %w", err)
	}
	if exists {
		return true, nil
	}

	initial := e.defaultBalance
	if o.initial != nil {
		initial = *o.initial
	}
	if initial.IsNegative() {
		initial = types.Zero
	}

	ev := hook.NewCreateAccountEvent(name, initial, o.issuer)
	e.hooks.EmitCreateAccount(ctx, ev)
	if ev.Cancelled() && !o.force {
		return false, nil
	}

	if err := e.store.Create(ctx, name, ev.InitialBalance()); err != nil {
		return false, fmt.Errorf("economy: create account: %w", err)
	}

	e.logger.Debug("account created",
		"account", name,
		"initial_balance", ev.InitialBalance().String(),
		"issuer", o.issuer,
	)
	return true, nil
}

// AccountExists reports whether the named account is present.
func (e *Economy) AccountExists(ctx context.Context, name string) (bool, error) {
	return e.store.Exists(ctx, account.Normalize(name))
}

// Balance returns the current balance, or ErrNoAccount. A zero balance
// is a legitimate value and is not an error.
func (e *Economy) Balance(ctx context.Context, name string) (types.Amount, error) {
	return e.store.Balance(ctx, account.Normalize(name))
}

// SetBalance overwrites the account balance after validation and hook
// dispatch. The amount must be within [0, max balance].
func (e *Economy) SetBalance(ctx context.Context, name string, amount types.Amount, opts ...MutateOption) (Result, error) {
	if amount.IsNegative() {
		return Invalid, nil
	}
	name = account.Normalize(name)
	o := applyMutateOptions(opts)

	e.mu.Lock()
	defer e.mu.Unlock()

	exists, err := e.store.Exists(ctx, name)
	if err != nil {
		return Invalid, fmt.Errorf("economy: existence check: %w", err)
	}
	if !exists {
		return NoAccount, nil
	}

	if amount.Cmp(e.maxBalance) > 0 {
		return Invalid, nil
	}

	ev := &hook.SetBalanceEvent{Account: name, Amount: amount, Issuer: o.issuer}
	e.hooks.EmitSetBalance(ctx, ev)
	if ev.Cancelled() && !o.force {
		return Cancelled, nil
	}

	if err := e.store.SetBalance(ctx, name, amount); err != nil {
		return Invalid, fmt.Errorf("economy: set balance: %w", err)
	}

	e.hooks.EmitBalanceChanged(ctx, hook.BalanceChangedEvent{
		Account:    name,
		NewBalance: amount,
		Operation:  hook.OpSet,
		Issuer:     o.issuer,
	})
	return Success, nil
}

// AddBalance increases the account balance by amount. A negative
// amount is rejected; this operation only ever increases balance.
func (e *Economy) AddBalance(ctx context.Context, name string, amount types.Amount, opts ...MutateOption) (Result, error) {
	if amount.IsNegative() {
		return Invalid, nil
	}
	name = account.Normalize(name)
	o := applyMutateOptions(opts)

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.store.Balance(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return NoAccount, nil
		}
		return Invalid, fmt.Errorf("economy: read balance: %w", err)
	}

	next := current.Add(amount)
	if next.Cmp(e.maxBalance) > 0 {
		return Invalid, nil
	}

	ev := &hook.AddBalanceEvent{Account: name, Amount: amount, Issuer: o.issuer}
	e.hooks.EmitAddBalance(ctx, ev)
	if ev.Cancelled() && !o.force {
		return Cancelled, nil
	}

	if err := e.store.Add(ctx, name, amount); err != nil {
		return Invalid, fmt.Errorf("economy: add balance: %w", err)
	}

	e.hooks.EmitBalanceChanged(ctx, hook.BalanceChangedEvent{
		Account:    name,
		NewBalance: next,
		Operation:  hook.OpAdd,
		Issuer:     o.issuer,
	})
	return Success, nil
}

// ReduceBalance decreases the account balance by amount. A negative
// amount is rejected, as is any reduction that would take the balance
// below zero.
func (e *Economy) ReduceBalance(ctx context.Context, name string, amount types.Amount, opts ...MutateOption) (Result, error) {
	if amount.IsNegative() {
		return Invalid, nil
	}
	name = account.Normalize(name)
	o := applyMutateOptions(opts)

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.store.Balance(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return NoAccount, nil
		}
		return Invalid, fmt.Errorf("economy: read balance: %w", err)
	}

	next := current.Sub(amount)
	if next.IsNegative() {
		return Invalid, nil
	}

	ev := &hook.ReduceBalanceEvent{Account: name, Amount: amount, Issuer: o.issuer}
	e.hooks.EmitReduceBalance(ctx, ev)
	if ev.Cancelled() && !o.force {
		return Cancelled, nil
	}

	if err := e.store.Reduce(ctx, name, amount); err != nil {
		return Invalid, fmt.Errorf("economy: reduce balance: %w", err)
	}

	e.hooks.EmitBalanceChanged(ctx, hook.BalanceChangedEvent{
		Account:    name,
		NewBalance: next,
		Operation:  hook.OpReduce,
		Issuer:     o.issuer,
	})
	return Success, nil
}

// ──────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────

// Rank returns the 1-indexed rank of the account by balance
// (descending, ties broken by name ascending), or ErrNoAccount.
func (e *Economy) Rank(ctx context.Context, name string) (int, error) {
	return e.store.Rank(ctx, account.Normalize(name))
}

// AccountAtRank returns the name of the account holding the 1-indexed
// rank, or ErrRankOutOfRange.
func (e *Economy) AccountAtRank(ctx context.Context, n int) (string, error) {
	return e.store.AtRank(ctx, n)
}

// AllBalances returns the full name-to-balance snapshot.
func (e *Economy) AllBalances(ctx context.Context) (map[string]types.Amount, error) {
	return e.store.All(ctx)
}

// SaveAll forces a durable flush. It shares the mutation mutex so a
// flush never observes a half-applied write.
func (e *Economy) SaveAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Save(ctx); err != nil {
		return fmt.Errorf("economy: save: %w", err)
	}
	e.hooks.EmitSaved(ctx)
	return nil
}
