// Package hook provides the typed observer pipeline for Economy.
// Hooks subscribe to mutation lifecycle events; pre-commit events are
// cancellable, post-commit notifications are not.
package hook

import "context"

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the engine starts.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the engine is shutting down.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Cancellable mutation hooks (pre-commit)
// ──────────────────────────────────────────────────
//
// Dispatch is synchronous, in registration order, on the mutating
// goroutine. A hook that panics propagates to the mutation caller.
// Cancelling the event vetoes the pending write unless the caller
// forced the mutation.

// OnCreateAccount observes a pending account creation. The hook may
// cancel the creation or adjust the initial balance.
type OnCreateAccount interface {
	Hook
	OnCreateAccount(ctx context.Context, ev *CreateAccountEvent)
}

// OnSetBalance observes a pending absolute balance write.
type OnSetBalance interface {
	Hook
	OnSetBalance(ctx context.Context, ev *SetBalanceEvent)
}

// OnAddBalance observes a pending balance increase.
type OnAddBalance interface {
	Hook
	OnAddBalance(ctx context.Context, ev *AddBalanceEvent)
}

// OnReduceBalance observes a pending balance decrease.
type OnReduceBalance interface {
	Hook
	OnReduceBalance(ctx context.Context, ev *ReduceBalanceEvent)
}

// ──────────────────────────────────────────────────
// Post-commit notification hooks
// ──────────────────────────────────────────────────

// OnBalanceChanged is called after a successful, non-cancelled write.
// It can never veto anything; a returned error is logged and dropped.
type OnBalanceChanged interface {
	Hook
	OnBalanceChanged(ctx context.Context, ev BalanceChangedEvent) error
}

// OnSaved is called after a durable flush completes.
type OnSaved interface {
	Hook
	OnSaved(ctx context.Context) error
}
