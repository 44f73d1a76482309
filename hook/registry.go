package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Registry manages registered hooks and dispatches events to them.
// Hooks run synchronously in registration order; cancellable events
// collect vetoes before control returns to the engine.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	// Type-cached hook lists for dispatch without per-event assertions
	onInit           []OnInit
	onShutdown       []OnShutdown
	onCreateAccount  []OnCreateAccount
	onSetBalance     []OnSetBalance
	onAddBalance     []OnAddBalance
	onReduceBalance  []OnReduceBalance
	onBalanceChanged []OnBalanceChanged
	onSaved          []OnSaved
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
// Hook names must be unique.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnCreateAccount); ok {
		r.onCreateAccount = append(r.onCreateAccount, v)
	}
	if v, ok := h.(OnSetBalance); ok {
		r.onSetBalance = append(r.onSetBalance, v)
	}
	if v, ok := h.(OnAddBalance); ok {
		r.onAddBalance = append(r.onAddBalance, v)
	}
	if v, ok := h.(OnReduceBalance); ok {
		r.onReduceBalance = append(r.onReduceBalance, v)
	}
	if v, ok := h.(OnBalanceChanged); ok {
		r.onBalanceChanged = append(r.onBalanceChanged, v)
	}
	if v, ok := h.(OnSaved); ok {
		r.onSaved = append(r.onSaved, v)
	}

	r.logger.Debug("hook registered", "name", h.Name())
	return nil
}

// Deregister removes a hook by name. Dispatch order of the remaining
// hooks is preserved.
func (r *Registry) Deregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for i, h := range r.hooks {
		if h.Name() == name {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}

	// Rebuild the type caches from the surviving hooks.
	r.onInit = nil
	r.onShutdown = nil
	r.onCreateAccount = nil
	r.onSetBalance = nil
	r.onAddBalance = nil
	r.onReduceBalance = nil
	r.onBalanceChanged = nil
	r.onSaved = nil
	for _, h := range r.hooks {
		if v, ok := h.(OnInit); ok {
			r.onInit = append(r.onInit, v)
		}
		if v, ok := h.(OnShutdown); ok {
			r.onShutdown = append(r.onShutdown, v)
		}
		if v, ok := h.(OnCreateAccount); ok {
			r.onCreateAccount = append(r.onCreateAccount, v)
		}
		if v, ok := h.(OnSetBalance); ok {
			r.onSetBalance = append(r.onSetBalance, v)
		}
		if v, ok := h.(OnAddBalance); ok {
			r.onAddBalance = append(r.onAddBalance, v)
		}
		if v, ok := h.(OnReduceBalance); ok {
			r.onReduceBalance = append(r.onReduceBalance, v)
		}
		if v, ok := h.(OnBalanceChanged); ok {
			r.onBalanceChanged = append(r.onBalanceChanged, v)
		}
		if v, ok := h.(OnSaved); ok {
			r.onSaved = append(r.onSaved, v)
		}
	}
	return true
}

// Get returns a hook by name, or nil.
func (r *Registry) Get(name string) Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// ──────────────────────────────────────────────────
// Event emission
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all hooks that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := h.OnInit(ctx, engine); err != nil {
			r.logger.Warn("hook OnInit failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all hooks that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := h.OnShutdown(ctx); err != nil {
			r.logger.Warn("hook OnShutdown failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitCreateAccount dispatches the pre-creation event. Every hook runs
// even after one cancels, so each observer sees the full proposal.
func (r *Registry) EmitCreateAccount(ctx context.Context, ev *CreateAccountEvent) {
	r.mu.RLock()
	hooks := r.onCreateAccount
	r.mu.RUnlock()

	for _, h := range hooks {
		h.OnCreateAccount(ctx, ev)
	}
}

// EmitSetBalance dispatches the pre-set event.
func (r *Registry) EmitSetBalance(ctx context.Context, ev *SetBalanceEvent) {
	r.mu.RLock()
	hooks := r.onSetBalance
	r.mu.RUnlock()

	for _, h := range hooks {
		h.OnSetBalance(ctx, ev)
	}
}

// EmitAddBalance dispatches the pre-add event.
func (r *Registry) EmitAddBalance(ctx context.Context, ev *AddBalanceEvent) {
	r.mu.RLock()
	hooks := r.onAddBalance
	r.mu.RUnlock()

	for _, h := range hooks {
		h.OnAddBalance(ctx, ev)
	}
}

// EmitReduceBalance dispatches the pre-reduce event.
func (r *Registry) EmitReduceBalance(ctx context.Context, ev *ReduceBalanceEvent) {
	r.mu.RLock()
	hooks := r.onReduceBalance
	r.mu.RUnlock()

	for _, h := range hooks {
		h.OnReduceBalance(ctx, ev)
	}
}

// EmitBalanceChanged broadcasts a committed change. Hook errors are
// logged and never affect the already-committed write.
func (r *Registry) EmitBalanceChanged(ctx context.Context, ev BalanceChangedEvent) {
	r.mu.RLock()
	hooks := r.onBalanceChanged
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := h.OnBalanceChanged(ctx, ev); err != nil {
			r.logger.Warn("hook OnBalanceChanged failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitSaved notifies hooks that a durable flush completed.
func (r *Registry) EmitSaved(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onSaved
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := h.OnSaved(ctx); err != nil {
			r.logger.Warn("hook OnSaved failed", "hook", h.Name(), "error", err)
		}
	}
}
