package audit

import "log/slog"

// Option configures a Hook.
type Option func(*Hook)

// WithLogger sets the logger for recorder failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hook) {
		h.logger = logger
	}
}

// WithEnabledActions sets which actions to audit.
// If not called, all actions are audited.
func WithEnabledActions(actions ...string) Option {
	return func(h *Hook) {
		h.enabled = make(map[string]bool)
		for _, action := range actions {
			h.enabled[action] = true
		}
	}
}

// WithDisabledActions sets which actions to skip.
func WithDisabledActions(actions ...string) Option {
	return func(h *Hook) {
		if h.enabled == nil {
			h.enabled = make(map[string]bool)
			for _, action := range allActions() {
				h.enabled[action] = true
			}
		}
		for _, action := range actions {
			delete(h.enabled, action)
		}
	}
}

// allActions returns all known audit actions.
func allActions() []string {
	return []string{
		ActionAccountCreated,
		ActionBalanceSet,
		ActionBalanceAdded,
		ActionBalanceReduced,
		ActionLedgerSaved,
	}
}
