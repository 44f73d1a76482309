// Package audit bridges economy lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not depend
// on any particular audit system. Callers inject a RecorderFunc adapter
// that bridges to their backend at wiring time.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/economy/hook"
)

// Compile-time interface checks.
var (
	_ hook.Hook             = (*Hook)(nil)
	_ hook.OnCreateAccount  = (*Hook)(nil)
	_ hook.OnBalanceChanged = (*Hook)(nil)
	_ hook.OnSaved          = (*Hook)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *Event) error
}

// Event is a local representation of an audit event.
type Event struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *Event) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Hook records account lifecycle events through a Recorder. It never
// vetoes a mutation: it observes creations and committed writes only.
type Hook struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates a Hook that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Hook {
	h := &Hook{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements hook.Hook.
func (h *Hook) Name() string { return "audit" }

// OnCreateAccount implements hook.OnCreateAccount. It records the
// pending creation and leaves the event untouched.
func (h *Hook) OnCreateAccount(ctx context.Context, ev *hook.CreateAccountEvent) {
	h.record(ctx, ActionAccountCreated, SeverityInfo, OutcomeSuccess,
		ResourceAccount, ev.Account,
		"issuer", ev.Issuer,
		"initial_balance", ev.InitialBalance().String(),
	)
}

// OnBalanceChanged implements hook.OnBalanceChanged.
func (h *Hook) OnBalanceChanged(ctx context.Context, ev hook.BalanceChangedEvent) error {
	h.record(ctx, actionForOperation(ev.Operation), SeverityInfo, OutcomeSuccess,
		ResourceAccount, ev.Account,
		"issuer", ev.Issuer,
		"new_balance", ev.NewBalance.String(),
	)
	return nil
}

// OnSaved implements hook.OnSaved.
func (h *Hook) OnSaved(ctx context.Context) error {
	h.record(ctx, ActionLedgerSaved, SeverityInfo, OutcomeSuccess,
		ResourceLedger, "")
	return nil
}

func actionForOperation(op hook.Operation) string {
	switch op {
	case hook.OpSet:
		return ActionBalanceSet
	case hook.OpAdd:
		return ActionBalanceAdded
	case hook.OpReduce:
		return ActionBalanceReduced
	default:
		return ActionAccountCreated
	}
}

// record builds and sends an audit event if the action is enabled.
// Recorder failures are logged, never surfaced to the mutation path.
func (h *Hook) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID string,
	kvPairs ...any,
) {
	if h.enabled != nil && !h.enabled[action] {
		return
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	evt := &Event{
		Action:     action,
		Resource:   resource,
		Category:   CategoryEconomy,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
	}

	if err := h.recorder.Record(ctx, evt); err != nil {
		h.logger.Warn("audit: failed to record event",
			"action", action,
			"resource_id", resourceID,
			"error", err,
		)
	}
}
