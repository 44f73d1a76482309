// Package observability provides a metrics hook for the economy engine
// that records mutation counts via a pluggable MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/economy/hook"
)

// Ensure MetricsHook implements required interfaces.
var (
	_ hook.Hook             = (*MetricsHook)(nil)
	_ hook.OnInit           = (*MetricsHook)(nil)
	_ hook.OnCreateAccount  = (*MetricsHook)(nil)
	_ hook.OnSetBalance     = (*MetricsHook)(nil)
	_ hook.OnAddBalance     = (*MetricsHook)(nil)
	_ hook.OnReduceBalance  = (*MetricsHook)(nil)
	_ hook.OnBalanceChanged = (*MetricsHook)(nil)
	_ hook.OnSaved          = (*MetricsHook)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsHook records engine-wide mutation metrics.
// Register it as an economy hook to automatically track account activity.
type MetricsHook struct {
	factory MetricFactory

	// Lifecycle metrics
	EngineStarts Counter

	// Mutation attempt metrics (pre-commit, including later-vetoed ones)
	CreateProposed Counter
	SetProposed    Counter
	AddProposed    Counter
	ReduceProposed Counter

	// Committed mutation metrics
	SetCommitted    Counter
	AddCommitted    Counter
	ReduceCommitted Counter

	// Flush metrics
	SavesCompleted Counter

	// Resulting balances of committed writes
	CommittedBalance Histogram
}

// NewMetricsHook creates a MetricsHook with the provided MetricFactory.
func NewMetricsHook(factory MetricFactory) *MetricsHook {
	return &MetricsHook{
		factory: factory,

		EngineStarts: factory.Counter("economy.engine.starts"),

		CreateProposed: factory.Counter("economy.create.proposed"),
		SetProposed:    factory.Counter("economy.set.proposed"),
		AddProposed:    factory.Counter("economy.add.proposed"),
		ReduceProposed: factory.Counter("economy.reduce.proposed"),

		SetCommitted:    factory.Counter("economy.set.committed"),
		AddCommitted:    factory.Counter("economy.add.committed"),
		ReduceCommitted: factory.Counter("economy.reduce.committed"),

		SavesCompleted: factory.Counter("economy.saves.completed"),

		CommittedBalance: factory.Histogram("economy.balance.committed"),
	}
}

// Name implements hook.Hook.
func (m *MetricsHook) Name() string { return "metrics" }

// OnInit implements hook.OnInit.
func (m *MetricsHook) OnInit(_ context.Context, _ interface{}) error {
	m.EngineStarts.Inc()
	return nil
}

// OnCreateAccount implements hook.OnCreateAccount. It observes only.
func (m *MetricsHook) OnCreateAccount(_ context.Context, _ *hook.CreateAccountEvent) {
	m.CreateProposed.Inc()
}

// OnSetBalance implements hook.OnSetBalance. It observes only.
func (m *MetricsHook) OnSetBalance(_ context.Context, _ *hook.SetBalanceEvent) {
	m.SetProposed.Inc()
}

// OnAddBalance implements hook.OnAddBalance. It observes only.
func (m *MetricsHook) OnAddBalance(_ context.Context, _ *hook.AddBalanceEvent) {
	m.AddProposed.Inc()
}

// OnReduceBalance implements hook.OnReduceBalance. It observes only.
func (m *MetricsHook) OnReduceBalance(_ context.Context, _ *hook.ReduceBalanceEvent) {
	m.ReduceProposed.Inc()
}

// OnBalanceChanged implements hook.OnBalanceChanged.
func (m *MetricsHook) OnBalanceChanged(_ context.Context, ev hook.BalanceChangedEvent) error {
	switch ev.Operation {
	case hook.OpSet:
		m.SetCommitted.Inc()
	case hook.OpAdd:
		m.AddCommitted.Inc()
	case hook.OpReduce:
		m.ReduceCommitted.Inc()
	}
	m.CommittedBalance.Observe(ev.NewBalance.Float64())
	return nil
}

// OnSaved implements hook.OnSaved.
func (m *MetricsHook) OnSaved(_ context.Context) error {
	m.SavesCompleted.Inc()
	return nil
}
