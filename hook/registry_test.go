package hook

import (
	"context"
	"testing"

	"github.com/xraph/economy/types"
)

// recorder implements every hook interface and records call order.
type recorder struct {
	name   string
	calls  *[]string
	cancel bool
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) OnCreateAccount(_ context.Context, ev *CreateAccountEvent) {
	*r.calls = append(*r.calls, r.name+":create")
	if r.cancel {
		ev.Cancel()
	}
}

func (r *recorder) OnSetBalance(_ context.Context, ev *SetBalanceEvent) {
	*r.calls = append(*r.calls, r.name+":set")
	if r.cancel {
		ev.Cancel()
	}
}

func (r *recorder) OnBalanceChanged(_ context.Context, _ BalanceChangedEvent) error {
	*r.calls = append(*r.calls, r.name+":changed")
	return nil
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	var calls []string

	if err := r.Register(&recorder{name: "a", calls: &calls}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&recorder{name: "a", calls: &calls}); err == nil {
		t.Error("expected duplicate registration error")
	}
	if r.Count() != 1 {
		t.Errorf("Count: got %d, want 1", r.Count())
	}
}

func TestDispatchOrder(t *testing.T) {
	r := NewRegistry()
	var calls []string

	for _, name := range []string{"first", "second", "third"} {
		if err := r.Register(&recorder{name: name, calls: &calls}); err != nil {
			t.Fatal(err)
		}
	}

	r.EmitSetBalance(context.Background(), &SetBalanceEvent{Account: "alice", Amount: types.FromInt(10)})

	want := []string{"first:set", "second:set", "third:set"}
	if len(calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestCancellationIsMonotonic(t *testing.T) {
	r := NewRegistry()
	var calls []string

	// First hook cancels; the second still runs and cannot unset it.
	if err := r.Register(&recorder{name: "veto", calls: &calls, cancel: true}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&recorder{name: "pass", calls: &calls}); err != nil {
		t.Fatal(err)
	}

	ev := &SetBalanceEvent{Account: "alice", Amount: types.FromInt(10)}
	r.EmitSetBalance(context.Background(), ev)

	if !ev.Cancelled() {
		t.Error("expected event to stay cancelled")
	}
	if len(calls) != 2 {
		t.Errorf("expected both hooks to run, got %v", calls)
	}
}

func TestCreateAccountEventAdjustsInitialBalance(t *testing.T) {
	ev := NewCreateAccountEvent("alice", types.FromInt(1000), "none")

	ev.SetInitialBalance(types.FromInt(500))
	if got := ev.InitialBalance(); got != types.FromInt(500) {
		t.Errorf("InitialBalance: got %v, want %v", got, types.FromInt(500))
	}

	// Negative overrides are ignored.
	ev.SetInitialBalance(types.FromCents(-1))
	if got := ev.InitialBalance(); got != types.FromInt(500) {
		t.Errorf("InitialBalance after negative: got %v, want %v", got, types.FromInt(500))
	}
}

func TestDeregister(t *testing.T) {
	r := NewRegistry()
	var calls []string

	if err := r.Register(&recorder{name: "a", calls: &calls}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&recorder{name: "b", calls: &calls}); err != nil {
		t.Fatal(err)
	}

	if !r.Deregister("a") {
		t.Fatal("expected Deregister to find hook a")
	}
	if r.Deregister("a") {
		t.Error("expected second Deregister to return false")
	}

	r.EmitSetBalance(context.Background(), &SetBalanceEvent{Account: "x", Amount: types.FromInt(1)})
	if len(calls) != 1 || calls[0] != "b:set" {
		t.Errorf("expected only hook b to run, got %v", calls)
	}
}
