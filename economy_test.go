package economy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/economy"
	"github.com/xraph/economy/hook"
	"github.com/xraph/economy/store/memory"
	"github.com/xraph/economy/types"
)

// vetoHook cancels every mutation kind it observes and records what it saw.
type vetoHook struct {
	name    string
	creates int
	changed []hook.BalanceChangedEvent
}

func (h *vetoHook) Name() string { return h.name }

func (h *vetoHook) OnCreateAccount(_ context.Context, ev *hook.CreateAccountEvent) {
	h.creates++
	ev.Cancel()
}

func (h *vetoHook) OnSetBalance(_ context.Context, ev *hook.SetBalanceEvent) { ev.Cancel() }

func (h *vetoHook) OnAddBalance(_ context.Context, ev *hook.AddBalanceEvent) { ev.Cancel() }

func (h *vetoHook) OnReduceBalance(_ context.Context, ev *hook.ReduceBalanceEvent) { ev.Cancel() }

func (h *vetoHook) OnBalanceChanged(_ context.Context, ev hook.BalanceChangedEvent) error {
	h.changed = append(h.changed, ev)
	return nil
}

// watchHook observes without cancelling.
type watchHook struct {
	name    string
	creates int
	changed []hook.BalanceChangedEvent
	saves   int
}

func (h *watchHook) Name() string { return h.name }

func (h *watchHook) OnCreateAccount(_ context.Context, _ *hook.CreateAccountEvent) { h.creates++ }

func (h *watchHook) OnBalanceChanged(_ context.Context, ev hook.BalanceChangedEvent) error {
	h.changed = append(h.changed, ev)
	return nil
}

func (h *watchHook) OnSaved(_ context.Context) error {
	h.saves++
	return nil
}

func newEconomy(opts ...economy.Option) *economy.Economy {
	return economy.New(memory.New(), opts...)
}

func TestCreateAccountUsesDefaultBalance(t *testing.T) {
	ctx := context.Background()
	e := newEconomy(economy.WithDefaultBalance(economy.FromInt(1000)))

	ok, err := e.CreateAccount(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("CreateAccount: got (%v, %v), want (true, nil)", ok, err)
	}

	b, err := e.Balance(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if b != economy.FromInt(1000) {
		t.Errorf("opening balance: got %v, want %v", b, economy.FromInt(1000))
	}
}

func TestCreateAccountIsIdempotent(t *testing.T) {
	ctx := context.Background()
	w := &watchHook{name: "watch"}
	e := newEconomy(economy.WithHook(w))

	if ok, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(5))); err != nil || !ok {
		t.Fatalf("first create: got (%v, %v)", ok, err)
	}
	if ok, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(999))); err != nil || !ok {
		t.Fatalf("second create: got (%v, %v)", ok, err)
	}

	if w.creates != 1 {
		t.Errorf("creation events: got %d, want 1 (repeat create must not fire again)", w.creates)
	}
	b, _ := e.Balance(ctx, "alice")
	if b != economy.FromInt(5) {
		t.Errorf("repeat create changed the balance: %v", b)
	}
}

func TestCreateAccountRejectsInvalidName(t *testing.T) {
	e := newEconomy()
	if _, err := e.CreateAccount(context.Background(), "   "); !errors.Is(err, economy.ErrInvalidName) {
		t.Errorf("blank name: got %v, want ErrInvalidName", err)
	}
}

func TestCreateAccountClampsNegativeInitial(t *testing.T) {
	ctx := context.Background()
	e := newEconomy()

	if _, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(-50))); err != nil {
		t.Fatal(err)
	}
	b, _ := e.Balance(ctx, "alice")
	if !b.IsZero() {
		t.Errorf("negative initial balance must clamp to zero, got %v", b)
	}
}

func TestCreateAccountVetoAndForce(t *testing.T) {
	ctx := context.Background()
	v := &vetoHook{name: "veto"}
	e := newEconomy(economy.WithHook(v))

	ok, err := e.CreateAccount(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("vetoed create should report the account as absent")
	}
	if exists, _ := e.AccountExists(ctx, "alice"); exists {
		t.Error("vetoed create must not write")
	}

	// Force overrides the veto, as when bootstrapping an account on join.
	ok, err = e.CreateAccount(ctx, "alice", economy.Force())
	if err != nil || !ok {
		t.Fatalf("forced create: got (%v, %v), want (true, nil)", ok, err)
	}
}

func TestHookAdjustedInitialBalance(t *testing.T) {
	ctx := context.Background()
	e := newEconomy()
	if err := e.Hooks().Register(&initialAdjuster{}); err != nil {
		t.Fatal(err)
	}

	if _, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(10))); err != nil {
		t.Fatal(err)
	}
	b, _ := e.Balance(ctx, "alice")
	if b != economy.FromInt(77) {
		t.Errorf("hook-adjusted opening balance: got %v, want 77", b)
	}
}

type initialAdjuster struct{}

func (initialAdjuster) Name() string { return "adjuster" }

func (initialAdjuster) OnCreateAccount(_ context.Context, ev *hook.CreateAccountEvent) {
	ev.SetInitialBalance(types.FromInt(77))
}

func TestBalanceMissingAccount(t *testing.T) {
	e := newEconomy()
	if _, err := e.Balance(context.Background(), "nobody"); !errors.Is(err, economy.ErrNoAccount) {
		t.Errorf("missing account: got %v, want ErrNoAccount", err)
	}
}

func TestAccountNamesAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	e := newEconomy(economy.WithDefaultBalance(economy.FromInt(100)))

	if _, err := e.CreateAccount(ctx, "Alice"); err != nil {
		t.Fatal(err)
	}

	if ok, _ := e.AccountExists(ctx, "ALICE"); !ok {
		t.Error("mixed-case lookup should find the account")
	}
	if r, err := e.AddBalance(ctx, "aLiCe", economy.FromInt(1)); err != nil || r != economy.Success {
		t.Errorf("mixed-case add: got (%v, %v)", r, err)
	}
	b, _ := e.Balance(ctx, "alice")
	if b != economy.FromInt(101) {
		t.Errorf("balance after mixed-case add: got %v", b)
	}
}

func TestSetBalanceResults(t *testing.T) {
	ctx := context.Background()
	e := newEconomy(economy.WithMaxBalance(economy.FromInt(1000)))

	if _, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(100))); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		account string
		amount  types.Amount
		want    economy.Result
	}{
		{"negative amount", "alice", economy.FromInt(-1), economy.Invalid},
		{"missing account", "ghost", economy.FromInt(10), economy.NoAccount},
		{"above max", "alice", economy.FromInt(1001), economy.Invalid},
		{"exactly max", "alice", economy.FromInt(1000), economy.Success},
		{"zero is valid", "alice", economy.Zero, economy.Success},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := e.SetBalance(ctx, tt.account, tt.amount)
			if err != nil {
				t.Fatal(err)
			}
			if r != tt.want {
				t.Errorf("SetBalance: got %v, want %v", r, tt.want)
			}
		})
	}
}

func TestAddBalanceRespectsCeiling(t *testing.T) {
	ctx := context.Background()
	e := newEconomy(economy.WithMaxBalance(economy.FromInt(1000)))

	if _, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(950))); err != nil {
		t.Fatal(err)
	}

	if r, _ := e.AddBalance(ctx, "alice", economy.FromInt(51)); r != economy.Invalid {
		t.Errorf("over-ceiling add: got %v, want Invalid", r)
	}
	if r, _ := e.AddBalance(ctx, "alice", economy.FromInt(50)); r != economy.Success {
		t.Errorf("exact-ceiling add: got %v, want Success", r)
	}
	if r, _ := e.AddBalance(ctx, "alice", economy.FromInt(-5)); r != economy.Invalid {
		t.Errorf("negative add: got %v, want Invalid", r)
	}
	if r, _ := e.AddBalance(ctx, "ghost", economy.FromInt(1)); r != economy.NoAccount {
		t.Errorf("add to missing account: got %v, want NoAccount", r)
	}
}

func TestReduceBalanceNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	e := newEconomy()

	if _, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(100))); err != nil {
		t.Fatal(err)
	}

	if r, _ := e.ReduceBalance(ctx, "alice", economy.FromInt(101)); r != economy.Invalid {
		t.Errorf("overdraw: got %v, want Invalid", r)
	}
	if r, _ := e.ReduceBalance(ctx, "alice", economy.FromInt(100)); r != economy.Success {
		t.Errorf("reduce to exactly zero: got %v, want Success", r)
	}
	b, _ := e.Balance(ctx, "alice")
	if !b.IsZero() {
		t.Errorf("balance after reduce-to-zero: got %v", b)
	}
	if r, _ := e.ReduceBalance(ctx, "alice", economy.FromInt(-1)); r != economy.Invalid {
		t.Errorf("negative reduce: got %v, want Invalid", r)
	}
}

func TestMutationVetoAndForce(t *testing.T) {
	ctx := context.Background()
	v := &vetoHook{name: "veto"}
	e := newEconomy(economy.WithDefaultBalance(economy.FromInt(100)))

	if _, err := e.CreateAccount(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := e.Hooks().Register(v); err != nil {
		t.Fatal(err)
	}

	if r, _ := e.SetBalance(ctx, "alice", economy.FromInt(10)); r != economy.Cancelled {
		t.Errorf("vetoed set: got %v, want Cancelled", r)
	}
	if r, _ := e.AddBalance(ctx, "alice", economy.FromInt(10)); r != economy.Cancelled {
		t.Errorf("vetoed add: got %v, want Cancelled", r)
	}
	if r, _ := e.ReduceBalance(ctx, "alice", economy.FromInt(10)); r != economy.Cancelled {
		t.Errorf("vetoed reduce: got %v, want Cancelled", r)
	}
	b, _ := e.Balance(ctx, "alice")
	if b != economy.FromInt(100) {
		t.Errorf("vetoed mutations must not write, balance: %v", b)
	}
	if len(v.changed) != 0 {
		t.Errorf("vetoed mutations must not notify, got %d notifications", len(v.changed))
	}

	if r, _ := e.SetBalance(ctx, "alice", economy.FromInt(10), economy.Force()); r != economy.Success {
		t.Errorf("forced set: got %v, want Success", r)
	}
	b, _ = e.Balance(ctx, "alice")
	if b != economy.FromInt(10) {
		t.Errorf("forced set balance: got %v", b)
	}
}

func TestBalanceChangedCarriesResultAndIssuer(t *testing.T) {
	ctx := context.Background()
	w := &watchHook{name: "watch"}
	e := newEconomy(economy.WithHook(w))

	if _, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromInt(100))); err != nil {
		t.Fatal(err)
	}
	if r, _ := e.AddBalance(ctx, "alice", economy.FromInt(50), economy.WithIssuer("shop")); r != economy.Success {
		t.Fatal("add failed")
	}

	if len(w.changed) != 1 {
		t.Fatalf("notifications: got %d, want 1", len(w.changed))
	}
	ev := w.changed[0]
	if ev.Account != "alice" || ev.Operation != hook.OpAdd || ev.Issuer != "shop" {
		t.Errorf("notification fields: %+v", ev)
	}
	if ev.NewBalance != economy.FromInt(150) {
		t.Errorf("NewBalance: got %v, want 150", ev.NewBalance)
	}
}

func TestAmountsRoundToTwoDecimals(t *testing.T) {
	ctx := context.Background()
	e := newEconomy()

	if _, err := e.CreateAccount(ctx, "alice", economy.WithInitialBalance(economy.FromFloat(12.345))); err != nil {
		t.Fatal(err)
	}
	b, _ := e.Balance(ctx, "alice")
	if b != economy.FromCents(1235) {
		t.Errorf("rounded balance: got %v, want 12.35", b)
	}
}

func TestRanking(t *testing.T) {
	ctx := context.Background()
	e := newEconomy()

	for name, balance := range map[string]int64{"alice": 50, "bob": 100, "carol": 100} {
		if _, err := e.CreateAccount(ctx, name, economy.WithInitialBalance(economy.FromInt(balance))); err != nil {
			t.Fatal(err)
		}
	}

	if r, err := e.Rank(ctx, "alice"); err != nil || r != 3 {
		t.Errorf("Rank(alice): got (%d, %v), want (3, nil)", r, err)
	}
	if top, err := e.AccountAtRank(ctx, 1); err != nil || top != "bob" {
		t.Errorf("AccountAtRank(1): got (%q, %v), want bob", top, err)
	}
	if _, err := e.AccountAtRank(ctx, 4); !errors.Is(err, economy.ErrRankOutOfRange) {
		t.Errorf("AccountAtRank(4): got %v, want ErrRankOutOfRange", err)
	}

	all, err := e.AllBalances(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all["bob"] != economy.FromInt(100) {
		t.Errorf("AllBalances: %v", all)
	}
}

func TestSaveAllNotifiesHooks(t *testing.T) {
	ctx := context.Background()
	w := &watchHook{name: "watch"}
	e := newEconomy(economy.WithHook(w))

	if err := e.SaveAll(ctx); err != nil {
		t.Fatal(err)
	}
	if w.saves != 1 {
		t.Errorf("OnSaved calls: got %d, want 1", w.saves)
	}
}

func TestFormatBalanceUsesMonetaryUnit(t *testing.T) {
	e := newEconomy(economy.WithMonetaryUnit("$"))
	if got := e.FormatBalance(economy.FromInt(12345)); got != "12,345$" {
		t.Errorf("FormatBalance: got %q", got)
	}
}
