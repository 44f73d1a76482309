package hook

import "github.com/xraph/economy/types"

// Operation identifies the mutation kind that raised an event.
type Operation string

// Operation constants for all mutation kinds.
const (
	OpCreate Operation = "create"
	OpSet    Operation = "set"
	OpAdd    Operation = "add"
	OpReduce Operation = "reduce"
)

// cancellable carries the monotonic cancellation flag shared by all
// pre-commit events. Once set it cannot be unset within a dispatch.
type cancellable struct {
	cancelled bool
}

// Cancel vetoes the pending mutation.
func (c *cancellable) Cancel() { c.cancelled = true }

// Cancelled reports whether any hook vetoed the mutation.
func (c *cancellable) Cancelled() bool { return c.cancelled }

// CreateAccountEvent is raised before an account is created. Hooks may
// cancel the creation or adjust the initial balance the account will
// be created with.
type CreateAccountEvent struct {
	cancellable

	Account string
	Issuer  string

	initial types.Amount
}

// NewCreateAccountEvent builds the pre-creation event.
func NewCreateAccountEvent(name string, initial types.Amount, issuer string) *CreateAccountEvent {
	return &CreateAccountEvent{Account: name, Issuer: issuer, initial: initial}
}

// InitialBalance returns the balance the account will be created with.
func (e *CreateAccountEvent) InitialBalance() types.Amount { return e.initial }

// SetInitialBalance overrides the balance the account will be created
// with. Negative values are ignored.
func (e *CreateAccountEvent) SetInitialBalance(a types.Amount) {
	if a.IsNegative() {
		return
	}
	e.initial = a
}

// SetBalanceEvent is raised before an absolute balance write.
// Amount is the proposed resulting balance.
type SetBalanceEvent struct {
	cancellable

	Account string
	Amount  types.Amount
	Issuer  string
}

// AddBalanceEvent is raised before a balance increase.
// Amount is the delta, not the resulting balance.
type AddBalanceEvent struct {
	cancellable

	Account string
	Amount  types.Amount
	Issuer  string
}

// ReduceBalanceEvent is raised before a balance decrease.
// Amount is the delta, not the resulting balance.
type ReduceBalanceEvent struct {
	cancellable

	Account string
	Amount  types.Amount
	Issuer  string
}

// BalanceChangedEvent is broadcast after a successful commit. It is a
// plain value: there is nothing left to veto.
type BalanceChangedEvent struct {
	Account    string
	NewBalance types.Amount
	Operation  Operation
	Issuer     string
}
