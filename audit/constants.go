package audit

// Action constants for audit events.
const (
	ActionAccountCreated = "account.created"
	ActionBalanceSet     = "balance.set"
	ActionBalanceAdded   = "balance.added"
	ActionBalanceReduced = "balance.reduced"
	ActionLedgerSaved    = "ledger.saved"
)

// Resource constants for audit events.
const (
	ResourceAccount = "account"
	ResourceLedger  = "ledger"
)

// CategoryEconomy tags every event emitted by this package.
const CategoryEconomy = "economy"

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
