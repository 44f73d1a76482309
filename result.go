package economy

// Result is the closed outcome enumeration returned by every mutation.
// Callers branch on the value; no mutation outcome is ever delivered
// as an error. The numeric values are part of the public contract.
type Result int

// Mutation outcomes, ordered by severity.
const (
	// NoAccount: the target account does not exist.
	NoAccount Result = -3
	// Cancelled: a hook vetoed the mutation and the caller did not force it.
	Cancelled Result = -2
	// NotFound: a lookup (rank or account query) had no match.
	NotFound Result = -1
	// Invalid: the request failed validation (negative amount, over the
	// ceiling, or reduce below zero). Nothing was written.
	Invalid Result = 0
	// Success: the mutation was committed.
	Success Result = 1
)

// OK reports whether the mutation was committed.
func (r Result) OK() bool { return r == Success }

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case NoAccount:
		return "no_account"
	case Cancelled:
		return "cancelled"
	case NotFound:
		return "not_found"
	case Invalid:
		return "invalid"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}
