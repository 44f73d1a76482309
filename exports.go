package economy

import "github.com/xraph/economy/types"

// Re-export common types for convenience so users don't have to import
// the types package.

// Amount is re-exported from the types package.
type Amount = types.Amount

// Re-export Amount constructors
var (
	FromFloat = types.FromFloat
	FromInt   = types.FromInt
	FromCents = types.FromCents
	Sum       = types.Sum
)

// Zero is the zero balance.
const Zero = types.Zero
