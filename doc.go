// Package economy provides a player-account monetary ledger for Go
// applications.
//
// Economy is designed as a library, not a service. Import it directly
// into your application: it maintains one balance per named account,
// mutates balances through a small set of operations (create, set,
// add, reduce), enforces the non-negative and ceiling invariants, and
// answers ranked "who has the Nth highest balance" queries. Every
// mutation is mediated by a cancellable hook pipeline so external
// policy can veto or observe a change before and after it commits.
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/xraph/economy"
//	    "github.com/xraph/economy/store/memory"
//	)
//
//	eng := economy.New(memory.New(),
//	    economy.WithMaxBalance(economy.FromInt(1_000_000)),
//	)
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
//	eng.CreateAccount(ctx, "Alice")
//	res, err := eng.AddBalance(ctx, "alice", economy.FromFloat(12.34))
//
// # Core Concepts
//
// Accounts are keyed by case-insensitive name; the canonical key is
// the lower-cased form. Balances are fixed-point amounts with two
// fractional digits; see the types package.
//
// Every mutation returns a closed Result code (NoAccount, Cancelled,
// NotFound, Invalid, Success) plus an error that is non-nil only for
// storage failures — callers branch on the code without exception
// machinery, and storage trouble is never disguised as bad input.
//
// Hooks subscribe through the hook package. Pre-commit events
// (CreateAccount, SetBalance, AddBalance, ReduceBalance) are
// dispatched synchronously in registration order and may cancel the
// pending write; the post-commit BalanceChanged notification fires
// only after a successful commit. A caller may override a veto with
// the Force mutate option.
//
// Storage backends implement store.Store: in-memory, YAML flat-file,
// SQLite, Postgres, and MongoDB stores ship in store/*. Rankings use a
// deterministic order — balance descending, ties broken by name
// ascending.
package economy
