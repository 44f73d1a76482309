// Package rank derives an ordered view over account balances.
//
// The total order is balance descending with ties broken by name
// ascending, so rankings are deterministic regardless of the backing
// store's iteration order. Ranks are 1-indexed.
package rank

import (
	"sort"

	"github.com/xraph/economy/types"
)

// Entry is one account in the standings.
type Entry struct {
	Name    string
	Balance types.Amount
}

// Standings is a ranked list of accounts, richest first.
type Standings []Entry

// Compute builds standings from a full name-to-balance snapshot.
// O(n log n); acceptable for single-server account counts.
func Compute(balances map[string]types.Amount) Standings {
	s := make(Standings, 0, len(balances))
	for name, balance := range balances {
		s = append(s, Entry{Name: name, Balance: balance})
	}
	sort.Slice(s, func(i, j int) bool {
		if s[i].Balance != s[j].Balance {
			return s[i].Balance > s[j].Balance
		}
		return s[i].Name < s[j].Name
	})
	return s
}

// Rank returns the 1-indexed rank of the named account, or false if
// the account is not present.
func (s Standings) Rank(name string) (int, bool) {
	for i, e := range s {
		if e.Name == name {
			return i + 1, true
		}
	}
	return 0, false
}

// At returns the entry at the 1-indexed rank n, or false if n is out
// of range.
func (s Standings) At(n int) (Entry, bool) {
	if n < 1 || n > len(s) {
		return Entry{}, false
	}
	return s[n-1], true
}
