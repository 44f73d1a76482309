// Package account defines the account value type and name canonicalization.
//
// Accounts are identified by a case-insensitive name; the canonical key
// is the lower-cased form. All engine and store operations work on
// canonical names only.
package account

import (
	"strings"

	"github.com/xraph/economy/types"
)

// Account is a named entity with a single monetary balance.
type Account struct {
	types.Entity `yaml:",inline"`

	Name    string       `json:"name" yaml:"name"`
	Balance types.Amount `json:"balance" yaml:"balance"`
}

// New creates an account with a canonical name and fresh timestamps.
func New(name string, balance types.Amount) Account {
	return Account{
		Entity:  types.NewEntity(),
		Name:    Normalize(name),
		Balance: balance,
	}
}

// Normalize returns the canonical form of an account name: trimmed and
// lower-cased.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidName reports whether a name is usable as an account key after
// canonicalization.
func ValidName(name string) bool {
	return Normalize(name) != ""
}
