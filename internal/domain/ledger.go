package domain

import (
	"github.com/infinity-otc/balancebot/internal/accountkey"
	"github.com/infinity-otc/balancebot/pkg/currencypkg"
)

// Ledger holds the full set of accounts for one chat, grouped by
// currency class in snapshot order. The set is replaced wholesale on
// every successful snapshot load and mutated in place between loads.
type Ledger struct {
	MMK  []Account
	USDT []Account
	THB  []Account
}

// Section returns the accounts of the given currency class.
func (l *Ledger) Section(currency string) []Account {
	switch currency {
	case currencypkg.MMK:
		return l.MMK
	case currencypkg.USDT:
		return l.USDT
	case currencypkg.THB:
		return l.THB
	}

	return nil
}

// Find returns a pointer to the account whose label matches the given
// label after normalization, or nil.
func (l *Ledger) Find(currency, label string) *Account {
	var section []Account

	switch currency {
	case currencypkg.MMK:
		section = l.MMK
	case currencypkg.USDT:
		section = l.USDT
	case currencypkg.THB:
		section = l.THB
	}

	for i := range section {
		if accountkey.Match(section[i].Label(), label) {
			return &section[i]
		}
	}

	return nil
}

// FilterByPrefix returns the accounts of the section owned by the given
// staff prefix. The match is exact after normalization.
func (l *Ledger) FilterByPrefix(currency, prefix string) []Account {
	var out []Account

	for _, a := range l.Section(currency) {
		if accountkey.Normalize(a.Prefix) == accountkey.Normalize(prefix) {
			out = append(out, a)
		}
	}

	return out
}
