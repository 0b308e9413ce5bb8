// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found in the loaded ledger.
	ErrAccountNotFound = errors.New("account not found")
	// ErrBalanceNotLoaded indicates that no balance snapshot has been loaded for the chat.
	ErrBalanceNotLoaded = errors.New("balance not loaded")
	// ErrMissingUSDTSection indicates that the snapshot text has no USDT section.
	ErrMissingUSDTSection = errors.New("missing USDT section")
)

// Account holds the balance of a single named cash or crypto bucket.
//
// Identity is the staff prefix plus the bank label, e.g. San(KBZ).
// Balance is stored as a non-negative magnitude; the hyphen in the
// snapshot text is a label separator, not a sign.
type Account struct {
	Prefix   string
	Bank     string
	Balance  decimal.Decimal
	Currency string
}

// Label returns the display label of the account.
func (a Account) Label() string {
	return a.Prefix + "(" + a.Bank + ")"
}

// InsufficientFundsError indicates a debit that would take the account
// balance below zero. Shortfall is the missing magnitude.
type InsufficientFundsError struct {
	Account   string
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in %s: short %s", e.Account, e.Shortfall)
}
