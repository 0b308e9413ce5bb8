package domain

import "github.com/shopspring/decimal"

// TransactionKind classifies an announcement message.
type TransactionKind string

// All announcement kinds the router recognizes.
const (
	KindBuy              TransactionKind = "buy"
	KindSell             TransactionKind = "sell"
	KindP2PSell          TransactionKind = "p2p_sell"
	KindInternalTransfer TransactionKind = "internal_transfer"
	KindCoinTransfer     TransactionKind = "coin_transfer"
)

// DeclaredTransaction holds the amounts stated in an announcement's
// free text. Constructed fresh per message, never persisted.
type DeclaredTransaction struct {
	Kind TransactionKind

	// Principal amounts for buy/sell.
	USDT decimal.Decimal
	MMK  decimal.Decimal

	// Transfer endpoints as display labels, e.g. San(Binance).
	FromLabel string
	ToLabel   string

	// Coin transfer amounts, parsed directly from the text.
	Sent     decimal.Decimal
	Fee      decimal.Decimal
	Received decimal.Decimal
}

// Verdict is the reconciliation engine's decision for one declared
// transaction given the evidence accumulated so far.
type Verdict int

// Reconciliation verdicts.
const (
	VerdictAwaitingMore Verdict = iota
	VerdictAccepted
	VerdictMismatchWarning
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccepted:
		return "accepted"
	case VerdictAwaitingMore:
		return "awaiting more evidence"
	case VerdictMismatchWarning:
		return "mismatch warning"
	}

	return "unknown"
}
