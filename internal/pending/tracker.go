// Package pending holds in-memory state for transactions whose evidence
// is still arriving: per-announcement amount accumulation and buffering
// of multi-photo bursts.
package pending

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/infinity-otc/balancebot/internal/domain"
)

// Entry accumulates extracted evidence for one announced transaction,
// keyed by the announcement's message id.
type Entry struct {
	Kind         domain.TransactionKind
	AccountLabel string
	Currency     string
	Declared     decimal.Decimal
	Prefix       string

	// Counter side of the trade, fixed by the first evidence photo:
	// for a sell, the verified local-currency amount and the account
	// type of the staff's sending receipt.
	CounterAmount decimal.Decimal
	AccountType   string

	Amounts []decimal.Decimal
	Fees    []decimal.Decimal

	CreatedAt time.Time
}

// Tracker is a keyed store of pending entries. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	entries map[int64]*Entry
	now     func() time.Time
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[int64]*Entry),
		now:     time.Now,
	}
}

// Append records one photo's extracted amount and fee for the
// announcement, creating the entry from seed on first evidence.
// It returns the running amount total, fee total and photo count.
//
// The target account is first-win: a seed label is only taken when the
// entry does not have one yet.
func (t *Tracker) Append(id int64, seed Entry, amount, fee decimal.Decimal) (decimal.Decimal, decimal.Decimal, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[id]
	if !ok {
		e := seed
		e.Amounts = nil
		e.Fees = nil
		e.CreatedAt = t.now()
		entry = &e
		t.entries[id] = entry
	}

	if entry.AccountLabel == "" && seed.AccountLabel != "" {
		entry.AccountLabel = seed.AccountLabel
	}

	entry.Amounts = append(entry.Amounts, amount)
	entry.Fees = append(entry.Fees, fee)

	return sum(entry.Amounts), sum(entry.Fees), len(entry.Amounts)
}

// Get returns a copy of the entry for the announcement.
func (t *Tracker) Get(id int64) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[id]
	if !ok {
		return Entry{}, false
	}

	e := *entry
	e.Amounts = append([]decimal.Decimal(nil), entry.Amounts...)
	e.Fees = append([]decimal.Decimal(nil), entry.Fees...)

	return e, true
}

// Resolve deletes the entry once the transaction is applied or abandoned.
func (t *Tracker) Resolve(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, id)
}

// Sweep deletes entries older than maxAge and returns how many were
// removed. Leak prevention only; never called on the per-message path.
func (t *Tracker) Sweep(maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-maxAge)
	removed := 0

	for id, entry := range t.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(t.entries, id)
			removed++
		}
	}

	return removed
}

func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}

	return total
}
