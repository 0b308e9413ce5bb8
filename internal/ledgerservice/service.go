// Package ledgerservice manages the in-memory per-chat ledgers and all
// balance mutations.
package ledgerservice

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/internal/snapshot"
)

// Leg is one account delta of a transaction. Negative delta debits.
type Leg struct {
	Currency string
	Label    string
	Delta    decimal.Decimal
}

// Service owns one ledger per chat. The map is guarded so the service
// stays correct if handlers ever run in parallel workers.
type Service struct {
	mu      sync.Mutex
	ledgers map[int64]*domain.Ledger
}

// New returns a service with no ledgers loaded.
func New() *Service {
	return &Service{ledgers: make(map[int64]*domain.Ledger)}
}

// Load parses the snapshot text and replaces the chat's ledger
// wholesale. The previous ledger is discarded, never merged.
func (s *Service) Load(ctx context.Context, chatID int64, text string) (domain.Ledger, error) {
	l := zerolog.Ctx(ctx)

	ledger, err := snapshot.Parse(text)
	if err != nil {
		l.Info().Err(err).Int64("chat_id", chatID).Msg("snapshot parse failed")
		return domain.Ledger{}, err
	}

	s.mu.Lock()
	s.ledgers[chatID] = &ledger
	s.mu.Unlock()

	l.Info().
		Int64("chat_id", chatID).
		Int("mmk_accounts", len(ledger.MMK)).
		Int("usdt_accounts", len(ledger.USDT)).
		Int("thb_accounts", len(ledger.THB)).
		Msg("balance loaded")

	return ledger, nil
}

// Loaded reports whether the chat has a ledger.
func (s *Service) Loaded(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ledgers[chatID]

	return ok
}

// Accounts returns a copy of the chat's accounts for the currency.
func (s *Service) Accounts(chatID int64, currency string) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgers[chatID]
	if !ok {
		return nil, domain.ErrBalanceNotLoaded
	}

	return append([]domain.Account(nil), ledger.Section(currency)...), nil
}

// AccountsByPrefix returns the chat's accounts of the currency owned by
// the staff prefix.
func (s *Service) AccountsByPrefix(chatID int64, currency, prefix string) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgers[chatID]
	if !ok {
		return nil, domain.ErrBalanceNotLoaded
	}

	return ledger.FilterByPrefix(currency, prefix), nil
}

// Snapshot formats the chat's current ledger for republishing.
func (s *Service) Snapshot(chatID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgers[chatID]
	if !ok {
		return "", domain.ErrBalanceNotLoaded
	}

	return snapshot.Format(*ledger), nil
}

// Apply adds delta to the matched account. A debit that would take the
// balance below zero is rejected with the shortfall; the account is
// left untouched. Never clamps.
func (s *Service) Apply(ctx context.Context, chatID int64, leg Leg) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(ctx, chatID, leg)
}

func (s *Service) applyLocked(ctx context.Context, chatID int64, leg Leg) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	ledger, ok := s.ledgers[chatID]
	if !ok {
		return domain.Account{}, domain.ErrBalanceNotLoaded
	}

	account := ledger.Find(leg.Currency, leg.Label)
	if account == nil {
		l.Info().Str("account", leg.Label).Str("currency", leg.Currency).Msg("account not found")
		return domain.Account{}, domain.ErrAccountNotFound
	}

	next := account.Balance.Add(leg.Delta)
	if next.IsNegative() {
		return domain.Account{}, &domain.InsufficientFundsError{
			Account:   account.Label(),
			Shortfall: next.Neg(),
		}
	}

	account.Balance = next

	l.Info().
		Str("account", account.Label()).
		Str("delta", leg.Delta.String()).
		Str("balance", account.Balance.String()).
		Msg("balance applied")

	return *account, nil
}

// ApplyLegs applies the legs in the given order; callers put debits
// first so funds are checked before any credit lands. A failed debit
// aborts with nothing further applied. A credit whose target account is
// absent is skipped and reported as a warning; earlier legs are not
// rolled back.
func (s *Service) ApplyLegs(ctx context.Context, chatID int64, legs []Leg) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var warnings []string

	for _, leg := range legs {
		_, err := s.applyLocked(ctx, chatID, leg)
		if err == nil {
			continue
		}

		if err == domain.ErrAccountNotFound && leg.Delta.IsPositive() {
			warnings = append(warnings, "account "+leg.Label+" not in loaded balance; credit skipped")
			continue
		}

		return warnings, err
	}

	return warnings, nil
}
