// Package reconcile decides whether accumulated evidence supports a
// declared transaction under per-kind tolerance policies.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/pkg/configpkg"
	"github.com/infinity-otc/balancebot/pkg/currencypkg"
)

// Policy holds the tolerance band for one transaction kind and currency.
//
// The effective band is max(Tolerance, ToleranceRatio * declared):
// MMK amounts are large integers where a flat band fits, USDT amounts
// are small decimals where OCR rounding error scales with the amount.
type Policy struct {
	Tolerance      decimal.Decimal
	ToleranceRatio decimal.Decimal

	// OverDeliveryRatio widens the band above declared for kinds that
	// favor keeping the books moving: evidence within the widened band
	// proceeds with a MismatchWarning instead of blocking.
	OverDeliveryRatio decimal.Decimal

	// ProceedOnMismatch is the per-kind choice whether a
	// MismatchWarning verdict still mutates the ledger.
	ProceedOnMismatch bool
}

// Band returns the effective tolerance for the declared amount.
func (p Policy) Band(declared decimal.Decimal) decimal.Decimal {
	relative := declared.Mul(p.ToleranceRatio)
	if relative.GreaterThan(p.Tolerance) {
		return relative
	}

	return p.Tolerance
}

// Reconcile compares the accumulated evidence total with the declared
// amount under the policy.
func Reconcile(declared, accumulated decimal.Decimal, p Policy) domain.Verdict {
	band := p.Band(declared)
	diff := accumulated.Sub(declared)

	if diff.Abs().LessThanOrEqual(band) {
		return domain.VerdictAccepted
	}

	// Below the band: photos may still be arriving. Not a failure.
	if accumulated.LessThan(declared.Sub(band)) {
		return domain.VerdictAwaitingMore
	}

	return domain.VerdictMismatchWarning
}

// WithinOverDelivery reports whether an over-delivered total sits inside
// the policy's widened band.
func WithinOverDelivery(declared, accumulated decimal.Decimal, p Policy) bool {
	if !p.OverDeliveryRatio.IsPositive() {
		return false
	}

	over := accumulated.Sub(declared)

	return over.IsPositive() && over.LessThanOrEqual(declared.Mul(p.OverDeliveryRatio))
}

// Engine builds per-kind policies from configured tolerance constants.
type Engine struct {
	mmkTolerance decimal.Decimal
	usdtFloor    decimal.Decimal
	usdtRatio    decimal.Decimal
	overRatio    decimal.Decimal
}

// New returns an engine with the given tolerance constants.
func New(mmkTolerance, usdtFloor, usdtRatio, overRatio decimal.Decimal) *Engine {
	return &Engine{
		mmkTolerance: mmkTolerance,
		usdtFloor:    usdtFloor,
		usdtRatio:    usdtRatio,
		overRatio:    overRatio,
	}
}

// NewFromConfig parses the tolerance constants out of the app config.
func NewFromConfig(c configpkg.Config) (*Engine, error) {
	mmk, err := decimal.NewFromString(c.MMKTolerance)
	if err != nil {
		return nil, err
	}

	floor, err := decimal.NewFromString(c.USDTToleranceFloor)
	if err != nil {
		return nil, err
	}

	ratio, err := decimal.NewFromString(c.USDTToleranceRatio)
	if err != nil {
		return nil, err
	}

	over, err := decimal.NewFromString(c.OverDeliveryRatio)
	if err != nil {
		return nil, err
	}

	return New(mmk, floor, ratio, over), nil
}

// PolicyFor returns the tolerance policy for a transaction kind and the
// currency being reconciled. The over-delivery handling deliberately
// differs by kind and is not unified: buy and sell block on mismatch,
// transfers warn and proceed.
func (e *Engine) PolicyFor(kind domain.TransactionKind, currency string) Policy {
	p := Policy{}

	if currency == currencypkg.USDT {
		p.Tolerance = e.usdtFloor
		p.ToleranceRatio = e.usdtRatio
	} else {
		p.Tolerance = e.mmkTolerance
	}

	switch kind {
	case domain.KindInternalTransfer, domain.KindCoinTransfer:
		p.OverDeliveryRatio = e.overRatio
		p.ProceedOnMismatch = true
	}

	return p
}
