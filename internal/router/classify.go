package router

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/infinity-otc/balancebot/internal/accountkey"
	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/pkg/currencypkg"
)

// Announcement text patterns. Best-effort by design: anything that does
// not match is simply not a transaction announcement.
var (
	buySellPattern = regexp.MustCompile(`(?i)\b(Buy|Sell)\s+([\d.]+)`)
	mmkSidePattern = regexp.MustCompile(`=\s*([\d,]+\.?\d*)`)
	feePattern     = regexp.MustCompile(`(?i)fee\s*-\s*([\d,]+(?:\.\d+)?)`)

	coinTransferPattern = regexp.MustCompile(`(?i)([A-Za-z\s]+)\s*\(([^)]+)\)\s+to\s+([A-Za-z\s]+)\s*\(([^)]+)\)\s+([\d.]+)\s*USDT\s*-\s*([\d.]+)\s*USDT\s*\(fee\)\s*=\s*([\d.]+)\s*USDT`)
	transferPattern     = regexp.MustCompile(`(?i)([A-Za-z\s]+)\s*\(([^)]+)\)\s+to\s+([A-Za-z\s]+)\s*\(([^)]+)\)`)
)

// ParseBuySell reads a buy/sell announcement: kind and USDT principal
// from "Buy 100" / "Sell 50", MMK principal from "= 2,500,000". Both
// amounts must be present.
func ParseBuySell(text string) (domain.DeclaredTransaction, bool) {
	var tx domain.DeclaredTransaction

	m := buySellPattern.FindStringSubmatch(text)
	if m == nil {
		return tx, false
	}

	usdt, err := currencypkg.ParseAmount(m[2])
	if err != nil || !usdt.IsPositive() {
		return tx, false
	}

	mm := mmkSidePattern.FindStringSubmatch(text)
	if mm == nil {
		return tx, false
	}

	mmk, err := currencypkg.ParseAmount(mm[1])
	if err != nil || !mmk.IsPositive() {
		return tx, false
	}

	if strings.EqualFold(m[1], "buy") {
		tx.Kind = domain.KindBuy
	} else {
		tx.Kind = domain.KindSell
	}

	tx.USDT = usdt
	tx.MMK = mmk

	return tx, true
}

// ParseCoinTransfer reads a fee-bearing coin transfer announcement:
//
//	San (Binance) to OKM(Wallet) 10 USDT-0.47 USDT(fee) = 9.53 USDT
//
// Sent, fee and received all come from the text, never from OCR.
func ParseCoinTransfer(text string) (domain.DeclaredTransaction, bool) {
	var tx domain.DeclaredTransaction

	m := coinTransferPattern.FindStringSubmatch(text)
	if m == nil {
		return tx, false
	}

	sent, err := decimal.NewFromString(m[5])
	if err != nil {
		return tx, false
	}

	fee, err := decimal.NewFromString(m[6])
	if err != nil {
		return tx, false
	}

	received, err := decimal.NewFromString(m[7])
	if err != nil {
		return tx, false
	}

	tx.Kind = domain.KindCoinTransfer
	tx.FromLabel = accountkey.Join(m[1], m[2])
	tx.ToLabel = accountkey.Join(m[3], m[4])
	tx.Sent = sent
	tx.Fee = fee
	tx.Received = received

	return tx, true
}

// ParseInternalTransfer reads a plain account-to-account move:
//
//	San(KBZ) to NDT(Wave)
//
// The amount comes from the evidence photo, not the text.
func ParseInternalTransfer(text string) (domain.DeclaredTransaction, bool) {
	var tx domain.DeclaredTransaction

	// The coin transfer grammar is a superset; it takes priority.
	if _, ok := ParseCoinTransfer(text); ok {
		return tx, false
	}

	m := transferPattern.FindStringSubmatch(text)
	if m == nil {
		return tx, false
	}

	tx.Kind = domain.KindInternalTransfer
	tx.FromLabel = accountkey.Join(m[1], m[2])
	tx.ToLabel = accountkey.Join(m[3], m[4])

	return tx, true
}

// ParseFee reads an explicit fee note like "fee-3039" out of a staff
// reply. Comma grouping allowed.
func ParseFee(text string) (decimal.Decimal, bool) {
	m := feePattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}

	fee, err := currencypkg.ParseAmount(m[1])
	if err != nil {
		return decimal.Zero, false
	}

	return fee, true
}
