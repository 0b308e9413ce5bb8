// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Constants for all supported currencies.
const (
	MMK  = "MMK"
	USDT = "USDT"
	THB  = "THB"
)

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	MMK,
	USDT,
	THB,
}

// IsSupportedCurrency returns true if the currncy is supported.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}

// ValidCurrency validates whether the currency is supported.
var ValidCurrency validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return IsSupportedCurrency(c)
	}
	return false
}

// ParseAmount parses a display amount into a decimal.
// Comma group separators are allowed.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

// FormatAmount renders the absolute magnitude of the amount in the
// display form of the given currency: MMK and THB as comma grouped
// integers, USDT with exactly 4 decimal places.
func FormatAmount(amount decimal.Decimal, currency string) string {
	abs := amount.Abs()

	if currency == USDT {
		return abs.StringFixed(4)
	}

	return groupThousands(abs.Truncate(0).String())
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var sb strings.Builder

	head := n % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}

	for i := head; i < n; i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}
