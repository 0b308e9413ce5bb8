// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

var bankNames = []string{"KBZ", "Kpay P", "Wave", "AYA", "CB", "Yoma", "Binance", "Wallet", "Swift"}

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// IntBetween generates a random integer between min and max.
func IntBetween(min, max int) int32 {
	return int32(Intn(max+min)) - int32(min)
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Prefix generates a random staff prefix.
func Prefix() string {
	return strings.ToUpper(String(3))
}

// Bank returns a random bank label.
func Bank() string {
	return bankNames[Intn(len(bankNames))]
}

// AmountMMK generates a random whole MMK amount between min and max.
func AmountMMK(min, max int) decimal.Decimal {
	return decimal.NewFromInt(int64(IntBetween(min, max)))
}

// AmountUSDT generates a random USDT amount between min and max with 4 decimals.
func AmountUSDT(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max)).Round(4)
}
