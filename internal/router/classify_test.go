package router

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/infinity-otc/balancebot/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseBuySell(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantOK   bool
		wantKind domain.TransactionKind
		wantUSDT string
		wantMMK  string
	}{
		{
			name:     "Buy",
			input:    "Buy 100 = 2,500,000",
			wantOK:   true,
			wantKind: domain.KindBuy,
			wantUSDT: "100",
			wantMMK:  "2500000",
		},
		{
			name:     "SellLowercase",
			input:    "sell 50.5 = 1,262,500",
			wantOK:   true,
			wantKind: domain.KindSell,
			wantUSDT: "50.5",
			wantMMK:  "1262500",
		},
		{
			name:     "SurroundingText",
			input:    "Rate 25000. Buy 100 usdt = 2,500,000 mmk thanks",
			wantOK:   true,
			wantKind: domain.KindBuy,
			wantUSDT: "100",
			wantMMK:  "2500000",
		},
		{name: "NoMMKSide", input: "Buy 100", wantOK: false},
		{name: "NoKeyword", input: "100 = 2,500,000", wantOK: false},
		{name: "ZeroAmount", input: "Buy 0 = 2,500,000", wantOK: false},
		{name: "KeywordInsideWord", input: "rebuy 100 = 2,500,000", wantOK: false},
		{name: "Empty", input: "", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseBuySell(tc.input)
			require.Equal(t, tc.wantOK, ok)

			if !tc.wantOK {
				return
			}

			require.Equal(t, tc.wantKind, got.Kind)
			require.True(t, got.USDT.Equal(d(tc.wantUSDT)))
			require.True(t, got.MMK.Equal(d(tc.wantMMK)))
		})
	}
}

func TestParseCoinTransfer(t *testing.T) {
	testCases := []struct {
		name         string
		input        string
		wantOK       bool
		wantFrom     string
		wantTo       string
		wantSent     string
		wantFee      string
		wantReceived string
	}{
		{
			name:         "Standard",
			input:        "San (Binance) to OKM(Wallet) 10 USDT-0.47 USDT(fee) = 9.53 USDT",
			wantOK:       true,
			wantFrom:     "San(Binance)",
			wantTo:       "OKM(Wallet)",
			wantSent:     "10",
			wantFee:      "0.47",
			wantReceived: "9.53",
		},
		{
			name:         "SpacesAroundHyphen",
			input:        "TZT(Binance) to San (Wallet) 100.5 USDT - 1 USDT (fee) = 99.5 USDT",
			wantOK:       true,
			wantFrom:     "TZT(Binance)",
			wantTo:       "San(Wallet)",
			wantSent:     "100.5",
			wantFee:      "1",
			wantReceived: "99.5",
		},
		{
			name:         "LowercaseUnits",
			input:        "San(Binance) to OKM(Wallet) 10 usdt-0.47 usdt(fee) = 9.53 usdt",
			wantOK:       true,
			wantFrom:     "San(Binance)",
			wantTo:       "OKM(Wallet)",
			wantSent:     "10",
			wantFee:      "0.47",
			wantReceived: "9.53",
		},
		{name: "MissingFee", input: "San(Binance) to OKM(Wallet) 10 USDT", wantOK: false},
		{name: "PlainTransfer", input: "San(KBZ) to NDT(Wave)", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCoinTransfer(tc.input)
			require.Equal(t, tc.wantOK, ok)

			if !tc.wantOK {
				return
			}

			require.Equal(t, domain.KindCoinTransfer, got.Kind)
			require.Equal(t, tc.wantFrom, got.FromLabel)
			require.Equal(t, tc.wantTo, got.ToLabel)
			require.True(t, got.Sent.Equal(d(tc.wantSent)))
			require.True(t, got.Fee.Equal(d(tc.wantFee)))
			require.True(t, got.Received.Equal(d(tc.wantReceived)))
		})
	}
}

func TestParseInternalTransfer(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		got, ok := ParseInternalTransfer("San(KBZ) to NDT (Wave)")
		require.True(t, ok)
		require.Equal(t, domain.KindInternalTransfer, got.Kind)
		require.Equal(t, "San(KBZ)", got.FromLabel)
		require.Equal(t, "NDT(Wave)", got.ToLabel)
	})

	t.Run("CapitalizedTo", func(t *testing.T) {
		got, ok := ParseInternalTransfer("San(KBZ) To NDT(Wave)")
		require.True(t, ok)
		require.Equal(t, "San(KBZ)", got.FromLabel)
		require.Equal(t, "NDT(Wave)", got.ToLabel)
	})

	t.Run("CoinGrammarTakesPriority", func(t *testing.T) {
		_, ok := ParseInternalTransfer("San(Binance) to OKM(Wallet) 10 USDT-0.47 USDT(fee) = 9.53 USDT")
		require.False(t, ok)
	})

	t.Run("NotATransfer", func(t *testing.T) {
		_, ok := ParseInternalTransfer("Buy 100 = 2,500,000")
		require.False(t, ok)
	})
}

func TestParseFee(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		wantOK bool
		want   string
	}{
		{name: "Plain", input: "fee-3039", wantOK: true, want: "3039"},
		{name: "Spaces", input: "fee - 3039", wantOK: true, want: "3039"},
		{name: "Uppercase", input: "Fee-500", wantOK: true, want: "500"},
		{name: "CommaGrouped", input: "fee-1,500", wantOK: true, want: "1500"},
		{name: "Decimal", input: "fee-10.5", wantOK: true, want: "10.5"},
		{name: "InsideCaption", input: "2 photos fee-3039 total", wantOK: true, want: "3039"},
		{name: "NoFee", input: "just a caption", wantOK: false},
		{name: "NoAmount", input: "fee-", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseFee(tc.input)
			require.Equal(t, tc.wantOK, ok)

			if tc.wantOK {
				require.True(t, got.Equal(d(tc.want)))
			}
		})
	}
}

func TestMessageCommand(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		wantName string
		wantArgs string
		wantOK   bool
	}{
		{name: "Bare", text: "/balance", wantName: "balance", wantOK: true},
		{name: "WithArgs", text: "/set_user San", wantName: "set_user", wantArgs: "San", wantOK: true},
		{name: "BotSuffix", text: "/balance@otc_balance_bot", wantName: "balance", wantOK: true},
		{name: "BotSuffixWithArgs", text: "/set_user@otc_balance_bot San", wantName: "set_user", wantArgs: "San", wantOK: true},
		{name: "NotACommand", text: "balance please", wantOK: false},
		{name: "Empty", text: "", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			name, args, ok := Message{Text: tc.text}.Command()
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.wantName, name)
			require.Equal(t, tc.wantArgs, args)
		})
	}
}
