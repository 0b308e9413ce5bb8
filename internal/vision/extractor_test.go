package vision

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/pkg/currencypkg"
)

// stubClient returns a canned reply and records the prompt it was given.
type stubClient struct {
	reply  string
	err    error
	prompt string
}

func (s *stubClient) Complete(ctx context.Context, prompt, imageBase64 string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mmkAccount(prefix, bank string) domain.Account {
	return domain.Account{Prefix: prefix, Bank: bank, Currency: currencypkg.MMK}
}

func TestCleanJSON(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Plain",
			input: `{"amount": 1}`,
			want:  `{"amount": 1}`,
		},
		{
			name:  "MarkdownFence",
			input: "```json\n{\"amount\": 1}\n```",
			want:  `{"amount": 1}`,
		},
		{
			name:  "SurroundingProse",
			input: `Sure! Here is the result: {"amount": 1} Hope that helps.`,
			want:  `{"amount": 1}`,
		},
		{
			name:  "NoObject",
			input: "no json here",
			want:  "no json here",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CleanJSON(tc.input))
		})
	}
}

func TestDetectBankAndAmount(t *testing.T) {
	candidates := []domain.Account{
		mmkAccount("San", "KBZ"),
		mmkAccount("San", "Wave"),
		mmkAccount("NDT", "CB"),
	}

	testCases := []struct {
		name          string
		client        stubClient
		ownerPrefix   string
		checkResponse func(t *testing.T, client *stubClient, got BankAmount, err error)
	}{
		{
			name:   "PicksCandidateByIndex",
			client: stubClient{reply: `{"amount": 2500000, "account_number": 3}`},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.NoError(t, err)
				require.True(t, got.Amount.Equal(d("2500000")))
				require.Equal(t, "NDT(CB)", got.Account.Label())
			},
		},
		{
			name:        "PrefixNarrowsCandidates",
			client:      stubClient{reply: `{"amount": 100, "account_number": 2}`},
			ownerPrefix: "san",
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.NoError(t, err)
				require.Equal(t, "San(Wave)", got.Account.Label())
				require.NotContains(t, client.prompt, "NDT(CB)")
			},
		},
		{
			name:        "UnknownPrefixFallsBackToAll",
			client:      stubClient{reply: `{"amount": 100, "account_number": 3}`},
			ownerPrefix: "zzz",
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.NoError(t, err)
				require.Equal(t, "NDT(CB)", got.Account.Label())
			},
		},
		{
			name:   "NegativeAmountBecomesMagnitude",
			client: stubClient{reply: `{"amount": -2500000, "account_number": 1}`},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.NoError(t, err)
				require.True(t, got.Amount.Equal(d("2500000")))
			},
		},
		{
			name:   "CommaGroupedStringAmount",
			client: stubClient{reply: `{"amount": "2,500,000", "account_number": 1}`},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.NoError(t, err)
				require.True(t, got.Amount.Equal(d("2500000")))
			},
		},
		{
			name:   "IndexOutOfRange",
			client: stubClient{reply: `{"amount": 100, "account_number": 9}`},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.ErrorIs(t, err, ErrExtraction)
			},
		},
		{
			name:   "IndexZero",
			client: stubClient{reply: `{"amount": 100, "account_number": 0}`},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.ErrorIs(t, err, ErrExtraction)
			},
		},
		{
			name:   "MissingAmount",
			client: stubClient{reply: `{"account_number": 1}`},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.ErrorIs(t, err, ErrExtraction)
			},
		},
		{
			name:   "NonJSONReply",
			client: stubClient{reply: "I cannot read this image."},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.ErrorIs(t, err, ErrExtraction)
			},
		},
		{
			name:   "ClientError",
			client: stubClient{err: errors.New("timeout")},
			checkResponse: func(t *testing.T, client *stubClient, got BankAmount, err error) {
				require.ErrorIs(t, err, ErrExtraction)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := tc.client
			e := NewExtractor(&client)

			got, err := e.DetectBankAndAmount(context.Background(), "img", candidates, tc.ownerPrefix)
			tc.checkResponse(t, &client, got, err)
		})
	}
}

func TestDetectBankAndAmountNoCandidates(t *testing.T) {
	e := NewExtractor(&stubClient{reply: `{"amount": 1, "account_number": 1}`})

	_, err := e.DetectBankAndAmount(context.Background(), "img", nil, "")
	require.ErrorIs(t, err, ErrExtraction)
}

func TestExtractAmountWithFee(t *testing.T) {
	testCases := []struct {
		name          string
		reply         string
		checkResponse func(t *testing.T, got FeeBreakdown, err error)
	}{
		{
			name:  "ExchangeFeeIncluded",
			reply: `{"amount": 50, "network_fee": 1, "account_type": "exchange"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.NoError(t, err)
				require.True(t, got.TotalAmount.Equal(d("50")))
				require.Equal(t, AccountTypeExchange, got.AccountType)
			},
		},
		{
			name:  "WalletFeeAdditive",
			reply: `{"amount": 50, "network_fee": 1, "account_type": "wallet"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.NoError(t, err)
				require.True(t, got.TotalAmount.Equal(d("51")))
			},
		},
		{
			name:  "SwiftFeeAdditive",
			reply: `{"amount": 50, "network_fee": 0.5, "account_type": "swift"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.NoError(t, err)
				require.True(t, got.TotalAmount.Equal(d("50.5")))
			},
		},
		{
			name:  "UnknownTypeDefaultsToAdditive",
			reply: `{"amount": 50, "network_fee": 1, "account_type": "mystery"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.NoError(t, err)
				require.Equal(t, AccountTypeWallet, got.AccountType)
				require.True(t, got.TotalAmount.Equal(d("51")))
			},
		},
		{
			name:  "ExplicitTotalWins",
			reply: `{"amount": 50, "network_fee": 1, "total_amount": 52.5, "account_type": "wallet"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.NoError(t, err)
				require.True(t, got.TotalAmount.Equal(d("52.5")))
			},
		},
		{
			name:  "NullTotalIgnored",
			reply: `{"amount": 50, "network_fee": 1, "total_amount": null, "account_type": "wallet"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.NoError(t, err)
				require.True(t, got.TotalAmount.Equal(d("51")))
			},
		},
		{
			name:  "MissingFeeMeansZero",
			reply: `{"amount": 50, "account_type": "wallet"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.NoError(t, err)
				require.True(t, got.NetworkFee.Equal(decimal.Zero))
				require.True(t, got.TotalAmount.Equal(d("50")))
			},
		},
		{
			name:  "MissingAmountFails",
			reply: `{"network_fee": 1, "account_type": "wallet"}`,
			checkResponse: func(t *testing.T, got FeeBreakdown, err error) {
				require.ErrorIs(t, err, ErrExtraction)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewExtractor(&stubClient{reply: tc.reply})

			got, err := e.ExtractAmountWithFee(context.Background(), "img")
			tc.checkResponse(t, got, err)
		})
	}
}

func TestExtractReceivedAmount(t *testing.T) {
	t.Run("FeeNotAdded", func(t *testing.T) {
		e := NewExtractor(&stubClient{reply: `{"received_amount": 9.53, "network_fee": 0.47, "account_type": "wallet"}`})

		got, err := e.ExtractReceivedAmount(context.Background(), "img")
		require.NoError(t, err)
		require.True(t, got.Received.Equal(d("9.53")))
		require.True(t, got.NetworkFee.Equal(d("0.47")))
	})

	t.Run("UnknownTypeDefaultsToWallet", func(t *testing.T) {
		e := NewExtractor(&stubClient{reply: `{"received_amount": 1, "network_fee": 0, "account_type": "bank"}`})

		got, err := e.ExtractReceivedAmount(context.Background(), "img")
		require.NoError(t, err)
		require.Equal(t, AccountTypeWallet, got.AccountType)
	})

	t.Run("MissingAmountFails", func(t *testing.T) {
		e := NewExtractor(&stubClient{reply: `{"network_fee": 0.47}`})

		_, err := e.ExtractReceivedAmount(context.Background(), "img")
		require.ErrorIs(t, err, ErrExtraction)
	})
}

func TestMatchWithConfidence(t *testing.T) {
	registered := []domain.NamedAccount{
		{Label: "Mg Mg(KBZ)", AccountSuffix: "4523", HolderName: "Mg Mg"},
		{Label: "Aye(CB)", AccountSuffix: "9911", HolderName: "Aye Aye"},
	}

	testCases := []struct {
		name          string
		reply         string
		checkResponse func(t *testing.T, got ConfidenceMatch, err error)
	}{
		{
			name: "FullMatch",
			reply: `{"amount": 500000, "matches": [
				{"account_number": 1, "suffix_match": true, "name_match": true},
				{"account_number": 2, "suffix_match": false, "name_match": false}]}`,
			checkResponse: func(t *testing.T, got ConfidenceMatch, err error) {
				require.NoError(t, err)
				require.Equal(t, 100, got.Scores["Mg Mg(KBZ)"])
				require.Equal(t, 0, got.Scores["Aye(CB)"])

				best, score := got.Best()
				require.Equal(t, "Mg Mg(KBZ)", best)
				require.Equal(t, 100, score)
			},
		},
		{
			name: "PartialMatchHalfScore",
			reply: `{"amount": 500000, "matches": [
				{"account_number": 2, "suffix_match": true, "name_match": false}]}`,
			checkResponse: func(t *testing.T, got ConfidenceMatch, err error) {
				require.NoError(t, err)

				best, score := got.Best()
				require.Equal(t, "Aye(CB)", best)
				require.Equal(t, 50, score)
			},
		},
		{
			name:  "NoMatchesStillScoresEveryAccount",
			reply: `{"amount": 500000}`,
			checkResponse: func(t *testing.T, got ConfidenceMatch, err error) {
				require.NoError(t, err)
				require.Len(t, got.Scores, 2)
				require.Equal(t, 0, got.Scores["Mg Mg(KBZ)"])
				require.Equal(t, 0, got.Scores["Aye(CB)"])
			},
		},
		{
			name: "OutOfRangeIndexIgnored",
			reply: `{"amount": 500000, "matches": [
				{"account_number": 5, "suffix_match": true, "name_match": true}]}`,
			checkResponse: func(t *testing.T, got ConfidenceMatch, err error) {
				require.NoError(t, err)
				require.Equal(t, 0, got.Scores["Mg Mg(KBZ)"])
				require.Equal(t, 0, got.Scores["Aye(CB)"])
			},
		},
		{
			name:  "MissingAmountFails",
			reply: `{"matches": []}`,
			checkResponse: func(t *testing.T, got ConfidenceMatch, err error) {
				require.ErrorIs(t, err, ErrExtraction)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewExtractor(&stubClient{reply: tc.reply})

			got, err := e.MatchWithConfidence(context.Background(), "img", registered)
			tc.checkResponse(t, got, err)
		})
	}
}

func TestMatchWithConfidenceNoAccounts(t *testing.T) {
	e := NewExtractor(&stubClient{reply: `{"amount": 1}`})

	_, err := e.MatchWithConfidence(context.Background(), "img", nil)
	require.ErrorIs(t, err, ErrExtraction)
}

func TestBestTieBreaksByLabel(t *testing.T) {
	m := ConfidenceMatch{Scores: map[string]int{"B(CB)": 50, "A(CB)": 50}}

	best, score := m.Best()
	require.Equal(t, "A(CB)", best)
	require.Equal(t, 50, score)
}
