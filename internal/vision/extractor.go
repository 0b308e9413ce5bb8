package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/infinity-otc/balancebot/internal/accountkey"
	"github.com/infinity-otc/balancebot/internal/domain"
)

// ErrExtraction indicates the model's answer was unusable: call error,
// non-JSON reply, or an out-of-range reference. Always recoverable; the
// caller falls back to the declared amount or asks for a resend.
var ErrExtraction = errors.New("could not extract")

// Account types the fee extractor distinguishes. Exchange receipts
// display the amount with the network fee already folded in; wallet and
// swift receipts display the fee separately.
const (
	AccountTypeExchange = "exchange"
	AccountTypeWallet   = "wallet"
	AccountTypeSwift    = "swift"
)

// BankAmount is a detected receipt amount attributed to one of the
// candidate accounts.
type BankAmount struct {
	Amount  decimal.Decimal
	Account domain.Account
}

// FeeBreakdown is the sent amount of a crypto receipt split into its
// fee components. TotalAmount is what left the sending account.
type FeeBreakdown struct {
	Amount      decimal.Decimal
	NetworkFee  decimal.Decimal
	TotalAmount decimal.Decimal
	AccountType string
}

// ReceivedAmount is the variant used when only the credited side
// matters: the fee is paid by the external counterparty and never
// touches the ledger.
type ReceivedAmount struct {
	Received    decimal.Decimal
	NetworkFee  decimal.Decimal
	AccountType string
}

// ConfidenceMatch scores every registered account against the identity
// fields visible on the receipt. Scores are 0-100.
type ConfidenceMatch struct {
	Amount decimal.Decimal
	Scores map[string]int
}

// Best returns the top-scored account label and its score.
func (m ConfidenceMatch) Best() (string, int) {
	best, bestScore := "", -1

	for label, score := range m.Scores {
		if score > bestScore || (score == bestScore && label < best) {
			best, bestScore = label, score
		}
	}

	return best, bestScore
}

// Extractor implements the extraction contracts on top of a ChatClient.
type Extractor struct {
	client ChatClient
}

// NewExtractor returns an extractor using the given client.
func NewExtractor(client ChatClient) *Extractor {
	return &Extractor{client: client}
}

// DetectBankAndAmount reads the transaction amount off a local-currency
// receipt and picks which candidate account it belongs to. When
// ownerPrefix is set the candidates are first narrowed to that staff's
// accounts, falling back to the full list if none match.
func (e *Extractor) DetectBankAndAmount(ctx context.Context, imageBase64 string, candidates []domain.Account, ownerPrefix string) (BankAmount, error) {
	l := zerolog.Ctx(ctx)

	if ownerPrefix != "" {
		var owned []domain.Account

		for _, a := range candidates {
			if accountkey.Normalize(a.Prefix) == accountkey.Normalize(ownerPrefix) {
				owned = append(owned, a)
			}
		}

		if len(owned) > 0 {
			candidates = owned
		}
	}

	if len(candidates) == 0 {
		return BankAmount{}, ErrExtraction
	}

	var list strings.Builder
	for i, a := range candidates {
		fmt.Fprintf(&list, "%d. %s\n", i+1, a.Label())
	}

	prompt := fmt.Sprintf(`Analyze this payment receipt.

Available accounts:
%s
Extract:
1. Transaction amount
2. Account number (1-%d)

Bank Recognition:
- CB: Blue "Account History" OR rainbow "CB BANK" logo
- KBZ: "INTERNAL TRANSFER - CONFIRM" with green banner
- Kpay P: RED/CORAL color with "Payment Successful"
- Kpay: BLUE with Myanmar text and "KBZ Pay"
- Wave: YELLOW header OR green "Successful" with "Cash In"
- AYA: "Payment Complete" OR "AYA PAY" logo
- Yoma: "Flexi Everyday Account"

Return JSON:
{"amount": <number>, "account_number": <1-%d>}`, list.String(), len(candidates), len(candidates))

	fields, err := e.complete(ctx, prompt, imageBase64)
	if err != nil {
		l.Info().Err(err).Msg("bank/amount extraction failed")
		return BankAmount{}, ErrExtraction
	}

	amount, ok := fieldDecimal(fields, "amount")
	if !ok {
		return BankAmount{}, ErrExtraction
	}

	idx, ok := fieldInt(fields, "account_number")
	if !ok || idx < 1 || idx > len(candidates) {
		l.Info().Int("account_number", idx).Msg("account index out of range")
		return BankAmount{}, ErrExtraction
	}

	// Receipts may display a negative amount meaning money left the
	// account; only the magnitude matters here.
	return BankAmount{Amount: amount.Abs(), Account: candidates[idx-1]}, nil
}

// ExtractAmountWithFee reads a crypto sending receipt. Exchange-type
// receipts already include the network fee in the displayed amount; the
// other types display it separately and it is added to get the total.
// A total_amount field returned directly by the model wins over the
// local arithmetic, since it reflects model-side correction.
func (e *Extractor) ExtractAmountWithFee(ctx context.Context, imageBase64 string) (FeeBreakdown, error) {
	l := zerolog.Ctx(ctx)

	prompt := `Analyze this crypto transfer receipt.

Extract:
1. The transfer amount shown
2. The network fee shown (0 if none visible)
3. The total amount deducted from the sender, if shown
4. The account type: "exchange" if this is an exchange withdrawal
   (displayed amount already includes the fee), "wallet" or "swift"
   otherwise (fee is displayed separately)

Return JSON:
{"amount": <number>, "network_fee": <number>, "total_amount": <number or null>, "account_type": "<exchange|wallet|swift>"}`

	fields, err := e.complete(ctx, prompt, imageBase64)
	if err != nil {
		l.Info().Err(err).Msg("fee extraction failed")
		return FeeBreakdown{}, ErrExtraction
	}

	amount, ok := fieldDecimal(fields, "amount")
	if !ok {
		return FeeBreakdown{}, ErrExtraction
	}

	fee, ok := fieldDecimal(fields, "network_fee")
	if !ok {
		fee = decimal.Zero
	}

	out := FeeBreakdown{
		Amount:      amount.Abs(),
		NetworkFee:  fee.Abs(),
		AccountType: fieldString(fields, "account_type"),
	}

	switch out.AccountType {
	case AccountTypeExchange:
		out.TotalAmount = out.Amount
	case AccountTypeWallet, AccountTypeSwift:
		out.TotalAmount = out.Amount.Add(out.NetworkFee)
	default:
		// Unrecognized mode defaults to fee-additive.
		out.AccountType = AccountTypeWallet
		out.TotalAmount = out.Amount.Add(out.NetworkFee)
	}

	if total, ok := fieldDecimal(fields, "total_amount"); ok && total.IsPositive() {
		out.TotalAmount = total.Abs()
	}

	return out, nil
}

// ExtractReceivedAmount reads the credited amount off a receiving
// receipt. The received amount excludes any fee by definition; no
// addition step.
func (e *Extractor) ExtractReceivedAmount(ctx context.Context, imageBase64 string) (ReceivedAmount, error) {
	l := zerolog.Ctx(ctx)

	prompt := `Analyze this transfer receipt from the receiving side.

Extract:
1. The amount credited to the receiving account (excluding any fee)
2. The network fee shown (0 if none visible)
3. The account type: "exchange", "wallet" or "swift"

Return JSON:
{"received_amount": <number>, "network_fee": <number>, "account_type": "<exchange|wallet|swift>"}`

	fields, err := e.complete(ctx, prompt, imageBase64)
	if err != nil {
		l.Info().Err(err).Msg("received amount extraction failed")
		return ReceivedAmount{}, ErrExtraction
	}

	received, ok := fieldDecimal(fields, "received_amount")
	if !ok {
		return ReceivedAmount{}, ErrExtraction
	}

	fee, ok := fieldDecimal(fields, "network_fee")
	if !ok {
		fee = decimal.Zero
	}

	accountType := fieldString(fields, "account_type")
	if accountType != AccountTypeExchange && accountType != AccountTypeSwift {
		accountType = AccountTypeWallet
	}

	return ReceivedAmount{
		Received:    received.Abs(),
		NetworkFee:  fee.Abs(),
		AccountType: accountType,
	}, nil
}

// MatchWithConfidence identifies the paid-into account from partial
// identity fields on the receipt: the trailing digits of the account
// number and the holder name score 50 points each. Every registered
// account gets a score, 0 when nothing matched.
func (e *Extractor) MatchWithConfidence(ctx context.Context, imageBase64 string, registered []domain.NamedAccount) (ConfidenceMatch, error) {
	l := zerolog.Ctx(ctx)

	if len(registered) == 0 {
		return ConfidenceMatch{}, ErrExtraction
	}

	var list strings.Builder
	for i, a := range registered {
		fmt.Fprintf(&list, "%d. account number ending %s, holder %q\n", i+1, a.AccountSuffix, a.HolderName)
	}

	prompt := fmt.Sprintf(`Analyze this payment receipt.

Registered accounts:
%s
Extract the transaction amount. Then for EVERY registered account report
whether the visible account number digits match its ending and whether
the visible holder name matches.

Return JSON:
{"amount": <number>, "matches": [{"account_number": <1-%d>, "suffix_match": <bool>, "name_match": <bool>}]}`, list.String(), len(registered))

	fields, err := e.complete(ctx, prompt, imageBase64)
	if err != nil {
		l.Info().Err(err).Msg("confidence match failed")
		return ConfidenceMatch{}, ErrExtraction
	}

	amount, ok := fieldDecimal(fields, "amount")
	if !ok {
		return ConfidenceMatch{}, ErrExtraction
	}

	out := ConfidenceMatch{
		Amount: amount.Abs(),
		Scores: make(map[string]int, len(registered)),
	}

	for _, a := range registered {
		out.Scores[a.Label] = 0
	}

	rawMatches, _ := fields["matches"].([]any)
	for _, raw := range rawMatches {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		idx, ok := fieldInt(m, "account_number")
		if !ok || idx < 1 || idx > len(registered) {
			continue
		}

		score := 0
		if b, _ := m["suffix_match"].(bool); b {
			score += 50
		}
		if b, _ := m["name_match"].(bool); b {
			score += 50
		}

		out.Scores[registered[idx-1].Label] = score
	}

	return out, nil
}

func (e *Extractor) complete(ctx context.Context, prompt, imageBase64 string) (map[string]any, error) {
	raw, err := e.client.Complete(ctx, prompt, imageBase64)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

var jsonFence = regexp.MustCompile("```json\\s*|\\s*```")

// CleanJSON strips markdown fences and isolates the outermost JSON
// object from a model reply.
func CleanJSON(raw string) string {
	s := jsonFence.ReplaceAllString(strings.TrimSpace(raw), "")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")

	if start != -1 && end != -1 && end > start {
		s = s[start : end+1]
	}

	return s
}

func fieldDecimal(fields map[string]any, key string) (decimal.Decimal, bool) {
	switch v := fields[key].(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}

	return decimal.Zero, false
}

func fieldInt(fields map[string]any, key string) (int, bool) {
	d, ok := fieldDecimal(fields, key)
	if !ok {
		return 0, false
	}

	return int(d.IntPart()), true
}

func fieldString(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.ToLower(strings.TrimSpace(s))
}
