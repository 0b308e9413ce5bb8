// Package router classifies announcement messages and drives evidence
// extraction, reconciliation and ledger mutation for each transaction
// kind. Single-photo replies and debounced multi-photo bursts converge
// on the same settle step.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/infinity-otc/balancebot/internal/accountkey"
	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/internal/ledgerservice"
	"github.com/infinity-otc/balancebot/internal/pending"
	"github.com/infinity-otc/balancebot/internal/reconcile"
	"github.com/infinity-otc/balancebot/internal/snapshot"
	"github.com/infinity-otc/balancebot/internal/vision"
	"github.com/infinity-otc/balancebot/pkg/configpkg"
	"github.com/infinity-otc/balancebot/pkg/currencypkg"
)

// Sender delivers outbound messages to the chat transport.
//
//go:generate mockgen -source service.go -destination service_mock.go -package router
type Sender interface {
	Send(ctx context.Context, chatID int64, threadID int, text string) error
	Reply(ctx context.Context, chatID int64, messageID int, text string) error
}

// FileFetcher downloads a photo by its transport reference.
type FileFetcher interface {
	FetchBase64(ctx context.Context, photoID string) (string, error)
}

// Extractor provides the evidence extraction contracts.
type Extractor interface {
	DetectBankAndAmount(ctx context.Context, imageBase64 string, candidates []domain.Account, ownerPrefix string) (vision.BankAmount, error)
	ExtractAmountWithFee(ctx context.Context, imageBase64 string) (vision.FeeBreakdown, error)
	ExtractReceivedAmount(ctx context.Context, imageBase64 string) (vision.ReceivedAmount, error)
	MatchWithConfidence(ctx context.Context, imageBase64 string, registered []domain.NamedAccount) (vision.ConfidenceMatch, error)
}

// Balances provides the ledger service interface the router needs.
type Balances interface {
	Load(ctx context.Context, chatID int64, text string) (domain.Ledger, error)
	Loaded(chatID int64) bool
	Accounts(chatID int64, currency string) ([]domain.Account, error)
	AccountsByPrefix(chatID int64, currency, prefix string) ([]domain.Account, error)
	Snapshot(chatID int64) (string, error)
	ApplyLegs(ctx context.Context, chatID int64, legs []ledgerservice.Leg) ([]string, error)
}

// Registry provides the persisted configuration lookups.
type Registry interface {
	GetPrefix(ctx context.Context, userID int64) (string, error)
	SetPrefix(ctx context.Context, userID int64, prefix, username string) (domain.UserPrefix, error)
	ListPrefixes(ctx context.Context) ([]domain.UserPrefix, error)
	ReceivingAccount(ctx context.Context) (string, error)
	SetReceivingAccount(ctx context.Context, label string) error
	ListNamedAccounts(ctx context.Context) ([]domain.NamedAccount, error)
}

// Bank labels for the staff evidence account per receipt account type.
var accountTypeBanks = map[string]string{
	vision.AccountTypeExchange: "Binance",
	vision.AccountTypeWallet:   "Wallet",
	vision.AccountTypeSwift:    "Swift",
}

// Router wires the transaction flow together.
type Router struct {
	config    configpkg.Config
	balances  Balances
	extractor Extractor
	registry  Registry
	sender    Sender
	fetcher   FileFetcher
	engine    *reconcile.Engine
	tracker   *pending.Tracker
	collector *pending.Collector
	logger    zerolog.Logger

	// Debounce scheduling, replaceable in tests.
	schedule func(d time.Duration, f func())
}

// New returns a router over the given collaborators.
func New(
	config configpkg.Config,
	balances Balances,
	extractor Extractor,
	registry Registry,
	sender Sender,
	fetcher FileFetcher,
	engine *reconcile.Engine,
	logger zerolog.Logger,
) *Router {
	return &Router{
		config:    config,
		balances:  balances,
		extractor: extractor,
		registry:  registry,
		sender:    sender,
		fetcher:   fetcher,
		engine:    engine,
		tracker:   pending.NewTracker(),
		collector: pending.NewCollector(),
		logger:    logger,
		schedule:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// HandleMessage routes one inbound message.
func (r *Router) HandleMessage(ctx context.Context, msg Message) {
	l := zerolog.Ctx(ctx)

	if msg.ChatID != r.config.TargetGroupID {
		return
	}

	if name, args, ok := msg.Command(); ok {
		r.handleCommand(ctx, msg, name, args)
		return
	}

	// Balance topic: auto-load any message that looks like a snapshot.
	if msg.ThreadID == r.config.BalanceTopicID {
		if msg.Text != "" && snapshot.IsSnapshot(msg.Text) {
			if _, err := r.balances.Load(ctx, msg.ChatID, msg.Text); err != nil {
				l.Info().Err(err).Msg("balance topic message did not parse")
			}
		}

		return
	}

	if msg.ThreadID != r.config.TransfersTopicID || msg.PhotoID == "" {
		return
	}

	// Staff-initiated announcements declare themselves in the caption.
	if declared, ok := ParseCoinTransfer(msg.Text); ok {
		r.handleCoinTransfer(ctx, msg, declared)
		return
	}

	if declared, ok := ParseInternalTransfer(msg.Text); ok {
		r.handleInternalTransfer(ctx, msg, declared)
		return
	}

	if msg.ReplyTo == nil || msg.ReplyTo.Text == "" {
		if declared, ok := ParseBuySell(msg.Text); ok && declared.Kind == domain.KindSell {
			declared.Kind = domain.KindP2PSell
			r.handleP2PSell(ctx, msg, declared)
		}

		return
	}

	// Evidence photo replying to a customer announcement.
	if msg.MediaGroupID != "" {
		r.collectBurstPhoto(ctx, msg)
		return
	}

	declared, ok := ParseBuySell(msg.ReplyTo.Text)
	if !ok {
		return
	}

	switch declared.Kind {
	case domain.KindBuy:
		r.handleBuyPhoto(ctx, msg, declared)
	case domain.KindSell:
		r.handleSellPhoto(ctx, msg, declared)
	}
}

func (r *Router) collectBurstPhoto(ctx context.Context, msg Message) {
	l := zerolog.Ctx(ctx)

	groupID := msg.MediaGroupID

	count, first := r.collector.Add(groupID, msg.PhotoID, pending.Group{
		ChatID:       msg.ChatID,
		ThreadID:     msg.ThreadID,
		MessageID:    msg.MessageID,
		SenderID:     msg.SenderID,
		Caption:      msg.Text,
		ReplyText:    msg.ReplyTo.Text,
		ReplyID:      msg.ReplyTo.MessageID,
		ReplyPhotoID: msg.ReplyTo.PhotoID,
	})

	l.Info().Str("media_group", groupID).Int("photos", count).Msg("photo buffered")

	// One deferred drain per burst, scheduled off the first photo and
	// delayed long enough to outlast delivery jitter.
	if first {
		r.schedule(r.config.MediaGroupDelay, func() {
			dctx := r.logger.WithContext(context.Background())
			r.DrainMediaGroup(dctx, groupID)
		})
	}
}

// DrainMediaGroup processes a buffered burst exactly once. Firing twice
// for the same id is a no-op; buffer and lock are cleared whether the
// processing succeeds or fails.
func (r *Router) DrainMediaGroup(ctx context.Context, groupID string) {
	l := zerolog.Ctx(ctx)

	group, ok := r.collector.Claim(groupID)
	if !ok {
		l.Info().Str("media_group", groupID).Msg("burst already claimed or unknown")
		return
	}
	defer r.collector.Release(groupID)

	declared, ok := ParseBuySell(group.ReplyText)
	if !ok {
		l.Info().Str("media_group", groupID).Msg("burst reply target is not a buy/sell announcement")
		return
	}

	l.Info().Str("media_group", groupID).Int("photos", len(group.Photos)).Msg("draining burst")

	switch declared.Kind {
	case domain.KindBuy:
		r.processBuyBurst(ctx, group, declared)
	case domain.KindSell:
		r.processSellBurst(ctx, group, declared)
	}
}

func (r *Router) handleBuyPhoto(ctx context.Context, msg Message, declared domain.DeclaredTransaction) {
	l := zerolog.Ctx(ctx)

	if !r.balances.Loaded(msg.ChatID) {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	prefix, _ := r.registry.GetPrefix(ctx, msg.SenderID)

	detected, err := r.detectFromPhoto(ctx, msg.ChatID, msg.PhotoID, prefix)
	if err != nil {
		r.reply(ctx, msg, "Could not detect bank/amount from the receipt.")
		return
	}

	amount := detected.Amount
	if fee, ok := ParseFee(msg.Text); ok {
		amount = amount.Add(fee)
	}

	seed := pending.Entry{
		Kind:         domain.KindBuy,
		AccountLabel: detected.Account.Label(),
		Currency:     currencypkg.MMK,
		Declared:     declared.MMK,
		Prefix:       prefix,
	}

	total, _, count := r.tracker.Append(int64(msg.ReplyTo.MessageID), seed, amount, decimal.Zero)
	entry, _ := r.tracker.Get(int64(msg.ReplyTo.MessageID))

	l.Info().
		Str("account", entry.AccountLabel).
		Str("total", total.String()).
		Int("photos", count).
		Msg("buy evidence accumulated")

	policy := r.engine.PolicyFor(domain.KindBuy, currencypkg.MMK)
	if reconcile.Reconcile(declared.MMK, total, policy) != domain.VerdictAccepted {
		r.reply(ctx, msg, fmt.Sprintf(
			"Received %d photo(s)\nTotal: %s MMK\nExpected: %s MMK\n\nSend more photos if needed",
			count, display(total, currencypkg.MMK), display(declared.MMK, currencypkg.MMK)))

		return
	}

	if r.settleBuy(ctx, msg.ChatID, msg.MessageID, declared, entry.AccountLabel, total, count) {
		r.tracker.Resolve(int64(msg.ReplyTo.MessageID))
	}
}

func (r *Router) processBuyBurst(ctx context.Context, group pending.Group, declared domain.DeclaredTransaction) {
	l := zerolog.Ctx(ctx)

	msg := burstMessage(group)

	if !r.balances.Loaded(group.ChatID) {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	prefix, _ := r.registry.GetPrefix(ctx, group.SenderID)

	total := decimal.Zero
	label := ""
	processed := 0

	for i, photoID := range group.Photos {
		detected, err := r.detectFromPhoto(ctx, group.ChatID, photoID, prefix)
		if err != nil {
			l.Warn().Int("photo", i+1).Msg("burst photo did not extract")
			continue
		}

		total = total.Add(detected.Amount)
		processed++

		// First successfully identified account wins for the burst.
		if label == "" {
			label = detected.Account.Label()
		}
	}

	if label == "" {
		r.reply(ctx, msg, "Could not detect bank from the receipts.")
		return
	}

	if fee, ok := ParseFee(group.Caption); ok {
		total = total.Add(fee)
	}

	policy := r.engine.PolicyFor(domain.KindBuy, currencypkg.MMK)
	if reconcile.Reconcile(declared.MMK, total, policy) != domain.VerdictAccepted {
		r.reply(ctx, msg, fmt.Sprintf(
			"Amount mismatch!\nExpected: %s MMK\nDetected: %s MMK (from %d photos)",
			display(declared.MMK, currencypkg.MMK), display(total, currencypkg.MMK), len(group.Photos)))

		return
	}

	r.settleBuy(ctx, group.ChatID, group.MessageID, declared, label, total, processed)
}

// settleBuy applies the reconciled buy: debit the matched MMK account,
// credit the configured receiving USDT account, republish the snapshot.
// Both the single-photo and the burst path land here.
func (r *Router) settleBuy(ctx context.Context, chatID int64, replyToID int, declared domain.DeclaredTransaction, label string, total decimal.Decimal, photos int) bool {
	legs := []ledgerservice.Leg{
		{Currency: currencypkg.MMK, Label: label, Delta: total.Neg()},
	}

	var warnings []string

	receiving, err := r.registry.ReceivingAccount(ctx)
	if err == nil && receiving != "" {
		legs = append(legs, ledgerservice.Leg{Currency: currencypkg.USDT, Label: receiving, Delta: declared.USDT})
	} else {
		warnings = append(warnings, "no receiving account configured; USDT credit skipped")
	}

	applied, err := r.balances.ApplyLegs(ctx, chatID, legs)
	warnings = append(warnings, applied...)

	if err != nil {
		r.replyMutationError(ctx, chatID, replyToID, err)
		return false
	}

	r.republish(ctx, chatID)
	r.alertAll(ctx, chatID, warnings)

	r.replyTo(ctx, chatID, replyToID, fmt.Sprintf(
		"Buy processed!\n\n%d photo(s): %s MMK\nMMK: -%s (%s)\nUSDT: +%s",
		photos, display(total, currencypkg.MMK), display(total, currencypkg.MMK), label, display(declared.USDT, currencypkg.USDT)))

	return true
}

func (r *Router) handleSellPhoto(ctx context.Context, msg Message, declared domain.DeclaredTransaction) {
	if !r.balances.Loaded(msg.ChatID) {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	prefix, _ := r.registry.GetPrefix(ctx, msg.SenderID)
	if prefix == "" {
		r.reply(ctx, msg, "No staff prefix mapped for you. Ask an admin to run /set_user.")
		return
	}

	customer, ok := r.verifySellCustomerReceipt(ctx, msg, msg.ReplyTo.PhotoID, declared)
	if !ok {
		return
	}

	image, err := r.fetcher.FetchBase64(ctx, msg.PhotoID)
	if err != nil {
		r.reply(ctx, msg, "Could not fetch the USDT receipt. Please resend.")
		return
	}

	breakdown, err := r.extractor.ExtractAmountWithFee(ctx, image)
	if err != nil {
		r.reply(ctx, msg, "Could not detect the USDT amount. Please resend.")
		return
	}

	seed := pending.Entry{
		Kind:          domain.KindSell,
		AccountLabel:  customer.Account.Label(),
		Currency:      currencypkg.USDT,
		Declared:      declared.USDT,
		Prefix:        prefix,
		CounterAmount: customer.Amount,
		AccountType:   breakdown.AccountType,
	}

	// The fee component is whatever the total deduction exceeds the
	// displayed amount by; zero for receipts that fold the fee in.
	total, feeTotal, count := r.tracker.Append(int64(msg.ReplyTo.MessageID), seed, breakdown.Amount, breakdown.TotalAmount.Sub(breakdown.Amount))
	entry, _ := r.tracker.Get(int64(msg.ReplyTo.MessageID))

	policy := r.engine.PolicyFor(domain.KindSell, currencypkg.USDT)
	if reconcile.Reconcile(declared.USDT, total, policy) != domain.VerdictAccepted {
		r.reply(ctx, msg, fmt.Sprintf(
			"Received %d photo(s)\nTotal: %s USDT\nExpected: %s USDT\n\nSend more photos if needed",
			count, display(total, currencypkg.USDT), display(declared.USDT, currencypkg.USDT)))

		return
	}

	if r.settleSell(ctx, msg.ChatID, msg.MessageID, entry, total.Add(feeTotal), count) {
		r.tracker.Resolve(int64(msg.ReplyTo.MessageID))
	}
}

func (r *Router) processSellBurst(ctx context.Context, group pending.Group, declared domain.DeclaredTransaction) {
	l := zerolog.Ctx(ctx)

	msg := burstMessage(group)

	if !r.balances.Loaded(group.ChatID) {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	prefix, _ := r.registry.GetPrefix(ctx, group.SenderID)
	if prefix == "" {
		r.reply(ctx, msg, "No staff prefix mapped for you. Ask an admin to run /set_user.")
		return
	}

	customer, ok := r.verifySellCustomerReceipt(ctx, msg, group.ReplyPhotoID, declared)
	if !ok {
		return
	}

	total, feeTotal := decimal.Zero, decimal.Zero
	accountType := ""

	for i, photoID := range group.Photos {
		image, err := r.fetcher.FetchBase64(ctx, photoID)
		if err != nil {
			l.Warn().Int("photo", i+1).Msg("burst photo fetch failed")
			continue
		}

		breakdown, err := r.extractor.ExtractAmountWithFee(ctx, image)
		if err != nil {
			l.Warn().Int("photo", i+1).Msg("burst photo did not extract")
			continue
		}

		total = total.Add(breakdown.Amount)
		feeTotal = feeTotal.Add(breakdown.TotalAmount.Sub(breakdown.Amount))

		if accountType == "" {
			accountType = breakdown.AccountType
		}
	}

	policy := r.engine.PolicyFor(domain.KindSell, currencypkg.USDT)
	if reconcile.Reconcile(declared.USDT, total, policy) != domain.VerdictAccepted {
		r.reply(ctx, msg, fmt.Sprintf(
			"USDT amount mismatch!\nExpected: %s USDT\nDetected: %s USDT (from %d photos)",
			display(declared.USDT, currencypkg.USDT), display(total, currencypkg.USDT), len(group.Photos)))

		return
	}

	entry := pending.Entry{
		Kind:          domain.KindSell,
		AccountLabel:  customer.Account.Label(),
		Currency:      currencypkg.USDT,
		Declared:      declared.USDT,
		Prefix:        prefix,
		CounterAmount: customer.Amount,
		AccountType:   accountType,
	}

	r.settleSell(ctx, group.ChatID, group.MessageID, entry, total.Add(feeTotal), len(group.Photos))
}

// verifySellCustomerReceipt checks the customer's local-currency receipt
// attached to the announcement against the declared MMK amount.
func (r *Router) verifySellCustomerReceipt(ctx context.Context, msg Message, receiptPhotoID string, declared domain.DeclaredTransaction) (vision.BankAmount, bool) {
	if receiptPhotoID == "" {
		r.reply(ctx, msg, "Original message has no receipt photo.")
		return vision.BankAmount{}, false
	}

	detected, err := r.detectFromPhoto(ctx, msg.ChatID, receiptPhotoID, "")
	if err != nil {
		r.reply(ctx, msg, "Could not detect bank/amount from the customer receipt.")
		return vision.BankAmount{}, false
	}

	policy := r.engine.PolicyFor(domain.KindSell, currencypkg.MMK)
	if reconcile.Reconcile(declared.MMK, detected.Amount, policy) != domain.VerdictAccepted {
		r.reply(ctx, msg, fmt.Sprintf(
			"MMK mismatch!\nExpected: %s\nDetected: %s",
			display(declared.MMK, currencypkg.MMK), display(detected.Amount, currencypkg.MMK)))

		return vision.BankAmount{}, false
	}

	return detected, true
}

// settleSell applies the reconciled sell: credit the customer's MMK
// account, debit the staff evidence account incl. network fees.
func (r *Router) settleSell(ctx context.Context, chatID int64, replyToID int, entry pending.Entry, debitTotal decimal.Decimal, photos int) bool {
	bank, ok := accountTypeBanks[entry.AccountType]
	if !ok {
		bank = accountTypeBanks[vision.AccountTypeWallet]
	}

	staffLabel := accountkey.Join(entry.Prefix, bank)

	legs := []ledgerservice.Leg{
		{Currency: currencypkg.USDT, Label: staffLabel, Delta: debitTotal.Neg()},
	}

	if entry.AccountLabel != "" {
		legs = append(legs, ledgerservice.Leg{Currency: currencypkg.MMK, Label: entry.AccountLabel, Delta: entry.CounterAmount})
	}

	warnings, err := r.balances.ApplyLegs(ctx, chatID, legs)
	if err != nil {
		r.replyMutationError(ctx, chatID, replyToID, err)
		return false
	}

	r.republish(ctx, chatID)
	r.alertAll(ctx, chatID, warnings)

	r.replyTo(ctx, chatID, replyToID, fmt.Sprintf(
		"Sell processed!\n\n%d photo(s)\nMMK: +%s\nUSDT: -%s (%s)",
		photos, display(entry.CounterAmount, currencypkg.MMK), display(debitTotal, currencypkg.USDT), staffLabel))

	return true
}

func (r *Router) handleP2PSell(ctx context.Context, msg Message, declared domain.DeclaredTransaction) {
	l := zerolog.Ctx(ctx)

	if !r.balances.Loaded(msg.ChatID) {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	prefix, _ := r.registry.GetPrefix(ctx, msg.SenderID)
	if prefix == "" {
		r.reply(ctx, msg, "No staff prefix mapped for you. Ask an admin to run /set_user.")
		return
	}

	registered, err := r.registry.ListNamedAccounts(ctx)
	if err != nil || len(registered) == 0 {
		r.reply(ctx, msg, "No named accounts registered for matching.")
		return
	}

	image, err := r.fetcher.FetchBase64(ctx, msg.PhotoID)
	if err != nil {
		r.reply(ctx, msg, "Could not fetch the receipt. Please resend.")
		return
	}

	match, err := r.extractor.MatchWithConfidence(ctx, image, registered)
	if err != nil {
		r.reply(ctx, msg, "Could not read the receipt. Please resend.")
		return
	}

	best, score := match.Best()
	if score < r.config.ConfidenceFloor {
		r.reply(ctx, msg, fmt.Sprintf(
			"Low confidence match (best %s at %d%%), not applying.\n\n%s\nPlease confirm the account manually.",
			best, score, scoreTable(match.Scores)))

		return
	}

	l.Info().Str("account", best).Int("confidence", score).Msg("p2p receipt matched")

	policy := r.engine.PolicyFor(domain.KindP2PSell, currencypkg.MMK)
	if reconcile.Reconcile(declared.MMK, match.Amount, policy) != domain.VerdictAccepted {
		r.reply(ctx, msg, fmt.Sprintf(
			"MMK mismatch!\nExpected: %s\nDetected: %s",
			display(declared.MMK, currencypkg.MMK), display(match.Amount, currencypkg.MMK)))

		return
	}

	// P2P always debits the declared amount plus an explicit fee.
	fee, _ := ParseFee(msg.Text)
	debit := declared.USDT.Add(fee)

	staff, err := r.balances.AccountsByPrefix(msg.ChatID, currencypkg.USDT, prefix)
	if err != nil || len(staff) == 0 {
		r.reply(ctx, msg, "No USDT account found for prefix "+prefix+".")
		return
	}

	legs := []ledgerservice.Leg{
		{Currency: currencypkg.USDT, Label: staff[0].Label(), Delta: debit.Neg()},
		{Currency: currencypkg.MMK, Label: best, Delta: match.Amount},
	}

	warnings, err := r.balances.ApplyLegs(ctx, msg.ChatID, legs)
	if err != nil {
		r.replyMutationError(ctx, msg.ChatID, msg.MessageID, err)
		return
	}

	r.republish(ctx, msg.ChatID)
	r.alertAll(ctx, msg.ChatID, warnings)

	r.reply(ctx, msg, fmt.Sprintf(
		"P2P sell processed!\n\nMMK: +%s (%s, %d%% match)\nUSDT: -%s (%s, incl. fee %s)",
		display(match.Amount, currencypkg.MMK), best, score,
		display(debit, currencypkg.USDT), staff[0].Label(), display(fee, currencypkg.USDT)))
}

func (r *Router) handleInternalTransfer(ctx context.Context, msg Message, declared domain.DeclaredTransaction) {
	if !r.balances.Loaded(msg.ChatID) {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	currency, ok := r.findCurrency(msg.ChatID, declared.FromLabel)
	if !ok {
		r.reply(ctx, msg, "Account "+declared.FromLabel+" not in the loaded balance.")
		return
	}

	image, err := r.fetcher.FetchBase64(ctx, msg.PhotoID)
	if err != nil {
		r.reply(ctx, msg, "Could not fetch the receipt. Please resend.")
		return
	}

	received, err := r.extractor.ExtractReceivedAmount(ctx, image)
	if err != nil {
		r.reply(ctx, msg, "Could not detect the transfer amount. Please resend.")
		return
	}

	legs := []ledgerservice.Leg{
		{Currency: currency, Label: declared.FromLabel, Delta: received.Received.Neg()},
		{Currency: currency, Label: declared.ToLabel, Delta: received.Received},
	}

	warnings, err := r.balances.ApplyLegs(ctx, msg.ChatID, legs)
	if err != nil {
		r.replyMutationError(ctx, msg.ChatID, msg.MessageID, err)
		return
	}

	r.republish(ctx, msg.ChatID)
	r.alertAll(ctx, msg.ChatID, warnings)

	r.reply(ctx, msg, fmt.Sprintf(
		"Transfer processed!\n\n%s: %s -> %s (%s)",
		currency, declared.FromLabel, declared.ToLabel, display(received.Received, currency)))
}

func (r *Router) handleCoinTransfer(ctx context.Context, msg Message, declared domain.DeclaredTransaction) {
	l := zerolog.Ctx(ctx)

	if !r.balances.Loaded(msg.ChatID) {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	// Sent, fee and received are declared in the text; the photo only
	// cross-checks. Extraction failure falls back to the declaration.
	policy := r.engine.PolicyFor(domain.KindCoinTransfer, currencypkg.USDT)

	if image, err := r.fetcher.FetchBase64(ctx, msg.PhotoID); err == nil {
		if breakdown, err := r.extractor.ExtractAmountWithFee(ctx, image); err == nil {
			// Any disagreement with the declaration is surfaced, whether
			// the receipt reads high or low.
			if reconcile.Reconcile(declared.Sent, breakdown.TotalAmount, policy) != domain.VerdictAccepted {
				if !policy.ProceedOnMismatch && !reconcile.WithinOverDelivery(declared.Sent, breakdown.TotalAmount, policy) {
					r.reply(ctx, msg, fmt.Sprintf(
						"Amount mismatch!\nDeclared: %s USDT\nReceipt: %s USDT",
						display(declared.Sent, currencypkg.USDT), display(breakdown.TotalAmount, currencypkg.USDT)))

					return
				}

				r.alert(ctx, msg.ChatID, fmt.Sprintf(
					"Coin transfer discrepancy: declared %s USDT, receipt shows %s USDT. Proceeding.",
					display(declared.Sent, currencypkg.USDT), display(breakdown.TotalAmount, currencypkg.USDT)))
			}
		} else {
			l.Info().Err(err).Msg("coin transfer receipt did not extract; using declared amounts")
		}
	}

	legs := []ledgerservice.Leg{
		{Currency: currencypkg.USDT, Label: declared.FromLabel, Delta: declared.Sent.Neg()},
		{Currency: currencypkg.USDT, Label: declared.ToLabel, Delta: declared.Received},
	}

	warnings, err := r.balances.ApplyLegs(ctx, msg.ChatID, legs)
	if err != nil {
		r.replyMutationError(ctx, msg.ChatID, msg.MessageID, err)
		return
	}

	r.republish(ctx, msg.ChatID)
	r.alertAll(ctx, msg.ChatID, warnings)

	r.reply(ctx, msg, fmt.Sprintf(
		"Coin transfer processed!\n\n%s -%s USDT\n%s +%s USDT\nFee: %s USDT",
		declared.FromLabel, display(declared.Sent, currencypkg.USDT),
		declared.ToLabel, display(declared.Received, currencypkg.USDT),
		display(declared.Fee, currencypkg.USDT)))
}

func (r *Router) detectFromPhoto(ctx context.Context, chatID int64, photoID, ownerPrefix string) (vision.BankAmount, error) {
	image, err := r.fetcher.FetchBase64(ctx, photoID)
	if err != nil {
		return vision.BankAmount{}, err
	}

	candidates, err := r.balances.Accounts(chatID, currencypkg.MMK)
	if err != nil {
		return vision.BankAmount{}, err
	}

	return r.extractor.DetectBankAndAmount(ctx, image, candidates, ownerPrefix)
}

func (r *Router) findCurrency(chatID int64, label string) (string, bool) {
	for _, currency := range currencypkg.SupportedCurrencies {
		accounts, err := r.balances.Accounts(chatID, currency)
		if err != nil {
			return "", false
		}

		for _, a := range accounts {
			if accountkey.Match(a.Label(), label) {
				return currency, true
			}
		}
	}

	return "", false
}

// republish sends the freshly formatted snapshot to the balance topic.
func (r *Router) republish(ctx context.Context, chatID int64) {
	l := zerolog.Ctx(ctx)

	text, err := r.balances.Snapshot(chatID)
	if err != nil {
		l.Error().Err(err).Msg("snapshot after mutation failed")
		return
	}

	if err := r.sender.Send(ctx, chatID, r.config.BalanceTopicID, text); err != nil {
		l.Error().Err(err).Msg("snapshot republish failed")
	}
}

func (r *Router) replyMutationError(ctx context.Context, chatID int64, replyToID int, err error) {
	var insufficient *domain.InsufficientFundsError

	switch {
	case errors.As(err, &insufficient):
		r.replyTo(ctx, chatID, replyToID, fmt.Sprintf(
			"Insufficient funds in %s: short %s. Nothing applied for this leg.",
			insufficient.Account, insufficient.Shortfall))
	case errors.Is(err, domain.ErrAccountNotFound):
		r.replyTo(ctx, chatID, replyToID, "Account not found in the loaded balance. Transaction aborted.")
	case errors.Is(err, domain.ErrBalanceNotLoaded):
		r.replyTo(ctx, chatID, replyToID, "Balance not loaded.")
	default:
		r.replyTo(ctx, chatID, replyToID, "Could not apply the transaction: "+err.Error())
	}
}

func (r *Router) reply(ctx context.Context, msg Message, text string) {
	r.replyTo(ctx, msg.ChatID, msg.MessageID, text)
}

func (r *Router) replyTo(ctx context.Context, chatID int64, messageID int, text string) {
	l := zerolog.Ctx(ctx)

	if err := r.sender.Reply(ctx, chatID, messageID, text); err != nil {
		l.Error().Err(err).Msg("reply failed")
	}
}

func (r *Router) alert(ctx context.Context, chatID int64, text string) {
	l := zerolog.Ctx(ctx)

	if err := r.sender.Send(ctx, chatID, r.config.AlertsTopicID, text); err != nil {
		l.Error().Err(err).Msg("alert failed")
	}
}

func (r *Router) alertAll(ctx context.Context, chatID int64, warnings []string) {
	for _, w := range warnings {
		r.alert(ctx, chatID, w)
	}
}

func burstMessage(group pending.Group) Message {
	return Message{
		ChatID:    group.ChatID,
		ThreadID:  group.ThreadID,
		MessageID: group.MessageID,
		SenderID:  group.SenderID,
		Text:      group.Caption,
	}
}

func display(amount decimal.Decimal, currency string) string {
	return currencypkg.FormatAmount(amount, currency)
}

func scoreTable(scores map[string]int) string {
	out := ""
	for label, score := range scores {
		out += fmt.Sprintf("%s: %d%%\n", label, score)
	}

	return out
}
