package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

func (r *Router) handleCommand(ctx context.Context, msg Message, name, args string) {
	l := zerolog.Ctx(ctx)

	l.Info().Str("command", name).Int64("sender", msg.SenderID).Msg("command received")

	switch name {
	case "start":
		r.reply(ctx, msg, strings.Join([]string{
			"Balance bot is running.",
			"",
			"/balance - show the current balance",
			"/load - load a balance (reply to the balance message)",
			"/set_user <prefix> - map a staff member (reply to their message)",
			"/set_receiving <Label(Bank)> - set the USDT receiving account",
			"/list_users - show staff prefix mappings",
			"/test - show the active configuration",
		}, "\n"))
	case "balance":
		r.commandBalance(ctx, msg)
	case "load":
		r.commandLoad(ctx, msg)
	case "test":
		r.commandTest(ctx, msg)
	case "set_user":
		r.commandSetUser(ctx, msg, args)
	case "set_receiving":
		r.commandSetReceiving(ctx, msg, args)
	case "list_users":
		r.commandListUsers(ctx, msg)
	}
}

func (r *Router) commandBalance(ctx context.Context, msg Message) {
	text, err := r.balances.Snapshot(msg.ChatID)
	if err != nil {
		r.reply(ctx, msg, "Balance not loaded. Post the balance message in the balance topic first.")
		return
	}

	r.reply(ctx, msg, text)
}

func (r *Router) commandLoad(ctx context.Context, msg Message) {
	if msg.ReplyTo == nil || msg.ReplyTo.Text == "" {
		r.reply(ctx, msg, "Reply to the balance message with /load.")
		return
	}

	ledger, err := r.balances.Load(ctx, msg.ChatID, msg.ReplyTo.Text)
	if err != nil {
		r.reply(ctx, msg, "Could not parse that message as a balance: "+err.Error())
		return
	}

	r.reply(ctx, msg, fmt.Sprintf(
		"Balance loaded: %d MMK, %d USDT, %d THB accounts.",
		len(ledger.MMK), len(ledger.USDT), len(ledger.THB)))
}

func (r *Router) commandTest(ctx context.Context, msg Message) {
	receiving, _ := r.registry.ReceivingAccount(ctx)
	if receiving == "" {
		receiving = "(not set)"
	}

	r.reply(ctx, msg, fmt.Sprintf(
		"Configuration\n\nTransfers topic: %d\nBalance topic: %d\nAlerts topic: %d\nMMK tolerance: %s\nUSDT tolerance: %s (floor), %s (ratio)\nMedia group delay: %s\nConfidence floor: %d%%\nReceiving account: %s",
		r.config.TransfersTopicID, r.config.BalanceTopicID, r.config.AlertsTopicID,
		r.config.MMKTolerance, r.config.USDTToleranceFloor, r.config.USDTToleranceRatio,
		r.config.MediaGroupDelay, r.config.ConfidenceFloor, receiving))
}

func (r *Router) commandSetUser(ctx context.Context, msg Message, args string) {
	prefix := strings.TrimSpace(args)
	if prefix == "" || msg.ReplyTo == nil || msg.ReplyTo.SenderID == 0 {
		r.reply(ctx, msg, "Reply to the staff member's message with /set_user <prefix>.")
		return
	}

	mapped, err := r.registry.SetPrefix(ctx, msg.ReplyTo.SenderID, prefix, msg.ReplyTo.SenderUsername)
	if err != nil {
		r.reply(ctx, msg, "Could not save the mapping.")
		return
	}

	r.reply(ctx, msg, fmt.Sprintf("Mapped @%s to prefix %s.", mapped.Username, mapped.Prefix))
}

func (r *Router) commandSetReceiving(ctx context.Context, msg Message, args string) {
	label := strings.TrimSpace(args)
	if label == "" {
		r.reply(ctx, msg, "Usage: /set_receiving <Label(Bank)>")
		return
	}

	if err := r.registry.SetReceivingAccount(ctx, label); err != nil {
		r.reply(ctx, msg, "Could not save the receiving account.")
		return
	}

	// Warn when the account is not in the loaded balance; the setting
	// is still saved so it survives the next load.
	if _, ok := r.findCurrency(msg.ChatID, label); !ok && r.balances.Loaded(msg.ChatID) {
		r.reply(ctx, msg, "Receiving account set to "+label+" (not in the loaded balance).")
		return
	}

	r.reply(ctx, msg, "Receiving account set to "+label+".")
}

func (r *Router) commandListUsers(ctx context.Context, msg Message) {
	prefixes, err := r.registry.ListPrefixes(ctx)
	if err != nil {
		r.reply(ctx, msg, "Could not list mappings.")
		return
	}

	if len(prefixes) == 0 {
		r.reply(ctx, msg, "No staff mappings yet. Use /set_user to add one.")
		return
	}

	var b strings.Builder
	b.WriteString("Staff mappings\n")

	for _, p := range prefixes {
		fmt.Fprintf(&b, "\n%s - @%s (%d)", p.Prefix, p.Username, p.UserID)
	}

	r.reply(ctx, msg, b.String())
}
