package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/infinity-otc/balancebot/internal/router"
)

// Handler consumes routed messages.
type Handler interface {
	HandleMessage(ctx context.Context, msg router.Message)
}

// Poller runs the long-poll loop and dispatches updates one at a time,
// in order. Ordering matters for media groups and pending accumulation.
type Poller struct {
	client  *Client
	handler Handler
	logger  zerolog.Logger
}

// NewPoller returns a poller over the client and handler.
func NewPoller(client *Client, handler Handler, logger zerolog.Logger) *Poller {
	return &Poller{client: client, handler: handler, logger: logger}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	offset := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := p.client.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			p.logger.Error().Err(err).Msg("getUpdates failed; backing off")

			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}

			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1

			if update.Message == nil {
				continue
			}

			l := p.logger.With().Int("update_id", update.UpdateID).Logger()
			p.handler.HandleMessage(l.WithContext(ctx), convert(update.Message))
		}
	}
}

func convert(m *Message) router.Message {
	msg := router.Message{
		ChatID:       m.Chat.ID,
		ThreadID:     m.ThreadID,
		MessageID:    m.MessageID,
		Text:         m.TextOrCaption(),
		PhotoID:      m.LargestPhoto(),
		MediaGroupID: m.MediaGroupID,
	}

	if m.From != nil {
		msg.SenderID = m.From.ID
		msg.SenderUsername = m.From.Username
	}

	if m.ReplyToMessage != nil {
		reply := convert(m.ReplyToMessage)
		msg.ReplyTo = &reply
	}

	return msg
}
