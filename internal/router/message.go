package router

import "strings"

// Message is the transport-agnostic inbound message the router consumes:
// text or caption, the largest photo reference, the reply target, the
// media-group id for bursts, and the sender identity.
type Message struct {
	ChatID         int64
	ThreadID       int
	MessageID      int
	SenderID       int64
	SenderUsername string

	Text         string
	PhotoID      string
	MediaGroupID string

	ReplyTo *Message
}

// Command splits a leading bot command off the message text. The
// optional @botname suffix is dropped.
func (m Message) Command() (string, string, bool) {
	if !strings.HasPrefix(m.Text, "/") {
		return "", "", false
	}

	parts := strings.SplitN(strings.TrimSpace(m.Text), " ", 2)

	name := strings.TrimPrefix(parts[0], "/")
	if at := strings.Index(name, "@"); at != -1 {
		name = name[:at]
	}

	args := ""
	if len(parts) == 2 {
		args = strings.TrimSpace(parts[1])
	}

	return name, args, true
}
