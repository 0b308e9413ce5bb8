// Package telegram is a minimal Bot API client: long polling, message
// sending and photo download. Only the fields the bot consumes are
// mapped.
package telegram

// Update is one long-poll result.
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an inbound chat message.
type Message struct {
	MessageID      int         `json:"message_id"`
	From           *User       `json:"from"`
	Chat           Chat        `json:"chat"`
	ThreadID       int         `json:"message_thread_id"`
	Text           string      `json:"text"`
	Caption        string      `json:"caption"`
	Photo          []PhotoSize `json:"photo"`
	MediaGroupID   string      `json:"media_group_id"`
	ReplyToMessage *Message    `json:"reply_to_message"`
}

// User is the message sender.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Chat identifies the group.
type Chat struct {
	ID int64 `json:"id"`
}

// PhotoSize is one rendition of an attached photo.
type PhotoSize struct {
	FileID   string `json:"file_id"`
	FileSize int    `json:"file_size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// TextOrCaption returns the message text, falling back to the photo
// caption.
func (m *Message) TextOrCaption() string {
	if m.Text != "" {
		return m.Text
	}

	return m.Caption
}

// LargestPhoto returns the file id of the highest-resolution rendition,
// or empty when the message has no photo.
func (m *Message) LargestPhoto() string {
	best := ""
	bestArea := -1

	for _, p := range m.Photo {
		area := p.Width * p.Height
		if area > bestArea {
			best = p.FileID
			bestArea = area
		}
	}

	return best
}
