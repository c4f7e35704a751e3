package model

import "time"

// BotUserID is the synthetic author of assistant messages.
const BotUserID = "bot"

const BotName = "Spiritual Guide"

type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserRole  Role      `json:"userRole"`
	UserPic   string    `json:"userPic,omitempty"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Media     *Media    `json:"media,omitempty"`

	// Computed fields (not persisted)
	UserPicURL string `json:"-"`
}

func (m *ChatMessage) FromBot() bool {
	return m.UserID == BotUserID
}
