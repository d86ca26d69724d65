package domain

import "time"

type Message struct {
	ID        int64     `json:"id"`
	FromID    int64     `json:"from"`
	ToID      int64     `json:"to"`
	JobID     *int64    `json:"job,omitempty"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationPartner 是收件箱中对话另一方的投影
type ConversationPartner struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
}

// InboxEntry 是收件箱中的一个会话：对话另一方 + 双方之间最近的一条消息
type InboxEntry struct {
	Partner     ConversationPartner `json:"partner"`
	LastMessage Message             `json:"lastMessage"`
	UnreadCount int                 `json:"unreadCount"`
}
