package domain

import "time"

type MessageKind string

const (
	MessageUser   MessageKind = "user"
	MessageSystem MessageKind = "system"
)

// ChatMessage is one entry of a room's chat log. Author and ConnID are
// empty for system messages.
type ChatMessage struct {
	ID     string      `json:"id"`
	Kind   MessageKind `json:"kind"`
	Text   string      `json:"text"`
	Author string      `json:"author,omitempty"`
	ConnID ConnID      `json:"connId,omitempty"`
	SentAt time.Time   `json:"sentAt"`
}
