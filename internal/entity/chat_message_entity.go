package entity

import "time"

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role      string
	Content   string
	Timestamp time.Time
	Metadata  map[string]interface{}
}
