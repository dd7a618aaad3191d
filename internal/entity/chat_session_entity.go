package entity

import "time"

// SessionInfo is the bookkeeping record of one conversation session.
type SessionInfo struct {
	SessionID    string
	CreatedAt    time.Time
	LastUpdated  time.Time
	MessageCount int
}
