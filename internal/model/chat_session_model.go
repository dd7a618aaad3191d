package model

import "time"

type ChatSession struct {
	SessionID    string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	LastUpdated  time.Time `gorm:"not null"`
	MessageCount int       `gorm:"not null;default:0"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
