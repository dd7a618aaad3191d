package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id        uint           `gorm:"primaryKey;autoIncrement"`
	SessionID string         `gorm:"type:varchar(64);not null;index"`
	Role      string         `gorm:"type:varchar(50);not null"`
	Content   string         `gorm:"type:text;not null"`
	Timestamp time.Time      `gorm:"not null;index"`
	Metadata  datatypes.JSON `gorm:"type:json"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
