package mapper

import (
	"encoding/json"

	"ai-docqa-be/internal/entity"
	"ai-docqa-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.SessionInfo {
	if s == nil {
		return nil
	}
	return &entity.SessionInfo{
		SessionID:    s.SessionID,
		CreatedAt:    s.CreatedAt,
		LastUpdated:  s.LastUpdated,
		MessageCount: s.MessageCount,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.SessionInfo) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		SessionID:    s.SessionID,
		CreatedAt:    s.CreatedAt,
		LastUpdated:  s.LastUpdated,
		MessageCount: s.MessageCount,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(msg.Metadata) > 0 {
		// Corrupted metadata degrades to nil rather than failing the read.
		_ = json.Unmarshal(msg.Metadata, &metadata)
	}

	return &entity.ChatMessage{
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Metadata:  metadata,
	}
}

func (m *ChatMapper) MessageToModel(sessionID string, msg *entity.ChatMessage) (*model.ChatMessage, error) {
	if msg == nil {
		return nil, nil
	}

	var metadata datatypes.JSON
	if msg.Metadata != nil {
		raw, err := json.Marshal(msg.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = datatypes.JSON(raw)
	}

	return &model.ChatMessage{
		SessionID: sessionID,
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Metadata:  metadata,
	}, nil
}

func (m *ChatMapper) MessagesToEntities(models []*model.ChatMessage) []entity.ChatMessage {
	entities := make([]entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = *m.MessageToEntity(msg)
	}
	return entities
}
