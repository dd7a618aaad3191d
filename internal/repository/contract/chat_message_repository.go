package contract

import (
	"context"

	"ai-docqa-be/internal/entity"
	"ai-docqa-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, sessionID string, message *entity.ChatMessage) error
	DeleteBySessionID(ctx context.Context, sessionID string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
