package contract

import (
	"context"

	"ai-docqa-be/internal/entity"
	"ai-docqa-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.SessionInfo) error
	Update(ctx context.Context, session *entity.SessionInfo) error
	Delete(ctx context.Context, sessionID string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionInfo, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionInfo, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
