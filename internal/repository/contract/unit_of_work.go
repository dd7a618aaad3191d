package contract

import (
	"context"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() ChatSessionRepository
	ChatMessageRepository() ChatMessageRepository
}
