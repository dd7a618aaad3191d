package implementation

import (
	"context"
	"time"

	"ai-docqa-be/internal/entity"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/internal/repository/contract"
	"ai-docqa-be/internal/repository/specification"
	"ai-docqa-be/pkg/rag"

	"github.com/google/uuid"
)

// GormConversationStore is the persistent conversation backend. It keeps
// sessions and messages in the database and survives restarts.
type GormConversationStore struct {
	uowFactory contract.RepositoryFactory
	log        logger.ILogger
}

var _ contract.ConversationStore = (*GormConversationStore)(nil)

func NewGormConversationStore(uowFactory contract.RepositoryFactory, log logger.ILogger) *GormConversationStore {
	return &GormConversationStore{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *GormConversationStore) CreateSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions := uow.ChatSessionRepository()

	existing, err := sessions.FindOne(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return "", &rag.StorageError{Op: "create_session", Err: err}
	}
	if existing != nil {
		return sessionID, nil
	}

	now := time.Now()
	if err := sessions.Create(ctx, &entity.SessionInfo{
		SessionID:   sessionID,
		CreatedAt:   now,
		LastUpdated: now,
	}); err != nil {
		return "", &rag.StorageError{Op: "create_session", Err: err}
	}
	return sessionID, nil
}

func (s *GormConversationStore) AddMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return &rag.StorageError{Op: "add_message", Err: err}
	}
	defer uow.Rollback()

	sessions := uow.ChatSessionRepository()
	session, err := sessions.FindOne(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return &rag.StorageError{Op: "add_message", Err: err}
	}

	now := time.Now()
	if session == nil {
		s.log.Warn("conversation", "Session not found, creating it on the fly", map[string]interface{}{
			"session_id": sessionID,
		})
		session = &entity.SessionInfo{
			SessionID:   sessionID,
			CreatedAt:   now,
			LastUpdated: now,
		}
		if err := sessions.Create(ctx, session); err != nil {
			return &rag.StorageError{Op: "add_message", Err: err}
		}
	}

	if err := uow.ChatMessageRepository().Create(ctx, sessionID, &entity.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: now,
		Metadata:  metadata,
	}); err != nil {
		return &rag.StorageError{Op: "add_message", Err: err}
	}

	session.MessageCount++
	session.LastUpdated = now
	if err := sessions.Update(ctx, session); err != nil {
		return &rag.StorageError{Op: "add_message", Err: err}
	}

	if err := uow.Commit(); err != nil {
		return &rag.StorageError{Op: "add_message", Err: err}
	}
	return nil
}

func (s *GormConversationStore) GetHistory(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Newest-first with a limit, then reversed, yields the most recent
	// window in chronological order.
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderByTimestamp{Descending: true},
		specification.WithLimit{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *GormConversationStore) GetContext(ctx context.Context, sessionID string, maxMessages int) (string, error) {
	history, err := s.GetHistory(ctx, sessionID, maxMessages)
	if err != nil {
		return "", err
	}
	return contract.FormatContext(history), nil
}

func (s *GormConversationStore) ClearSession(ctx context.Context, sessionID string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, &rag.StorageError{Op: "clear_session", Err: err}
	}
	defer uow.Rollback()

	sessions := uow.ChatSessionRepository()
	session, err := sessions.FindOne(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return false, &rag.StorageError{Op: "clear_session", Err: err}
	}
	if session == nil {
		s.log.Warn("conversation", "Clear requested for unknown session", map[string]interface{}{
			"session_id": sessionID,
		})
		return false, nil
	}

	if err := uow.ChatMessageRepository().DeleteBySessionID(ctx, sessionID); err != nil {
		return false, &rag.StorageError{Op: "clear_session", Err: err}
	}
	if err := sessions.Delete(ctx, sessionID); err != nil {
		return false, &rag.StorageError{Op: "clear_session", Err: err}
	}
	if err := uow.Commit(); err != nil {
		return false, &rag.StorageError{Op: "clear_session", Err: err}
	}
	return true, nil
}

func (s *GormConversationStore) ListSessions(ctx context.Context) ([]entity.SessionInfo, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]entity.SessionInfo, len(sessions))
	for i, sess := range sessions {
		infos[i] = *sess
	}
	return infos, nil
}

func (s *GormConversationStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	info, err := s.GetSessionInfo(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return info != nil, nil
}

func (s *GormConversationStore) GetSessionInfo(ctx context.Context, sessionID string) (*entity.SessionInfo, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionID})
}
