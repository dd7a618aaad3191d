// Package memory provides the volatile conversation backend: sessions live
// in-process and vanish on restart. It mirrors the persistent backend
// behind the same contract.
package memory

import (
	"context"
	"sync"
	"time"

	"ai-docqa-be/internal/entity"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type sessionRecord struct {
	info     entity.SessionInfo
	messages []entity.ChatMessage
}

type ConversationStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	log   logger.ILogger
}

var _ contract.ConversationStore = (*ConversationStore)(nil)

func NewConversationStore(log logger.ILogger) *ConversationStore {
	// Sessions never expire on their own; the process lifetime bounds them.
	return &ConversationStore{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
		log:   log,
	}
}

func (s *ConversationStore) CreateSession(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(sessionID), nil
}

// createLocked registers the session if absent and returns its ID.
// Caller must hold the mutex.
func (s *ConversationStore) createLocked(sessionID string) string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if _, found := s.cache.Get(sessionID); found {
		return sessionID
	}
	now := time.Now()
	s.cache.Set(sessionID, &sessionRecord{
		info: entity.SessionInfo{
			SessionID:   sessionID,
			CreatedAt:   now,
			LastUpdated: now,
		},
	}, cache.NoExpiration)
	return sessionID
}

func (s *ConversationStore) AddMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := s.getRecord(sessionID)
	if !found {
		s.log.Warn("memory", "Session not found, creating it on the fly", map[string]interface{}{
			"session_id": sessionID,
		})
		sessionID = s.createLocked(sessionID)
		rec, _ = s.getRecord(sessionID)
	}

	now := time.Now()
	rec.messages = append(rec.messages, entity.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: now,
		Metadata:  metadata,
	})
	rec.info.MessageCount = len(rec.messages)
	rec.info.LastUpdated = now
	return nil
}

func (s *ConversationStore) GetHistory(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := s.getRecord(sessionID)
	if !found {
		return nil, nil
	}
	msgs := rec.messages
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]entity.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *ConversationStore) GetContext(ctx context.Context, sessionID string, maxMessages int) (string, error) {
	history, err := s.GetHistory(ctx, sessionID, maxMessages)
	if err != nil {
		return "", err
	}
	return contract.FormatContext(history), nil
}

func (s *ConversationStore) ClearSession(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.getRecord(sessionID); !found {
		s.log.Warn("memory", "Clear requested for unknown session", map[string]interface{}{
			"session_id": sessionID,
		})
		return false, nil
	}
	s.cache.Delete(sessionID)
	return true, nil
}

func (s *ConversationStore) ListSessions(ctx context.Context) ([]entity.SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cache.Items()
	infos := make([]entity.SessionInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, item.Object.(*sessionRecord).info)
	}
	return infos, nil
}

func (s *ConversationStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.getRecord(sessionID)
	return found, nil
}

func (s *ConversationStore) GetSessionInfo(ctx context.Context, sessionID string) (*entity.SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := s.getRecord(sessionID)
	if !found {
		return nil, nil
	}
	info := rec.info
	return &info, nil
}

func (s *ConversationStore) getRecord(sessionID string) (*sessionRecord, bool) {
	if x, found := s.cache.Get(sessionID); found {
		return x.(*sessionRecord), true
	}
	return nil, false
}
