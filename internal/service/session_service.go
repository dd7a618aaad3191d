package service

import (
	"context"

	"ai-docqa-be/internal/dto"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/internal/repository/contract"
)

type ISessionService interface {
	Create(ctx context.Context, sessionID string) (*dto.CreateSessionResponse, error)

	// History returns nil when the session does not exist.
	History(ctx context.Context, sessionID string, limit int) (*dto.SessionHistoryResponse, error)

	Delete(ctx context.Context, sessionID string) (bool, error)
	List(ctx context.Context) ([]dto.SessionInfoResponse, error)
}

type sessionService struct {
	memory contract.ConversationStore
	log    logger.ILogger
}

func NewSessionService(memory contract.ConversationStore, log logger.ILogger) ISessionService {
	return &sessionService{memory: memory, log: log}
}

func (ss *sessionService) Create(ctx context.Context, sessionID string) (*dto.CreateSessionResponse, error) {
	id, err := ss.memory.CreateSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ss.log.Info("session", "Session created", map[string]interface{}{"session_id": id})
	return &dto.CreateSessionResponse{SessionID: id}, nil
}

func (ss *sessionService) History(ctx context.Context, sessionID string, limit int) (*dto.SessionHistoryResponse, error) {
	exists, err := ss.memory.SessionExists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	messages, err := ss.memory.GetHistory(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = dto.ChatMessageResponse{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Metadata:  msg.Metadata,
		}
	}

	return &dto.SessionHistoryResponse{
		SessionID: sessionID,
		Messages:  out,
		Total:     len(out),
	}, nil
}

func (ss *sessionService) Delete(ctx context.Context, sessionID string) (bool, error) {
	return ss.memory.ClearSession(ctx, sessionID)
}

func (ss *sessionService) List(ctx context.Context) ([]dto.SessionInfoResponse, error) {
	infos, err := ss.memory.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionInfoResponse, len(infos))
	for i, info := range infos {
		out[i] = dto.SessionInfoResponse{
			SessionID:    info.SessionID,
			CreatedAt:    info.CreatedAt,
			LastUpdated:  info.LastUpdated,
			MessageCount: info.MessageCount,
		}
	}
	return out, nil
}
