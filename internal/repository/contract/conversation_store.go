package contract

import (
	"context"
	"strings"

	"ai-docqa-be/internal/entity"
)

// ConversationStore is the single contract both memory backends implement:
// the volatile in-process store and the persistent database store. Callers
// never know which one they hold.
//
// Read-path lookups of unknown sessions degrade (empty results, no error);
// write-path failures surface as errors.
type ConversationStore interface {
	// CreateSession registers a session and returns its ID. An empty
	// sessionID gets a generated one. Creating an existing session is a
	// no-op returning the same ID.
	CreateSession(ctx context.Context, sessionID string) (string, error)

	// AddMessage appends a message to a session, creating the session on
	// the fly when it does not exist yet.
	AddMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) error

	// GetHistory returns the most recent `limit` messages in chronological
	// order. limit <= 0 means everything.
	GetHistory(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error)

	// GetContext renders the last maxMessages turns into the prompt prefix
	// used by the workflow. Empty sessions yield "".
	GetContext(ctx context.Context, sessionID string, maxMessages int) (string, error)

	// ClearSession removes a session and its messages. Returns false when
	// the session was not found.
	ClearSession(ctx context.Context, sessionID string) (bool, error)

	// ListSessions returns info for all sessions.
	ListSessions(ctx context.Context) ([]entity.SessionInfo, error)

	// SessionExists reports whether a session is known.
	SessionExists(ctx context.Context, sessionID string) (bool, error)

	// GetSessionInfo returns a session's bookkeeping record, nil if absent.
	GetSessionInfo(ctx context.Context, sessionID string) (*entity.SessionInfo, error)
}

// FormatContext renders messages into the conversation prefix consumed by
// the workflow. Both backends share it so their output is byte-identical:
//
//	Previous conversation:
//	User: Hi
//	Assistant: Hello
func FormatContext(messages []entity.ChatMessage) string {
	if len(messages) == 0 {
		return ""
	}
	lines := make([]string, 0, len(messages)+1)
	lines = append(lines, "Previous conversation:")
	for _, m := range messages {
		lines = append(lines, capitalizeRole(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func capitalizeRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
