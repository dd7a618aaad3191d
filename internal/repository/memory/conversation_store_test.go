package memory

import (
	"context"
	"testing"

	"ai-docqa-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *ConversationStore {
	return NewConversationStore(logger.NewNopLogger())
}

func TestCreateSessionGeneratesID(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	id, err := s.CreateSession(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	exists, err := s.SessionExists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateSessionIdempotent(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	id1, err := s.CreateSession(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(ctx, "abc", "user", "Hi", nil))

	id2, err := s.CreateSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// Re-creating must not wipe existing messages.
	history, err := s.GetHistory(ctx, "abc", 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAddMessageAutoCreatesSession(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.AddMessage(ctx, "ghost", "user", "Hello?", nil))

	exists, err := s.SessionExists(ctx, "ghost")
	require.NoError(t, err)
	assert.True(t, exists)

	info, err := s.GetSessionInfo(ctx, "ghost")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 1, info.MessageCount)
}

func TestGetContextFormat(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateSession(ctx, "fmt")
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(ctx, "fmt", "user", "Hi", nil))
	require.NoError(t, s.AddMessage(ctx, "fmt", "assistant", "Hello", nil))

	got, err := s.GetContext(ctx, "fmt", 10)
	require.NoError(t, err)
	assert.Equal(t, "Previous conversation:\nUser: Hi\nAssistant: Hello", got)
}

func TestGetContextEmptySession(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateSession(ctx, "empty")
	require.NoError(t, err)

	got, err := s.GetContext(ctx, "empty", 10)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// Unknown session also degrades to empty.
	got, err = s.GetContext(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestGetHistoryLimitReturnsRecentWindow(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateSession(ctx, "lim")
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(ctx, "lim", "user", "one", nil))
	require.NoError(t, s.AddMessage(ctx, "lim", "assistant", "two", nil))
	require.NoError(t, s.AddMessage(ctx, "lim", "user", "three", nil))

	history, err := s.GetHistory(ctx, "lim", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "two", history[0].Content)
	assert.Equal(t, "three", history[1].Content)
}

func TestClearSession(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateSession(ctx, "gone")
	require.NoError(t, err)

	cleared, err := s.ClearSession(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = s.ClearSession(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestListSessions(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateSession(ctx, "a")
	require.NoError(t, err)
	_, err = s.CreateSession(ctx, "b")
	require.NoError(t, err)

	infos, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestMessageMetadataPreserved(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	meta := map[string]interface{}{"sources": []string{"a.txt"}}
	require.NoError(t, s.AddMessage(ctx, "meta", "assistant", "answer", meta))

	history, err := s.GetHistory(ctx, "meta", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, meta, history[0].Metadata)
}
